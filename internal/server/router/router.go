package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(form *handlers.FabricHandler, api *handlers.APIHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.SetHTMLTemplate(handlers.Templates())

	r.GET("/", form.Show)
	r.POST("/fabric", form.Submit)
	r.GET("/print", form.Print)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/form", api.State)
		apiGroup.PATCH("/form/fields", api.UpdateField)
		apiGroup.POST("/form/submit", api.Submit)
		apiGroup.DELETE("/form", api.CloseSession)
		apiGroup.POST("/fabrics", api.CreateFabric)
		apiGroup.GET("/fabrics/export", api.ExportFabrics)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
