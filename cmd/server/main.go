package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/repository/mongodb"
	"github.com/rfdevuser/InventoryManagement/internal/repository/sheets"
	"github.com/rfdevuser/InventoryManagement/internal/scheduler"
	"github.com/rfdevuser/InventoryManagement/internal/server/handlers"
	"github.com/rfdevuser/InventoryManagement/internal/server/printsurface"
	"github.com/rfdevuser/InventoryManagement/internal/server/router"
	"github.com/rfdevuser/InventoryManagement/internal/service/fabricform"
	journalsvc "github.com/rfdevuser/InventoryManagement/internal/service/journal"
	"github.com/rfdevuser/InventoryManagement/internal/service/printing"
	reportingsvc "github.com/rfdevuser/InventoryManagement/internal/service/reporting"
	"github.com/rfdevuser/InventoryManagement/pkg/clients/graphql"
	"github.com/rfdevuser/InventoryManagement/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	graphqlClient := graphql.NewClient(cfg.GraphQL)

	// Sinks stay nil interfaces when disabled.
	var (
		journalStore   journalsvc.Store
		journalMirror  journalsvc.Mirror
		reportingStore reportingsvc.Store
	)

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		journalStore = mongoRepo
		reportingStore = mongoRepo
		baseLogger.Info("mongodb submission journal enabled", zap.String("db", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("MONGODB_URI missing, submission journal disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		journalMirror = sheetsRepo
		baseLogger.Info("google sheets mirror enabled")
	}

	var recorder fabricform.Recorder
	if journalStore != nil || journalMirror != nil {
		recorder = journalsvc.NewService(journalStore, journalMirror, baseLogger.Named("svc.journal"))
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}
	reportingSvc := reportingsvc.NewService(reportingStore, location, baseLogger.Named("svc.reporting"))

	sessions := fabricform.NewSessionRegistry(graphqlClient, recorder, baseLogger.Named("svc.fabricform"))
	dispatcher := printing.NewDispatcher(baseLogger.Named("svc.printing"))
	surfaces := printsurface.NewOpener(cfg.Print, baseLogger.Named("printsurface"))

	formHandler := handlers.NewFabricHandler(sessions, dispatcher, surfaces, cfg.Server.SessionCookie, baseLogger.Named("handlers.form"))
	apiHandler := handlers.NewAPIHandler(sessions, graphqlClient, recorder, reportingSvc, cfg.Server.SessionCookie, baseLogger.Named("handlers.api"))
	engine := router.New(formHandler, apiHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, sessions, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.GraphQL.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("graphql_endpoint", cfg.GraphQL.Endpoint))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
