package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
	"github.com/rfdevuser/InventoryManagement/internal/server/printsurface"
	"github.com/rfdevuser/InventoryManagement/internal/service/fabricform"
	"github.com/rfdevuser/InventoryManagement/internal/service/printing"
)

const messageMissingFields = "Please fill in all fields."

// FabricHandler serves the browser form and the QR print popup.
type FabricHandler struct {
	sessions   *fabricform.SessionRegistry
	dispatcher *printing.Dispatcher
	surfaces   *printsurface.Opener
	cookie     string
	logger     *zap.Logger
}

// NewFabricHandler constructs the HTML handler adapter.
func NewFabricHandler(sessions *fabricform.SessionRegistry, dispatcher *printing.Dispatcher, surfaces *printsurface.Opener, cookie string, logger *zap.Logger) *FabricHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FabricHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		surfaces:   surfaces,
		cookie:     cookie,
		logger:     logger,
	}
}

type formView struct {
	State models.FormState
	Alert string
}

// Show renders the form with the session's current state.
func (h *FabricHandler) Show(c *gin.Context) {
	ctrl := acquireSession(c, h.sessions, h.cookie)
	c.HTML(http.StatusOK, "form", formView{State: ctrl.State()})
}

// Submit applies the posted fields to the session form and submits it.
func (h *FabricHandler) Submit(c *gin.Context) {
	ctrl := acquireSession(c, h.sessions, h.cookie)

	var req models.FabricForm
	bindErr := c.ShouldBind(&req)

	for _, name := range models.FieldNames {
		if err := ctrl.UpdateField(name, req.Value(name)); err != nil {
			h.logger.Warn("failed to update form field", zap.String("field", name), zap.Error(err))
			c.HTML(submitStatus(err), "form", formView{State: ctrl.State(), Alert: fabricform.MessageSubmitFailed})
			return
		}
	}

	if bindErr != nil {
		h.logger.Debug("incomplete fabric form", zap.Error(bindErr))
		c.HTML(http.StatusBadRequest, "form", formView{State: ctrl.State(), Alert: messageMissingFields})
		return
	}

	state, err := ctrl.Submit(c.Request.Context())
	alert := state.Message
	if err != nil {
		alert = fabricform.UserMessage(err)
	}
	c.HTML(submitStatus(err), "form", formView{State: state, Alert: alert})
}

// Print writes the QR print popup for the session's latest QR code.
func (h *FabricHandler) Print(c *gin.Context) {
	ctrl := acquireSession(c, h.sessions, h.cookie)

	c.Header("Content-Type", "text/html; charset=utf-8")
	// Failures happen before anything is written, leaving the popup free for an alert.
	err := h.dispatcher.PrintQR(c.Request.Context(), h.surfaces.Bind(c.Writer), ctrl.State().QRCodeURL)
	if err == nil {
		return
	}

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, printing.ErrNoQRAvailable):
		status = http.StatusNotFound
	case errors.Is(err, printing.ErrPrintWindowBlocked):
		status = http.StatusServiceUnavailable
	default:
		h.logger.Warn("failed to print qr code", zap.Error(err))
	}
	c.HTML(status, "printError", printing.UserMessage(err))
}
