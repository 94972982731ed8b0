package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
	"github.com/rfdevuser/InventoryManagement/internal/metrics"
	"github.com/rfdevuser/InventoryManagement/internal/service/fabricform"
	"github.com/rfdevuser/InventoryManagement/internal/service/reporting"
)

const exportDateLayout = "2006-01-02"

// APIHandler exposes the form session and fabric submission over JSON.
type APIHandler struct {
	sessions  *fabricform.SessionRegistry
	mutator   fabricform.Mutator
	recorder  fabricform.Recorder
	reporting *reporting.Service
	cookie    string
	logger    *zap.Logger
}

// NewAPIHandler constructs the JSON handler adapter. recorder may be nil.
func NewAPIHandler(sessions *fabricform.SessionRegistry, mutator fabricform.Mutator, recorder fabricform.Recorder, reportingSvc *reporting.Service, cookie string, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		sessions:  sessions,
		mutator:   mutator,
		recorder:  recorder,
		reporting: reportingSvc,
		cookie:    cookie,
		logger:    logger,
	}
}

type fieldUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// State returns the caller's form state.
func (h *APIHandler) State(c *gin.Context) {
	ctrl := acquireSession(c, h.sessions, h.cookie)
	c.JSON(http.StatusOK, ctrl.State())
}

// UpdateField replaces one form field.
func (h *APIHandler) UpdateField(c *gin.Context) {
	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctrl := acquireSession(c, h.sessions, h.cookie)
	if err := ctrl.UpdateField(req.Name, req.Value); err != nil {
		c.JSON(submitStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.State())
}

// Submit submits the caller's form.
func (h *APIHandler) Submit(c *gin.Context) {
	ctrl := acquireSession(c, h.sessions, h.cookie)

	state, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		c.JSON(submitStatus(err), gin.H{"error": fabricform.UserMessage(err), "state": state})
		return
	}
	c.JSON(http.StatusOK, state)
}

// CloseSession tears down the caller's form session.
func (h *APIHandler) CloseSession(c *gin.Context) {
	if id, err := c.Cookie(h.cookie); err == nil && id != "" {
		h.sessions.Close(id)
	}
	c.SetCookie(h.cookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// CreateFabric submits a fabric record without a form session.
func (h *APIHandler) CreateFabric(c *gin.Context) {
	var req models.FabricForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid fabric payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := fabricform.Coerce(req)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fabricform.UserMessage(err)})
		return
	}

	result, err := h.mutator.InsertFabricDetails(c.Request.Context(), input)
	if err == nil && (result == nil || result.QRCodeURL == "") {
		err = errors.New("response carried no qrCodeUrl")
	}
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		h.logger.Error("error submitting fabric", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": fabricform.MessageSubmitFailed})
		return
	}
	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	if h.recorder != nil {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 10*time.Second)
		defer cancel()
		entry := models.SubmissionEntry{Input: input, QRCodeURL: result.QRCodeURL, SubmittedAt: time.Now().UTC()}
		if err := h.recorder.RecordSubmission(recordCtx, entry); err != nil {
			h.logger.Error("failed to journal submission", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, result)
}

// ExportFabrics streams the journaled submissions as an xlsx workbook.
// Optional from/to query parameters bound the submission dates (to is inclusive).
func (h *APIHandler) ExportFabrics(c *gin.Context) {
	from, to, err := exportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.reporting.ExportWorkbook(c.Request.Context(), from, to)
	if errors.Is(err, reporting.ErrJournalDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "submission journal is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("failed to export fabrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export fabrics"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=fabrics.xlsx")
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}

func exportRange(fromParam, toParam string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now().UTC().Add(time.Minute)

	if fromParam != "" {
		parsed, err := time.Parse(exportDateLayout, fromParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from must use %s", exportDateLayout)
		}
		from = parsed
	}
	if toParam != "" {
		parsed, err := time.Parse(exportDateLayout, toParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to must use %s", exportDateLayout)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, errors.New("from must be before to")
	}
	return from, to, nil
}
