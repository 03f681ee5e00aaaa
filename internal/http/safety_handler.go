package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peer-match/internal/service"
)

// SafetyHandler mantiene dependencias para endpoints de seguridad.
type SafetyHandler struct {
	logger     *zap.Logger
	safetyServ *service.SafetyService
}

// NewSafetyHandler crea una instancia de SafetyHandler con dependencias necesarias.
func NewSafetyHandler(logger *zap.Logger, safetyServ *service.SafetyService) *SafetyHandler {
	return &SafetyHandler{
		logger:     logger,
		safetyServ: safetyServ,
	}
}

// Report maneja POST /api/safety/report.
func (h *SafetyHandler) Report(c *gin.Context) {
	var req struct {
		ReporterID string `json:"reporterId" binding:"required"`
		ReportedID string `json:"reportedId" binding:"required"`
		Reason     string `json:"reason" binding:"required"`
		Details    string `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid safety report request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "reporterId, reportedId and reason are required")
		return
	}

	report, err := h.safetyServ.Report(c.Request.Context(), service.ReportInput{
		ReporterID: req.ReporterID,
		ReportedID: req.ReportedID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		if errors.Is(err, service.ErrReportInvalidInput) {
			respondError(c, http.StatusBadRequest, "invalid report")
			return
		}
		h.logger.Error("safety report failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to submit report")
		return
	}

	respondSuccess(c, http.StatusCreated, report, "Report received")
}
