package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peer-match/internal/domain"
	"peer-match/internal/service"
)

// MatchHandler mantiene dependencias para endpoints de matching.
type MatchHandler struct {
	logger    *zap.Logger
	matchServ *service.MatchService
}

// NewMatchHandler crea una instancia de MatchHandler con dependencias necesarias.
func NewMatchHandler(logger *zap.Logger, matchServ *service.MatchService) *MatchHandler {
	return &MatchHandler{
		logger:    logger,
		matchServ: matchServ,
	}
}

// FindMatches maneja POST /api/matching/find.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req struct {
		UserID      string                      `json:"userId" binding:"required"`
		Preferences *domain.MatchingPreferences `json:"preferences" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid find matches request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "userId and preferences are required")
		return
	}
	if req.Preferences.AgeRange[0] > req.Preferences.AgeRange[1] {
		respondError(c, http.StatusBadRequest, "ageRange must be ordered [min, max]")
		return
	}

	matches, err := h.matchServ.FindMatches(c.Request.Context(), req.UserID, *req.Preferences)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchInvalidInput):
			respondError(c, http.StatusBadRequest, "userId and preferences are required")
			return
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "User profile not found")
			return
		default:
			h.logger.Error("find matches failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to find matches")
			return
		}
	}

	respondSuccess(c, http.StatusOK, matches, fmt.Sprintf("Found %d compatible matches", len(matches)))
}

// RequestMatch maneja POST /api/matching/request.
func (h *MatchHandler) RequestMatch(c *gin.Context) {
	var req struct {
		UserID        string `json:"userId" binding:"required"`
		CandidateID   string `json:"candidateId" binding:"required"`
		Compatibility int    `json:"compatibility"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request match request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "userId and candidateId are required")
		return
	}

	match, err := h.matchServ.RequestMatch(c.Request.Context(), req.UserID, req.CandidateID, req.Compatibility)
	if err != nil {
		if errors.Is(err, service.ErrMatchInvalidInput) {
			respondError(c, http.StatusBadRequest, "invalid match request")
			return
		}
		h.logger.Error("request match failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to request match")
		return
	}

	respondSuccess(c, http.StatusCreated, match, "Match request sent")
}

// AcceptMatch maneja POST /api/matching/:id/accept.
func (h *MatchHandler) AcceptMatch(c *gin.Context) {
	h.resolveMatch(c, true)
}

// DeclineMatch maneja POST /api/matching/:id/decline.
func (h *MatchHandler) DeclineMatch(c *gin.Context) {
	h.resolveMatch(c, false)
}

func (h *MatchHandler) resolveMatch(c *gin.Context, accept bool) {
	matchID := c.Param("id")
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid resolve match request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "userId is required")
		return
	}

	var (
		match domain.MatchRecord
		err   error
	)
	if accept {
		match, err = h.matchServ.AcceptMatch(c.Request.Context(), matchID, req.UserID)
	} else {
		match, err = h.matchServ.DeclineMatch(c.Request.Context(), matchID, req.UserID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchInvalidInput):
			respondError(c, http.StatusBadRequest, "invalid match request")
		case errors.Is(err, service.ErrMatchNotFound):
			respondError(c, http.StatusNotFound, "Match not found")
		case errors.Is(err, service.ErrMatchNotParticipant):
			respondError(c, http.StatusForbidden, "User is not part of this match")
		case errors.Is(err, service.ErrMatchAlreadyResolved):
			respondError(c, http.StatusConflict, "Match already resolved")
		default:
			h.logger.Error("resolve match failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to update match")
		}
		return
	}

	message := "Match accepted"
	if !accept {
		message = "Match declined"
	}
	respondSuccess(c, http.StatusOK, match, message)
}
