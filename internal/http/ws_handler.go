package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"peer-match/internal/realtime"
	"peer-match/internal/repository"
	"peer-match/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El origen se controla en el middleware CORS del router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler expone el stream websocket de mensajes entregados.
type StreamHandler struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	tokens   *service.TokenService
	hub      *realtime.Hub
}

// NewStreamHandler crea una instancia de StreamHandler con dependencias necesarias.
func NewStreamHandler(logger *zap.Logger, sessions repository.SessionRepository, tokens *service.TokenService, hub *realtime.Hub) *StreamHandler {
	return &StreamHandler{
		logger:   logger,
		sessions: sessions,
		tokens:   tokens,
		hub:      hub,
	}
}

// Stream maneja GET /ws/chat/:sessionId.
func (h *StreamHandler) Stream(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "session id is required")
		return
	}

	userID, ok := h.authenticate(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid token")
		return
	}

	session, err := h.sessions.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Chat session not found")
			return
		}
		h.logger.Error("load session failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to open stream")
		return
	}
	if userID != "" && !session.HasParticipant(userID) {
		respondError(c, http.StatusForbidden, "User is not part of this session")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Attach(sessionID, conn)
}

// authenticate acepta el token por header o por query param: los browsers no
// pueden fijar headers en el upgrade de websocket.
func (h *StreamHandler) authenticate(c *gin.Context) (string, bool) {
	if h.tokens == nil {
		return "", true
	}

	token := ""
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		token = strings.TrimSpace(header[len("Bearer "):])
	}
	if token == "" {
		token = strings.TrimSpace(c.Query("token"))
	}
	if token == "" {
		return "", false
	}

	claims, err := h.tokens.ParseAccessToken(token)
	if err != nil {
		return "", false
	}
	return claims.UserID, true
}
