package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peer-match/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de chat.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// SendMessage maneja POST /api/chat/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
		SenderID  string `json:"senderId" binding:"required"`
		Content   string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "sessionId, senderId and content are required")
		return
	}

	message, verdict, err := h.chatServ.SendMessage(c.Request.Context(), service.SendMessageInput{
		SessionID: req.SessionID,
		SenderID:  req.SenderID,
		Content:   req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatInvalidInput):
			respondError(c, http.StatusBadRequest, "sessionId, senderId and content are required")
		case errors.Is(err, service.ErrSessionNotFound):
			respondError(c, http.StatusNotFound, "Chat session not found")
		case errors.Is(err, service.ErrNotParticipant):
			respondError(c, http.StatusForbidden, "Sender is not part of this session")
		default:
			h.logger.Error("send message failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	if !verdict.IsAllowed {
		respondModerationBlock(c, verdict)
		return
	}

	respondSuccess(c, http.StatusOK, message, "Message sent")
}

// ListMessages maneja GET /api/chat/sessions/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	sessionID := c.Param("id")

	messages, err := h.chatServ.ListMessages(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatInvalidInput):
			respondError(c, http.StatusBadRequest, "session id is required")
		case errors.Is(err, service.ErrSessionNotFound):
			respondError(c, http.StatusNotFound, "Chat session not found")
		default:
			h.logger.Error("list messages failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to list messages")
		}
		return
	}

	respondSuccess(c, http.StatusOK, messages, "Messages retrieved")
}
