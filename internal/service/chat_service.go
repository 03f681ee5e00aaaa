package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"peer-match/internal/crisis"
	"peer-match/internal/domain"
	"peer-match/internal/repository"
)

const (
	escalationTimeout   = 5 * time.Second
	excerptMaxRunes     = 140
	sessionParticipants = 2
)

var (
	ErrChatServiceNotConfigured = errors.New("chat service not configured")
	ErrChatInvalidInput         = errors.New("chat invalid input")
	ErrSessionNotFound          = errors.New("chat session not found")
	ErrNotParticipant           = errors.New("user is not a session participant")
)

// MessagePublisher difunde mensajes ya entregados hacia los clientes
// conectados. La publicación es best-effort.
type MessagePublisher interface {
	Publish(ctx context.Context, sessionID string, payload []byte) error
}

// ChatService releva mensajes entre pares detrás del gate de moderación.
type ChatService struct {
	logger     *zap.Logger
	sessions   repository.SessionRepository
	messages   repository.MessageRepository
	classifier ContentClassifier
	crisis     crisis.Notifier
	publisher  MessagePublisher
}

func NewChatService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	classifier ContentClassifier,
	notifier crisis.Notifier,
	publisher MessagePublisher,
) *ChatService {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	return &ChatService{
		logger:     logger,
		sessions:   sessions,
		messages:   messages,
		classifier: classifier,
		crisis:     notifier,
		publisher:  publisher,
	}
}

// CreateSession abre una conversación entre los participantes de un match.
func (s *ChatService) CreateSession(ctx context.Context, matchID string, participants []string) (domain.ChatSession, error) {
	if s == nil || s.sessions == nil {
		return domain.ChatSession{}, ErrChatServiceNotConfigured
	}

	matchID = strings.TrimSpace(matchID)
	if matchID == "" || len(participants) != sessionParticipants {
		return domain.ChatSession{}, ErrChatInvalidInput
	}
	cleaned := make([]string, 0, len(participants))
	for _, p := range participants {
		p = strings.TrimSpace(p)
		if p == "" {
			return domain.ChatSession{}, ErrChatInvalidInput
		}
		cleaned = append(cleaned, p)
	}

	session := domain.ChatSession{
		ID:           uuid.NewString(),
		MatchID:      matchID,
		Participants: cleaned,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.ChatSession{}, err
	}
	return session, nil
}

// SendMessageInput es el mensaje saliente de un participante.
type SendMessageInput struct {
	SessionID string
	SenderID  string
	Content   string
}

// SendMessage valida la sesión, pasa el mensaje por moderación y, si se
// permite, lo persiste y lo difunde. Un bloqueo NO es un error: es un
// veredicto que el caller debe ramificar.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (domain.ChatMessage, domain.ModerationVerdict, error) {
	if s == nil || s.sessions == nil || s.messages == nil {
		return domain.ChatMessage{}, domain.ModerationVerdict{}, ErrChatServiceNotConfigured
	}

	sessionID := strings.TrimSpace(input.SessionID)
	senderID := strings.TrimSpace(input.SenderID)
	content := strings.TrimSpace(input.Content)
	if sessionID == "" || senderID == "" || content == "" {
		return domain.ChatMessage{}, domain.ModerationVerdict{}, ErrChatInvalidInput
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChatMessage{}, domain.ModerationVerdict{}, ErrSessionNotFound
		}
		return domain.ChatMessage{}, domain.ModerationVerdict{}, err
	}
	if !session.HasParticipant(senderID) {
		return domain.ChatMessage{}, domain.ModerationVerdict{}, ErrNotParticipant
	}

	verdict := s.classifier.Classify(content)
	if !verdict.IsAllowed {
		if verdict.Severity == domain.SeverityHigh {
			s.escalateCrisis(senderID, sessionID, content)
		}
		return domain.ChatMessage{}, verdict, nil
	}

	message := domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return domain.ChatMessage{}, domain.ModerationVerdict{}, err
	}

	s.broadcast(ctx, message)
	return message, verdict, nil
}

// ListMessages devuelve el historial de una sesión existente.
func (s *ChatService) ListMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if s == nil || s.sessions == nil || s.messages == nil {
		return nil, ErrChatServiceNotConfigured
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrChatInvalidInput
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.messages.ListBySessionID(ctx, sessionID)
}

// escalateCrisis avisa al equipo de crisis en background. El resultado no
// altera el veredicto: una caída del webhook nunca bloquea al remitente.
func (s *ChatService) escalateCrisis(senderID, sessionID, content string) {
	if s.crisis == nil {
		return
	}
	alert := crisis.Alert{
		UserID:         senderID,
		SessionID:      sessionID,
		MessageExcerpt: truncateRunes(content, excerptMaxRunes),
		Severity:       domain.SeverityHigh,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), escalationTimeout)
		defer cancel()
		if err := s.crisis.Escalate(ctx, alert); err != nil && s.logger != nil {
			s.logger.Warn("crisis escalation failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}()
}

func (s *ChatService) broadcast(ctx context.Context, message domain.ChatMessage) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, message.SessionID, payload); err != nil && s.logger != nil {
		s.logger.Warn("message broadcast failed",
			zap.String("session_id", message.SessionID),
			zap.Error(err),
		)
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
