package crisis

import (
	"context"
	"errors"

	"peer-match/internal/domain"
)

// Alert es el aviso que se envía al equipo de respuesta de crisis.
type Alert struct {
	UserID         string          `json:"userId"`
	SessionID      string          `json:"sessionId,omitempty"`
	MessageExcerpt string          `json:"messageExcerpt"`
	Severity       domain.Severity `json:"severity"`
}

// Notifier define la interfaz para escalar lenguaje de crisis.
type Notifier interface {
	Escalate(ctx context.Context, alert Alert) error
}

type disabledNotifier struct {
	reason string
}

func NewDisabledNotifier(reason string) Notifier {
	return &disabledNotifier{reason: reason}
}

func (n *disabledNotifier) Escalate(_ context.Context, _ Alert) error {
	if n.reason == "" {
		return errors.New("crisis notifier disabled")
	}
	return errors.New(n.reason)
}
