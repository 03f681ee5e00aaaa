package domain

import "time"

// ChatSession es la conversación creada al aceptar un match.
type ChatSession struct {
	ID           string    `json:"id"`
	MatchID      string    `json:"matchId"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasParticipant indica si el usuario pertenece a la sesión.
func (s ChatSession) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ChatMessage es un mensaje ya aprobado por moderación.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SafetyReport es una denuncia de un usuario sobre otro.
type SafetyReport struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	ReportedID string    `json:"reportedId"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
