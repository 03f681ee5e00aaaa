package domain

import "time"

// MatchStatus es el estado de una solicitud de match.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"
)

// MatchCandidate es un candidato ya evaluado, listo para mostrar.
type MatchCandidate struct {
	UserID             string             `json:"userId"`
	DisplayName        string             `json:"displayName"`
	Age                int                `json:"age"`
	Compatibility      int                `json:"compatibility"`
	SharedChallenges   []string           `json:"sharedChallenges"`
	ComplementaryGoals []string           `json:"complementaryGoals"`
	ExperienceLevel    ExperienceLevel    `json:"experienceLevel"`
	CommunicationStyle CommunicationStyle `json:"communicationStyle"`
	Timezone           string             `json:"timezone"`
	LastActive         time.Time          `json:"lastActive"`
	SafetyScore        int                `json:"safetyScore"`
	IsVerified         bool               `json:"isVerified"`
	Bio                string             `json:"bio"`
}

// MatchRecord registra una solicitud de match entre dos usuarios.
type MatchRecord struct {
	ID            string      `json:"id"`
	RequesterID   string      `json:"requesterId"`
	CandidateID   string      `json:"candidateId"`
	Compatibility int         `json:"compatibility"`
	Status        MatchStatus `json:"status"`
	ChatSessionID string      `json:"chatSessionId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Involves indica si el usuario participa en este match.
func (m MatchRecord) Involves(userID string) bool {
	return m.RequesterID == userID || m.CandidateID == userID
}
