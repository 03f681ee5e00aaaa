package domain

// Severity gradúa un bloqueo de moderación.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ModerationVerdict es el resultado de clasificar un mensaje saliente.
// Es un valor por mensaje; nunca se persiste.
type ModerationVerdict struct {
	IsAllowed bool     `json:"isAllowed"`
	Reason    string   `json:"reason,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
}
