package domain

import "time"

// ExperienceLevel indica cuánto camino lleva el usuario en su proceso.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExperienced  ExperienceLevel = "experienced"
)

// Rank devuelve la posición ordinal del nivel (1-3), o 0 si no es conocido.
func (e ExperienceLevel) Rank() int {
	switch e {
	case ExperienceBeginner:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceExperienced:
		return 3
	default:
		return 0
	}
}

// CommunicationStyle describe el tono preferido de acompañamiento.
type CommunicationStyle string

const (
	StyleGentle     CommunicationStyle = "gentle"
	StyleSupportive CommunicationStyle = "supportive"
	StyleDirect     CommunicationStyle = "direct"
)

// UserProfile es el perfil que entrega el directorio externo por request.
// Este servicio nunca lo persiste.
type UserProfile struct {
	ID                 string             `json:"id"`
	DisplayName        string             `json:"displayName"`
	Age                int                `json:"age"`
	Challenges         []string           `json:"challenges"`
	Goals              []string           `json:"goals"`
	ExperienceLevel    ExperienceLevel    `json:"experienceLevel"`
	CommunicationStyle CommunicationStyle `json:"communicationStyle"`
	Timezone           string             `json:"timezone"`
	LastActive         time.Time          `json:"lastActive"`
	SafetyScore        *int               `json:"safetyScore,omitempty"`
	IsVerified         *bool              `json:"isVerified,omitempty"`
	Bio                string             `json:"bio,omitempty"`
}

// MatchingPreferences acompaña la consulta de candidatos al directorio.
// Son contexto para el pre-filtrado remoto; el scorer no las consume.
type MatchingPreferences struct {
	Challenges         []string           `json:"challenges"`
	Goals              []string           `json:"goals"`
	ExperienceLevel    ExperienceLevel    `json:"experienceLevel,omitempty"`
	AgeRange           [2]int             `json:"ageRange"`
	Timezone           string             `json:"timezone,omitempty"`
	CommunicationStyle CommunicationStyle `json:"communicationStyle,omitempty"`
	CheckInFrequency   string             `json:"checkInFrequency,omitempty"`
	AllowVideoCalls    bool               `json:"allowVideoCalls"`
}
