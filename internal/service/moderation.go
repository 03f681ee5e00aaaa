package service

import (
	"strings"
	"unicode/utf8"

	"peer-match/internal/domain"
)

// ContentClassifier decide si un mensaje saliente puede entregarse.
// La implementación por palabras clave es deliberadamente simple; la interfaz
// permite reemplazarla por un clasificador real sin tocar a los callers.
type ContentClassifier interface {
	Classify(message string) domain.ModerationVerdict
}

const maxMessageRunes = 1000

// Razones expuestas al remitente cuando un mensaje se bloquea.
const (
	ReasonCrisisLanguage       = "Crisis language detected"
	ReasonInappropriateContent = "Inappropriate content detected"
	ReasonMessageTooLong       = "Message too long"
)

// CrisisSupportMessage acompaña todo bloqueo de severidad alta.
const CrisisSupportMessage = "You don't have to go through this alone. If you are in crisis, please reach out for immediate support: call or text 988 (Suicide & Crisis Lifeline) or text HOME to 741741."

var crisisPhrases = []string{
	"suicide",
	"kill myself",
	"end it all",
	"hurt myself",
}

var restrictedPhrases = []string{
	"personal info",
	"phone number",
	"address",
	"email",
	"meet up",
	"meet in person",
	"harassment",
	"abuse",
}

// KeywordClassifier bloquea por frases fijas con match de substring,
// sin distinguir mayúsculas.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(message string) domain.ModerationVerdict {
	lowered := strings.ToLower(message)

	for _, phrase := range crisisPhrases {
		if strings.Contains(lowered, phrase) {
			return domain.ModerationVerdict{
				Reason:   ReasonCrisisLanguage,
				Severity: domain.SeverityHigh,
			}
		}
	}

	for _, phrase := range restrictedPhrases {
		if strings.Contains(lowered, phrase) {
			return domain.ModerationVerdict{
				Reason:   ReasonInappropriateContent,
				Severity: domain.SeverityMedium,
			}
		}
	}

	if utf8.RuneCountInString(message) > maxMessageRunes {
		return domain.ModerationVerdict{
			Reason:   ReasonMessageTooLong,
			Severity: domain.SeverityLow,
		}
	}

	return domain.ModerationVerdict{IsAllowed: true}
}
