package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"peer-match/internal/directory"
	"peer-match/internal/domain"
	"peer-match/internal/repository"
)

const (
	candidatePoolLimit = 10
	minCompatibility   = 60
	maxMatchResults    = 5

	// Defaults de compatibilidad de wire cuando el directorio no trae
	// estos campos. Ver DESIGN.md antes de cambiarlos.
	defaultSafetyScore = 95
	defaultIsVerified  = true
)

var (
	ErrMatchServiceNotConfigured = errors.New("match service not configured")
	ErrMatchInvalidInput         = errors.New("match invalid input")
	ErrProfileNotFound           = errors.New("profile not found")
	ErrMatchNotFound             = errors.New("match not found")
	ErrMatchNotParticipant       = errors.New("user is not a match participant")
	ErrMatchAlreadyResolved      = errors.New("match already resolved")
)

// ChatSessionCreator abre la conversación al aceptar un match.
type ChatSessionCreator interface {
	CreateSession(ctx context.Context, matchID string, participants []string) (domain.ChatSession, error)
}

// MatchService coordina el descubrimiento y ciclo de vida de matches.
type MatchService struct {
	logger    *zap.Logger
	directory directory.Directory
	matches   repository.MatchRepository
	chats     ChatSessionCreator
}

func NewMatchService(logger *zap.Logger, dir directory.Directory, matches repository.MatchRepository, chats ChatSessionCreator) *MatchService {
	return &MatchService{
		logger:    logger,
		directory: dir,
		matches:   matches,
		chats:     chats,
	}
}

// FindMatches pide candidatos al directorio, los evalúa contra el perfil del
// solicitante y devuelve los mejores, ya filtrados y ordenados.
func (s *MatchService) FindMatches(ctx context.Context, userID string, prefs domain.MatchingPreferences) ([]domain.MatchCandidate, error) {
	if s == nil || s.directory == nil {
		return nil, ErrMatchServiceNotConfigured
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMatchInvalidInput
	}

	set, err := s.directory.FindCandidates(ctx, userID, prefs, candidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if set.Requester == nil {
		return nil, ErrProfileNotFound
	}
	requester := *set.Requester

	results := make([]domain.MatchCandidate, 0, len(set.Candidates))
	for _, profile := range set.Candidates {
		scored := CompatibilityScore(requester, profile)
		if scored.Score < minCompatibility {
			continue
		}
		results = append(results, buildCandidate(profile, scored))
	}

	// Orden estable: empates conservan el orden que entregó el directorio.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Compatibility > results[j].Compatibility
	})
	if len(results) > maxMatchResults {
		results = results[:maxMatchResults]
	}

	return results, nil
}

func buildCandidate(profile domain.UserProfile, scored CompatibilityResult) domain.MatchCandidate {
	candidate := domain.MatchCandidate{
		UserID:             profile.ID,
		DisplayName:        profile.DisplayName,
		Age:                profile.Age,
		Compatibility:      scored.Score,
		SharedChallenges:   scored.SharedChallenges,
		ComplementaryGoals: scored.ComplementaryGoals,
		ExperienceLevel:    profile.ExperienceLevel,
		CommunicationStyle: profile.CommunicationStyle,
		Timezone:           profile.Timezone,
		LastActive:         profile.LastActive,
		SafetyScore:        defaultSafetyScore,
		IsVerified:         defaultIsVerified,
		Bio:                profile.Bio,
	}
	if profile.SafetyScore != nil {
		candidate.SafetyScore = *profile.SafetyScore
	}
	if profile.IsVerified != nil {
		candidate.IsVerified = *profile.IsVerified
	}
	if strings.TrimSpace(candidate.Bio) == "" {
		candidate.Bio = fmt.Sprintf("Working through %d shared challenges and looking for mutual support.", len(scored.SharedChallenges))
	}
	return candidate
}

// RequestMatch registra la intención de conectar con un candidato.
func (s *MatchService) RequestMatch(ctx context.Context, requesterID, candidateID string, compatibility int) (domain.MatchRecord, error) {
	if s == nil || s.matches == nil {
		return domain.MatchRecord{}, ErrMatchServiceNotConfigured
	}

	requesterID = strings.TrimSpace(requesterID)
	candidateID = strings.TrimSpace(candidateID)
	if requesterID == "" || candidateID == "" || requesterID == candidateID {
		return domain.MatchRecord{}, ErrMatchInvalidInput
	}
	if compatibility < 0 || compatibility > 100 {
		return domain.MatchRecord{}, ErrMatchInvalidInput
	}

	now := time.Now().UTC()
	match := domain.MatchRecord{
		ID:            uuid.NewString(),
		RequesterID:   requesterID,
		CandidateID:   candidateID,
		Compatibility: compatibility,
		Status:        domain.MatchStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.matches.Create(ctx, match); err != nil {
		return domain.MatchRecord{}, err
	}
	return match, nil
}

// AcceptMatch marca el match como aceptado y abre la sesión de chat.
func (s *MatchService) AcceptMatch(ctx context.Context, matchID, userID string) (domain.MatchRecord, error) {
	match, err := s.resolveMatch(ctx, matchID, userID)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	if s.chats == nil {
		return domain.MatchRecord{}, ErrMatchServiceNotConfigured
	}
	session, err := s.chats.CreateSession(ctx, match.ID, []string{match.RequesterID, match.CandidateID})
	if err != nil {
		return domain.MatchRecord{}, fmt.Errorf("create chat session: %w", err)
	}

	if err := s.matches.UpdateStatus(ctx, match.ID, domain.MatchStatusAccepted, session.ID); err != nil {
		return domain.MatchRecord{}, err
	}

	match.Status = domain.MatchStatusAccepted
	match.ChatSessionID = session.ID
	match.UpdatedAt = time.Now().UTC()
	return match, nil
}

// DeclineMatch marca el match como rechazado.
func (s *MatchService) DeclineMatch(ctx context.Context, matchID, userID string) (domain.MatchRecord, error) {
	match, err := s.resolveMatch(ctx, matchID, userID)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	if err := s.matches.UpdateStatus(ctx, match.ID, domain.MatchStatusDeclined, ""); err != nil {
		return domain.MatchRecord{}, err
	}

	match.Status = domain.MatchStatusDeclined
	match.UpdatedAt = time.Now().UTC()
	return match, nil
}

func (s *MatchService) resolveMatch(ctx context.Context, matchID, userID string) (domain.MatchRecord, error) {
	if s == nil || s.matches == nil {
		return domain.MatchRecord{}, ErrMatchServiceNotConfigured
	}

	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if matchID == "" || userID == "" {
		return domain.MatchRecord{}, ErrMatchInvalidInput
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MatchRecord{}, ErrMatchNotFound
		}
		return domain.MatchRecord{}, err
	}
	if !match.Involves(userID) {
		return domain.MatchRecord{}, ErrMatchNotParticipant
	}
	if match.Status != domain.MatchStatusPending {
		return domain.MatchRecord{}, ErrMatchAlreadyResolved
	}
	return match, nil
}
