package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peer-match/internal/domain"
	"peer-match/internal/repository"
)

var (
	ErrReportServiceNotConfigured = errors.New("report service not configured")
	ErrReportInvalidInput         = errors.New("report invalid input")
)

// SafetyService registra denuncias de usuarios sobre sus pares.
type SafetyService struct {
	logger  *zap.Logger
	reports repository.ReportRepository
}

func NewSafetyService(logger *zap.Logger, reports repository.ReportRepository) *SafetyService {
	return &SafetyService{logger: logger, reports: reports}
}

type ReportInput struct {
	ReporterID string
	ReportedID string
	Reason     string
	Details    string
}

// Report valida y persiste una denuncia. Denunciante y denunciado son
// obligatorios; auto-denuncias se rechazan.
func (s *SafetyService) Report(ctx context.Context, input ReportInput) (domain.SafetyReport, error) {
	if s == nil || s.reports == nil {
		return domain.SafetyReport{}, ErrReportServiceNotConfigured
	}

	reporterID := strings.TrimSpace(input.ReporterID)
	reportedID := strings.TrimSpace(input.ReportedID)
	reason := strings.TrimSpace(input.Reason)
	if reporterID == "" || reportedID == "" || reason == "" {
		return domain.SafetyReport{}, ErrReportInvalidInput
	}
	if reporterID == reportedID {
		return domain.SafetyReport{}, ErrReportInvalidInput
	}

	report := domain.SafetyReport{
		ID:         uuid.NewString(),
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     reason,
		Details:    strings.TrimSpace(input.Details),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return domain.SafetyReport{}, err
	}
	return report, nil
}
