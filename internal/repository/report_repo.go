package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"peer-match/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report domain.SafetyReport) error
}

type PgReportRepository struct {
	pool *pgxpool.Pool
}

func NewPgReportRepository(pool *pgxpool.Pool) *PgReportRepository {
	return &PgReportRepository{pool: pool}
}

func (r *PgReportRepository) Create(ctx context.Context, report domain.SafetyReport) error {
	const query = `
		INSERT INTO safety_reports (id, reporter_id, reported_id, reason, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.ReporterID,
		report.ReportedID,
		report.Reason,
		report.Details,
		report.CreatedAt,
	)
	return err
}
