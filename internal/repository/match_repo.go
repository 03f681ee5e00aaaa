package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peer-match/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match domain.MatchRecord) error
	GetByID(ctx context.Context, id string) (domain.MatchRecord, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.MatchRecord, error)
	UpdateStatus(ctx context.Context, id string, status domain.MatchStatus, chatSessionID string) error
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

func (r *PgMatchRepository) Create(ctx context.Context, match domain.MatchRecord) error {
	const query = `
		INSERT INTO matches (id, requester_id, candidate_id, compatibility, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		match.ID,
		match.RequesterID,
		match.CandidateID,
		match.Compatibility,
		match.Status,
		match.CreatedAt,
		match.UpdatedAt,
	)
	return err
}

func (r *PgMatchRepository) GetByID(ctx context.Context, id string) (domain.MatchRecord, error) {
	const query = `
		SELECT id, requester_id, candidate_id, compatibility, status, COALESCE(chat_session_id, ''), created_at, updated_at
		FROM matches
		WHERE id = $1
	`
	var match domain.MatchRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.RequesterID,
		&match.CandidateID,
		&match.Compatibility,
		&match.Status,
		&match.ChatSessionID,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MatchRecord{}, err
	}
	return match, err
}

func (r *PgMatchRepository) ListByUserID(ctx context.Context, userID string) ([]domain.MatchRecord, error) {
	const query = `
		SELECT id, requester_id, candidate_id, compatibility, status, COALESCE(chat_session_id, ''), created_at, updated_at
		FROM matches
		WHERE requester_id = $1 OR candidate_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.MatchRecord
	for rows.Next() {
		var match domain.MatchRecord
		if err := rows.Scan(
			&match.ID,
			&match.RequesterID,
			&match.CandidateID,
			&match.Compatibility,
			&match.Status,
			&match.ChatSessionID,
			&match.CreatedAt,
			&match.UpdatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *PgMatchRepository) UpdateStatus(ctx context.Context, id string, status domain.MatchStatus, chatSessionID string) error {
	const query = `
		UPDATE matches
		SET status = $2, chat_session_id = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, status, chatSessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
