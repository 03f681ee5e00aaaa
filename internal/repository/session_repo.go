package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peer-match/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.ChatSession) error
	GetByID(ctx context.Context, id string) (domain.ChatSession, error)
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.ChatSession) error {
	const query = `
		INSERT INTO chat_sessions (id, match_id, participants, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.MatchID,
		session.Participants,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.ChatSession, error) {
	const query = `
		SELECT id, match_id, participants, created_at
		FROM chat_sessions
		WHERE id = $1
	`
	var session domain.ChatSession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MatchID,
		&session.Participants,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ChatSession{}, err
	}
	return session, err
}
