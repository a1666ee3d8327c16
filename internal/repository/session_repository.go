package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// SessionRepository defines persistence access for game sessions.
type SessionRepository interface {
	Create(ctx context.Context, gs *domain.GameSession) error
	GetByID(ctx context.Context, id string) (*domain.GameSession, error)
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]domain.GameSession, error)
	Update(ctx context.Context, gs *domain.GameSession) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

const sessionColumns = `id, campaign_id, title, scheduled_at, duration_minutes, status, notes, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.GameSession, error) {
	var gs domain.GameSession
	if err := row.Scan(
		&gs.ID,
		&gs.CampaignID,
		&gs.Title,
		&gs.ScheduledAt,
		&gs.DurationMinutes,
		&gs.Status,
		&gs.Notes,
		&gs.CreatedAt,
		&gs.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *sessionRepository) Create(ctx context.Context, gs *domain.GameSession) error {
	const query = `
        INSERT INTO game_sessions (campaign_id, title, scheduled_at, duration_minutes, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		gs.CampaignID, gs.Title, gs.ScheduledAt, gs.DurationMinutes, gs.Status, gs.Notes,
	).Scan(&gs.ID, &gs.CreatedAt, &gs.UpdatedAt)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.GameSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE id=$1`
	return scanSession(r.pool.QueryRow(ctx, query, id))
}

func (r *sessionRepository) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]domain.GameSession, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE campaign_id=$1 ORDER BY scheduled_at LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, campaignID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.GameSession
	for rows.Next() {
		gs, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *gs)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Update(ctx context.Context, gs *domain.GameSession) error {
	const query = `
        UPDATE game_sessions SET title=$1, scheduled_at=$2, duration_minutes=$3, status=$4, notes=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		gs.Title, gs.ScheduledAt, gs.DurationMinutes, gs.Status, gs.Notes, gs.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM game_sessions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
