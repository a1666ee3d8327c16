package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// CampaignRepository defines persistence access for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, cp *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByGM(ctx context.Context, gmID string, limit, offset int) ([]domain.Campaign, error)
	Update(ctx context.Context, cp *domain.Campaign) error
	Delete(ctx context.Context, id string) error
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a Postgres-backed implementation.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

const campaignColumns = `id, gm_id, name, description, setting, status, max_players, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var cp domain.Campaign
	if err := row.Scan(
		&cp.ID,
		&cp.GMID,
		&cp.Name,
		&cp.Description,
		&cp.Setting,
		&cp.Status,
		&cp.MaxPlayers,
		&cp.CreatedAt,
		&cp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *campaignRepository) Create(ctx context.Context, cp *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (gm_id, name, description, setting, status, max_players)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		cp.GMID, cp.Name, cp.Description, cp.Setting, cp.Status, cp.MaxPlayers,
	).Scan(&cp.ID, &cp.CreatedAt, &cp.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	const query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	return scanCampaign(r.pool.QueryRow(ctx, query, id))
}

func (r *campaignRepository) ListByGM(ctx context.Context, gmID string, limit, offset int) ([]domain.Campaign, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE gm_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, gmID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		cp, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *cp)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Update(ctx context.Context, cp *domain.Campaign) error {
	const query = `
        UPDATE campaigns SET name=$1, description=$2, setting=$3, status=$4, max_players=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		cp.Name, cp.Description, cp.Setting, cp.Status, cp.MaxPlayers, cp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
