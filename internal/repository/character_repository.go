package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// CharacterFilter narrows character listings.
type CharacterFilter struct {
	Class  *string
	Race   *string
	Search *string
	Limit  int
	Offset int
}

// CharacterRepository defines persistence access for character sheets.
type CharacterRepository interface {
	Create(ctx context.Context, ch *domain.Character) error
	GetByID(ctx context.Context, id string) (*domain.Character, error)
	ListByOwner(ctx context.Context, userID string, filter CharacterFilter) ([]domain.Character, int, error)
	Update(ctx context.Context, ch *domain.Character) error
	Delete(ctx context.Context, id string) error
}

type characterRepository struct {
	pool *pgxpool.Pool
}

// NewCharacterRepository returns a Postgres-backed implementation.
func NewCharacterRepository(pool *pgxpool.Pool) CharacterRepository {
	return &characterRepository{pool: pool}
}

const characterColumns = `id, user_id, name, race, class, level, background, alignment,
    ability_scores, hit_points, armor_class, experience_points,
    skills, equipment, spells, notes, avatar_url, created_at, updated_at`

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var ch domain.Character
	var scores []byte
	if err := row.Scan(
		&ch.ID,
		&ch.UserID,
		&ch.Name,
		&ch.Race,
		&ch.Class,
		&ch.Level,
		&ch.Background,
		&ch.Alignment,
		&scores,
		&ch.HitPoints,
		&ch.ArmorClass,
		&ch.ExperiencePoints,
		&ch.Skills,
		&ch.Equipment,
		&ch.Spells,
		&ch.Notes,
		&ch.AvatarURL,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scores, &ch.AbilityScores); err != nil {
		return nil, fmt.Errorf("decode ability scores: %w", err)
	}
	return &ch, nil
}

func (r *characterRepository) Create(ctx context.Context, ch *domain.Character) error {
	scores, err := json.Marshal(ch.AbilityScores)
	if err != nil {
		return fmt.Errorf("encode ability scores: %w", err)
	}

	const query = `
        INSERT INTO characters (user_id, name, race, class, level, background, alignment,
            ability_scores, hit_points, armor_class, experience_points,
            skills, equipment, spells, notes, avatar_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ch.UserID, ch.Name, ch.Race, ch.Class, ch.Level, ch.Background, ch.Alignment,
		scores, ch.HitPoints, ch.ArmorClass, ch.ExperiencePoints,
		ch.Skills, ch.Equipment, ch.Spells, ch.Notes, ch.AvatarURL,
	).Scan(&ch.ID, &ch.CreatedAt, &ch.UpdatedAt)
}

func (r *characterRepository) GetByID(ctx context.Context, id string) (*domain.Character, error) {
	const query = `SELECT ` + characterColumns + ` FROM characters WHERE id=$1`
	return scanCharacter(r.pool.QueryRow(ctx, query, id))
}

func (r *characterRepository) ListByOwner(ctx context.Context, userID string, filter CharacterFilter) ([]domain.Character, int, error) {
	where := `WHERE user_id=$1`
	args := []any{userID}

	if filter.Class != nil {
		args = append(args, *filter.Class)
		where += fmt.Sprintf(" AND class=$%d", len(args))
	}
	if filter.Race != nil {
		args = append(args, *filter.Race)
		where += fmt.Sprintf(" AND race=$%d", len(args))
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM characters `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM characters %s ORDER BY name LIMIT $%d OFFSET $%d`,
		characterColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, 0, err
		}
		characters = append(characters, *ch)
	}
	return characters, total, rows.Err()
}

func (r *characterRepository) Update(ctx context.Context, ch *domain.Character) error {
	scores, err := json.Marshal(ch.AbilityScores)
	if err != nil {
		return fmt.Errorf("encode ability scores: %w", err)
	}

	const query = `
        UPDATE characters SET name=$1, level=$2, ability_scores=$3, hit_points=$4,
            armor_class=$5, experience_points=$6, skills=$7, equipment=$8, spells=$9,
            notes=$10, avatar_url=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		ch.Name, ch.Level, scores, ch.HitPoints,
		ch.ArmorClass, ch.ExperiencePoints, ch.Skills, ch.Equipment, ch.Spells,
		ch.Notes, ch.AvatarURL, ch.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *characterRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM characters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
