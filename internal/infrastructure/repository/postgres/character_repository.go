package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/omarvega/rescuehq/internal/domain/character"
)

var characterColumns = []string{
	"id", "name", "description", "url",
	"strength", "intelligence", "speed",
	"team_id", "created_at", "updated_at", "deleted_at",
}

type CharacterRepository struct {
	db *sqlx.DB
}

func NewCharacterRepository(db *sqlx.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) ListActive(ctx context.Context) ([]character.Character, error) {
	query, args, err := sq.Select(characterColumns...).
		From("characters").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select characters query: %w", err)
	}

	var rows []characterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select characters: %w", err)
	}

	out := make([]character.Character, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (character.Character, bool, error) {
	query, args, err := sq.Select(characterColumns...).
		From("characters").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return character.Character{}, false, fmt.Errorf("build select character query: %w", err)
	}

	var row characterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return character.Character{}, false, nil
		}
		return character.Character{}, false, fmt.Errorf("select character by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CharacterRepository) Create(ctx context.Context, c character.Character) (character.Character, error) {
	const query = `
INSERT INTO characters (name, description, url, strength, intelligence, speed, team_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		c.Name,
		nullString(c.Description),
		nullString(c.URL),
		c.Strength,
		c.Intelligence,
		c.Speed,
		nullInt64FromPtr(c.TeamID),
		c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return character.Character{}, fmt.Errorf("insert character: %w", err)
	}

	c.ID = id

	return c, nil
}

func (r *CharacterRepository) Update(ctx context.Context, c character.Character) error {
	query, args, err := sq.Update("characters").
		Set("name", c.Name).
		Set("description", nullString(c.Description)).
		Set("url", nullString(c.URL)).
		Set("strength", c.Strength).
		Set("intelligence", c.Intelligence).
		Set("speed", c.Speed).
		Set("team_id", nullInt64FromPtr(c.TeamID)).
		Set("updated_at", nullTimeFromPtr(c.UpdatedAt)).
		Set("deleted_at", nullTimeFromPtr(c.DeletedAt)).
		Where(sq.Eq{"id": c.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update character query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update character: %w", err)
	}

	return nil
}
