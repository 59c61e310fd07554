package postgres

import (
	"database/sql"
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
)

type characterTableModel struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	URL          sql.NullString `db:"url"`
	Strength     int            `db:"strength"`
	Intelligence int            `db:"intelligence"`
	Speed        int            `db:"speed"`
	TeamID       sql.NullInt64  `db:"team_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    *time.Time     `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

func (m characterTableModel) toDomain() character.Character {
	item := character.Character{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description.String,
		URL:          m.URL.String,
		Strength:     m.Strength,
		Intelligence: m.Intelligence,
		Speed:        m.Speed,
		Status:       character.StatusActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    m.DeletedAt,
	}
	if m.DeletedAt != nil {
		item.Status = character.StatusDeleted
	}
	if m.TeamID.Valid {
		teamID := m.TeamID.Int64
		item.TeamID = &teamID
	}

	return item
}
