package postgres

import (
	"time"

	"github.com/omarvega/rescuehq/internal/domain/team"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	item := team.Team{
		ID:        m.ID,
		Name:      m.Name,
		Status:    team.StatusActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
	if m.DeletedAt != nil {
		item.Status = team.StatusDeleted
	}

	return item
}
