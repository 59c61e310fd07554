package team

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
)

var ErrNameTaken = errors.New("team name already in use")

// NameMaxLength bounds the team name column.
const NameMaxLength = 50

// Status tells whether a record is live or soft deleted.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Team is a rescue team together with its currently assigned members.
type Team struct {
	ID        int64
	Name      string
	Status    Status
	Members   []character.Character
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Name) > NameMaxLength {
		return fmt.Errorf("team name must be at most %d characters", NameMaxLength)
	}

	return nil
}

func (t Team) Deleted() bool {
	return t.Status == StatusDeleted
}
