package character

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAlreadyRecruited = errors.New("character already belongs to a team")

// Status tells whether a record is live or soft deleted.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

const (
	NameMaxLength = 50
	AttributeMin  = 0
	AttributeMax  = 10
)

// Character is a hero registered in the roster. TeamID is nil while the
// character is unassigned.
type Character struct {
	ID           int64
	Name         string
	Description  string
	URL          string
	Strength     int
	Intelligence int
	Speed        int
	Status       Status
	TeamID       *int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

func (c Character) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("character name is required")
	}
	if len(c.Name) > NameMaxLength {
		return fmt.Errorf("character name must be at most %d characters", NameMaxLength)
	}
	for _, attr := range []struct {
		name  string
		value int
	}{
		{"strength", c.Strength},
		{"intelligence", c.Intelligence},
		{"speed", c.Speed},
	} {
		if attr.value < AttributeMin || attr.value > AttributeMax {
			return fmt.Errorf("character %s must be between %d and %d", attr.name, AttributeMin, AttributeMax)
		}
	}

	return nil
}

func (c Character) Deleted() bool {
	return c.Status == StatusDeleted
}

func (c Character) HasTeam() bool {
	return c.TeamID != nil
}
