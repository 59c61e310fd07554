package memory

import (
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
)

const (
	TeamIDAvengers  int64 = 1
	TeamIDDefenders int64 = 2

	CharacterIDIronMan     int64 = 1
	CharacterIDHulk        int64 = 2
	CharacterIDQuicksilver int64 = 3
	CharacterIDDaredevil   int64 = 4
	CharacterIDSpiderMan   int64 = 5
)

var seedTime = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func teamID(id int64) *int64 { return &id }

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDAvengers, Name: "Avengers", Status: team.StatusActive, CreatedAt: seedTime},
		{ID: TeamIDDefenders, Name: "Defenders", Status: team.StatusActive, CreatedAt: seedTime},
	}
}

func SeedCharacters() []character.Character {
	return []character.Character{
		{
			ID:           CharacterIDIronMan,
			Name:         "Iron Man",
			Description:  "Genius engineer in a powered armor suit.",
			URL:          "https://example.com/heroes/iron-man",
			Strength:     7,
			Intelligence: 10,
			Speed:        8,
			Status:       character.StatusActive,
			TeamID:       teamID(TeamIDAvengers),
			CreatedAt:    seedTime,
		},
		{
			ID:           CharacterIDHulk,
			Name:         "Hulk",
			Description:  "The strongest one there is.",
			Strength:     10,
			Intelligence: 4,
			Speed:        5,
			Status:       character.StatusActive,
			TeamID:       teamID(TeamIDAvengers),
			CreatedAt:    seedTime,
		},
		{
			ID:           CharacterIDQuicksilver,
			Name:         "Quicksilver",
			Description:  "Fast. Really fast.",
			Strength:     4,
			Intelligence: 5,
			Speed:        10,
			Status:       character.StatusActive,
			TeamID:       teamID(TeamIDAvengers),
			CreatedAt:    seedTime,
		},
		{
			ID:           CharacterIDDaredevil,
			Name:         "Daredevil",
			Description:  "Blind lawyer guarding Hell's Kitchen.",
			Strength:     5,
			Intelligence: 7,
			Speed:        6,
			Status:       character.StatusActive,
			TeamID:       teamID(TeamIDDefenders),
			CreatedAt:    seedTime,
		},
		{
			ID:           CharacterIDSpiderMan,
			Name:         "Spider-Man",
			Description:  "Friendly neighborhood wall-crawler, not yet recruited.",
			Strength:     6,
			Intelligence: 9,
			Speed:        8,
			Status:       character.StatusActive,
			CreatedAt:    seedTime,
		},
	}
}
