package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
)

// CharacterInput is the incoming payload for create/edit character.
type CharacterInput struct {
	Name         string
	Description  string
	URL          string
	Strength     int
	Intelligence int
	Speed        int
}

// TeamRef is the lightweight team summary attached to character reads.
type TeamRef struct {
	ID   int64
	Name string
}

type CharacterDetails struct {
	Character character.Character
	Team      *TeamRef
}

type CharacterService struct {
	characterRepo character.Repository
	teamRepo      team.Repository
	logger        *slog.Logger
	now           func() time.Time
}

func NewCharacterService(
	characterRepo character.Repository,
	teamRepo team.Repository,
	logger *slog.Logger,
) *CharacterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CharacterService{
		characterRepo: characterRepo,
		teamRepo:      teamRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *CharacterService) ListCharacters(ctx context.Context) ([]CharacterDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.ListCharacters")
	defer span.End()

	characters, err := s.characterRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}

	teamNames, err := s.teamNamesByID(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]CharacterDetails, 0, len(characters))
	for _, c := range characters {
		items = append(items, withTeamRef(c, teamNames))
	}

	return items, nil
}

func (s *CharacterService) GetCharacter(ctx context.Context, id int64) (CharacterDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.GetCharacter")
	defer span.End()

	item, err := s.getCharacter(ctx, id)
	if err != nil {
		return CharacterDetails{}, err
	}

	details := CharacterDetails{Character: item}
	if item.TeamID == nil {
		return details, nil
	}

	owner, exists, err := s.teamRepo.GetByID(ctx, *item.TeamID)
	if err != nil {
		return CharacterDetails{}, fmt.Errorf("get character team: %w", err)
	}
	if exists {
		details.Team = &TeamRef{ID: owner.ID, Name: owner.Name}
	}

	return details, nil
}

func (s *CharacterService) CreateCharacter(ctx context.Context, input CharacterInput) (character.Character, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.CreateCharacter")
	defer span.End()

	item := character.Character{
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		URL:          strings.TrimSpace(input.URL),
		Strength:     input.Strength,
		Intelligence: input.Intelligence,
		Speed:        input.Speed,
		Status:       character.StatusActive,
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return character.Character{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.characterRepo.Create(ctx, item)
	if err != nil {
		return character.Character{}, fmt.Errorf("create character: %w", err)
	}

	s.logger.InfoContext(ctx, "character created",
		slog.Int64("character_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}

func (s *CharacterService) EditCharacter(ctx context.Context, id int64, input CharacterInput) (character.Character, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.EditCharacter")
	defer span.End()

	item, err := s.getCharacter(ctx, id)
	if err != nil {
		return character.Character{}, err
	}

	now := s.now().UTC()
	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.URL = strings.TrimSpace(input.URL)
	item.Strength = input.Strength
	item.Intelligence = input.Intelligence
	item.Speed = input.Speed
	item.UpdatedAt = &now

	if err := item.Validate(); err != nil {
		return character.Character{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.characterRepo.Update(ctx, item); err != nil {
		return character.Character{}, fmt.Errorf("update character: %w", err)
	}

	return item, nil
}

func (s *CharacterService) DeleteCharacter(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.DeleteCharacter")
	defer span.End()

	item, err := s.getCharacter(ctx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	item.Status = character.StatusDeleted
	item.DeletedAt = &now
	item.UpdatedAt = &now
	item.TeamID = nil

	if err := s.characterRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}

	s.logger.InfoContext(ctx, "character deleted", slog.Int64("character_id", id))

	return nil
}

// AssignToTeam recruits an unassigned character into an existing team. A
// character already on a team must leave it first, so repeated assignment
// is rejected even for the same team.
func (s *CharacterService) AssignToTeam(ctx context.Context, characterID, teamID int64) (CharacterDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CharacterService.AssignToTeam")
	defer span.End()

	item, err := s.getCharacter(ctx, characterID)
	if err != nil {
		return CharacterDetails{}, err
	}

	destination, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return CharacterDetails{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return CharacterDetails{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	if item.HasTeam() {
		return CharacterDetails{}, fmt.Errorf("%w: %w: character=%d", ErrConflict, character.ErrAlreadyRecruited, characterID)
	}

	now := s.now().UTC()
	item.TeamID = &destination.ID
	item.UpdatedAt = &now

	if err := s.characterRepo.Update(ctx, item); err != nil {
		return CharacterDetails{}, fmt.Errorf("assign character to team: %w", err)
	}

	s.logger.InfoContext(ctx, "character recruited",
		slog.Int64("character_id", characterID),
		slog.Int64("team_id", teamID),
	)

	return CharacterDetails{
		Character: item,
		Team:      &TeamRef{ID: destination.ID, Name: destination.Name},
	}, nil
}

func (s *CharacterService) getCharacter(ctx context.Context, id int64) (character.Character, error) {
	if id <= 0 {
		return character.Character{}, fmt.Errorf("%w: character id is required", ErrInvalidInput)
	}

	item, exists, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		return character.Character{}, fmt.Errorf("get character by id: %w", err)
	}
	if !exists {
		return character.Character{}, fmt.Errorf("%w: character=%d", ErrNotFound, id)
	}

	return item, nil
}

func (s *CharacterService) teamNamesByID(ctx context.Context) (map[int64]string, error) {
	teams, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	return names, nil
}

func withTeamRef(c character.Character, teamNames map[int64]string) CharacterDetails {
	details := CharacterDetails{Character: c}
	if c.TeamID != nil {
		if name, ok := teamNames[*c.TeamID]; ok {
			details.Team = &TeamRef{ID: *c.TeamID, Name: name}
		}
	}

	return details
}
