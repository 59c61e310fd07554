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

// CreateTeamInput is the incoming payload for founding a rescue team. The
// leader becomes the team's first member.
type CreateTeamInput struct {
	Name     string
	LeaderID int64
}

type TeamService struct {
	teamRepo      team.Repository
	characterRepo character.Repository
	logger        *slog.Logger
	now           func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	characterRepo character.Repository,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		teamRepo:      teamRepo,
		characterRepo: characterRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// ListTeamStatistics returns the aggregated view of every active team,
// empty teams included.
func (s *TeamService) ListTeamStatistics(ctx context.Context) ([]team.Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeamStatistics")
	defer span.End()

	teams, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	items := make([]team.Statistics, 0, len(teams))
	for _, t := range teams {
		items = append(items, team.ComputeStatistics(t))
	}

	return items, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return s.getTeam(ctx, id)
}

// CreateTeam validates the leader before the name: a missing leader is
// reported even when the name is also taken.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(input.Name) > team.NameMaxLength {
		return team.Team{}, fmt.Errorf("%w: team name must be at most %d characters", ErrInvalidInput, team.NameMaxLength)
	}
	if input.LeaderID <= 0 {
		return team.Team{}, fmt.Errorf("%w: leader character id is required", ErrInvalidInput)
	}

	leader, exists, err := s.characterRepo.GetByID(ctx, input.LeaderID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get leader by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: character=%d", ErrNotFound, input.LeaderID)
	}
	if leader.HasTeam() {
		return team.Team{}, fmt.Errorf("%w: %w: character=%d", ErrConflict, character.ErrAlreadyRecruited, input.LeaderID)
	}

	_, taken, err := s.teamRepo.GetByName(ctx, input.Name)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by name: %w", err)
	}
	if taken {
		return team.Team{}, fmt.Errorf("%w: %w: name=%s", ErrConflict, team.ErrNameTaken, input.Name)
	}

	now := s.now().UTC()
	created, err := s.teamRepo.Create(ctx, team.Team{
		Name:      input.Name,
		Status:    team.StatusActive,
		CreatedAt: now,
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	leader.TeamID = &created.ID
	leader.UpdatedAt = &now
	if err := s.characterRepo.Update(ctx, leader); err != nil {
		return team.Team{}, fmt.Errorf("recruit team leader: %w", err)
	}

	created.Members = []character.Character{leader}

	s.logger.InfoContext(ctx, "team created",
		slog.Int64("team_id", created.ID),
		slog.String("name", created.Name),
		slog.Int64("leader_id", leader.ID),
	)

	return created, nil
}

// RenameTeam updates a team's name in place. Uniqueness is only checked at
// creation time.
func (s *TeamService) RenameTeam(ctx context.Context, id int64, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RenameTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(name) > team.NameMaxLength {
		return team.Team{}, fmt.Errorf("%w: team name must be at most %d characters", ErrInvalidInput, team.NameMaxLength)
	}

	item, err := s.getTeam(ctx, id)
	if err != nil {
		return team.Team{}, err
	}

	now := s.now().UTC()
	item.Name = name
	item.UpdatedAt = &now

	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("rename team: %w", err)
	}

	return item, nil
}

// DeleteTeam releases every member back to the unassigned pool, then soft
// deletes the team. Member releases are applied one by one, so a storage
// failure midway leaves some members already released.
func (s *TeamService) DeleteTeam(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	item, err := s.getTeam(ctx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	for _, member := range item.Members {
		member.TeamID = nil
		member.UpdatedAt = &now
		if err := s.characterRepo.Update(ctx, member); err != nil {
			return fmt.Errorf("release team member %d: %w", member.ID, err)
		}
	}

	item.Status = team.StatusDeleted
	item.DeletedAt = &now
	item.UpdatedAt = &now
	item.Members = nil

	if err := s.teamRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", slog.Int64("team_id", id))

	return nil
}

func (s *TeamService) getTeam(ctx context.Context, id int64) (team.Team, error) {
	if id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, id)
	}

	return item, nil
}
