package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
	"github.com/omarvega/rescuehq/internal/infrastructure/repository/memory"
)

func newTeamService() (*TeamService, *memory.CharacterRepository, *memory.TeamRepository) {
	characterRepo := memory.NewCharacterRepository(memory.SeedCharacters())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams(), characterRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewTeamService(teamRepo, characterRepo, logger), characterRepo, teamRepo
}

func TestTeamService_ListTeamStatistics(t *testing.T) {
	service, _, _ := newTeamService()

	stats, err := service.ListTeamStatistics(t.Context())
	if err != nil {
		t.Fatalf("list team statistics failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(stats))
	}

	byName := make(map[string]team.Statistics, len(stats))
	for _, item := range stats {
		byName[item.Name] = item
	}

	avengers := byName["Avengers"]
	if avengers.MemberCount != 3 {
		t.Fatalf("expected 3 Avengers, got %d", avengers.MemberCount)
	}
	if avengers.Strongest == nil || *avengers.Strongest != "Hulk" {
		t.Fatalf("expected strongest Hulk, got %v", avengers.Strongest)
	}
	if avengers.Smartest == nil || *avengers.Smartest != "Iron Man" {
		t.Fatalf("expected smartest Iron Man, got %v", avengers.Smartest)
	}
	if avengers.Fastest == nil || *avengers.Fastest != "Quicksilver" {
		t.Fatalf("expected fastest Quicksilver, got %v", avengers.Fastest)
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	service, characterRepo, _ := newTeamService()

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.CreateTeam(t.Context(), CreateTeamInput{
		Name:     "Web Warriors",
		LeaderID: memory.CharacterIDSpiderMan,
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if len(created.Members) != 1 || created.Members[0].ID != memory.CharacterIDSpiderMan {
		t.Fatalf("expected leader as sole member, got %+v", created.Members)
	}

	leader, exists, err := characterRepo.GetByID(t.Context(), memory.CharacterIDSpiderMan)
	if err != nil || !exists {
		t.Fatalf("leader lookup failed: exists=%v err=%v", exists, err)
	}
	if leader.TeamID == nil || *leader.TeamID != created.ID {
		t.Fatalf("expected leader recruited into team %d, got %v", created.ID, leader.TeamID)
	}
}

func TestTeamService_CreateTeamValidationOrder(t *testing.T) {
	service, _, _ := newTeamService()

	tests := []struct {
		name      string
		input     CreateTeamInput
		targetErr error
		domainErr error
	}{
		{
			name:      "blank name",
			input:     CreateTeamInput{Name: "  ", LeaderID: memory.CharacterIDSpiderMan},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "name over 50 characters",
			input:     CreateTeamInput{Name: strings.Repeat("x", 60), LeaderID: memory.CharacterIDSpiderMan},
			targetErr: ErrInvalidInput,
		},
		{
			// Leader lookup runs before the name check: a missing
			// character wins even when the name is also taken.
			name:      "missing leader beats taken name",
			input:     CreateTeamInput{Name: "Avengers", LeaderID: 999},
			targetErr: ErrNotFound,
		},
		{
			name:      "recruited leader beats taken name",
			input:     CreateTeamInput{Name: "Avengers", LeaderID: memory.CharacterIDDaredevil},
			targetErr: ErrConflict,
			domainErr: character.ErrAlreadyRecruited,
		},
		{
			name:      "taken name",
			input:     CreateTeamInput{Name: "Avengers", LeaderID: memory.CharacterIDSpiderMan},
			targetErr: ErrConflict,
			domainErr: team.ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTeam(t.Context(), tt.input)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
			if tt.domainErr != nil && !errors.Is(err, tt.domainErr) {
				t.Fatalf("expected %v in chain, got %v", tt.domainErr, err)
			}
		})
	}
}

func TestTeamService_RenameTeamSkipsUniquenessCheck(t *testing.T) {
	service, _, _ := newTeamService()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	renamed, err := service.RenameTeam(t.Context(), memory.TeamIDDefenders, "Avengers")
	if err != nil {
		t.Fatalf("rename team failed: %v", err)
	}
	if renamed.Name != "Avengers" {
		t.Fatalf("expected renamed to Avengers, got %q", renamed.Name)
	}
	if renamed.UpdatedAt == nil || !renamed.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at=%v, got %v", now, renamed.UpdatedAt)
	}
}

func TestTeamService_RenameTeamRejectsLongName(t *testing.T) {
	service, _, _ := newTeamService()

	_, err := service.RenameTeam(t.Context(), memory.TeamIDDefenders, strings.Repeat("x", 60))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected %v, got %v", ErrInvalidInput, err)
	}
}

func TestTeamService_DeleteTeamReleasesMembers(t *testing.T) {
	service, characterRepo, teamRepo := newTeamService()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	if err := service.DeleteTeam(t.Context(), memory.TeamIDAvengers); err != nil {
		t.Fatalf("delete team failed: %v", err)
	}

	if _, exists, _ := teamRepo.GetByID(t.Context(), memory.TeamIDAvengers); exists {
		t.Fatal("expected team gone from active reads")
	}

	for _, id := range []int64{memory.CharacterIDIronMan, memory.CharacterIDHulk, memory.CharacterIDQuicksilver} {
		member, exists, err := characterRepo.GetByID(t.Context(), id)
		if err != nil || !exists {
			t.Fatalf("member %d lookup failed: exists=%v err=%v", id, exists, err)
		}
		if member.TeamID != nil {
			t.Fatalf("expected member %d released, still on team %v", id, member.TeamID)
		}
	}
}

// failingUpdateCharacterRepo rejects every Update to exercise a storage
// failure mid-release.
type failingUpdateCharacterRepo struct {
	*memory.CharacterRepository
}

func (r *failingUpdateCharacterRepo) Update(ctx context.Context, c character.Character) error {
	return errors.New("store unavailable")
}

func TestTeamService_DeleteTeamKeepsTeamWhenReleaseFails(t *testing.T) {
	characterRepo := memory.NewCharacterRepository(memory.SeedCharacters())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams(), characterRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewTeamService(teamRepo, &failingUpdateCharacterRepo{characterRepo}, logger)

	if err := service.DeleteTeam(t.Context(), memory.TeamIDAvengers); err == nil {
		t.Fatal("expected delete to surface the release failure")
	}

	// The team is only soft deleted after every member release succeeds.
	if _, exists, _ := teamRepo.GetByID(t.Context(), memory.TeamIDAvengers); !exists {
		t.Fatal("expected team still live after failed member release")
	}
}

func TestTeamService_GetTeamNotFound(t *testing.T) {
	service, _, _ := newTeamService()

	if _, err := service.GetTeam(t.Context(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetTeam(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
