package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
	charactermock "github.com/omarvega/rescuehq/internal/mocks/domain/character"
	teammock "github.com/omarvega/rescuehq/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestCharacterService_GetCharacter_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	characterRepo := charactermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewCharacterService(characterRepo, teamRepo, logger)

	avengersID := int64(1)
	stored := character.Character{
		ID:        7,
		Name:      "Iron Man",
		Status:    character.StatusActive,
		TeamID:    &avengersID,
		CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}

	characterRepo.
		On("GetByID", mock.Anything, int64(7)).
		Return(stored, true, nil).
		Once()
	teamRepo.
		On("GetByID", mock.Anything, avengersID).
		Return(team.Team{ID: avengersID, Name: "Avengers", Status: team.StatusActive}, true, nil).
		Once()

	got, err := service.GetCharacter(ctx, 7)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if got.Character.Name != "Iron Man" {
		t.Fatalf("unexpected name: %s", got.Character.Name)
	}
	if got.Team == nil || got.Team.Name != "Avengers" {
		t.Fatalf("expected Avengers summary, got %+v", got.Team)
	}
}

func TestCharacterService_GetCharacter_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	characterRepo := charactermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewCharacterService(characterRepo, teamRepo, logger)

	repoErr := errors.New("connection reset")
	characterRepo.
		On("GetByID", mock.Anything, int64(7)).
		Return(character.Character{}, false, repoErr).
		Once()

	_, err := service.GetCharacter(context.Background(), 7)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
