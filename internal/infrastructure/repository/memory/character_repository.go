package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarvega/rescuehq/internal/domain/character"
)

type CharacterRepository struct {
	mu     sync.RWMutex
	byID   map[int64]character.Character
	nextID int64
}

func NewCharacterRepository(seed []character.Character) *CharacterRepository {
	byID := make(map[int64]character.Character, len(seed))
	var maxID int64
	for _, item := range seed {
		byID[item.ID] = item
		if item.ID > maxID {
			maxID = item.ID
		}
	}

	return &CharacterRepository{byID: byID, nextID: maxID + 1}
}

func (r *CharacterRepository) ListActive(_ context.Context) ([]character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]character.Character, 0, len(r.byID))
	for _, item := range r.byID {
		if item.Status == character.StatusActive {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *CharacterRepository) GetByID(_ context.Context, id int64) (character.Character, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok || item.Status != character.StatusActive {
		return character.Character{}, false, nil
	}

	return item, true, nil
}

func (r *CharacterRepository) Create(_ context.Context, c character.Character) (character.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c

	return c, nil
}

func (r *CharacterRepository) Update(_ context.Context, c character.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c

	return nil
}

// activeMembersOf returns the active characters assigned to a team, ordered
// by name. Used by the team repository to hydrate rosters.
func (r *CharacterRepository) activeMembersOf(teamID int64) []character.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]character.Character, 0)
	for _, item := range r.byID {
		if item.Status != character.StatusActive || item.TeamID == nil || *item.TeamID != teamID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
