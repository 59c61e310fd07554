package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarvega/rescuehq/internal/domain/team"
)

// TeamRepository keeps teams in memory and hydrates member lists from the
// character repository it shares a process with.
type TeamRepository struct {
	mu         sync.RWMutex
	byID       map[int64]team.Team
	nextID     int64
	characters *CharacterRepository
}

func NewTeamRepository(seed []team.Team, characters *CharacterRepository) *TeamRepository {
	byID := make(map[int64]team.Team, len(seed))
	var maxID int64
	for _, item := range seed {
		byID[item.ID] = item
		if item.ID > maxID {
			maxID = item.ID
		}
	}

	return &TeamRepository{byID: byID, nextID: maxID + 1, characters: characters}
}

func (r *TeamRepository) ListActive(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	out := make([]team.Team, 0, len(r.byID))
	for _, item := range r.byID {
		if item.Status == team.StatusActive {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for idx := range out {
		out[idx].Members = r.characters.activeMembersOf(out[idx].ID)
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	item, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || item.Status != team.StatusActive {
		return team.Team{}, false, nil
	}
	item.Members = r.characters.activeMembersOf(item.ID)

	return item, true, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.Status == team.StatusActive && item.Name == name {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.Members = nil
	r.byID[t.ID] = t

	return t, nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.Members = nil
	r.byID[t.ID] = t

	return nil
}
