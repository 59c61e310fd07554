package cache

import (
	"context"
	"strconv"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
	basecache "github.com/omarvega/rescuehq/internal/platform/cache"
)

// Character and team reads share one store. Team rosters are hydrated
// from the character side, so any roster write flushes both prefixes.
const (
	characterKeyPrefix = "character:"
	teamKeyPrefix      = "team:"
)

type CharacterRepository struct {
	next  character.Repository
	cache *basecache.Store
}

func NewCharacterRepository(next character.Repository, cache *basecache.Store) *CharacterRepository {
	return &CharacterRepository{next: next, cache: cache}
}

func (r *CharacterRepository) ListActive(ctx context.Context) ([]character.Character, error) {
	v, err := r.cache.GetOrLoad(ctx, characterKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]character.Character(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]character.Character)
	return append([]character.Character(nil), items...), nil
}

func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (character.Character, bool, error) {
	key := characterKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedCharacter{value: item, exists: exists}, nil
	})
	if err != nil {
		return character.Character{}, false, err
	}

	cached, _ := v.(cachedCharacter)
	return cached.value, cached.exists, nil
}

func (r *CharacterRepository) Create(ctx context.Context, c character.Character) (character.Character, error) {
	created, err := r.next.Create(ctx, c)
	if err != nil {
		return character.Character{}, err
	}

	invalidateRoster(ctx, r.cache)
	return created, nil
}

func (r *CharacterRepository) Update(ctx context.Context, c character.Character) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}

	invalidateRoster(ctx, r.cache)
	return nil
}

type cachedCharacter struct {
	value  character.Character
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := teamKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	return r.getOrLoadTeam(ctx, key, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	key := teamKeyPrefix + "name:" + name
	return r.getOrLoadTeam(ctx, key, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByName(ctx, name)
	})
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, t)
	if err != nil {
		return team.Team{}, err
	}

	invalidateRoster(ctx, r.cache)
	return created, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}

	invalidateRoster(ctx, r.cache)
	return nil
}

func (r *TeamRepository) getOrLoadTeam(ctx context.Context, key string, load func(context.Context) (team.Team, bool, error)) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

func invalidateRoster(ctx context.Context, store *basecache.Store) {
	store.DeletePrefix(ctx, characterKeyPrefix)
	store.DeletePrefix(ctx, teamKeyPrefix)
}
