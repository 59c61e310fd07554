package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
)

var teamColumns = []string{"id", "name", "created_at", "updated_at", "deleted_at"}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	query, args, err := sq.Select(teamColumns...).
		From("rescue_teams").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	teamIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
		teamIDs = append(teamIDs, row.ID)
	}

	membersByTeam, err := r.activeMembersByTeam(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	for idx := range out {
		out[idx].Members = membersByTeam[out[idx].ID]
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	return r.getOne(ctx, sq.Eq{"id": id, "deleted_at": nil})
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	return r.getOne(ctx, sq.Eq{"name": name, "deleted_at": nil})
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	const query = `
INSERT INTO rescue_teams (name, created_at)
VALUES ($1, $2)
RETURNING id`

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, t.Name, t.CreatedAt).Scan(&id); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	t.ID = id
	t.Members = nil

	return t, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	query, args, err := sq.Update("rescue_teams").
		Set("name", t.Name).
		Set("updated_at", nullTimeFromPtr(t.UpdatedAt)).
		Set("deleted_at", nullTimeFromPtr(t.DeletedAt)).
		Where(sq.Eq{"id": t.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

func (r *TeamRepository) getOne(ctx context.Context, where sq.Eq) (team.Team, bool, error) {
	query, args, err := sq.Select(teamColumns...).
		From("rescue_teams").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	item := row.toDomain()
	membersByTeam, err := r.activeMembersByTeam(ctx, []int64{item.ID})
	if err != nil {
		return team.Team{}, false, err
	}
	item.Members = membersByTeam[item.ID]

	return item, true, nil
}

func (r *TeamRepository) activeMembersByTeam(ctx context.Context, teamIDs []int64) (map[int64][]character.Character, error) {
	if len(teamIDs) == 0 {
		return map[int64][]character.Character{}, nil
	}

	query, args, err := sq.Select(characterColumns...).
		From("characters").
		Where(sq.Eq{"team_id": teamIDs, "deleted_at": nil}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []characterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make(map[int64][]character.Character, len(teamIDs))
	for _, row := range rows {
		member := row.toDomain()
		if member.TeamID == nil {
			continue
		}
		out[*member.TeamID] = append(out[*member.TeamID], member)
	}

	return out, nil
}
