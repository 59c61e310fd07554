package team

import "context"

// Repository stores rescue teams. Reads hydrate the member list and only
// surface active records.
type Repository interface {
	// ListActive returns every active team, members included, ordered by
	// name.
	ListActive(ctx context.Context) ([]Team, error)

	// GetByID returns an active team with its members. The boolean
	// reports whether the team exists.
	GetByID(ctx context.Context, id int64) (Team, bool, error)

	// GetByName returns an active team matching the exact name.
	GetByName(ctx context.Context, name string) (Team, bool, error)

	// Create persists a new team and returns it with the store-assigned
	// identifier filled in. Membership is tracked on the character side.
	Create(ctx context.Context, t Team) (Team, error)

	// Update overwrites a team's mutable fields.
	Update(ctx context.Context, t Team) error
}
