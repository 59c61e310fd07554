package character

import "context"

// Repository stores roster characters. Reads only surface active records;
// soft deleted rows stay behind for audit.
type Repository interface {
	// ListActive returns every active character ordered by name.
	ListActive(ctx context.Context) ([]Character, error)

	// GetByID returns an active character by its identifier. The boolean
	// reports whether the character exists.
	GetByID(ctx context.Context, id int64) (Character, bool, error)

	// Create persists a new character and returns it with the
	// store-assigned identifier filled in.
	Create(ctx context.Context, c Character) (Character, error)

	// Update overwrites a character's mutable fields.
	Update(ctx context.Context, c Character) error
}
