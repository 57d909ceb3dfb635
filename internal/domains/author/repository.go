package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence primitives for authors.
// Backends: postgres, mongo, sqlite (see repository/).
type Repository interface {
	// Create inserts a new author.
	// Errors: ErrDuplicateName if the name is taken
	Create(ctx context.Context, a *Author) (*Author, error)

	// Errors: ErrAuthorNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByName is an exact, case-sensitive match.
	// Errors: ErrAuthorNotFound
	FindByName(ctx context.Context, name string) (*Author, error)

	// List returns every author in insertion order
	List(ctx context.Context) ([]Author, error)

	Count(ctx context.Context) (int64, error)

	// UpdateBorn overwrites the birth year.
	// Errors: ErrAuthorNotFound
	UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*Author, error)
}
