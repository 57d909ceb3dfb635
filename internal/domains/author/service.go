package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for the Author domain.
// Errors returned are the typed kinds from internal/shared/errs.
type Service interface {
	Count(ctx context.Context) (int, error)

	List(ctx context.Context) ([]Author, error)

	// Errors: NotFoundError
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetByName returns (nil, nil) when no author has this name
	GetByName(ctx context.Context, name string) (*Author, error)

	// FindOrCreate returns the author named name, creating it without a birth
	// year when absent. Losing a concurrent create race is a ValidationError.
	FindOrCreate(ctx context.Context, name string) (*Author, error)

	// SetBirthYear overwrites born on the author with the exact name.
	// Errors: ValidationError, NotFoundError (nothing is written)
	SetBirthYear(ctx context.Context, req SetBirthYearRequest) (*Author, error)
}
