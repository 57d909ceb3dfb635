package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository - persistence primitives for users
type Repository interface {
	// Errors: ErrDuplicateUsername
	Create(ctx context.Context, u *User) (*User, error)

	// Errors: ErrUserNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Errors: ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)
}
