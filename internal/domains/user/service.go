package user

import (
	"context"

	"github.com/google/uuid"
)

// Service - user business operations. Login lives in internal/auth.
type Service interface {
	// Create stores a new user, hashing the optional password with bcrypt.
	// Errors: ValidationError (invalid input, duplicate username)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)

	// Errors: NotFoundError
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername returns (nil, nil) when no user has this username
	GetByUsername(ctx context.Context, username string) (*User, error)
}
