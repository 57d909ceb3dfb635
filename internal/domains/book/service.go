package book

import (
	"context"

	"github.com/google/uuid"
)

// Service - business operations on books
type Service interface {
	Count(ctx context.Context) (int, error)

	// List applies both filters; an unknown author name yields an empty list
	List(ctx context.Context, req ListRequest) ([]Book, error)

	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Book, error)

	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)

	// Add finds or creates the author by name, then creates the book, as one unit.
	// Errors: ValidationError carrying the request arguments
	Add(ctx context.Context, req AddBookRequest) (*Book, error)
}
