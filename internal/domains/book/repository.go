package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository - persistence primitives for books
type Repository interface {
	// Errors: ErrInvalidBook
	Create(ctx context.Context, b *Book) (*Book, error)

	// List returns matching books in insertion order
	List(ctx context.Context, filter Filter) ([]Book, error)

	Count(ctx context.Context) (int64, error)

	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}
