package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	MaxTitleLength = 255
	MaxGenreLength = 100

	MinPublishedYear = -4000
	MaxPublishedYear = 9999
)

// Book holds a non-owning reference to its author by id
type Book struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Published int            `json:"published" db:"published"`
	Genres    pq.StringArray `json:"genres" db:"genres"` // possibly empty, never nil
	AuthorID  uuid.UUID      `json:"author_id" db:"author_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// Filter narrows List. Nil fields are not applied.
type Filter struct {
	AuthorID *uuid.UUID
	Genre    *string // exact membership, not substring
}
