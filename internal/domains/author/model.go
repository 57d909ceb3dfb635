package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Constants for validation
const (
	MinNameLength = 2
	MaxNameLength = 255

	MinYear = -4000
	MaxYear = 9999
)

// Author represents the core Author entity.
// BookCount is never stored; it is computed from books at read time.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"` // unique
	Born *int      `json:"born,omitempty" db:"born"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NameRules is shared by every operation that accepts an author name
func NameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("author name is required"),
		validation.RuneLength(MinNameLength, MaxNameLength).Error("author name must be 2-255 characters"),
	}
}

