package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a caller identity. Users are never mutated after creation.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"` // unique
	FavoriteGenre string    `json:"favorite_genre" db:"favorite_genre"`
	PasswordHash  *string   `json:"-" db:"password_hash"` // bcrypt; nil for users created without a password
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// HasPassword reports whether the user can log in with a personal password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
