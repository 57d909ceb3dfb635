package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// CreateUserRequest - createUser(username, favoriteGenre, password)
type CreateUserRequest struct {
	Username      string  `json:"username"`
	FavoriteGenre string  `json:"favoriteGenre"`
	Password      *string `json:"password,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(3, 64).Error("username must be 3-64 characters"),
			validation.Match(usernamePattern).Error("username may contain letters, digits, '.', '_' and '-' only"),
		),
		validation.Field(&r.FavoriteGenre,
			validation.Required.Error("favorite genre is required"),
			validation.RuneLength(1, 100).Error("favorite genre must be at most 100 characters"),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty.Error("password must not be empty"),
			validation.RuneLength(8, 72).Error("password must be 8-72 characters"),
		),
	)
}

// Args echoes the request for ValidationError.InvalidArgs. The password is never echoed.
func (r CreateUserRequest) Args() map[string]interface{} {
	return map[string]interface{}{
		"username":      r.Username,
		"favoriteGenre": r.FavoriteGenre,
	}
}

// LoginRequest - login(username, password)
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}
