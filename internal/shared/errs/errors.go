// Package errs holds the error kinds surfaced at the operation boundary.
// Each kind carries an extensions map so GraphQL clients can branch on
// extensions.code instead of parsing messages.
package errs

import (
	"errors"
	"fmt"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// AuthenticationError: missing or invalid credential
type AuthenticationError struct {
	Message string
	Err     error
}

func NewAuthentication(message string, cause error) *AuthenticationError {
	return &AuthenticationError{Message: message, Err: cause}
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeUnauthenticated}
}

// ValidationError: a create/update broke a constraint. InvalidArgs echoes the
// operation input back for client-side correction.
type ValidationError struct {
	Message     string
	InvalidArgs map[string]interface{}
	Err         error
}

func NewValidation(message string, args map[string]interface{}, cause error) *ValidationError {
	return &ValidationError{Message: message, InvalidArgs: args, Err: cause}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": CodeBadUserInput}
	if e.InvalidArgs != nil {
		ext["invalidArgs"] = e.InvalidArgs
	}
	return ext
}

// NotFoundError: a referenced entity does not exist
type NotFoundError struct {
	Resource string
	Key      string
	Err      error
}

func NewNotFound(resource, key string, cause error) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key, Err: cause}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeNotFound}
}

// InternalError hides store and runtime faults from clients
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "internal server error" }

func (e *InternalError) Unwrap() error { return e.Err }

func (e *InternalError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeInternal}
}

// Extensioner is implemented by every error kind in this package
type Extensioner interface {
	error
	Extensions() map[string]interface{}
}

// Normalize unwraps err to the first typed kind in its chain. Anything
// untyped becomes an InternalError. nil stays nil.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr
	}
	var internalErr *InternalError
	if errors.As(err, &internalErr) {
		return internalErr
	}
	return &InternalError{Err: err}
}

// Code returns the extensions code of err after normalization
func Code(err error) string {
	if err == nil {
		return ""
	}
	if ext, ok := Normalize(err).(Extensioner); ok {
		if code, ok := ext.Extensions()["code"].(string); ok {
			return code
		}
	}
	return CodeInternal
}
