package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cause := errors.New("duplicate key")
	validation := NewValidation("author name taken", map[string]interface{}{"author": "X"}, cause)

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "authentication", err: NewAuthentication("not authenticated", nil), wantCode: CodeUnauthenticated},
		{name: "wrapped validation", err: fmt.Errorf("add book: %w", validation), wantCode: CodeBadUserInput},
		{name: "not found", err: NewNotFound("author", "Nobody", nil), wantCode: CodeNotFound},
		{name: "untyped", err: errors.New("connection reset"), wantCode: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, Code(tt.err))
		})
	}

	assert.Nil(t, Normalize(nil))
	assert.Equal(t, "", Code(nil))
}

func TestValidationError_Extensions(t *testing.T) {
	err := NewValidation("wrong credentials", nil, nil)
	assert.Equal(t, map[string]interface{}{"code": CodeBadUserInput}, err.Extensions())

	args := map[string]interface{}{"title": "Book A"}
	withArgs := NewValidation("title too short", args, nil)
	assert.Equal(t, args, withArgs.Extensions()["invalidArgs"])
}

func TestInternalError_HidesCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	err := Normalize(cause)

	require.IsType(t, &InternalError{}, err)
	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFound("author", "Nonexistent", nil)
	assert.Equal(t, `author "Nonexistent" not found`, err.Error())
}
