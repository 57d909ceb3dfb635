package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/testutil"
)

func setupService(t *testing.T) user.Service {
	t.Helper()
	return NewUserService(repository.NewSQLiteRepository(testutil.OpenSQLite(t)), bcrypt.MinCost)
}

func TestCreate_DistinctUsernames(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := svc.Create(ctx, user.CreateUserRequest{Username: name, FavoriteGenre: "fantasy"})
		require.NoError(t, err)
		assert.Equal(t, name, u.Username)
		assert.False(t, u.HasPassword())

		found, err := svc.GetByUsername(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	}
}

func TestCreate_DuplicateUsernameLeavesStoreUnchanged(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	original, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", FavoriteGenre: "fantasy"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, user.CreateUserRequest{Username: "alice", FavoriteGenre: "horror"})
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "alice", validationErr.InvalidArgs["username"])
	assert.Equal(t, "horror", validationErr.InvalidArgs["favoriteGenre"])

	found, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, original.ID, found.ID)
	assert.Equal(t, "fantasy", found.FavoriteGenre)
}

func TestCreate_HashesPassword(t *testing.T) {
	svc := setupService(t)
	password := "hunter2-but-longer"

	u, err := svc.Create(context.Background(), user.CreateUserRequest{
		Username: "dave", FavoriteGenre: "crime", Password: &password,
	})
	require.NoError(t, err)
	require.True(t, u.HasPassword())
	assert.NotEqual(t, password, *u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)))
}

func TestCreate_Validation(t *testing.T) {
	svc := setupService(t)
	short := "short"

	tests := []struct {
		name string
		req  user.CreateUserRequest
	}{
		{name: "missing username", req: user.CreateUserRequest{FavoriteGenre: "x"}},
		{name: "missing genre", req: user.CreateUserRequest{Username: "erin"}},
		{name: "username with spaces", req: user.CreateUserRequest{Username: "erin smith", FavoriteGenre: "x"}},
		{name: "short password", req: user.CreateUserRequest{Username: "erin", FavoriteGenre: "x", Password: &short}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotContains(t, validationErr.InvalidArgs, "password")
		})
	}
}

func TestGetByID_Missing(t *testing.T) {
	svc := setupService(t)

	u, err := svc.Create(context.Background(), user.CreateUserRequest{Username: "frank", FavoriteGenre: "poetry"})
	require.NoError(t, err)

	found, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank", found.Username)

	missing, err := svc.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
