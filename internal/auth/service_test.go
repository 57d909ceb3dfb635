package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/testutil"
	"library-catalog/pkg/jwt"
)

type fixture struct {
	auth   *Service
	users  user.Service
	tokens *jwt.Manager
	cache  *testutil.MemoryCache
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	db := testutil.OpenSQLite(t)
	users := userService.NewUserService(userRepo.NewSQLiteRepository(db), bcrypt.MinCost)
	tokens := jwt.NewManager("test-secret", time.Hour)
	c := testutil.NewMemoryCache()

	return &fixture{
		auth:   NewService(users, tokens, c, nil, opts),
		users:  users,
		tokens: tokens,
		cache:  c,
	}
}

func (f *fixture) createUser(t *testing.T, username string, password *string) *user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.CreateUserRequest{
		Username:      username,
		FavoriteGenre: "refactoring",
		Password:      password,
	})
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

func TestResolveCaller(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	alice := f.createUser(t, "alice", nil)

	token, err := f.auth.IssueToken(alice)
	require.NoError(t, err)

	t.Run("no header is anonymous", func(t *testing.T) {
		c, err := f.auth.ResolveCaller(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, Anonymous{}, c)
	})

	t.Run("other scheme is anonymous", func(t *testing.T) {
		c, err := f.auth.ResolveCaller(ctx, "Basic YWxpY2U6c2VjcmV0")
		require.NoError(t, err)
		assert.Equal(t, Anonymous{}, c)
	})

	for _, header := range []string{"Bearer " + token, "bearer " + token, "BEARER " + token} {
		t.Run("scheme is case-insensitive: "+header[:6], func(t *testing.T) {
			c, err := f.auth.ResolveCaller(ctx, header)
			require.NoError(t, err)
			authed, ok := c.(Authenticated)
			require.True(t, ok)
			assert.Equal(t, alice.ID, authed.User.ID)
			assert.Equal(t, "alice", authed.User.Username)
		})
	}

	foreign, err := jwt.NewManager("another-secret", time.Hour).GenerateToken(alice.ID.String(), "alice")
	require.NoError(t, err)
	ghost, err := f.tokens.GenerateToken(uuid.NewString(), "ghost")
	require.NoError(t, err)
	notUUID, err := f.tokens.GenerateToken("not-a-uuid", "alice")
	require.NoError(t, err)

	rejected := map[string]string{
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer definitely.not.jwt",
		"foreign secret": "Bearer " + foreign,
		"tampered":       "Bearer " + token[:len(token)-2] + "xx",
		"unknown user":   "Bearer " + ghost,
		"malformed id":   "Bearer " + notUUID,
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			c, err := f.auth.ResolveCaller(ctx, header)
			assert.Nil(t, c)
			var authErr *errs.AuthenticationError
			assert.ErrorAs(t, err, &authErr)
		})
	}
}

func TestRequireUser(t *testing.T) {
	_, err := RequireUser(context.Background())
	var authErr *errs.AuthenticationError
	require.ErrorAs(t, err, &authErr)

	_, err = RequireUser(WithCaller(context.Background(), Anonymous{}))
	require.ErrorAs(t, err, &authErr)

	u := &user.User{ID: uuid.New(), Username: "alice"}
	got, err := RequireUser(WithCaller(context.Background(), Authenticated{User: u}))
	require.NoError(t, err)
	assert.Same(t, u, got)
	assert.Nil(t, CurrentUser(context.Background()))
}

func assertWrongCredentials(t *testing.T, err error) {
	t.Helper()
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "wrong credentials", validationErr.Message)
}

func TestLogin_StoredPassword(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	bob := f.createUser(t, "bob", strPtr("correct horse"))

	token, err := f.auth.Login(ctx, user.LoginRequest{Username: "bob", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := f.tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, bob.ID.String(), claims.UserID)
	assert.Equal(t, "bob", claims.Username)

	_, err = f.auth.Login(ctx, user.LoginRequest{Username: "bob", Password: "wrong horse"})
	assertWrongCredentials(t, err)

	_, err = f.auth.Login(ctx, user.LoginRequest{Username: "nobody", Password: "correct horse"})
	assertWrongCredentials(t, err)

	_, err = f.auth.Login(ctx, user.LoginRequest{Username: "bob", Password: ""})
	assertWrongCredentials(t, err)
}

func TestLogin_UserWithoutPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy password disabled", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.createUser(t, "alice", nil)

		_, err := f.auth.Login(ctx, user.LoginRequest{Username: "alice", Password: "secret"})
		assertWrongCredentials(t, err)
	})

	t.Run("legacy password configured", func(t *testing.T) {
		f := newFixture(t, Options{LegacyPassword: "secret"})
		f.createUser(t, "alice", nil)
		f.createUser(t, "carol", strPtr("carols-own-pass"))

		_, err := f.auth.Login(ctx, user.LoginRequest{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		_, err = f.auth.Login(ctx, user.LoginRequest{Username: "alice", Password: "Secret"})
		assertWrongCredentials(t, err)

		// a stored hash always wins over the legacy password
		_, err = f.auth.Login(ctx, user.LoginRequest{Username: "carol", Password: "secret"})
		assertWrongCredentials(t, err)
	})
}

func TestLogin_FailedLoginThrottle(t *testing.T) {
	f := newFixture(t, Options{MaxFailedLogins: 2, FailedLoginWindow: time.Minute})
	ctx := context.Background()
	f.createUser(t, "dave", strPtr("daves-password"))

	good := user.LoginRequest{Username: "dave", Password: "daves-password"}
	bad := user.LoginRequest{Username: "dave", Password: "guess"}

	_, err := f.auth.Login(ctx, bad)
	assertWrongCredentials(t, err)

	// success before the limit clears the counter
	_, err = f.auth.Login(ctx, good)
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, bad)
	assertWrongCredentials(t, err)
	_, err = f.auth.Login(ctx, bad)
	assertWrongCredentials(t, err)

	_, err = f.auth.Login(ctx, good)
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "too many login attempts", validationErr.Message)
	assert.Equal(t, "dave", validationErr.InvalidArgs["username"])
}

func TestLogin_FailureCounterAlwaysExpires(t *testing.T) {
	f := newFixture(t, Options{MaxFailedLogins: 5, FailedLoginWindow: time.Minute})
	ctx := context.Background()
	f.createUser(t, "erin", strPtr("erins-password"))
	key := failedLoginKeyPrefix + "erin"

	t.Run("first failure opens the window", func(t *testing.T) {
		_, err := f.auth.Login(ctx, user.LoginRequest{Username: "erin", Password: "guess"})
		assertWrongCredentials(t, err)

		ttl, ok := f.cache.TTL(key)
		require.True(t, ok)
		assert.Equal(t, time.Minute, ttl)
	})

	t.Run("counter left without expiry gets one", func(t *testing.T) {
		require.NoError(t, f.cache.Set(ctx, key, 3, 0))
		_, ok := f.cache.TTL(key)
		require.False(t, ok)

		_, err := f.auth.Login(ctx, user.LoginRequest{Username: "erin", Password: "guess"})
		assertWrongCredentials(t, err)

		ttl, ok := f.cache.TTL(key)
		require.True(t, ok)
		assert.Equal(t, time.Minute, ttl)

		var failures int64
		found, err := f.cache.Get(ctx, key, &failures)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(4), failures)
	})
}
