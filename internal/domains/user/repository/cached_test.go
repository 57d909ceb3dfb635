package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/testutil"
	"library-catalog/pkg/cache"
)

func TestCachedRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteRepository(testutil.OpenSQLite(t))
	mem := testutil.NewMemoryCache()
	repo := NewCachedRepository(store, mem, time.Minute)

	hash := "$2a$04$not-a-real-hash"
	created, err := repo.Create(ctx, &user.User{
		ID: uuid.New(), Username: "alice", FavoriteGenre: "fantasy", PasswordHash: &hash,
	})
	require.NoError(t, err)

	first, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	assert.True(t, mem.Has(userCacheKeyPrefix+created.ID.String()))

	second, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, second.ID)
	assert.Equal(t, "fantasy", second.FavoriteGenre)
	assert.Nil(t, second.PasswordHash, "hashes never go through the cache")

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, byName.HasPassword())
}

func TestCachedRepository_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	mem := testutil.NewMemoryCache()
	repo := NewCachedRepository(NewSQLiteRepository(testutil.OpenSQLite(t)), mem, time.Minute)

	id := uuid.New()
	_, err := repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.False(t, mem.Has(userCacheKeyPrefix+id.String()))
}

func TestCachedRepository_NoopCache(t *testing.T) {
	ctx := context.Background()
	repo := NewCachedRepository(NewSQLiteRepository(testutil.OpenSQLite(t)), cache.NewNoop(), time.Minute)

	created, err := repo.Create(ctx, &user.User{ID: uuid.New(), Username: "bob", FavoriteGenre: "crime"})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)
}

func TestSQLiteRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.OpenSQLite(t))

	_, err := repo.Create(ctx, &user.User{ID: uuid.New(), Username: "carol", FavoriteGenre: "x"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{ID: uuid.New(), Username: "carol", FavoriteGenre: "y"})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)
}
