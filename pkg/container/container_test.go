package container

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/config"
	"library-catalog/internal/domains/book"
	"library-catalog/pkg/cache"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App:    config.AppConfig{Name: "test", Environment: "test", Port: "0", Version: "test"},
		Store:  config.StoreConfig{Driver: config.StoreSQLite},
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "catalog.db")},
		JWT:    config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour},
		Auth: config.AuthConfig{
			BcryptCost:        bcrypt.MinCost,
			MaxFailedLogins:   5,
			FailedLoginWindow: time.Minute,
		},
		GraphQL: config.GraphQLConfig{MaxDepth: 10, MaxParallelism: 4},
	}
}

func TestNewContainer_SQLite(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	assert.NotNil(t, c.Schema)
	assert.NotNil(t, c.GraphQLHandler)
	assert.Nil(t, c.Redis)
	assert.IsType(t, cache.Noop{}, c.Cache)
	require.NoError(t, c.Store.Ping(ctx))

	added, err := c.BookService.Add(ctx, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Published: 1965, Genres: []string{"sci-fi"},
	})
	require.NoError(t, err)

	n, err := c.AuthorService.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	a, err := c.AuthorService.GetByID(ctx, added.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", a.Name)
}

func TestNewContainer_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Driver = "cassandra"

	_, err := NewContainer(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewContainer_RedisUnreachableFallsBack(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1:1"}

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	assert.Nil(t, c.Redis)
	assert.IsType(t, cache.Noop{}, c.Cache)
}
