package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 5, cfg.Auth.MaxFailedLogins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.FailedLoginWindow)
	assert.Empty(t, cfg.Auth.LegacyPassword)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, time.Second, cfg.Database.RetryDelay)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/catalog.db")
	t.Setenv("JWT_TOKEN_TTL", "0s")
	t.Setenv("AUTH_MAX_FAILED_LOGINS", "3")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.SQLite.Path)
	assert.Zero(t, cfg.JWT.TokenTTL)
	assert.Equal(t, 3, cfg.Auth.MaxFailedLogins)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "STORE_DRIVER: mongo\nMONGO_DATABASE: from_file\nAPP_PORT: \"9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "from_file", cfg.Mongo.Database)
	assert.Equal(t, "7070", cfg.App.Port, "environment wins over the file")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown store driver",
			env:  map[string]string{"STORE_DRIVER": "cassandra"},
		},
		{
			name: "malformed duration",
			env:  map[string]string{"JWT_TOKEN_TTL": "one day"},
		},
		{
			name: "negative token ttl",
			env:  map[string]string{"JWT_TOKEN_TTL": "-1h"},
		},
		{
			name: "default secret in production",
			env:  map[string]string{"APP_ENV": "production", "DB_PASSWORD": "pw"},
		},
		{
			name: "legacy password in production",
			env: map[string]string{
				"APP_ENV":              "production",
				"JWT_SECRET":           "a-real-secret",
				"DB_PASSWORD":          "pw",
				"AUTH_LEGACY_PASSWORD": "secret",
			},
		},
		{
			name: "min connections above max",
			env:  map[string]string{"DB_MIN_CONNECTIONS": "30", "DB_MAX_CONNECTIONS": "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ProductionAccepted(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("AUTH_LEGACY_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
