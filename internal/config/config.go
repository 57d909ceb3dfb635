package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"library-catalog/internal/infrastructure/database"
)

const (
	defaultJWTSecret = "your-secret-key-change-in-production"

	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
)

// Config holds the whole application configuration.
// Values come from the environment (and an optional CONFIG_FILE) through viper.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database *database.DBConfig
	Mongo    *database.MongoConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	GraphQL  GraphQLConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, staging, production
	Port        string
	Version     string
}

type StoreConfig struct {
	Driver string // postgres, mongo, sqlite
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Password     string
	DB           int
	UserCacheTTL time.Duration
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration // 0 issues non-expiring tokens
}

type AuthConfig struct {
	BcryptCost int
	// LegacyPassword lets users created without a password log in.
	// Empty disables it; never allowed in production.
	LegacyPassword    string
	MaxFailedLogins   int // 0 disables the throttle
	FailedLoginWindow time.Duration
}

type GraphQLConfig struct {
	MaxDepth       int
	MaxParallelism int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Library Catalog API")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_VERSION", "1.0.0")

	v.SetDefault("STORE_DRIVER", StorePostgres)

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "library")
	v.SetDefault("MONGO_TIMEOUT", "10s")
	v.SetDefault("MONGO_TRANSACTIONS", false)

	v.SetDefault("SQLITE_PATH", "library.db")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_USER_CACHE_TTL", "15m")

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TOKEN_TTL", "24h")

	v.SetDefault("AUTH_BCRYPT_COST", 12)
	v.SetDefault("AUTH_LEGACY_PASSWORD", "")
	v.SetDefault("AUTH_MAX_FAILED_LOGINS", 5)
	v.SetDefault("AUTH_FAILED_LOGIN_WINDOW", "15m")

	v.SetDefault("GRAPHQL_MAX_DEPTH", 10)
	v.SetDefault("GRAPHQL_MAX_PARALLELISM", 10)

	setDatabaseDefaults(v)
}

// Load reads configuration from the environment.
// CONFIG_FILE may point at a yaml or .env file; environment variables win over it.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	dbCfg, err := LoadDatabaseConfig(v)
	if err != nil {
		return nil, err
	}

	mongoTimeout, err := durationOf(v, "MONGO_TIMEOUT")
	if err != nil {
		return nil, err
	}
	userCacheTTL, err := durationOf(v, "REDIS_USER_CACHE_TTL")
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationOf(v, "JWT_TOKEN_TTL")
	if err != nil {
		return nil, err
	}
	loginWindow, err := durationOf(v, "AUTH_FAILED_LOGIN_WINDOW")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			Version:     v.GetString("APP_VERSION"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		},
		Database: dbCfg,
		Mongo: &database.MongoConfig{
			URI:          v.GetString("MONGO_URI"),
			Database:     v.GetString("MONGO_DATABASE"),
			Timeout:      mongoTimeout,
			Transactions: v.GetBool("MONGO_TRANSACTIONS"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Enabled:      v.GetBool("REDIS_ENABLED"),
			Host:         v.GetString("REDIS_HOST"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			UserCacheTTL: userCacheTTL,
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			TokenTTL: tokenTTL,
		},
		Auth: AuthConfig{
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			LegacyPassword:    v.GetString("AUTH_LEGACY_PASSWORD"),
			MaxFailedLogins:   v.GetInt("AUTH_MAX_FAILED_LOGINS"),
			FailedLoginWindow: loginWindow,
		},
		GraphQL: GraphQLConfig{
			MaxDepth:       v.GetInt("GRAPHQL_MAX_DEPTH"),
			MaxParallelism: v.GetInt("GRAPHQL_MAX_PARALLELISM"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that must never reach a running server
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StorePostgres, StoreMongo, StoreSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want postgres, mongo or sqlite)", c.Store.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.TokenTTL < 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must not be negative")
	}
	if c.Redis.UserCacheTTL < 0 {
		return fmt.Errorf("REDIS_USER_CACHE_TTL must not be negative")
	}
	if c.Auth.MaxFailedLogins < 0 {
		return fmt.Errorf("AUTH_MAX_FAILED_LOGINS must not be negative")
	}
	if c.Auth.MaxFailedLogins > 0 && c.Auth.FailedLoginWindow <= 0 {
		return fmt.Errorf("AUTH_FAILED_LOGIN_WINDOW must be positive when the login throttle is enabled")
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Auth.LegacyPassword != "" {
			return fmt.Errorf("AUTH_LEGACY_PASSWORD must not be set in production")
		}
		if c.Store.Driver == StorePostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func durationOf(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
