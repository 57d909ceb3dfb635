package config

import (
	"fmt"

	"github.com/spf13/viper"

	"library-catalog/internal/infrastructure/database"
)

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "library")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "library_dev")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 25)
	v.SetDefault("DB_MIN_CONNECTIONS", 5)
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "5m")
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", "1m")
	v.SetDefault("DB_HEALTH_CHECK_PERIOD", "1m")
	v.SetDefault("DB_RETRY_DELAY", "1s")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
}

// LoadDatabaseConfig builds the postgres pool settings
func LoadDatabaseConfig(v *viper.Viper) (*database.DBConfig, error) {
	maxConns := v.GetInt("DB_MAX_CONNECTIONS")
	minConns := v.GetInt("DB_MIN_CONNECTIONS")
	if minConns > maxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", minConns, maxConns)
	}

	maxRetries := v.GetInt("DB_MAX_RETRIES")
	if maxRetries < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %d", maxRetries)
	}

	maxConnLifetime, err := durationOf(v, "DB_MAX_CONN_LIFETIME")
	if err != nil {
		return nil, err
	}
	maxConnIdleTime, err := durationOf(v, "DB_MAX_CONN_IDLE_TIME")
	if err != nil {
		return nil, err
	}
	healthCheckPeriod, err := durationOf(v, "DB_HEALTH_CHECK_PERIOD")
	if err != nil {
		return nil, err
	}
	retryDelay, err := durationOf(v, "DB_RETRY_DELAY")
	if err != nil {
		return nil, err
	}
	connectTimeout, err := durationOf(v, "DB_CONNECT_TIMEOUT")
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              v.GetString("DB_HOST"),
		Port:              v.GetInt("DB_PORT"),
		Username:          v.GetString("DB_USER"),
		Password:          v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		SSLMode:           v.GetString("DB_SSLMODE"),
		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}
