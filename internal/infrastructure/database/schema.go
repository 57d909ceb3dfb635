package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema is applied on every start; each statement is idempotent.
// There is no migration history, only the current shape.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		born       INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT authors_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id         UUID PRIMARY KEY,
		title      TEXT NOT NULL,
		published  INTEGER NOT NULL,
		genres     TEXT[] NOT NULL DEFAULT '{}',
		author_id  UUID NOT NULL REFERENCES authors (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS books_author_id_idx ON books (author_id)`,
	`CREATE INDEX IF NOT EXISTS books_genres_idx ON books USING GIN (genres)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY,
		username       TEXT NOT NULL,
		favorite_genre TEXT NOT NULL,
		password_hash  TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_username_key UNIQUE (username)
	)`,
}

// ApplyPostgresSchema creates the catalog tables when missing
func ApplyPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
