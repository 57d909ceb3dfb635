package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author"
	"library-catalog/pkg/database"
)

// postgresRepository implements author.Repository on pgx.
// Every query runs on the ambient transaction when there is one.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

const authorColumns = `id, name, born, created_at, updated_at`

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (id, name, born)
        VALUES ($1, $2, $3)
        RETURNING ` + authorColumns

	created, err := scanAuthor(database.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, a.ID, a.Name, a.Born))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(database.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE name = $1`

	a, err := scanAuthor(database.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at, id`

	rows, err := database.QuerierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := database.QuerierFrom(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*author.Author, error) {
	query := `
        UPDATE authors
        SET born = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	a, err := scanAuthor(database.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id, born))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return a, nil
}
