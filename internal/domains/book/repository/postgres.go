package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-catalog/internal/domains/book"
	"library-catalog/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, published, genres, author_id, created_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		b      book.Book
		genres []string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Published, &genres, &b.AuthorID, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Genres = pq.StringArray(genres)
	if b.Genres == nil {
		b.Genres = pq.StringArray{}
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (id, title, published, genres, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + bookColumns

	genres := []string(b.Genres)
	if genres == nil {
		genres = []string{}
	}

	created, err := scanBook(database.QuerierFrom(ctx, r.pool).QueryRow(ctx, query,
		b.ID, b.Title, b.Published, genres, b.AuthorID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23502", "23503", "23514": // not_null, foreign_key, check
				return nil, fmt.Errorf("%w: %s", book.ErrInvalidBook, pgErr.Message)
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

// List builds the WHERE clause from the filter fields that are set
func (r *postgresRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.Genre != nil {
		args = append(args, *filter.Genre)
		conditions = append(conditions, fmt.Sprintf("genres @> ARRAY[$%d::text]", len(args)))
	}

	var qb strings.Builder
	qb.WriteString(`SELECT ` + bookColumns + ` FROM books`)
	if len(conditions) > 0 {
		qb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	qb.WriteString(" ORDER BY created_at, id")

	rows, err := database.QuerierFrom(ctx, r.pool).Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.QuerierFrom(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := database.QuerierFrom(ctx, r.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}
