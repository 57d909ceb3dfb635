package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library-catalog/internal/domains/book"
	infraDB "library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/database"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) book.Repository {
	return &sqliteRepository{db: db}
}

func recordToBook(rec *infraDB.BookRecord) (*book.Book, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid book id %q: %w", rec.ID, err)
	}
	authorID, err := uuid.Parse(rec.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q on book %s: %w", rec.AuthorID, rec.ID, err)
	}
	genres := pq.StringArray(rec.Genres)
	if genres == nil {
		genres = pq.StringArray{}
	}
	return &book.Book{
		ID:        id,
		Title:     rec.Title,
		Published: rec.Published,
		Genres:    genres,
		AuthorID:  authorID,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *sqliteRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	genres := []string(b.Genres)
	if genres == nil {
		genres = []string{}
	}
	rec := infraDB.BookRecord{
		ID:        b.ID.String(),
		Title:     b.Title,
		Published: b.Published,
		Genres:    genres,
		AuthorID:  b.AuthorID.String(),
	}
	if err := database.GormFrom(ctx, r.db).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
			return nil, fmt.Errorf("%w: %v", book.ErrInvalidBook, err)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return recordToBook(&rec)
}

func (r *sqliteRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	q := database.GormFrom(ctx, r.db).Model(&infraDB.BookRecord{})
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", filter.AuthorID.String())
	}
	if filter.Genre != nil {
		q = q.Where("EXISTS (SELECT 1 FROM json_each(books.genres) WHERE json_each.value = ?)", *filter.Genre)
	}

	var recs []infraDB.BookRecord
	if err := q.Order("created_at, rowid").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]book.Book, 0, len(recs))
	for i := range recs {
		b, err := recordToBook(&recs[i])
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.GormFrom(ctx, r.db).Model(&infraDB.BookRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := database.GormFrom(ctx, r.db).Model(&infraDB.BookRecord{}).
		Where("author_id = ?", authorID.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}
