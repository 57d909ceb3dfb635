package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-catalog/internal/domains/author"
	infraDB "library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/database"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository - embedded store used in development and tests
func NewSQLiteRepository(db *gorm.DB) author.Repository {
	return &sqliteRepository{db: db}
}

func recordToAuthor(rec *infraDB.AuthorRecord) (*author.Author, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q: %w", rec.ID, err)
	}
	return &author.Author{
		ID:        id,
		Name:      rec.Name,
		Born:      rec.Born,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *sqliteRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	rec := infraDB.AuthorRecord{
		ID:   a.ID.String(),
		Name: a.Name,
		Born: a.Born,
	}
	if err := database.GormFrom(ctx, r.db).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return recordToAuthor(&rec)
}

func (r *sqliteRepository) first(ctx context.Context, query string, arg interface{}) (*author.Author, error) {
	var rec infraDB.AuthorRecord
	if err := database.GormFrom(ctx, r.db).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return recordToAuthor(&rec)
}

func (r *sqliteRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *sqliteRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *sqliteRepository) List(ctx context.Context) ([]author.Author, error) {
	var recs []infraDB.AuthorRecord
	if err := database.GormFrom(ctx, r.db).Order("created_at, rowid").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors := make([]author.Author, 0, len(recs))
	for i := range recs {
		a, err := recordToAuthor(&recs[i])
		if err != nil {
			return nil, err
		}
		authors = append(authors, *a)
	}
	return authors, nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.GormFrom(ctx, r.db).Model(&infraDB.AuthorRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*author.Author, error) {
	db := database.GormFrom(ctx, r.db)

	res := db.Model(&infraDB.AuthorRecord{}).Where("id = ?", id.String()).Update("born", born)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update author: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, author.ErrAuthorNotFound
	}
	return r.FindByID(ctx, id)
}
