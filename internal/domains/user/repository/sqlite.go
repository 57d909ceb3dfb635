package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-catalog/internal/domains/user"
	infraDB "library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/database"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) user.Repository {
	return &sqliteRepository{db: db}
}

func recordToUser(rec *infraDB.UserRecord) (*user.User, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", rec.ID, err)
	}
	return &user.User{
		ID:            id,
		Username:      rec.Username,
		FavoriteGenre: rec.FavoriteGenre,
		PasswordHash:  rec.PasswordHash,
		CreatedAt:     rec.CreatedAt,
	}, nil
}

func (r *sqliteRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	rec := infraDB.UserRecord{
		ID:            u.ID.String(),
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
		PasswordHash:  u.PasswordHash,
	}
	if err := database.GormFrom(ctx, r.db).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return recordToUser(&rec)
}

func (r *sqliteRepository) first(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var rec infraDB.UserRecord
	if err := database.GormFrom(ctx, r.db).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return recordToUser(&rec)
}

func (r *sqliteRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *sqliteRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}
