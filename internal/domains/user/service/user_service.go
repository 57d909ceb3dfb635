package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/errs"
)

type userService struct {
	repo       user.Repository
	bcryptCost int
}

// NewUserService - bcryptCost outside bcrypt's range falls back to bcrypt.DefaultCost
func NewUserService(repo user.Repository, bcryptCost int) user.Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.NewValidation(err.Error(), req.Args(), err)
	}

	u := &user.User{
		ID:            uuid.New(),
		Username:      req.Username,
		FavoriteGenre: req.FavoriteGenre,
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		u.PasswordHash = &hashed
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, errs.NewValidation("username must be unique", req.Args(), err)
		}
		return nil, err
	}

	log.Info().Str("user_id", created.ID.String()).Msg("user created")
	return created, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, errs.NewNotFound("user", id.String(), err)
	}
	return u, err
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, nil
	}
	return u, err
}
