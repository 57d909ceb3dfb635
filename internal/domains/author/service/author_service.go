package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared/errs"
)

// authorService implements author.Service
type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, author.ErrAuthorNotFound) {
		return nil, errs.NewNotFound("author", id.String(), err)
	}
	return a, err
}

func (s *authorService) GetByName(ctx context.Context, name string) (*author.Author, error) {
	a, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, author.ErrAuthorNotFound) {
		return nil, nil
	}
	return a, err
}

func (s *authorService) FindOrCreate(ctx context.Context, name string) (*author.Author, error) {
	args := map[string]interface{}{"author": name}

	if err := validation.Validate(name, author.NameRules()...); err != nil {
		return nil, errs.NewValidation(err.Error(), args, err)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &author.Author{
		ID:   uuid.New(),
		Name: name,
	})
	if err != nil {
		if errors.Is(err, author.ErrDuplicateName) {
			// Another request created the same name between our lookup and insert
			log.Warn().Str("author", name).Msg("author create lost a concurrent race")
			return nil, errs.NewValidation("author name must be unique", args, err)
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info().Str("author_id", created.ID.String()).Msg("author created")
	return created, nil
}

func (s *authorService) SetBirthYear(ctx context.Context, req author.SetBirthYearRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.NewValidation(err.Error(), req.Args(), err)
	}

	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, errs.NewNotFound("author", req.Name, err)
		}
		return nil, err
	}

	updated, err := s.repo.UpdateBorn(ctx, existing.ID, req.SetBornTo)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, errs.NewNotFound("author", req.Name, err)
		}
		return nil, err
	}
	return updated, nil
}
