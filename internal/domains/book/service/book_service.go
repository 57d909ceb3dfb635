package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/errs"
	"library-catalog/pkg/database"
)

type bookService struct {
	repo    book.Repository
	authors author.Service
	tx      database.Transactor
}

func NewBookService(repo book.Repository, authors author.Service, tx database.Transactor) book.Service {
	return &bookService{
		repo:    repo,
		authors: authors,
		tx:      tx,
	}
}

func (s *bookService) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *bookService) List(ctx context.Context, req book.ListRequest) ([]book.Book, error) {
	filter := book.Filter{Genre: req.Genre}

	if req.Author != nil {
		a, err := s.authors.GetByName(ctx, *req.Author)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return []book.Book{}, nil
		}
		filter.AuthorID = &a.ID
	}

	return s.repo.List(ctx, filter)
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	return s.repo.List(ctx, book.Filter{AuthorID: &authorID})
}

func (s *bookService) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	count, err := s.repo.CountByAuthor(ctx, authorID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Add runs author find-or-create and the book insert in one transaction.
// The author step completes before the book step starts; a failure in
// either rolls both back.
func (s *bookService) Add(ctx context.Context, req book.AddBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.NewValidation(err.Error(), req.Args(), err)
	}

	genres := pq.StringArray(req.Genres)
	if genres == nil {
		genres = pq.StringArray{}
	}

	var created *book.Book
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.authors.FindOrCreate(ctx, req.Author)
		if err != nil {
			return err
		}

		b, err := s.repo.Create(ctx, &book.Book{
			ID:        uuid.New(),
			Title:     req.Title,
			Published: req.Published,
			Genres:    genres,
			AuthorID:  a.ID,
		})
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			return nil, errs.NewValidation(validationErr.Message, req.Args(), err)
		}
		if errors.Is(err, book.ErrInvalidBook) {
			return nil, errs.NewValidation(err.Error(), req.Args(), err)
		}
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	log.Info().
		Str("book_id", created.ID.String()).
		Str("author_id", created.AuthorID.String()).
		Msg("book added")
	return created, nil
}
