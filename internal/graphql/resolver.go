package graphql

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/auth"
	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/shared/middleware"
)

// Resolver is the root of both Query and Mutation
type Resolver struct {
	authors author.Service
	books   book.Service
	users   user.Service
	auth    *auth.Service
}

func NewResolver(authors author.Service, books book.Service, users user.Service, authService *auth.Service) *Resolver {
	return &Resolver{
		authors: authors,
		books:   books,
		users:   users,
		auth:    authService,
	}
}

// fail converts err into the error kind clients see. Internal causes are
// logged here because the client only gets a generic message.
func (r *Resolver) fail(ctx context.Context, field string, err error) error {
	normalized := errs.Normalize(err)

	var internal *errs.InternalError
	if errors.As(normalized, &internal) {
		log.Error().
			Err(err).
			Str("field", field).
			Str("request_id", middleware.RequestIDFromContext(ctx)).
			Msg("resolver failed")
	}
	return normalized
}

// ========================================
// QUERIES
// ========================================

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	markRoot(ctx, "bookCount")
	n, err := r.books.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "bookCount", err)
	}
	return int32(n), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	markRoot(ctx, "authorCount")
	n, err := r.authors.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "authorCount", err)
	}
	return int32(n), nil
}

type allBooksArgs struct {
	Author *string
	Genre  *string
}

func (r *Resolver) AllBooks(ctx context.Context, args allBooksArgs) ([]*bookResolver, error) {
	markRoot(ctx, "allBooks")
	books, err := r.books.List(ctx, book.ListRequest{Author: args.Author, Genre: args.Genre})
	if err != nil {
		return nil, r.fail(ctx, "allBooks", err)
	}
	return r.bookResolvers(books), nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorResolver, error) {
	markRoot(ctx, "allAuthors")
	authors, err := r.authors.List(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allAuthors", err)
	}

	out := make([]*authorResolver, 0, len(authors))
	for i := range authors {
		out = append(out, &authorResolver{root: r, author: &authors[i]})
	}
	return out, nil
}

// Me only ever exposes the caller itself
func (r *Resolver) Me(ctx context.Context) *userResolver {
	markRoot(ctx, "me")
	u := auth.CurrentUser(ctx)
	if u == nil {
		return nil
	}
	return &userResolver{user: u}
}

func (r *Resolver) bookResolvers(books []book.Book) []*bookResolver {
	out := make([]*bookResolver, 0, len(books))
	for i := range books {
		out = append(out, &bookResolver{root: r, book: &books[i]})
	}
	return out
}
