package graphql

import (
	"context"

	"library-catalog/internal/auth"
	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/logger"
)

// ========================================
// MUTATIONS
// ========================================

type addBookArgs struct {
	Title     string
	Author    string
	Published int32
	Genres    []string
}

func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	markRoot(ctx, "addBook")

	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, r.fail(ctx, "addBook", err)
	}

	b, err := r.books.Add(ctx, book.AddBookRequest{
		Title:     args.Title,
		Author:    args.Author,
		Published: int(args.Published),
		Genres:    args.Genres,
	})
	if err != nil {
		return nil, r.fail(ctx, "addBook", err)
	}
	return &bookResolver{root: r, book: b}, nil
}

type editAuthorArgs struct {
	Name      string
	SetBornTo int32
}

func (r *Resolver) EditAuthor(ctx context.Context, args editAuthorArgs) (*authorResolver, error) {
	markRoot(ctx, "editAuthor")

	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, r.fail(ctx, "editAuthor", err)
	}

	a, err := r.authors.SetBirthYear(ctx, author.SetBirthYearRequest{
		Name:      args.Name,
		SetBornTo: int(args.SetBornTo),
	})
	if err != nil {
		return nil, r.fail(ctx, "editAuthor", err)
	}
	return &authorResolver{root: r, author: a}, nil
}

type createUserArgs struct {
	Username      string
	FavoriteGenre string
	Password      *string
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*userResolver, error) {
	markRoot(ctx, "createUser")

	u, err := r.users.Create(ctx, user.CreateUserRequest{
		Username:      args.Username,
		FavoriteGenre: args.FavoriteGenre,
		Password:      args.Password,
	})
	if err != nil {
		return nil, r.fail(ctx, "createUser", err)
	}
	return &userResolver{user: u}, nil
}

type loginArgs struct {
	Username string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*tokenResolver, error) {
	markRoot(ctx, "login")

	token, err := r.auth.Login(ctx, user.LoginRequest{
		Username: args.Username,
		Password: args.Password,
	})
	if err != nil {
		if code := errs.Code(err); code == errs.CodeBadUserInput {
			logger.Warn("login rejected", map[string]interface{}{
				"username":   args.Username,
				"ip":         middleware.ClientIPFromContext(ctx),
				"request_id": middleware.RequestIDFromContext(ctx),
				"code":       code,
			})
		}
		return nil, r.fail(ctx, "login", err)
	}
	return &tokenResolver{value: token}, nil
}
