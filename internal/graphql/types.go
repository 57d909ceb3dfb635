package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
)

type bookResolver struct {
	root *Resolver
	book *book.Book
}

func (b *bookResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(b.book.ID.String())
}

func (b *bookResolver) Title() string {
	return b.book.Title
}

func (b *bookResolver) Published() int32 {
	return int32(b.book.Published)
}

func (b *bookResolver) Genres() []string {
	if b.book.Genres == nil {
		return []string{}
	}
	return b.book.Genres
}

// Author resolves the reference on demand
func (b *bookResolver) Author(ctx context.Context) (*authorResolver, error) {
	a, err := b.root.authors.GetByID(ctx, b.book.AuthorID)
	if err != nil {
		return nil, b.root.fail(ctx, "Book.author", err)
	}
	return &authorResolver{root: b.root, author: a}, nil
}

type authorResolver struct {
	root   *Resolver
	author *author.Author
}

func (a *authorResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(a.author.ID.String())
}

func (a *authorResolver) Name() string {
	return a.author.Name
}

func (a *authorResolver) Born() *int32 {
	if a.author.Born == nil {
		return nil
	}
	born := int32(*a.author.Born)
	return &born
}

// BookCount is computed per author at read time, only when selected
func (a *authorResolver) BookCount(ctx context.Context) (int32, error) {
	n, err := a.root.books.CountByAuthor(ctx, a.author.ID)
	if err != nil {
		return 0, a.root.fail(ctx, "Author.bookCount", err)
	}
	return int32(n), nil
}

func (a *authorResolver) Books(ctx context.Context) (*[]*bookResolver, error) {
	books, err := a.root.books.ListByAuthor(ctx, a.author.ID)
	if err != nil {
		return nil, a.root.fail(ctx, "Author.books", err)
	}
	out := a.root.bookResolvers(books)
	return &out, nil
}

type userResolver struct {
	user *user.User
}

func (u *userResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(u.user.ID.String())
}

func (u *userResolver) Username() string {
	return u.user.Username
}

func (u *userResolver) FavoriteGenre() string {
	return u.user.FavoriteGenre
}

type tokenResolver struct {
	value string
}

func (t *tokenResolver) Value() string {
	return t.value
}
