package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/domains/author"
)

// AddBookRequest - addBook(title, author, published, genres)
type AddBookRequest struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength).Error("title must be at most 255 characters"),
		),
		validation.Field(&r.Author, author.NameRules()...),
		validation.Field(&r.Published,
			validation.Min(MinPublishedYear).Error("published year is out of range"),
			validation.Max(MaxPublishedYear).Error("published year is out of range"),
		),
		validation.Field(&r.Genres, validation.Each(
			validation.Required.Error("genre must not be blank"),
			validation.RuneLength(1, MaxGenreLength).Error("genre must be at most 100 characters"),
		)),
	)
}

// Args echoes the request for ValidationError.InvalidArgs
func (r AddBookRequest) Args() map[string]interface{} {
	genres := r.Genres
	if genres == nil {
		genres = []string{}
	}
	return map[string]interface{}{
		"title":     r.Title,
		"author":    r.Author,
		"published": r.Published,
		"genres":    genres,
	}
}

// ListRequest - allBooks(author, genre)
type ListRequest struct {
	Author *string
	Genre  *string
}
