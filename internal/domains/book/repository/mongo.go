package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-catalog/internal/domains/book"
	infraDB "library-catalog/internal/infrastructure/database"
)

type bookDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Published int       `bson:"published"`
	Genres    []string  `bson:"genres"`
	AuthorID  string    `bson:"author_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d bookDocument) toDomain() (*book.Book, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid book id %q: %w", d.ID, err)
	}
	authorID, err := uuid.Parse(d.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q on book %s: %w", d.AuthorID, d.ID, err)
	}
	genres := pq.StringArray(d.Genres)
	if genres == nil {
		genres = pq.StringArray{}
	}
	return &book.Book{
		ID:        id,
		Title:     d.Title,
		Published: d.Published,
		Genres:    genres,
		AuthorID:  authorID,
		CreatedAt: d.CreatedAt,
	}, nil
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) book.Repository {
	return &mongoRepository{collection: db.Collection(infraDB.BooksCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	genres := []string(b.Genres)
	if genres == nil {
		genres = []string{}
	}
	doc := bookDocument{
		ID:        b.ID.String(),
		Title:     b.Title,
		Published: b.Published,
		Genres:    genres,
		AuthorID:  b.AuthorID.String(),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return doc.toDomain()
}

func (r *mongoRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	query := bson.M{}
	if filter.AuthorID != nil {
		query["author_id"] = filter.AuthorID.String()
	}
	if filter.Genre != nil {
		// equality against an array field matches any element
		query["genres"] = *filter.Genre
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}

	books := make([]book.Book, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *mongoRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"author_id": authorID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}
