package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-catalog/internal/domains/author"
	infraDB "library-catalog/internal/infrastructure/database"
)

type authorDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Born      *int      `bson:"born,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d authorDocument) toDomain() (*author.Author, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q: %w", d.ID, err)
	}
	return &author.Author{
		ID:        id,
		Name:      d.Name,
		Born:      d.Born,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// mongoRepository implements author.Repository on a mongo collection.
// Passing ctx through keeps operations inside an active session transaction.
type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) author.Repository {
	return &mongoRepository{collection: db.Collection(infraDB.AuthorsCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := authorDocument{
		ID:        a.ID.String(),
		Name:      a.Name,
		Born:      a.Born,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return doc.toDomain()
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*author.Author, error) {
	var doc authorDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return doc.toDomain()
}

func (r *mongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *mongoRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoRepository) List(ctx context.Context) ([]author.Author, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []authorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode authors: %w", err)
	}

	authors := make([]author.Author, 0, len(docs))
	for _, doc := range docs {
		a, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		authors = append(authors, *a)
	}
	return authors, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

func (r *mongoRepository) UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*author.Author, error) {
	update := bson.M{"$set": bson.M{"born": born, "updated_at": time.Now().UTC().Truncate(time.Millisecond)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc authorDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return doc.toDomain()
}
