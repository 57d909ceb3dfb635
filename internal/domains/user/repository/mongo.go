package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"library-catalog/internal/domains/user"
	infraDB "library-catalog/internal/infrastructure/database"
)

type userDocument struct {
	ID            string    `bson:"_id"`
	Username      string    `bson:"username"`
	FavoriteGenre string    `bson:"favorite_genre"`
	PasswordHash  *string   `bson:"password_hash,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (d userDocument) toDomain() (*user.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", d.ID, err)
	}
	return &user.User{
		ID:            id,
		Username:      d.Username,
		FavoriteGenre: d.FavoriteGenre,
		PasswordHash:  d.PasswordHash,
		CreatedAt:     d.CreatedAt,
	}, nil
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) user.Repository {
	return &mongoRepository{collection: db.Collection(infraDB.UsersCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	doc := userDocument{
		ID:            u.ID.String(),
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
		PasswordHash:  u.PasswordHash,
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, user.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return doc.toDomain()
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toDomain()
}

func (r *mongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *mongoRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}
