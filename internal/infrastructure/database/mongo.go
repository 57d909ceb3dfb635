package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	AuthorsCollection = "authors"
	BooksCollection   = "books"
	UsersCollection   = "users"
)

type MongoConfig struct {
	URI          string
	Database     string
	Timeout      time.Duration
	Transactions bool // requires a replica set
}

// MongoDB owns the client and the catalog database handle
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *MongoConfig
}

func NewMongoDB(config *MongoConfig) *MongoDB {
	return &MongoDB{Config: config}
}

// Connect dials, pings and makes sure the unique indexes exist
func (m *MongoDB) Connect(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, m.Config.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.Config.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	m.Client = client
	m.Database = client.Database(m.Config.Database)

	if err := EnsureMongoIndexes(connectCtx, m.Database); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	log.Info().Str("db", m.Config.Database).Bool("transactions", m.Config.Transactions).Msg("[DATABASE] MongoDB ready")
	return nil
}

// EnsureMongoIndexes creates the unique and lookup indexes; existing ones are left alone
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		AuthorsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		BooksCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "genres", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	if m.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(pingCtx, readpref.Primary())
}

func (m *MongoDB) Close() error {
	if m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := m.Client.Disconnect(ctx)
	m.Client = nil
	return err
}
