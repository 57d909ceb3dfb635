package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactor implements Transactor with mongo sessions.
// Multi-document transactions need a replica set; with transactions disabled
// fn runs directly and unique indexes remain the only guard.
type MongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

func NewMongoTransactor(client *mongo.Client, enabled bool) *MongoTransactor {
	return &MongoTransactor{client: client, enabled: enabled}
}

func (t *MongoTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
