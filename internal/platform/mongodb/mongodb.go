// Package mongodb connects to MongoDB and bootstraps the indexes the document adapters rely on.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names shared by the feature adapters.
const (
	UsersCollection     = "Users"
	PipelinesCollection = "Pipelines"
	JobsCollection      = "Jobs"
)

// Connect opens a client for uri and verifies it with a primary ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	slog.Info("MongoDB connection successful")
	return client, nil
}

// indexSpecs lists the indexes per collection.
// Users carry unique email and username; pipelines and jobs are always filtered by owner.
func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		PipelinesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		JobsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "stage", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the indexes if missing. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexSpecs() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Pinger adapts a client to the health check contract.
type Pinger struct {
	Client *mongo.Client
}

// Ping checks the primary is reachable.
func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
