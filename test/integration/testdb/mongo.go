//go:build integration

// Package testdb starts the MongoDB instance used by store-level integration tests.
package testdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hackreg/internal/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContainer wraps a MongoDB testcontainer with the roster indexes applied.
type MongoContainer struct {
	Container *mongodb.MongoDBContainer
	Client    *mongo.Client
	Database  *mongo.Database
}

// SetupMongoDB starts MongoDB, creates a fresh database and ensures the
// unique indexes exist. Everything is torn down when t finishes.
func SetupMongoDB(t *testing.T) *MongoContainer {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "failed to start MongoDB container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get connection string")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err, "failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, client.Ping(ctx, nil), "failed to ping MongoDB")

	db := client.Database(fmt.Sprintf("test_%d", time.Now().UnixNano()))
	_, err = database.EnsureIndexes(ctx, db)
	require.NoError(t, err, "failed to create indexes")

	return &MongoContainer{
		Container: container,
		Client:    client,
		Database:  db,
	}
}

// ClearCollections removes every team and member while keeping the indexes.
func (mc *MongoContainer) ClearCollections(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{database.TeamsCollection, database.MembersCollection} {
		_, err := mc.Database.Collection(name).DeleteMany(ctx, bson.M{})
		require.NoError(t, err, "failed to clear %s", name)
	}
}
