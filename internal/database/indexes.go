package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index describes one index on a collection.
type Index struct {
	Collection string
	Model      mongo.IndexModel
}

// Indexes returns the indexes the roster store relies on. The unique index on
// members.email backs the one-team-per-email rule against concurrent writers.
func Indexes() []Index {
	return []Index{
		{TeamsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("teams_owner_unique"),
		}},
		{TeamsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "paymentStatus", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("teams_status_created"),
		}},
		{MembersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("members_email_unique"),
		}},
		{MembersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "isLeader", Value: -1}},
			Options: options.Index().SetName("members_team_leader"),
		}},
		{MembersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "checkedIn", Value: 1}},
			Options: options.Index().SetName("members_checked_in"),
		}},
	}
}

// EnsureIndexes creates every index in Indexes. Existing indexes with the same
// definition are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	names := make([]string, 0, len(Indexes()))
	for _, idx := range Indexes() {
		name, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, idx.Model)
		if err != nil {
			return names, fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
		names = append(names, name)
	}
	return names, nil
}
