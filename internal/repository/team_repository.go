package repository

import (
	"context"
	"errors"
	"time"

	"hackreg/internal/database"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_team_repository.go -package=mocks hackreg/internal/repository TeamRepository

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByOwner(ctx context.Context, ownerID string) (*models.Team, error)
	ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Team, error)
	CountByStatus(ctx context.Context) (map[models.PaymentStatus]int, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields models.TeamFields) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// teamRepository implements TeamRepository using MongoDB.
type teamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *mongo.Database) TeamRepository {
	return &teamRepository{
		collection: db.Collection(database.TeamsCollection),
	}
}

// Create inserts a new team. A preset ID is kept so callers can key
// artifacts by it before the insert.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt

	if team.PaymentStatus == "" {
		team.PaymentStatus = models.PaymentPending
	}

	_, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrTeamAlreadyRegistered
		}
		return err
	}
	return nil
}

// FindByID retrieves a team by ID.
func (r *teamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByOwner retrieves the team created by the given identity.
func (r *teamRepository) FindByOwner(ctx context.Context, ownerID string) (*models.Team, error) {
	return r.findOne(ctx, bson.M{"ownerId": ownerID})
}

func (r *teamRepository) findOne(ctx context.Context, filter bson.M) (*models.Team, error) {
	var team models.Team
	err := r.collection.FindOne(ctx, filter).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// ListByStatus returns teams with the given payment status, newest first.
// An empty status returns every team.
func (r *teamRepository) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Team, error) {
	filter := bson.M{}
	if status != "" {
		filter["paymentStatus"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}

	if teams == nil {
		teams = []models.Team{}
	}

	return teams, nil
}

// CountByStatus returns the number of teams per payment status.
func (r *teamRepository) CountByStatus(ctx context.Context) (map[models.PaymentStatus]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$paymentStatus",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.PaymentStatus `bson:"_id"`
		Count  int                  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[models.PaymentStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// UpdateStatus moves a team from one payment status to another. The update
// only matches while the team is still in the from status, so terminal
// states cannot be left.
func (r *teamRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus) error {
	now := time.Now()
	set := bson.M{
		"paymentStatus": to,
		"updatedAt":     now,
	}
	if to == models.PaymentVerified {
		set["verifiedAt"] = now
	}

	filter := bson.M{
		"_id":           id,
		"paymentStatus": from,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidStatusTransition
	}

	return nil
}

// UpdateFields updates the leader-editable fields of a team.
func (r *teamRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields models.TeamFields) error {
	update := bson.M{
		"$set": bson.M{
			"track":     fields.Track,
			"size":      fields.Size,
			"updatedAt": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrTeamNotFound
	}

	return nil
}

// Delete removes a team. Only used to compensate a failed registration.
func (r *teamRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrTeamNotFound
	}

	return nil
}
