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

//go:generate mockgen -destination=mocks/mock_member_repository.go -package=mocks hackreg/internal/repository MemberRepository

// MemberRepository defines the interface for member data operations.
type MemberRepository interface {
	InsertMany(ctx context.Context, members []models.Member) error
	Insert(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Member, error)
	FindByTeamIDs(ctx context.Context, teamIDs []primitive.ObjectID) ([]models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindAnyByEmails(ctx context.Context, emails []string) (*models.Member, error)
	CountByTeamID(ctx context.Context, teamID primitive.ObjectID) (int, error)
	CountByTeamIDs(ctx context.Context, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error)
	CountAll(ctx context.Context) (int, error)
	CountCheckedIn(ctx context.Context) (int, error)
	DeleteByTeamID(ctx context.Context, teamID primitive.ObjectID) error
	UpdateCheckIn(ctx context.Context, id primitive.ObjectID, checkedIn bool) error
}

// memberRepository implements MemberRepository using MongoDB.
type memberRepository struct {
	collection *mongo.Collection
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *mongo.Database) MemberRepository {
	return &memberRepository{
		collection: db.Collection(database.MembersCollection),
	}
}

// rosterOrder lists the leader first, then members in insertion order.
var rosterOrder = bson.D{{Key: "isLeader", Value: -1}, {Key: "_id", Value: 1}}

// InsertMany inserts a batch of members. A unique email violation is
// reported as a DuplicateMemberError naming the offending email.
func (r *memberRepository) InsertMany(ctx context.Context, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(members))
	for i := range members {
		members[i].ID = primitive.NewObjectID()
		members[i].Email = models.NormalizeEmail(members[i].Email)
		members[i].CreatedAt = now
		docs[i] = members[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if email, ok := duplicateEmail(err, members); ok {
			return &apperrors.DuplicateMemberError{Email: email}
		}
		return err
	}
	return nil
}

// Insert inserts a single member.
func (r *memberRepository) Insert(ctx context.Context, member *models.Member) error {
	member.ID = primitive.NewObjectID()
	member.Email = models.NormalizeEmail(member.Email)
	member.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &apperrors.DuplicateMemberError{Email: member.Email}
		}
		return err
	}
	return nil
}

// duplicateEmail maps a duplicate key error from a batch insert back to the member email.
func duplicateEmail(err error, members []models.Member) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, we := range bwe.WriteErrors {
			if we.Index >= 0 && we.Index < len(members) {
				return members[we.Index].Email, true
			}
		}
	}
	if len(members) > 0 {
		return members[0].Email, true
	}
	return "", false
}

// FindByID retrieves a member by ID.
func (r *memberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves the member registered with an email, across all teams.
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

// FindAnyByEmails returns one existing member matching any of the emails.
func (r *memberRepository) FindAnyByEmails(ctx context.Context, emails []string) (*models.Member, error) {
	normalized := make([]string, 0, len(emails))
	for _, e := range emails {
		normalized = append(normalized, models.NormalizeEmail(e))
	}
	return r.findOne(ctx, bson.M{"email": bson.M{"$in": normalized}})
}

func (r *memberRepository) findOne(ctx context.Context, filter bson.M) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

// FindByTeamID returns the roster of a team, leader first.
func (r *memberRepository) FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Member, error) {
	return r.find(ctx, bson.M{"teamId": teamID})
}

// FindByTeamIDs returns the members of several teams, leaders first.
func (r *memberRepository) FindByTeamIDs(ctx context.Context, teamIDs []primitive.ObjectID) ([]models.Member, error) {
	if len(teamIDs) == 0 {
		return []models.Member{}, nil
	}
	return r.find(ctx, bson.M{"teamId": bson.M{"$in": teamIDs}})
}

func (r *memberRepository) find(ctx context.Context, filter bson.M) ([]models.Member, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(rosterOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}

	if members == nil {
		members = []models.Member{}
	}

	return members, nil
}

// CountByTeamID returns the number of members in a team.
func (r *memberRepository) CountByTeamID(ctx context.Context, teamID primitive.ObjectID) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountByTeamIDs returns the live member count of each team.
func (r *memberRepository) CountByTeamIDs(ctx context.Context, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	counts := make(map[primitive.ObjectID]int, len(teamIDs))
	if len(teamIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"teamId": bson.M{"$in": teamIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$teamId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TeamID primitive.ObjectID `bson:"_id"`
		Count  int                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TeamID] = row.Count
	}
	return counts, nil
}

// CountAll returns the number of registered members.
func (r *memberRepository) CountAll(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountCheckedIn returns the number of members marked present.
func (r *memberRepository) CountCheckedIn(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"checkedIn": true})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// DeleteByTeamID removes all members of a team.
func (r *memberRepository) DeleteByTeamID(ctx context.Context, teamID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID})
	return err
}

// UpdateCheckIn sets a member's attendance flag. Last write wins.
func (r *memberRepository) UpdateCheckIn(ctx context.Context, id primitive.ObjectID, checkedIn bool) error {
	update := bson.M{"$set": bson.M{"checkedIn": checkedIn}}
	if checkedIn {
		update["$set"].(bson.M)["checkedInAt"] = time.Now()
	} else {
		update["$unset"] = bson.M{"checkedInAt": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}
