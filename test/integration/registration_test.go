//go:build integration

package integration

import (
	"context"
	"testing"

	"hackreg/internal/database"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/notification"
	"hackreg/internal/repository"
	"hackreg/internal/service"
	"hackreg/test/fixtures"
	"hackreg/test/integration/testdb"
	"hackreg/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubReceipts struct{}

func (stubReceipts) Upload(_ context.Context, teamID string, _ models.ReceiptFile) (string, error) {
	return teamID + "_0.png", nil
}

func (stubReceipts) URL(_ context.Context, key string) (string, error) {
	return key, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, []string) (func(), error) {
	return func() {}, nil
}

type noopNotifier struct{}

func (noopNotifier) Send(context.Context, notification.Notification) error {
	return nil
}

// racingMembers lets another team claim an email right after the duplicate check.
type racingMembers struct {
	repository.MemberRepository
	rival *models.Member
}

func (r *racingMembers) FindAnyByEmails(ctx context.Context, emails []string) (*models.Member, error) {
	existing, err := r.MemberRepository.FindAnyByEmails(ctx, emails)
	if r.rival != nil {
		if insErr := r.MemberRepository.Insert(ctx, r.rival); insErr != nil {
			return nil, insErr
		}
		r.rival = nil
	}
	return existing, err
}

func TestRegistration_PartialRosterIsRemoved(t *testing.T) {
	mc := testdb.SetupMongoDB(t)
	ctx := testutil.Context(t)
	teams := repository.NewTeamRepository(mc.Database)
	members := &racingMembers{
		MemberRepository: repository.NewMemberRepository(mc.Database),
		rival:            fixtures.NewMember().WithTeamID(primitive.NewObjectID()).WithEmail("b@x.com").BuildPtr(),
	}
	svc := service.NewRegistrationService(teams, members, stubReceipts{}, noopLocker{}, nil, noopNotifier{})
	owner := models.Identity{ID: "google-oauth2|asha", Email: "a@x.com"}

	registration := func(second string) *models.RegistrationRequest {
		return fixtures.NewRegistration().
			WithMembers(
				fixtures.NewLeaderInput().WithEmail("a@x.com").Build(),
				fixtures.NewMemberInput().WithEmail(second).Build(),
			).
			BuildPtr()
	}

	_, err := svc.RegisterTeam(ctx, owner, registration("b@x.com"))

	dup, ok := apperrors.IsDuplicateMember(err)
	require.True(t, ok, "expected a duplicate member error, got %v", err)
	assert.Equal(t, "b@x.com", dup.Email)

	_, err = teams.FindByOwner(ctx, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	_, err = members.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound, "the leader's email must be free again")
	count, err := mc.Database.Collection(database.MembersCollection).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "only the rival member remains")

	resp, err := svc.RegisterTeam(ctx, owner, registration("c@x.com"))
	require.NoError(t, err)
	teamID, err := primitive.ObjectIDFromHex(resp.TeamID)
	require.NoError(t, err)
	roster, err := members.FindByTeamID(ctx, teamID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}
