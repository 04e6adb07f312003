package service

import (
	"context"
	"errors"
	"testing"

	cachemocks "hackreg/internal/cache/mocks"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	repomocks "hackreg/internal/repository/mocks"
	storagemocks "hackreg/internal/storage/mocks"
	"hackreg/test/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type rosterMocks struct {
	teams    *repomocks.MockTeamRepository
	members  *repomocks.MockMemberRepository
	receipts *storagemocks.MockReceiptStore
	locker   *cachemocks.MockEmailLocker
	stats    *cachemocks.MockStatsCache
}

func newRosterService(t *testing.T) (*RosterService, *rosterMocks) {
	ctrl := gomock.NewController(t)
	m := &rosterMocks{
		teams:    repomocks.NewMockTeamRepository(ctrl),
		members:  repomocks.NewMockMemberRepository(ctrl),
		receipts: storagemocks.NewMockReceiptStore(ctrl),
		locker:   cachemocks.NewMockEmailLocker(ctrl),
		stats:    cachemocks.NewMockStatsCache(ctrl),
	}
	return NewRosterService(m.teams, m.members, m.receipts, m.locker, m.stats), m
}

func TestRosterService_GetMyTeam(t *testing.T) {
	owner := models.Identity{ID: "user-1", Email: "a@x.com"}

	t.Run("returns the team with a derived member count", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).WithSize(2).BuildPtr()
		roster := []models.Member{
			fixtures.NewMember().WithTeamID(team.ID).AsLeader().Build(),
			fixtures.NewMember().WithTeamID(team.ID).Build(),
			fixtures.NewMember().WithTeamID(team.ID).Build(),
		}
		m.teams.EXPECT().FindByOwner(gomock.Any(), owner.ID).Return(team, nil)
		m.members.EXPECT().FindByTeamID(gomock.Any(), team.ID).Return(roster, nil)
		m.receipts.EXPECT().URL(gomock.Any(), team.PaymentReceiptPath).Return("https://receipts.example.com/r.png", nil)

		got, err := svc.GetMyTeam(context.Background(), owner)

		require.NoError(t, err)
		assert.Equal(t, 2, got.Size)
		assert.Equal(t, 3, got.MemberCount)
		assert.Len(t, got.Members, 3)
		assert.Equal(t, "https://receipts.example.com/r.png", got.ReceiptURL)
	})

	t.Run("still returns the team when the receipt link fails", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByOwner(gomock.Any(), owner.ID).Return(team, nil)
		m.members.EXPECT().FindByTeamID(gomock.Any(), team.ID).Return([]models.Member{}, nil)
		m.receipts.EXPECT().URL(gomock.Any(), gomock.Any()).Return("", errors.New("signing failed"))

		got, err := svc.GetMyTeam(context.Background(), owner)

		require.NoError(t, err)
		assert.Empty(t, got.ReceiptURL)
	})

	t.Run("returns not found for an identity without a team", func(t *testing.T) {
		svc, m := newRosterService(t)
		m.teams.EXPECT().FindByOwner(gomock.Any(), owner.ID).Return(nil, apperrors.ErrTeamNotFound)

		got, err := svc.GetMyTeam(context.Background(), owner)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})

	t.Run("returns unauthenticated without an identity", func(t *testing.T) {
		svc, _ := newRosterService(t)

		_, err := svc.GetMyTeam(context.Background(), models.Identity{})

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestRosterService_UpdateTeamDetails(t *testing.T) {
	owner := models.Identity{ID: "user-1", Email: "a@x.com"}

	updateRequest := func() *models.UpdateTeamRequest {
		return &models.UpdateTeamRequest{
			Track:    models.TrackIoT,
			TeamSize: 3,
			Members: []models.MemberInput{
				fixtures.NewLeaderInput().WithEmail("a@x.com").Build(),
				fixtures.NewMemberInput().WithEmail("b@x.com").Build(),
				{},
				fixtures.NewMemberInput().WithEmail("c@x.com").Build(),
			},
		}
	}

	t.Run("replaces the roster and drops blank slots", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()

		gomock.InOrder(
			m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil),
			m.members.EXPECT().DeleteByTeamID(gomock.Any(), team.ID).Return(nil),
			m.teams.EXPECT().UpdateFields(gomock.Any(), team.ID, models.TeamFields{Track: models.TrackIoT, Size: 3}).Return(nil),
			m.members.EXPECT().
				InsertMany(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, members []models.Member) error {
					require.Len(t, members, 3)
					assert.True(t, members[0].IsLeader)
					assert.False(t, members[1].IsLeader)
					assert.Equal(t, "c@x.com", members[2].Email)
					return nil
				}),
		)
		m.stats.EXPECT().Invalidate(gomock.Any()).Return(nil)
		m.members.EXPECT().FindByTeamID(gomock.Any(), team.ID).Return([]models.Member{
			fixtures.NewMember().AsLeader().Build(),
			fixtures.NewMember().Build(),
			fixtures.NewMember().Build(),
		}, nil)

		got, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, updateRequest())

		require.NoError(t, err)
		assert.Equal(t, models.TrackIoT, got.Track)
		assert.Equal(t, 3, got.Size)
		assert.Equal(t, 3, got.MemberCount)
	})

	t.Run("forbids anyone but the owner", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)

		_, err := svc.UpdateTeamDetails(context.Background(), models.Identity{ID: "user-2", Email: "b@x.com"}, team.ID, updateRequest())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("returns not found for an unknown team", func(t *testing.T) {
		svc, m := newRosterService(t)
		id := primitive.NewObjectID()
		m.teams.EXPECT().FindByID(gomock.Any(), id).Return(nil, apperrors.ErrTeamNotFound)

		_, err := svc.UpdateTeamDetails(context.Background(), owner, id, updateRequest())

		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})

	t.Run("requires leader fields before touching the roster", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		req := updateRequest()
		req.Members[0].Branch = ""

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, req)

		verr, ok := apperrors.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "members.0.branch", verr.Issues[0].Path)
	})

	t.Run("rejects an email repeated within the edit before touching the roster", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().DeleteByTeamID(gomock.Any(), gomock.Any()).Times(0)
		req := updateRequest()
		req.Members[3].Email = "A@x.com "

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, req)

		verr, ok := apperrors.IsValidation(err)
		require.True(t, ok, "expected a validation error, got %v", err)
		require.Len(t, verr.Issues, 1)
		assert.Equal(t, "members.2.email", verr.Issues[0].Path)
		_, isDup := apperrors.IsDuplicateMember(err)
		assert.False(t, isDup)
	})

	t.Run("keeps the owner in the leader slot", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().DeleteByTeamID(gomock.Any(), gomock.Any()).Times(0)
		m.teams.EXPECT().UpdateFields(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		req := updateRequest()
		req.Members[0].Email = "stranger@x.com"

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, req)

		verr, ok := apperrors.IsValidation(err)
		require.True(t, ok, "expected a validation error, got %v", err)
		require.Len(t, verr.Issues, 1)
		assert.Equal(t, "members.0.email", verr.Issues[0].Path)
		assert.Equal(t, "Team leader email must match your account email", verr.Issues[0].Message)
	})

	t.Run("matches the owner email case-insensitively", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		gomock.InOrder(
			m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil),
			m.members.EXPECT().DeleteByTeamID(gomock.Any(), team.ID).Return(nil),
			m.teams.EXPECT().UpdateFields(gomock.Any(), team.ID, gomock.Any()).Return(nil),
			m.members.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(nil),
		)
		m.stats.EXPECT().Invalidate(gomock.Any()).Return(nil)
		m.members.EXPECT().FindByTeamID(gomock.Any(), team.ID).Return(nil, nil)
		req := updateRequest()
		req.Members[0].Email = " A@X.com"

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, req)

		require.NoError(t, err)
	})

	t.Run("keeps the deletion when the track update fails", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().DeleteByTeamID(gomock.Any(), team.ID).Return(nil)
		m.teams.EXPECT().UpdateFields(gomock.Any(), team.ID, gomock.Any()).Return(errors.New("not primary"))

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, updateRequest())

		var perr *apperrors.PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "update team", perr.Op)
	})

	t.Run("surfaces a unique email violation on insert", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().DeleteByTeamID(gomock.Any(), team.ID).Return(nil)
		m.teams.EXPECT().UpdateFields(gomock.Any(), team.ID, gomock.Any()).Return(nil)
		m.members.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(&apperrors.DuplicateMemberError{Email: "c@x.com"})

		_, err := svc.UpdateTeamDetails(context.Background(), owner, team.ID, updateRequest())

		dup, ok := apperrors.IsDuplicateMember(err)
		require.True(t, ok)
		assert.Equal(t, "c@x.com", dup.Email)
	})
}

func TestRosterService_AddMemberToTeam(t *testing.T) {
	owner := models.Identity{ID: "user-1", Email: "a@x.com"}

	t.Run("adds a non-leader member without changing the declared size", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).WithSize(2).BuildPtr()
		input := fixtures.NewMemberInput().WithEmail("C@x.com ").Build()
		released := false

		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(2, nil)
		m.locker.EXPECT().Lock(gomock.Any(), []string{"c@x.com"}).Return(func() { released = true }, nil)
		m.members.EXPECT().FindByEmail(gomock.Any(), "c@x.com").Return(nil, apperrors.ErrMemberNotFound)
		m.members.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, member *models.Member) error {
				assert.Equal(t, team.ID, member.TeamID)
				assert.False(t, member.IsLeader)
				assert.Equal(t, "c@x.com", member.Email)
				return nil
			})
		m.stats.EXPECT().Invalidate(gomock.Any()).Return(nil)

		member, err := svc.AddMemberToTeam(context.Background(), owner, team.ID, &input)

		require.NoError(t, err)
		assert.Equal(t, "c@x.com", member.Email)
		assert.True(t, released)
	})

	t.Run("rejects a full team without inserting", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).WithSize(5).BuildPtr()
		input := fixtures.NewMemberInput().Build()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(5, nil)

		_, err := svc.AddMemberToTeam(context.Background(), owner, team.ID, &input)

		assert.ErrorIs(t, err, apperrors.ErrTeamFull)
	})

	t.Run("forbids anyone but the owner", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		input := fixtures.NewMemberInput().Build()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)

		_, err := svc.AddMemberToTeam(context.Background(), models.Identity{ID: "user-2"}, team.ID, &input)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("classifies absent fields as missing", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		input := fixtures.NewMemberInput().WithPhone("").Build()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(2, nil)

		_, err := svc.AddMemberToTeam(context.Background(), owner, team.ID, &input)

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	})

	t.Run("rejects an email registered with another team", func(t *testing.T) {
		svc, m := newRosterService(t)
		team := fixtures.NewTeam().WithOwner(owner).BuildPtr()
		input := fixtures.NewMemberInput().WithEmail("taken@x.com").Build()
		m.teams.EXPECT().FindByID(gomock.Any(), team.ID).Return(team, nil)
		m.members.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(2, nil)
		m.locker.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(func() {}, nil)
		m.members.EXPECT().FindByEmail(gomock.Any(), "taken@x.com").Return(fixtures.NewMember().WithEmail("taken@x.com").BuildPtr(), nil)

		_, err := svc.AddMemberToTeam(context.Background(), owner, team.ID, &input)

		dup, ok := apperrors.IsDuplicateMember(err)
		require.True(t, ok)
		assert.Equal(t, "taken@x.com", dup.Email)
	})
}

func TestFilledSlots(t *testing.T) {
	slots := []models.MemberInput{
		{Name: "One"}, {Name: "  "}, {Name: "Three"}, {}, {Name: "Five"}, {Name: "Six"},
	}

	filled := filledSlots(slots)

	require.Len(t, filled, 3)
	assert.Equal(t, "One", filled[0].Name)
	assert.Equal(t, "Three", filled[1].Name)
	assert.Equal(t, "Five", filled[2].Name)
}
