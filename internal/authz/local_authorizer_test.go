package authz

import (
	"context"
	"errors"
	"testing"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockTeamFinder is a test double for TeamFinder.
type mockTeamFinder struct {
	team  *models.Team
	err   error
	calls int
}

func (m *mockTeamFinder) FindByID(_ context.Context, _ primitive.ObjectID) (*models.Team, error) {
	m.calls++
	return m.team, m.err
}

var (
	leader   = models.Identity{ID: "user-leader", Email: "leader@example.com"}
	admin    = models.Identity{ID: "user-admin", Email: "admin@example.com"}
	stranger = models.Identity{ID: "user-other", Email: "other@example.com"}
)

func TestNewLocalAuthorizer(t *testing.T) {
	finder := &mockTeamFinder{}

	auth := NewLocalAuthorizer(finder, " admin@example.com ")

	require.NotNil(t, auth)
	assert.Equal(t, finder, auth.teamFinder)
	assert.Equal(t, "admin@example.com", auth.adminEmail)
}

func TestLocalAuthorizer_IsAdmin(t *testing.T) {
	auth := NewLocalAuthorizer(&mockTeamFinder{}, "admin@example.com")

	tests := []struct {
		name     string
		identity models.Identity
		expected bool
	}{
		{"exact match", admin, true},
		{"surrounding whitespace", models.Identity{ID: "x", Email: " admin@example.com "}, true},
		{"different case is not a match", models.Identity{ID: "x", Email: "Admin@example.com"}, false},
		{"other email", stranger, false},
		{"empty identity", models.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.IsAdmin(tt.identity))
		})
	}

	t.Run("nobody is admin when unset", func(t *testing.T) {
		unset := NewLocalAuthorizer(&mockTeamFinder{}, "")
		assert.False(t, unset.IsAdmin(models.Identity{ID: "x", Email: ""}))
	})
}

func TestLocalAuthorizer_CanPerform(t *testing.T) {
	teamID := primitive.NewObjectID()
	ctx := context.Background()
	team := &models.Team{ID: teamID, OwnerID: leader.ID, OwnerEmail: leader.Email}

	tests := []struct {
		name     string
		identity models.Identity
		action   string
		expected bool
	}{
		{"leader can update team", leader, ActionTeamUpdate, true},
		{"leader can add members", leader, ActionMemberAdd, true},
		{"leader cannot review payment", leader, ActionPaymentReview, false},
		{"leader cannot check in", leader, ActionCheckIn, false},

		{"admin cannot update team", admin, ActionTeamUpdate, false},
		{"admin cannot add members", admin, ActionMemberAdd, false},
		{"admin has no team-scoped payment review", admin, ActionPaymentReview, false},

		{"stranger cannot update team", stranger, ActionTeamUpdate, false},
		{"stranger cannot add members", stranger, ActionMemberAdd, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewLocalAuthorizer(&mockTeamFinder{team: team}, admin.Email)

			allowed, err := auth.CanPerform(ctx, tt.identity, teamID, tt.action)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
		})
	}

	t.Run("unknown action is denied without a lookup", func(t *testing.T) {
		finder := &mockTeamFinder{team: team}
		auth := NewLocalAuthorizer(finder, admin.Email)

		allowed, err := auth.CanPerform(ctx, leader, teamID, "team:delete")

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, finder.calls)
	})

	t.Run("propagates a missing team", func(t *testing.T) {
		auth := NewLocalAuthorizer(&mockTeamFinder{err: apperrors.ErrTeamNotFound}, admin.Email)

		allowed, err := auth.CanPerform(ctx, leader, teamID, ActionTeamUpdate)

		assert.False(t, allowed)
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		dbErr := errors.New("database connection failed")
		auth := NewLocalAuthorizer(&mockTeamFinder{err: dbErr}, admin.Email)

		allowed, err := auth.CanPerform(ctx, leader, teamID, ActionMemberAdd)

		assert.False(t, allowed)
		assert.Equal(t, dbErr, err)
	})
}

func TestLocalAuthorizer_CanAdminister(t *testing.T) {
	auth := NewLocalAuthorizer(&mockTeamFinder{}, admin.Email)

	tests := []struct {
		name     string
		identity models.Identity
		action   string
		expected bool
	}{
		{"admin can review payment", admin, ActionPaymentReview, true},
		{"admin can check in", admin, ActionCheckIn, true},
		{"admin can view reports", admin, ActionReportView, true},
		{"admin cannot act as a leader", admin, ActionTeamUpdate, false},
		{"admin cannot run unknown actions", admin, "team:delete", false},
		{"leader cannot review payment", leader, ActionPaymentReview, false},
		{"anonymous cannot view reports", models.Identity{}, ActionReportView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.CanAdminister(tt.identity, tt.action))
		})
	}

	t.Run("nobody administers when unset", func(t *testing.T) {
		unset := NewLocalAuthorizer(&mockTeamFinder{}, "")
		assert.False(t, unset.CanAdminister(models.Identity{ID: "x", Email: ""}, ActionReportView))
	})
}

func TestLocalAuthorizer_TeamRole(t *testing.T) {
	teamID := primitive.NewObjectID()
	ctx := context.Background()

	t.Run("the owner is leader even when also admin", func(t *testing.T) {
		team := &models.Team{ID: teamID, OwnerID: admin.ID}
		auth := NewLocalAuthorizer(&mockTeamFinder{team: team}, admin.Email)

		role, err := auth.teamRole(ctx, admin, teamID)

		require.NoError(t, err)
		assert.Equal(t, RoleLeader, role)
	})

	t.Run("the admin holds no role on someone else's team", func(t *testing.T) {
		team := &models.Team{ID: teamID, OwnerID: leader.ID}
		auth := NewLocalAuthorizer(&mockTeamFinder{team: team}, admin.Email)

		role, err := auth.teamRole(ctx, admin, teamID)

		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("returns empty role for anonymous identity without a lookup", func(t *testing.T) {
		finder := &mockTeamFinder{}
		auth := NewLocalAuthorizer(finder, admin.Email)

		role, err := auth.teamRole(ctx, models.Identity{}, teamID)

		require.NoError(t, err)
		assert.Empty(t, role)
		assert.Equal(t, 0, finder.calls)
	})

	t.Run("returns empty role for strangers", func(t *testing.T) {
		team := &models.Team{ID: teamID, OwnerID: leader.ID}
		auth := NewLocalAuthorizer(&mockTeamFinder{team: team}, admin.Email)

		role, err := auth.teamRole(ctx, stranger, teamID)

		require.NoError(t, err)
		assert.Empty(t, role)
	})
}
