//go:build api

package api

import (
	"net/http"
	"testing"

	"hackreg/internal/cache"
	"hackreg/internal/database"
	"hackreg/internal/models"
	"hackreg/test/api/testserver"
	"hackreg/test/fixtures"
	"hackreg/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresAdmin(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	paths := []string{
		"/api/v1/admin/teams",
		"/api/v1/admin/stats",
		"/api/v1/admin/export.csv",
		"/api/v1/admin/members?email=asha@example.com",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := testServer.Do(t, testserver.LeaderIdentity, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = testServer.Do(t, models.Identity{}, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdmin_PaymentReview(t *testing.T) {
	t.Run("rejected payment cannot be verified", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		teamID := testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())
		base := "/api/v1/admin/teams/" + teamID.Hex()

		w := testServer.Do(t, testserver.AdminIdentity, http.MethodPost, base+"/reject", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = testServer.Do(t, testserver.AdminIdentity, http.MethodPost, base+"/verify", nil)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("unknown team is not found", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		w := testServer.Do(t, testserver.AdminIdentity, http.MethodPost, "/api/v1/admin/teams/507f1f77bcf86cd799439011/verify", nil)

		assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func TestAdmin_ListAndStats(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	// Ravi leads the second team, so the first one is registered without him.
	quantum := fixtures.NewRegistration().WithLeaderEmail(testserver.LeaderIdentity.Email).Build()
	first := testServer.MustRegister(t, testserver.LeaderIdentity, quantum)
	testServer.MustRegister(t, testserver.OtherIdentity, fixtures.NewRegistration().
		WithTeamName("Byte Busters").
		WithLeaderEmail(testserver.OtherIdentity.Email).
		Build())

	w := testServer.Do(t, testserver.AdminIdentity, http.MethodPost, "/api/v1/admin/teams/"+first.Hex()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/teams?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := testutil.ParseAPIResponse(t, w).Data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Byte Busters", items[0].(map[string]interface{})["name"])

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/teams", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, testutil.ParseAPIResponse(t, w).Data["items"], 2)

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := testutil.ParseAPIResponse(t, w).Data
	assert.Equal(t, float64(2), stats["totalTeams"])
	assert.Equal(t, float64(1), stats["pendingTeams"])
	assert.Equal(t, float64(1), stats["verifiedTeams"])
	assert.Equal(t, float64(4), stats["totalMembers"])

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/teams/"+first.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := testutil.ParseAPIResponse(t, w).Data
	assert.Equal(t, "verified", detail["paymentStatus"])
	assert.Len(t, detail["members"], 2)
}

func TestAdmin_StatsCache(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	ctx := testutil.Context(t)
	teamID := testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())

	// Registration released every email lock it took.
	locks, err := testServer.Redis.Keys(ctx, cache.RegistrationLockKey("*"))
	require.NoError(t, err)
	assert.Empty(t, locks)

	w := testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cached, err := testServer.Redis.KeyExists(ctx, cache.StatsCacheKey)
	require.NoError(t, err)
	assert.True(t, cached, "stats should be cached after a read")

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodPost, "/api/v1/admin/teams/"+teamID.Hex()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cached, err = testServer.Redis.KeyExists(ctx, cache.StatsCacheKey)
	require.NoError(t, err)
	assert.False(t, cached, "verification should invalidate the stats cache")

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), testutil.ParseAPIResponse(t, w).Data["verifiedTeams"])
}

func TestAdmin_IndexesSurviveCleanup(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	names, err := testServer.MongoDB.IndexNames(testutil.Context(t), database.MembersCollection)

	require.NoError(t, err)
	assert.Contains(t, names, "members_email_unique")
}
