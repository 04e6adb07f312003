//go:build api

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"hackreg/internal/models"
	"hackreg/test/api/testserver"
	"hackreg/test/fixtures"
	"hackreg/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantumRegistration() models.RegistrationRequest {
	return fixtures.NewRegistration().
		WithMembers(
			fixtures.NewLeaderInput().WithName("Asha Rao").WithEmail("asha@example.com").Build(),
			fixtures.NewMemberInput().WithName("Ravi Kumar").WithEmail("ravi@example.com").WithFood(models.FoodNonVeg).WithAccommodation().Build(),
		).
		Build()
}

func waitForEmails(t *testing.T, n int) []models.Email {
	t.Helper()

	require.Eventually(t, func() bool {
		return len(testServer.Mailer.Sent()) >= n
	}, 5*time.Second, 20*time.Millisecond, "expected %d emails", n)
	return testServer.Mailer.Sent()
}

func TestRegistration_FullLifecycle(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	ctx := context.Background()

	teamID := testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())

	// Receipt landed in the bucket under the team's ID.
	team, err := testServer.TeamRepo.FindByID(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, team.PaymentStatus)
	assert.True(t, strings.HasPrefix(team.PaymentReceiptPath, teamID.Hex()+"_"))
	contentType, ok := testServer.MinIO.ObjectContentType(ctx, team.PaymentReceiptPath)
	require.True(t, ok, "receipt object should exist")
	assert.Equal(t, "image/png", contentType)
	stored, err := testServer.MinIO.ReadObject(ctx, team.PaymentReceiptPath)
	require.NoError(t, err)
	assert.Equal(t, fixtures.NewReceipt().Data, stored)

	// Leader sees the dashboard.
	w := testServer.Do(t, testserver.LeaderIdentity, http.MethodGet, "/api/v1/teams/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.ParseAPIResponse(t, w)
	assert.Equal(t, true, resp.Data["registered"])
	dashboard := resp.Data["team"].(map[string]interface{})
	assert.Equal(t, "Quantum", dashboard["name"])
	assert.Equal(t, float64(2), dashboard["memberCount"])
	assert.NotEmpty(t, dashboard["receiptUrl"])

	// Admin verifies; the leader gets the confirmation email.
	testServer.Mailer.Reset()
	w = testServer.Do(t, testserver.AdminIdentity, http.MethodPost, "/api/v1/admin/teams/"+teamID.Hex()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	emails := waitForEmails(t, 1)
	assert.Equal(t, "asha@example.com", emails[0].To)
	assert.Equal(t, "Payment Verified: Quantum", emails[0].Subject)

	team, err = testServer.TeamRepo.FindByID(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVerified, team.PaymentStatus)
	assert.NotNil(t, team.VerifiedAt)

	// Desk looks up Ravi and checks him in.
	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/members?email=RAVI@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	memberID := testserver.GetIDFromResponse(t, w, "id")

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodPost, "/api/v1/admin/members/"+memberID+"/check-in",
		map[string]bool{"currentStatus": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, testutil.ParseAPIResponse(t, w).Data["checkedIn"])

	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := testutil.ParseAPIResponse(t, w).Data
	assert.Equal(t, float64(1), stats["verifiedTeams"])
	assert.Equal(t, float64(2), stats["totalMembers"])
	assert.Equal(t, float64(1), stats["checkedIn"])

	// Export the verified roster.
	w = testServer.Do(t, testserver.AdminIdentity, http.MethodGet, "/api/v1/admin/export.csv?status=verified", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "roster-verified.csv")
	assert.Equal(t, strings.Join([]string{
		"Team Name,Leader Name,Leader Phone,Member Name,Food Pref,Accommodation",
		"Quantum,Asha Rao,9876543210,Asha Rao,Veg,No",
		"Quantum,Asha Rao,9876543210,Ravi Kumar,NonVeg,Yes",
	}, "\n"), w.Body.String())
}

func TestRegistration_SendsReceivedEmail(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())

	emails := waitForEmails(t, 1)
	assert.Equal(t, "asha@example.com", emails[0].To)
	assert.Equal(t, "Registration received: Quantum", emails[0].Subject)
}

func TestRegistration_Rejections(t *testing.T) {
	t.Run("second registration by the same identity is rejected", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())

		again := fixtures.NewRegistration().WithTeamName("Quantum Two").Build()
		w := testServer.Register(t, testserver.LeaderIdentity, again, again.Receipt)

		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("email already on another team is rejected", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		testServer.MustRegister(t, testserver.LeaderIdentity, quantumRegistration())

		clash := fixtures.NewRegistration().
			WithTeamName("Byte Busters").
			WithMembers(
				fixtures.NewLeaderInput().WithEmail("ravi@example.com").Build(),
				fixtures.NewMemberInput().Build(),
			).
			Build()
		w := testServer.Register(t, testserver.OtherIdentity, clash, clash.Receipt)

		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Contains(t, testutil.ParseAPIResponse(t, w).Error, "ravi@example.com")

		_, err := testServer.TeamRepo.FindByOwner(context.Background(), testserver.OtherIdentity.ID)
		assert.Error(t, err, "no team should be stored for the rejected registration")
	})

	t.Run("invalid payload writes nothing", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		ctx := context.Background()

		bad := fixtures.NewRegistration().WithTeamName("Q").WithUPIReference("123").Build()
		w := testServer.Register(t, testserver.LeaderIdentity, bad, bad.Receipt)

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.NotEmpty(t, testutil.ParseAPIResponse(t, w).Issues)

		count, err := testServer.MinIO.CountObjects(ctx)
		require.NoError(t, err)
		assert.Zero(t, count, "no receipt should be uploaded")
		total, err := testServer.MemberRepo.CountAll(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("missing receipt is a validation failure", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		w := testServer.Register(t, testserver.LeaderIdentity, quantumRegistration(), nil)

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		resp := testutil.ParseAPIResponse(t, w)
		var paths []string
		for _, issue := range resp.Issues {
			paths = append(paths, issue["path"].(string))
		}
		assert.Contains(t, paths, "receipt")
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := testServer.Do(t, models.Identity{}, http.MethodPost, "/api/v1/registrations", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMyTeam_NotRegistered(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	w := testServer.Do(t, testserver.OtherIdentity, http.MethodGet, "/api/v1/teams/me", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.ParseAPIResponse(t, w)
	assert.Equal(t, false, resp.Data["registered"])
	assert.Nil(t, resp.Data["team"])
}
