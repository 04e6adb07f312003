//go:build integration

// Package integration runs store-level scenarios against a real MongoDB.
//
//	go test -tags=integration ./test/integration/...
package integration

import (
	"sync"
	"testing"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/repository"
	"hackreg/test/fixtures"
	"hackreg/test/integration/testdb"
	"hackreg/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const racers = 8

func TestConcurrentRosters_OneTeamPerEmail(t *testing.T) {
	mc := testdb.SetupMongoDB(t)
	repo := repository.NewMemberRepository(mc.Database)
	ctx := testutil.Context(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     []string
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			teamID := primitive.NewObjectID()
			roster := []models.Member{
				fixtures.NewMember().WithTeamID(teamID).WithEmail("Shared@Example.com").AsLeader().Build(),
				fixtures.NewMember().WithTeamID(teamID).Build(),
			}

			err := repo.InsertMany(ctx, roster)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if dup, ok := apperrors.IsDuplicateMember(err); ok {
				dupes = append(dupes, dup.Email)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, dupes, racers-1)
	for _, email := range dupes {
		assert.Equal(t, "shared@example.com", email)
	}

	member, err := repo.FindByEmail(ctx, "shared@example.com")
	require.NoError(t, err)
	assert.True(t, member.IsLeader)
}

func TestConcurrentTeams_OneTeamPerIdentity(t *testing.T) {
	mc := testdb.SetupMongoDB(t)
	repo := repository.NewTeamRepository(mc.Database)
	ctx := testutil.Context(t)
	owner := models.Identity{ID: "google-oauth2|racer", Email: "racer@example.com"}

	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, fixtures.NewTeam().WithOwner(owner).BuildPtr())
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrTeamAlreadyRegistered)
	}
	assert.Equal(t, 1, created)

	mc.ClearCollections(t)
	_, err := repo.FindByOwner(ctx, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
}
