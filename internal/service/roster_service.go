package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"hackreg/internal/cache"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/repository"
	"hackreg/internal/storage"
	"hackreg/internal/validator"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RosterService handles the leader's view and edits of their own team.
type RosterService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	receipts   storage.ReceiptStore
	locker     cache.EmailLocker
	stats      cache.StatsCache
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	teamRepo repository.TeamRepository,
	memberRepo repository.MemberRepository,
	receipts storage.ReceiptStore,
	locker cache.EmailLocker,
	stats cache.StatsCache,
) *RosterService {
	return &RosterService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		receipts:   receipts,
		locker:     locker,
		stats:      stats,
	}
}

// GetMyTeam returns the team owned by identity with its roster and a link to
// the submitted receipt.
func (s *RosterService) GetMyTeam(ctx context.Context, identity models.Identity) (*models.TeamWithMembers, error) {
	if identity.IsZero() {
		return nil, apperrors.ErrUnauthenticated
	}

	team, err := s.teamRepo.FindByOwner(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	details, err := s.withMembers(ctx, team)
	if err != nil {
		return nil, err
	}

	url, err := s.receipts.URL(ctx, team.PaymentReceiptPath)
	if err != nil {
		log.Printf("Warning: failed to resolve receipt URL for team %s: %v", team.ID.Hex(), err)
	} else {
		details.ReceiptURL = url
	}

	return details, nil
}

// UpdateTeamDetails replaces the track, declared size and roster of a team.
// Existing members are deleted before the new roster is inserted, and a failing
// step leaves the earlier steps applied. Member IDs are not preserved.
// The leader slot must keep the owner's email.
func (s *RosterService) UpdateTeamDetails(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.TeamWithMembers, error) {
	team, err := s.ownedTeam(ctx, identity, teamID)
	if err != nil {
		return nil, err
	}

	var update models.UpdateTeamRequest
	if req != nil {
		update = *req
		update.Members = filledSlots(req.Members)
	}

	members, issues := validator.ValidateRosterUpdate(&update)
	if len(issues) > 0 {
		return nil, apperrors.NewValidationError(issues)
	}
	if team.OwnerEmail != "" && members[0].Email != models.NormalizeEmail(team.OwnerEmail) {
		return nil, apperrors.NewValidationError([]apperrors.Issue{{
			Path:    "members.0.email",
			Message: "Team leader email must match your account email",
		}})
	}

	if err := s.memberRepo.DeleteByTeamID(ctx, team.ID); err != nil {
		return nil, &apperrors.PersistenceError{Op: "delete members", Cause: err}
	}

	fields := models.TeamFields{Track: update.Track, Size: update.TeamSize}
	if err := s.teamRepo.UpdateFields(ctx, team.ID, fields); err != nil {
		return nil, &apperrors.PersistenceError{Op: "update team", Cause: err}
	}

	if err := s.memberRepo.InsertMany(ctx, models.BuildRoster(team.ID, members)); err != nil {
		if _, ok := apperrors.IsDuplicateMember(err); ok {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "insert members", Cause: err}
	}

	invalidateStats(ctx, s.stats)

	team.Track = fields.Track
	team.Size = fields.Size
	return s.withMembers(ctx, team)
}

// AddMemberToTeam appends one non-leader member. The declared size is left as is.
func (s *RosterService) AddMemberToTeam(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.MemberInput) (*models.Member, error) {
	team, err := s.ownedTeam(ctx, identity, teamID)
	if err != nil {
		return nil, err
	}

	count, err := s.memberRepo.CountByTeamID(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxTeamSize {
		return nil, apperrors.ErrTeamFull
	}

	if req == nil {
		return nil, apperrors.ErrMissingFields
	}
	input, err := validator.ValidateMember(*req)
	if err != nil {
		return nil, err
	}

	release, err := lockEmails(ctx, s.locker, []string{input.Email})
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.memberRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, &apperrors.DuplicateMemberError{Email: existing.Email}
	}
	if !errors.Is(err, apperrors.ErrMemberNotFound) {
		return nil, &apperrors.PersistenceError{Op: "check member emails", Cause: err}
	}

	member := input.ToMember(team.ID, false)
	if err := s.memberRepo.Insert(ctx, &member); err != nil {
		if _, ok := apperrors.IsDuplicateMember(err); ok {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "insert member", Cause: err}
	}

	invalidateStats(ctx, s.stats)

	return &member, nil
}

// ownedTeam loads a team and checks that identity created it.
func (s *RosterService) ownedTeam(ctx context.Context, identity models.Identity, teamID primitive.ObjectID) (*models.Team, error) {
	if identity.IsZero() {
		return nil, apperrors.ErrUnauthenticated
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.OwnerID != identity.ID {
		return nil, apperrors.ErrForbidden
	}

	return team, nil
}

func (s *RosterService) withMembers(ctx context.Context, team *models.Team) (*models.TeamWithMembers, error) {
	members, err := s.memberRepo.FindByTeamID(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	team.MemberCount = len(members)
	return &models.TeamWithMembers{Team: *team, Members: members}, nil
}

// filledSlots keeps the first MaxTeamSize slots and drops the ones left without a name.
func filledSlots(slots []models.MemberInput) []models.MemberInput {
	if len(slots) > models.MaxTeamSize {
		slots = slots[:models.MaxTeamSize]
	}
	filled := make([]models.MemberInput, 0, len(slots))
	for _, slot := range slots {
		if strings.TrimSpace(slot.Name) == "" {
			continue
		}
		filled = append(filled, slot)
	}
	return filled
}
