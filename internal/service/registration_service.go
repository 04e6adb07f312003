package service

import (
	"context"
	"errors"
	"log"

	"hackreg/internal/cache"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/notification"
	"hackreg/internal/repository"
	"hackreg/internal/storage"
	"hackreg/internal/validator"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationService handles team registration.
type RegistrationService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	receipts   storage.ReceiptStore
	locker     cache.EmailLocker
	stats      cache.StatsCache
	notifier   notification.Notifier
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	teamRepo repository.TeamRepository,
	memberRepo repository.MemberRepository,
	receipts storage.ReceiptStore,
	locker cache.EmailLocker,
	stats cache.StatsCache,
	notifier notification.Notifier,
) *RegistrationService {
	return &RegistrationService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		receipts:   receipts,
		locker:     locker,
		stats:      stats,
		notifier:   notifier,
	}
}

// RegisterTeam validates and persists a new team with its roster and payment receipt.
// The first submitted member becomes the leader. The receipt is uploaded before
// the team is inserted, so a failed insert leaves an orphaned object behind.
func (s *RegistrationService) RegisterTeam(ctx context.Context, identity models.Identity, req *models.RegistrationRequest) (*models.RegistrationResponse, error) {
	if identity.IsZero() {
		return nil, apperrors.ErrUnauthenticated
	}

	reg, issues := validator.ValidateRegistration(req)
	if len(issues) > 0 {
		return nil, apperrors.NewValidationError(issues)
	}

	if _, err := s.teamRepo.FindByOwner(ctx, identity.ID); err == nil {
		return nil, apperrors.ErrTeamAlreadyRegistered
	} else if !errors.Is(err, apperrors.ErrTeamNotFound) {
		return nil, &apperrors.PersistenceError{Op: "look up existing team", Cause: err}
	}

	ownerEmail := models.NormalizeEmail(identity.Email)
	if ownerEmail != "" && reg.Leader().Email != ownerEmail {
		return nil, apperrors.NewValidationError([]apperrors.Issue{{
			Path:    "members.0.email",
			Message: "Team leader email must match your account email",
		}})
	}

	emails := reg.Emails()
	release, err := lockEmails(ctx, s.locker, emails)
	if err != nil {
		return nil, err
	}
	defer release()

	if email, ok := firstDuplicate(emails); ok {
		return nil, &apperrors.DuplicateMemberError{Email: email}
	}
	existing, err := s.memberRepo.FindAnyByEmails(ctx, emails)
	if err == nil {
		return nil, &apperrors.DuplicateMemberError{Email: existing.Email}
	}
	if !errors.Is(err, apperrors.ErrMemberNotFound) {
		return nil, &apperrors.PersistenceError{Op: "check member emails", Cause: err}
	}

	teamID := primitive.NewObjectID()
	key, err := s.receipts.Upload(ctx, teamID.Hex(), reg.Receipt)
	if err != nil {
		return nil, &apperrors.StorageError{Cause: err}
	}

	team := &models.Team{
		ID:                 teamID,
		Name:               reg.TeamName,
		Track:              reg.Track,
		Size:               reg.TeamSize,
		PaymentReference:   reg.UPIReference,
		PaymentReceiptPath: key,
		PaymentStatus:      models.PaymentPending,
		OwnerID:            identity.ID,
		OwnerEmail:         ownerEmail,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, apperrors.ErrTeamAlreadyRegistered) {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "create team", Cause: err}
	}

	members := models.BuildRoster(team.ID, reg.Members)
	if err := s.memberRepo.InsertMany(ctx, members); err != nil {
		s.removeTeam(ctx, team.ID)
		if _, ok := apperrors.IsDuplicateMember(err); ok {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "insert members", Cause: err}
	}

	leader := reg.Leader()
	if err := s.notifier.Send(ctx, notification.Notification{
		To:   leader.Email,
		Kind: notification.KindRegistrationReceived,
		Data: notification.TemplateData{
			LeaderName: leader.Name,
			TeamName:   team.Name,
			TeamID:     team.ID.Hex(),
		},
	}); err != nil {
		log.Printf("Warning: failed to queue registration email for team %s: %v", team.ID.Hex(), err)
	}

	invalidateStats(ctx, s.stats)

	return &models.RegistrationResponse{TeamID: team.ID.Hex()}, nil
}

// removeTeam undoes a partial registration. The batch insert is ordered, so
// members before the failing one are already stored and must go first or
// their emails stay claimed by a team that no longer exists.
func (s *RegistrationService) removeTeam(ctx context.Context, teamID primitive.ObjectID) {
	if err := s.memberRepo.DeleteByTeamID(ctx, teamID); err != nil {
		log.Printf("Warning: failed to remove members of team %s after member insert failure: %v", teamID.Hex(), err)
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		log.Printf("Warning: failed to remove team %s after member insert failure: %v", teamID.Hex(), err)
	}
}

// lockEmails claims the registration lock for emails. A busy lock is passed
// through, any other failure is reported as a PersistenceError.
func lockEmails(ctx context.Context, locker cache.EmailLocker, emails []string) (func(), error) {
	release, err := locker.Lock(ctx, emails)
	if err != nil {
		if errors.Is(err, apperrors.ErrRegistrationInProgress) {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "acquire registration lock", Cause: err}
	}
	return release, nil
}

// firstDuplicate returns the first email submitted more than once.
func firstDuplicate(emails []string) (string, bool) {
	seen := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if _, ok := seen[email]; ok {
			return email, true
		}
		seen[email] = struct{}{}
	}
	return "", false
}

func invalidateStats(ctx context.Context, stats cache.StatsCache) {
	if stats == nil {
		return
	}
	if err := stats.Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate stats cache: %v", err)
	}
}
