package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"hackreg/internal/cache"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/notification"
	"hackreg/internal/repository"
	"hackreg/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RosterCSVHeader is the first line of the roster export.
const RosterCSVHeader = "Team Name,Leader Name,Leader Phone,Member Name,Food Pref,Accommodation"

// AdminService handles payment verification and event reporting.
// Callers are expected to have passed the admin gate already.
type AdminService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	receipts   storage.ReceiptStore
	stats      cache.StatsCache
	notifier   notification.Notifier
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	teamRepo repository.TeamRepository,
	memberRepo repository.MemberRepository,
	receipts storage.ReceiptStore,
	stats cache.StatsCache,
	notifier notification.Notifier,
) *AdminService {
	return &AdminService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		receipts:   receipts,
		stats:      stats,
		notifier:   notifier,
	}
}

// VerifyTeamPayment moves a pending team to verified and emails the leader.
// Blank fields of notice are filled from the store.
func (s *AdminService) VerifyTeamPayment(ctx context.Context, teamID primitive.ObjectID, notice *models.VerifyPaymentRequest) error {
	if err := s.transition(ctx, teamID, models.PaymentVerified); err != nil {
		return err
	}

	var n models.VerifyPaymentRequest
	if notice != nil {
		n = *notice
	}
	if err := s.fillNotice(ctx, teamID, &n); err != nil {
		log.Printf("Warning: failed to load verification email details for team %s: %v", teamID.Hex(), err)
	}
	if n.LeaderEmail == "" {
		log.Printf("Warning: no leader email for team %s, skipping verification email", teamID.Hex())
		return nil
	}

	if err := s.notifier.Send(ctx, notification.Notification{
		To:   n.LeaderEmail,
		Kind: notification.KindPaymentVerified,
		Data: notification.TemplateData{
			LeaderName: n.LeaderName,
			TeamName:   n.TeamName,
			TeamID:     teamID.Hex(),
		},
	}); err != nil {
		log.Printf("Warning: failed to queue verification email for team %s: %v", teamID.Hex(), err)
	}

	return nil
}

// RejectTeamPayment moves a pending team to rejected. No email is sent.
func (s *AdminService) RejectTeamPayment(ctx context.Context, teamID primitive.ObjectID) error {
	return s.transition(ctx, teamID, models.PaymentRejected)
}

// transition settles a pending payment. Only a terminal status is a valid target.
func (s *AdminService) transition(ctx context.Context, teamID primitive.ObjectID, to models.PaymentStatus) error {
	if !to.IsTerminal() {
		return apperrors.ErrInvalidStatusTransition
	}

	err := s.teamRepo.UpdateStatus(ctx, teamID, models.PaymentPending, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamNotFound) || errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			return err
		}
		return &apperrors.PersistenceError{Op: "update payment status", Cause: err}
	}

	invalidateStats(ctx, s.stats)
	return nil
}

func (s *AdminService) fillNotice(ctx context.Context, teamID primitive.ObjectID, n *models.VerifyPaymentRequest) error {
	n.TeamName = strings.TrimSpace(n.TeamName)
	n.LeaderName = strings.TrimSpace(n.LeaderName)
	n.LeaderEmail = models.NormalizeEmail(n.LeaderEmail)
	if n.TeamName != "" && n.LeaderName != "" && n.LeaderEmail != "" {
		return nil
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if n.TeamName == "" {
		n.TeamName = team.Name
	}

	members, err := s.memberRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		return err
	}
	details := models.TeamWithMembers{Team: *team, Members: members}
	if leader := details.Leader(); leader != nil {
		if n.LeaderName == "" {
			n.LeaderName = leader.Name
		}
		if n.LeaderEmail == "" {
			n.LeaderEmail = leader.Email
		}
	}
	return nil
}

// ListTeams returns teams with the given payment status, newest first, with
// their live member counts. An empty status lists every team.
func (s *AdminService) ListTeams(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error) {
	teams, err := s.listTeams(ctx, status)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
	}
	counts, err := s.memberRepo.CountByTeamIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		teams[i].MemberCount = counts[teams[i].ID]
	}

	return &models.TeamListResponse{Items: teams}, nil
}

func (s *AdminService) listTeams(ctx context.Context, status models.PaymentStatus) ([]models.Team, error) {
	if status != "" && !status.IsValid() {
		return nil, apperrors.NewValidationError([]apperrors.Issue{{
			Path:    "status",
			Message: "Status must be one of pending, verified, rejected",
		}})
	}
	return s.teamRepo.ListByStatus(ctx, status)
}

// GetTeamDetails returns a team, its roster and a link to its payment receipt.
func (s *AdminService) GetTeamDetails(ctx context.Context, teamID primitive.ObjectID) (*models.TeamWithMembers, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.MemberCount = len(members)

	details := &models.TeamWithMembers{Team: *team, Members: members}
	url, err := s.receipts.URL(ctx, team.PaymentReceiptPath)
	if err != nil {
		log.Printf("Warning: failed to resolve receipt URL for team %s: %v", teamID.Hex(), err)
	} else {
		details.ReceiptURL = url
	}

	return details, nil
}

// Stats returns the dashboard counters, served from cache while fresh.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	if s.stats != nil {
		cached, err := s.stats.Get(ctx)
		if err != nil {
			log.Printf("Warning: failed to read stats cache: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	byStatus, err := s.teamRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	checkedIn, err := s.memberRepo.CountCheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.AdminStats{
		PendingTeams:  byStatus[models.PaymentPending],
		VerifiedTeams: byStatus[models.PaymentVerified],
		RejectedTeams: byStatus[models.PaymentRejected],
		TotalMembers:  members,
		CheckedIn:     checkedIn,
	}
	stats.TotalTeams = stats.PendingTeams + stats.VerifiedTeams + stats.RejectedTeams

	if s.stats != nil {
		if err := s.stats.Set(ctx, stats); err != nil {
			log.Printf("Warning: failed to cache stats: %v", err)
		}
	}

	return stats, nil
}

// ExportRosterCSV renders one row per member of the matching teams. Values are
// joined with plain commas and never quoted, rows are separated by "\n" and
// there is no trailing newline.
func (s *AdminService) ExportRosterCSV(ctx context.Context, status models.PaymentStatus) (string, error) {
	teams, err := s.listTeams(ctx, status)
	if err != nil {
		return "", err
	}

	ids := make([]primitive.ObjectID, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
	}
	members, err := s.memberRepo.FindByTeamIDs(ctx, ids)
	if err != nil {
		return "", err
	}

	rosters := make(map[primitive.ObjectID][]models.Member, len(teams))
	for _, m := range members {
		rosters[m.TeamID] = append(rosters[m.TeamID], m)
	}

	rows := []string{RosterCSVHeader}
	for _, team := range teams {
		roster := models.TeamWithMembers{Team: team, Members: rosters[team.ID]}
		var leaderName, leaderPhone string
		if leader := roster.Leader(); leader != nil {
			leaderName, leaderPhone = leader.Name, leader.Phone
		}
		for _, m := range roster.Members {
			rows = append(rows, strings.Join([]string{
				team.Name,
				leaderName,
				leaderPhone,
				m.Name,
				string(m.FoodPreference),
				yesNo(m.Accommodation),
			}, ","))
		}
	}

	return strings.Join(rows, "\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
