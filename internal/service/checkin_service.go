package service

import (
	"context"
	"strings"

	"hackreg/internal/cache"
	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckInService handles on-site attendance.
type CheckInService struct {
	memberRepo repository.MemberRepository
	stats      cache.StatsCache
}

// NewCheckInService creates a new CheckInService.
func NewCheckInService(memberRepo repository.MemberRepository, stats cache.StatsCache) *CheckInService {
	return &CheckInService{memberRepo: memberRepo, stats: stats}
}

// ToggleCheckIn writes the negation of current, the status the operator saw.
// Payment status is not consulted and concurrent toggles are last write wins.
func (s *CheckInService) ToggleCheckIn(ctx context.Context, memberID primitive.ObjectID, current bool) (*models.Member, error) {
	if err := s.memberRepo.UpdateCheckIn(ctx, memberID, !current); err != nil {
		return nil, err
	}

	invalidateStats(ctx, s.stats)

	return s.memberRepo.FindByID(ctx, memberID)
}

// FindMemberByEmail looks up a participant at the check-in desk.
func (s *CheckInService) FindMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError([]apperrors.Issue{{Path: "email", Message: "Email is required"}})
	}
	return s.memberRepo.FindByEmail(ctx, email)
}
