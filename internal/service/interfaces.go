// Package service contains business logic for the application.
package service

import (
	"context"

	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationServicer defines the interface for team registration.
type RegistrationServicer interface {
	RegisterTeam(ctx context.Context, identity models.Identity, req *models.RegistrationRequest) (*models.RegistrationResponse, error)
}

// RosterServicer defines the interface for leader-driven roster operations.
type RosterServicer interface {
	GetMyTeam(ctx context.Context, identity models.Identity) (*models.TeamWithMembers, error)
	UpdateTeamDetails(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.TeamWithMembers, error)
	AddMemberToTeam(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.MemberInput) (*models.Member, error)
}

// AdminServicer defines the interface for payment verification and reporting.
type AdminServicer interface {
	VerifyTeamPayment(ctx context.Context, teamID primitive.ObjectID, notice *models.VerifyPaymentRequest) error
	RejectTeamPayment(ctx context.Context, teamID primitive.ObjectID) error
	ListTeams(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error)
	GetTeamDetails(ctx context.Context, teamID primitive.ObjectID) (*models.TeamWithMembers, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
	ExportRosterCSV(ctx context.Context, status models.PaymentStatus) (string, error)
}

// CheckInServicer defines the interface for on-site attendance.
type CheckInServicer interface {
	ToggleCheckIn(ctx context.Context, memberID primitive.ObjectID, current bool) (*models.Member, error)
	FindMemberByEmail(ctx context.Context, email string) (*models.Member, error)
}

// Ensure concrete types implement interfaces
var (
	_ RegistrationServicer = (*RegistrationService)(nil)
	_ RosterServicer       = (*RosterService)(nil)
	_ AdminServicer        = (*AdminService)(nil)
	_ CheckInServicer      = (*CheckInService)(nil)
)
