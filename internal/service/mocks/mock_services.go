// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRegistrationService is a mock implementation of RegistrationServicer.
type MockRegistrationService struct {
	RegisterTeamFunc func(ctx context.Context, identity models.Identity, req *models.RegistrationRequest) (*models.RegistrationResponse, error)
}

func (m *MockRegistrationService) RegisterTeam(ctx context.Context, identity models.Identity, req *models.RegistrationRequest) (*models.RegistrationResponse, error) {
	if m.RegisterTeamFunc != nil {
		return m.RegisterTeamFunc(ctx, identity, req)
	}
	return nil, nil
}

// MockRosterService is a mock implementation of RosterServicer.
type MockRosterService struct {
	GetMyTeamFunc         func(ctx context.Context, identity models.Identity) (*models.TeamWithMembers, error)
	UpdateTeamDetailsFunc func(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.TeamWithMembers, error)
	AddMemberToTeamFunc   func(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.MemberInput) (*models.Member, error)
}

func (m *MockRosterService) GetMyTeam(ctx context.Context, identity models.Identity) (*models.TeamWithMembers, error) {
	if m.GetMyTeamFunc != nil {
		return m.GetMyTeamFunc(ctx, identity)
	}
	return nil, nil
}

func (m *MockRosterService) UpdateTeamDetails(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.TeamWithMembers, error) {
	if m.UpdateTeamDetailsFunc != nil {
		return m.UpdateTeamDetailsFunc(ctx, identity, teamID, req)
	}
	return nil, nil
}

func (m *MockRosterService) AddMemberToTeam(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, req *models.MemberInput) (*models.Member, error) {
	if m.AddMemberToTeamFunc != nil {
		return m.AddMemberToTeamFunc(ctx, identity, teamID, req)
	}
	return nil, nil
}

// MockAdminService is a mock implementation of AdminServicer.
type MockAdminService struct {
	VerifyTeamPaymentFunc func(ctx context.Context, teamID primitive.ObjectID, notice *models.VerifyPaymentRequest) error
	RejectTeamPaymentFunc func(ctx context.Context, teamID primitive.ObjectID) error
	ListTeamsFunc         func(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error)
	GetTeamDetailsFunc    func(ctx context.Context, teamID primitive.ObjectID) (*models.TeamWithMembers, error)
	StatsFunc             func(ctx context.Context) (*models.AdminStats, error)
	ExportRosterCSVFunc   func(ctx context.Context, status models.PaymentStatus) (string, error)
}

func (m *MockAdminService) VerifyTeamPayment(ctx context.Context, teamID primitive.ObjectID, notice *models.VerifyPaymentRequest) error {
	if m.VerifyTeamPaymentFunc != nil {
		return m.VerifyTeamPaymentFunc(ctx, teamID, notice)
	}
	return nil
}

func (m *MockAdminService) RejectTeamPayment(ctx context.Context, teamID primitive.ObjectID) error {
	if m.RejectTeamPaymentFunc != nil {
		return m.RejectTeamPaymentFunc(ctx, teamID)
	}
	return nil
}

func (m *MockAdminService) ListTeams(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockAdminService) GetTeamDetails(ctx context.Context, teamID primitive.ObjectID) (*models.TeamWithMembers, error) {
	if m.GetTeamDetailsFunc != nil {
		return m.GetTeamDetailsFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockAdminService) ExportRosterCSV(ctx context.Context, status models.PaymentStatus) (string, error) {
	if m.ExportRosterCSVFunc != nil {
		return m.ExportRosterCSVFunc(ctx, status)
	}
	return "", nil
}

// MockCheckInService is a mock implementation of CheckInServicer.
type MockCheckInService struct {
	ToggleCheckInFunc     func(ctx context.Context, memberID primitive.ObjectID, current bool) (*models.Member, error)
	FindMemberByEmailFunc func(ctx context.Context, email string) (*models.Member, error)
}

func (m *MockCheckInService) ToggleCheckIn(ctx context.Context, memberID primitive.ObjectID, current bool) (*models.Member, error) {
	if m.ToggleCheckInFunc != nil {
		return m.ToggleCheckInFunc(ctx, memberID, current)
	}
	return nil, nil
}

func (m *MockCheckInService) FindMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	if m.FindMemberByEmailFunc != nil {
		return m.FindMemberByEmailFunc(ctx, email)
	}
	return nil, nil
}
