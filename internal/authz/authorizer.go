// Package authz provides authorization interfaces and implementations.
package authz

import (
	"context"

	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=mocks/mock_authorizer.go -package=mocks hackreg/internal/authz Authorizer

// Team-scoped actions, granted by ownership of the team.
const (
	ActionTeamUpdate = "team:update"
	ActionMemberAdd  = "member:add"
)

// Event-wide actions, granted to the administrator.
const (
	ActionPaymentReview = "payment:review"
	ActionCheckIn       = "member:check_in"
	ActionReportView    = "report:view"
)

// Roles an identity can hold.
const (
	RoleLeader = "leader"
	RoleAdmin  = "admin"
)

// Authorizer defines the interface for authorization checks.
type Authorizer interface {
	// CanPerform checks if an identity can perform a team-scoped action on a team.
	CanPerform(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, action string) (bool, error)

	// CanAdminister checks if an identity can perform an event-wide action.
	CanAdminister(identity models.Identity, action string) bool
}
