package authz

import (
	"context"
	"strings"

	"hackreg/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamFinder is the interface required by LocalAuthorizer to look up team ownership.
type TeamFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
}

// LocalAuthorizer implements Authorizer from team ownership and a single
// configured admin email.
type LocalAuthorizer struct {
	teamFinder TeamFinder
	adminEmail string
}

// NewLocalAuthorizer creates a new LocalAuthorizer.
func NewLocalAuthorizer(teamFinder TeamFinder, adminEmail string) *LocalAuthorizer {
	return &LocalAuthorizer{
		teamFinder: teamFinder,
		adminEmail: strings.TrimSpace(adminEmail),
	}
}

var _ Authorizer = (*LocalAuthorizer)(nil)

// rolePermissions maps actions to the roles that can perform them.
var rolePermissions = map[string][]string{
	ActionTeamUpdate:    {RoleLeader},
	ActionMemberAdd:     {RoleLeader},
	ActionPaymentReview: {RoleAdmin},
	ActionCheckIn:       {RoleAdmin},
	ActionReportView:    {RoleAdmin},
}

// IsAdmin compares the identity email to the configured admin email exactly.
// An unset admin email grants nobody admin rights.
func (a *LocalAuthorizer) IsAdmin(identity models.Identity) bool {
	if a.adminEmail == "" {
		return false
	}
	return strings.TrimSpace(identity.Email) == a.adminEmail
}

// CanAdminister reports whether identity is the administrator and the admin
// role carries action.
func (a *LocalAuthorizer) CanAdminister(identity models.Identity, action string) bool {
	return permits(RoleAdmin, action) && a.IsAdmin(identity)
}

// CanPerform checks if an identity can perform an action on a team.
// A missing team is returned as ErrTeamNotFound.
func (a *LocalAuthorizer) CanPerform(ctx context.Context, identity models.Identity, teamID primitive.ObjectID, action string) (bool, error) {
	if _, exists := rolePermissions[action]; !exists {
		return false, nil // Unknown action
	}

	role, err := a.teamRole(ctx, identity, teamID)
	if err != nil {
		return false, err
	}

	return permits(role, action), nil
}

// teamRole returns RoleLeader for the team's creator or empty string otherwise.
// Administration is event-wide, so it never shows up as a team role.
func (a *LocalAuthorizer) teamRole(ctx context.Context, identity models.Identity, teamID primitive.ObjectID) (string, error) {
	if identity.IsZero() {
		return "", nil
	}

	team, err := a.teamFinder.FindByID(ctx, teamID)
	if err != nil {
		return "", err
	}

	if team.OwnerID == identity.ID {
		return RoleLeader, nil
	}
	return "", nil
}

func permits(role, action string) bool {
	if role == "" {
		return false
	}
	for _, allowed := range rolePermissions[action] {
		if role == allowed {
			return true
		}
	}
	return false
}
