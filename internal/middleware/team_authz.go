package middleware

import (
	"errors"

	"hackreg/internal/authz"
	apperrors "hackreg/internal/errors"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamIDKey is the context key for the authorized team ID.
const TeamIDKey = "teamID"

// TeamAuthz returns a middleware that checks the caller may perform action on
// the team named by the :teamId path parameter.
func TeamAuthz(authorizer authz.Authorizer, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity.IsZero() {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		teamIDStr := c.Param("teamId")
		if teamIDStr == "" {
			response.BadRequest(c, "team id is required")
			c.Abort()
			return
		}

		teamID, err := primitive.ObjectIDFromHex(teamIDStr)
		if err != nil {
			response.BadRequest(c, "invalid team id format")
			c.Abort()
			return
		}

		allowed, err := authorizer.CanPerform(c.Request.Context(), identity, teamID, action)
		if err != nil {
			if errors.Is(err, apperrors.ErrTeamNotFound) {
				response.NotFound(c, err.Error())
				c.Abort()
				return
			}
			response.InternalError(c)
			c.Abort()
			return
		}

		if !allowed {
			response.Forbidden(c, apperrors.ErrForbidden.Error())
			c.Abort()
			return
		}

		c.Set(TeamIDKey, teamID)

		c.Next()
	}
}

// TeamLeader returns a middleware that only lets the team's creator through.
func TeamLeader(authorizer authz.Authorizer) gin.HandlerFunc {
	return TeamAuthz(authorizer, authz.ActionTeamUpdate)
}

// GetTeamID retrieves the team ID from the context.
func GetTeamID(c *gin.Context) (primitive.ObjectID, bool) {
	teamID, exists := c.Get(TeamIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	return teamID.(primitive.ObjectID), true
}
