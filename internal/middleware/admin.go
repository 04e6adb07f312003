package middleware

import (
	"hackreg/internal/authz"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly returns a middleware that lets through only an administrator
// allowed to perform the event-wide action.
func AdminOnly(authorizer authz.Authorizer, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity.IsZero() {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		if !authorizer.CanAdminister(identity, action) {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
