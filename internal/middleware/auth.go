// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"strings"

	"hackreg/internal/models"
	"hackreg/pkg/auth"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys for storing identity data
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// Auth returns a middleware that validates identity provider tokens.
func Auth(tokens auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		subject := claims.Subject()
		if subject == "" {
			response.Unauthorized(c, "token has no subject")
			c.Abort()
			return
		}

		c.Set(UserIDKey, subject)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// GetUserID retrieves the user ID from the context.
// Returns empty string if not found.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetIdentity returns the authenticated caller, or a zero Identity.
func GetIdentity(c *gin.Context) models.Identity {
	return models.Identity{
		ID:    c.GetString(UserIDKey),
		Email: c.GetString(UserEmailKey),
	}
}
