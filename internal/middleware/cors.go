package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns the cross-origin middleware. With no allowed origins every
// origin is accepted, which suits local development.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	cc.ExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
	cc.MaxAge = 24 * time.Hour

	if len(allowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = allowedOrigins
	}

	return cors.New(cc)
}
