// Package router sets up HTTP routes for the API.
package router

import (
	"net/http"

	_ "hackreg/swagger" // Import generated swagger docs

	"hackreg/internal/authz"
	"hackreg/internal/handler"
	"hackreg/internal/middleware"
	"hackreg/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	RegistrationHandler *handler.RegistrationHandler
	TeamHandler         *handler.TeamHandler
	AdminHandler        *handler.AdminHandler
	CheckInHandler      *handler.CheckInHandler
	TokenManager        auth.TokenManager
	Authorizer          authz.Authorizer
	AllowedOrigins      []string
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.TokenManager))
	{
		v1.POST("/registrations", cfg.RegistrationHandler.RegisterTeam)

		// Participant routes
		teams := v1.Group("/teams")
		{
			teams.GET("/me", cfg.TeamHandler.GetMyTeam)

			teamWithID := teams.Group("/:teamId")
			{
				teamWithID.PUT("", middleware.TeamLeader(cfg.Authorizer), cfg.TeamHandler.UpdateTeam)
				teamWithID.POST("/members", middleware.TeamAuthz(cfg.Authorizer, authz.ActionMemberAdd), cfg.TeamHandler.AddMember)
			}
		}

		// Admin routes
		reports := middleware.AdminOnly(cfg.Authorizer, authz.ActionReportView)
		review := middleware.AdminOnly(cfg.Authorizer, authz.ActionPaymentReview)
		checkIn := middleware.AdminOnly(cfg.Authorizer, authz.ActionCheckIn)

		admin := v1.Group("/admin")
		{
			admin.GET("/teams", reports, cfg.AdminHandler.ListTeams)
			admin.GET("/teams/:teamId", reports, cfg.AdminHandler.GetTeam)
			admin.POST("/teams/:teamId/verify", review, cfg.AdminHandler.VerifyPayment)
			admin.POST("/teams/:teamId/reject", review, cfg.AdminHandler.RejectPayment)
			admin.GET("/stats", reports, cfg.AdminHandler.Stats)
			admin.GET("/export.csv", reports, cfg.AdminHandler.ExportCSV)

			// Check-in desk
			admin.GET("/members", checkIn, cfg.CheckInHandler.FindMember)
			admin.POST("/members/:memberId/check-in", checkIn, cfg.CheckInHandler.ToggleCheckIn)
		}
	}

	return r
}
