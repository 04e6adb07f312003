package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackreg/internal/authz"
	"hackreg/internal/cache"
	"hackreg/internal/config"
	"hackreg/internal/database"
	"hackreg/internal/handler"
	"hackreg/internal/notification"
	"hackreg/internal/queue"
	"hackreg/internal/repository"
	"hackreg/internal/router"
	"hackreg/internal/service"
	"hackreg/internal/storage"
	"hackreg/internal/validator"
	"hackreg/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title           Hackathon Registration API
// @version         1.0
// @description     Team registration, payment review and event-day check-in for a hackathon.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Redis Cache
	redisCache := cache.NewRedis(cfg.RedisURI)
	defer redisCache.Close()

	// S3 Storage
	s3Client := storage.NewS3Client(storage.S3Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	receipts := storage.NewReceipts(s3Client)

	// JWT validation for identity provider tokens
	jwtManager := auth.NewJWTManager(cfg.AccessTokenSecret, cfg.AccessTokenExpiry)

	// Repository layer
	teamRepo := repository.NewTeamRepository(mongoDB.Database)
	memberRepo := repository.NewMemberRepository(mongoDB.Database)

	// Authorization
	authorizer := authz.NewLocalAuthorizer(teamRepo, cfg.AdminEmail)

	// Locks and cached stats
	emailLocker := cache.NewEmailLocker(redisCache, cfg.RegistrationLockTTL)
	statsCache := cache.NewStatsCache(redisCache, cfg.StatsCacheTTL)

	// Notification queue and processor
	mailer, err := notification.NewMailer(context.Background(), notification.MailConfig{
		Driver:       cfg.MailDriver,
		From:         cfg.MailFrom,
		FromName:     cfg.MailFromName,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		SESRegion:    cfg.SESRegion,
	})
	if err != nil {
		log.Fatalf("Failed to configure mailer: %v", err)
	}
	notificationQueue := queue.NewMemoryQueue(cfg.NotificationQueueSize)
	notificationProcessor := queue.NewProcessor(notificationQueue, mailer, cfg.NotificationWorkers)
	dispatcher := notification.NewDispatcher(notificationQueue, cfg.EventName)

	// Service layer
	registrationService := service.NewRegistrationService(teamRepo, memberRepo, receipts, emailLocker, statsCache, dispatcher)
	rosterService := service.NewRosterService(teamRepo, memberRepo, receipts, emailLocker, statsCache)
	adminService := service.NewAdminService(teamRepo, memberRepo, receipts, statsCache, dispatcher)
	checkInService := service.NewCheckInService(memberRepo, statsCache)

	// Router
	r := router.Setup(&router.Config{
		RegistrationHandler: handler.NewRegistrationHandler(registrationService),
		TeamHandler:         handler.NewTeamHandler(rosterService),
		AdminHandler:        handler.NewAdminHandler(adminService),
		CheckInHandler:      handler.NewCheckInHandler(checkInService),
		TokenManager:        jwtManager,
		Authorizer:          authorizer,
		AllowedOrigins:      cfg.CORSAllowedOrigins,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start notification processor
	notificationProcessor.Start(ctx)

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first (drain connections)
	log.Println("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Cancel context to signal processor shutdown
	cancel()

	// Stop notification processor (waits for workers)
	log.Println("Stopping notification processor...")
	notificationProcessor.Stop()

	log.Println("Server shutdown complete")
}
