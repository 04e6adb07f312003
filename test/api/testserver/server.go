//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"sync"
	"time"

	"hackreg/internal/authz"
	"hackreg/internal/cache"
	"hackreg/internal/database"
	"hackreg/internal/handler"
	"hackreg/internal/models"
	"hackreg/internal/notification"
	"hackreg/internal/queue"
	"hackreg/internal/repository"
	"hackreg/internal/router"
	"hackreg/internal/service"
	"hackreg/internal/storage"
	"hackreg/pkg/auth"
	"hackreg/test/api/testdb"

	"github.com/gin-gonic/gin"
)

const (
	// TestAccessTokenSecret is the JWT secret used in tests.
	TestAccessTokenSecret = "test-secret-key-for-api-tests"
	// TestAccessTokenExpiry is the access token expiry time used in tests.
	TestAccessTokenExpiry = 15 * time.Minute
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
	// TestAdminEmail is the administrator identity's email.
	TestAdminEmail = "admin@example.com"
	// TestEventName appears in notification subjects.
	TestEventName = "Test Hackathon"
)

// RecordingMailer keeps every delivered email in memory.
type RecordingMailer struct {
	mu     sync.Mutex
	emails []models.Email
}

// Send records the email.
func (m *RecordingMailer) Send(_ context.Context, email models.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
	return nil
}

// Sent returns a copy of the delivered emails.
func (m *RecordingMailer) Sent() []models.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Email(nil), m.emails...)
}

// Reset forgets delivered emails.
func (m *RecordingMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = nil
}

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router is the Gin engine for making HTTP requests.
	Router *gin.Engine

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer
	MinIO   *testdb.MinIOContainer

	// Repositories (for direct database access in tests)
	TeamRepo   repository.TeamRepository
	MemberRepo repository.MemberRepository

	// Auth
	JWTManager *auth.JWTManager

	// Notifications
	Mailer                *RecordingMailer
	NotificationQueue     *queue.MemoryQueue
	NotificationProcessor *queue.Processor
}

// New creates a new test server with all dependencies wired up.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	// Start containers
	mongoDB, err := testdb.SetupMongoDB(ctx, TestDBName)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	minioContainer, err := testdb.SetupMinIO(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		_ = redisContainer.Cleanup(ctx)
		return nil, err
	}

	// Create cache (uses real Redis)
	redisCache := cache.NewRedis(redisContainer.URI)

	// Create storage (uses real MinIO)
	s3Client := storage.NewS3Client(storage.S3Options{
		Endpoint:  minioContainer.Endpoint,
		AccessKey: minioContainer.AccessKey,
		SecretKey: minioContainer.SecretKey,
		Bucket:    minioContainer.Bucket,
	})

	// JWT Manager
	jwtManager := auth.NewJWTManager(TestAccessTokenSecret, TestAccessTokenExpiry)

	// Repository layer
	teamRepo := repository.NewTeamRepository(mongoDB.Database)
	memberRepo := repository.NewMemberRepository(mongoDB.Database)

	// Authorization
	authorizer := authz.NewLocalAuthorizer(teamRepo, TestAdminEmail)

	// Notification queue and processor
	mailer := &RecordingMailer{}
	notificationQueue := queue.NewMemoryQueue(100)
	notificationProcessor := queue.NewProcessor(notificationQueue, mailer, 1)
	dispatcher := notification.NewDispatcher(notificationQueue, TestEventName)

	// Service layer
	receipts := storage.NewReceipts(s3Client)
	locker := cache.NewEmailLocker(redisCache, 30*time.Second)
	stats := cache.NewStatsCache(redisCache, 30*time.Second)

	r := router.Setup(&router.Config{
		RegistrationHandler: handler.NewRegistrationHandler(service.NewRegistrationService(teamRepo, memberRepo, receipts, locker, stats, dispatcher)),
		TeamHandler:         handler.NewTeamHandler(service.NewRosterService(teamRepo, memberRepo, receipts, locker, stats)),
		AdminHandler:        handler.NewAdminHandler(service.NewAdminService(teamRepo, memberRepo, receipts, stats, dispatcher)),
		CheckInHandler:      handler.NewCheckInHandler(service.NewCheckInService(memberRepo, stats)),
		TokenManager:        jwtManager,
		Authorizer:          authorizer,
	})

	ts := &TestServer{
		Router:                r,
		MongoDB:               mongoDB,
		Redis:                 redisContainer,
		MinIO:                 minioContainer,
		TeamRepo:              teamRepo,
		MemberRepo:            memberRepo,
		JWTManager:            jwtManager,
		Mailer:                mailer,
		NotificationQueue:     notificationQueue,
		NotificationProcessor: notificationProcessor,
	}

	if err := ts.ensureIndexes(ctx); err != nil {
		ts.Cleanup(ctx)
		return nil, err
	}

	notificationProcessor.Start(context.Background())

	return ts, nil
}

func (ts *TestServer) ensureIndexes(ctx context.Context) error {
	_, err := database.EnsureIndexes(ctx, ts.MongoDB.Database)
	return err
}

// Cleanup stops the processor and terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.NotificationProcessor != nil {
		ts.NotificationProcessor.Stop()
	}
	if ts.MinIO != nil {
		_ = ts.MinIO.Cleanup(ctx)
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}
