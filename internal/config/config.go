package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort    string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RedisURI      string

	AccessTokenSecret string
	AccessTokenExpiry time.Duration

	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3UseSSL        bool
	S3PublicBaseURL string

	AdminEmail         string
	EventName          string
	CORSAllowedOrigins []string

	MailDriver   string
	MailFrom     string
	MailFromName string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SESRegion    string

	NotificationWorkers   int
	NotificationQueueSize int

	RegistrationLockTTL time.Duration
	StatsCacheTTL       time.Duration
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if file doesn't exist - env vars may be set directly)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		MongoURI:      getEnvRequired("MONGO_URI"),
		MongoDatabase: getEnvRequired("MONGO_DATABASE"),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),

		AccessTokenSecret: getEnvRequired("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry: parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "24h")),

		S3Endpoint:      getEnv("S3_ENDPOINT", "localhost:9000"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET", "payment-receipts"),
		S3UseSSL:        parseBool(getEnv("S3_USE_SSL", "false")),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		AdminEmail:         getEnvRequired("ADMIN_EMAIL"),
		EventName:          getEnv("EVENT_NAME", "Hackathon"),
		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		MailDriver:   getEnv("MAIL_DRIVER", "log"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@localhost"),
		MailFromName: getEnv("MAIL_FROM_NAME", ""),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     parseInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SESRegion:    getEnv("SES_REGION", "us-east-1"),

		NotificationWorkers:   parseInt(getEnv("NOTIFICATION_WORKERS", "2")),
		NotificationQueueSize: parseInt(getEnv("NOTIFICATION_QUEUE_SIZE", "100")),

		RegistrationLockTTL: parseDuration(getEnv("REGISTRATION_LOCK_TTL", "30s")),
		StatsCacheTTL:       parseDuration(getEnv("STATS_CACHE_TTL", "30s")),
	}

	return cfg
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and exits if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

// parseDuration parses a duration string, exits on error
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}

// parseBool parses a boolean string, exits on error
func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("Invalid boolean format: %s", s)
	}
	return b
}

// parseInt parses an integer string, exits on error
func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid integer format: %s", s)
	}
	return n
}

// parseList splits a comma-separated value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
