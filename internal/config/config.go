// Package config reads the process configuration from the environment.
// main loads the environment first, from .env in development or from the
// SSM Parameter Store in production.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTokenTTL matches the session cache expiry of the original
	// deployment (roughly 2h13m).
	DefaultTokenTTL = 8000 * time.Second
	// DefaultResetTokenTTL bounds how long a password reset link works.
	DefaultResetTokenTTL = 15 * time.Minute
)

type Config struct {
	Port         string
	BaseURL      string
	DatabasePath string

	RedisAddr string
	RedisDB   int

	SecretKey      string
	TokenTTL       time.Duration
	ResetTokenTTL  time.Duration
	NoteCacheTTL   time.Duration
	LogoutFlushAll bool

	ReminderInterval time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	S3Region string
	S3Bucket string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "7070"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:7070"),
		DatabasePath: getEnv("DATABASE_PATH", "database.db"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		SecretKey:      os.Getenv("ENCODE_SECRET_KEY"),
		TokenTTL:       getEnvDuration("AUTH_TOKEN_TTL", DefaultTokenTTL),
		ResetTokenTTL:  getEnvDuration("RESET_TOKEN_TTL", DefaultResetTokenTTL),
		NoteCacheTTL:   getEnvDuration("NOTE_CACHE_TTL", time.Hour),
		LogoutFlushAll: getEnv("AUTH_LOGOUT_FLUSH_ALL", "false") == "true",

		ReminderInterval: getEnvDuration("REMINDER_INTERVAL", 15*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@keepnotes.local"),

		S3Region: getEnv("AWS_S3_REGION", "us-east-2"),
		S3Bucket: os.Getenv("S3_BUCKET_NAME"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}
