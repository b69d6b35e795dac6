package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port         string
	LogLevel     string
	MongoURI     string
	DBName       string
	JWTSecret    string
	TokenExpiry  time.Duration
	ScanSpec     string
	NotifySpec   string
	SMTPSender   string
	SMTPPassword string
	SMTPHost     string
	SMTPPort     string
}

// LoadConfig reads configuration from .env / environment variables.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "reminder_manager"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenExpiry:  getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),
		ScanSpec:     getEnv("SCAN_CRON", "@every 1m"),
		NotifySpec:   getEnv("NOTIFY_CRON", "@every 5m"),
		SMTPSender:   getEnv("SMTP_SENDER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithField(key, value).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}
