package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	REDIS_URL  string
	JWT_SECRET string

	APP_URL     string
	CORS_ORIGIN string

	GOOGLE_CLIENT_ID     string
	GOOGLE_CLIENT_SECRET string
	GOOGLE_REDIRECT_URL  string

	// Billing gate tuning
	GRACE_PERIOD_DAYS     int
	GRACE_WARN_DAYS       int
	BILLING_CACHE_TTL_SEC int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	REDIS_URL = getEnv("REDIS_URL", "redis://localhost:6379/0")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:8080")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")

	GRACE_PERIOD_DAYS = getEnvInt("GRACE_PERIOD_DAYS", 7)
	GRACE_WARN_DAYS = getEnvInt("GRACE_WARN_DAYS", 3)
	BILLING_CACHE_TTL_SEC = getEnvInt("BILLING_CACHE_TTL_SEC", 30)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, value)
	}
	return n
}
