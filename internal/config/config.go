package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// S3 / MinIO
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// CORS
	CORSOrigin string

	// Upload limits
	MaxFileSize int64

	// Signed download URLs
	SignedURLTTLSeconds int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabasePath:        getEnv("DATABASE_PATH", "data/factsheets.db"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		S3Endpoint:          getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:       getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey:   getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:        getEnv("S3_BUCKET_NAME", "factsheets"),
		S3UseSSL:            getEnv("S3_USE_SSL", "false") == "true",
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		CORSOrigin:          getEnv("CORS_ORIGIN", "*"),
		MaxFileSize:         50 * 1024 * 1024,
		SignedURLTTLSeconds: getEnvInt("SIGNED_URL_TTL", 3600),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
