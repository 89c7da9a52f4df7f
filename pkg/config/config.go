package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// Record store
	StoreDriver  string // "file", "postgres" or "mongo"
	DatabasePath string
	PostgresURL  string
	MongoURI     string

	// Identity
	JWTSecret   string
	AdminEmails []string

	// Media
	MediaDir           string
	PublicMediaBaseURL string
	S3Endpoint         string
	S3Region           string
	S3Bucket           string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	MaxUploadBytes     int64

	// Moderation
	ModerationAPIURL     string
	ModerationAPIKey     string
	ModerationStrictness float64
}

func Load() *Config {
	// Missing .env files are fine; real env wins either way.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		StoreDriver:  getEnv("STORE_DRIVER", "file"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/connectsphere.json"),
		PostgresURL:  getEnv("POSTGRES_URL", ""),
		MongoURI:     getEnv("MONGO_URI", ""),

		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
		AdminEmails: splitList(getEnv("ADMIN_EMAILS", "")),

		MediaDir:           getEnv("MEDIA_DIR", "./data/media"),
		PublicMediaBaseURL: getEnv("PUBLIC_MEDIA_BASE_URL", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3Region:           getEnv("S3_REGION", "auto"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", ""),
		MaxUploadBytes:     getEnvInt64("MAX_UPLOAD_BYTES", 50*1024*1024),

		ModerationAPIURL:     getEnv("MODERATION_API_URL", ""),
		ModerationAPIKey:     getEnv("MODERATION_API_KEY", ""),
		ModerationStrictness: getEnvFloat("MODERATION_STRICTNESS", 0.6),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
