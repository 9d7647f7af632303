package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Env         string
	FrontendURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// When true the server runs on the in-memory store instead of Postgres
	// (local development without a database).
	UseMemoryStore bool

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret        string
	JWTTokenDuration time.Duration

	// Admin bootstrap: created as the first account when the users table is
	// empty. The first account (ID 1) is the sole admin.
	AdminUsername string
	AdminPassword string

	// SMTP (contact relay)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	ContactTo    string

	// Local storage
	LocalAssetsPath string

	// Uploads
	UploadMaxImageSize int64
	ThumbnailWidth     int
	ThumbnailHeight    int
	HomeLatestCount    int

	// Security
	BcryptCost        int
	RateLimitRequests int
	RateLimitDuration time.Duration

	// CORS
	AllowedOrigins []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Database
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "aurelhaus"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "aurelhaus_db"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		UseMemoryStore: getEnv("USE_MEMORY_STORE", "false") == "true",

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		JWTTokenDuration: getEnvAsDuration("JWT_TOKEN_DURATION", "12h"),

		// Admin bootstrap
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", "smtp.strato.de"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 465),
		SMTPUsername: getEnv("SMTP_USERNAME", "info@aurelhaus.de"),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "info@aurelhaus.de"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Aurelhaus"),
		ContactTo:    getEnv("CONTACT_TO", "info@aurelhaus.de"),

		// Local storage
		LocalAssetsPath: getEnv("LOCAL_ASSETS_PATH", "/data/assets"),

		// Uploads
		UploadMaxImageSize: int64(getEnvAsInt("UPLOAD_MAX_IMAGE_SIZE", 10*1024*1024)),
		ThumbnailWidth:     getEnvAsInt("THUMBNAIL_WIDTH", 300),
		ThumbnailHeight:    getEnvAsInt("THUMBNAIL_HEIGHT", 400),
		HomeLatestCount:    getEnvAsInt("HOME_LATEST_COUNT", 3),

		// Security
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration: getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "https://aurelhaus.de"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
