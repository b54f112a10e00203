package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	AdminAPIKey string

	DirectoryEndpoint  string
	DirectoryAPIKey    string
	DirectoryTimeoutMS int

	ListingsFile string
	ListingPath  string

	// Fallbacks when no listing catalog file is configured.
	ListingName        string
	DefaultProductCode string

	RedisAddr      string
	RateLimitRPS   float64
	RateLimitBurst int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "marketplace-registration"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		AdminAPIKey: strings.TrimSpace(getenv("ADMIN_API_KEY", "")),

		DirectoryEndpoint:  strings.TrimSpace(getenv("DIRECTORY_ENDPOINT", "")),
		DirectoryAPIKey:    strings.TrimSpace(getenv("DIRECTORY_API_KEY", "")),
		DirectoryTimeoutMS: getenvInt("DIRECTORY_TIMEOUT_MS", 5000),

		ListingsFile: strings.TrimSpace(getenv("LISTINGS_FILE", "")),
		ListingPath:  strings.TrimSpace(getenv("LISTING_PATH", "")),

		ListingName:        getenv("LISTING_NAME", ""),
		DefaultProductCode: getenv("PRODUCT_CODE", ""),

		RedisAddr:      strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RateLimitRPS:   getenvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getenvInt("RATE_LIMIT_BURST", 10),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "registration"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
