package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: mysql or postgres
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	TokenTTL   time.Duration
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	CacheTTL   time.Duration
	IsProd     bool // Is production environment

	SignificanceThreshold float64 // Predictions at or below this probability are discarded
	FanoutWorkers         int     // Concurrent notification writers per broadcast

	ScorerMode    string // exec or http
	ScorerCommand string // Interpreter for exec mode
	ScorerScript  string // Script passed to the interpreter
	ScorerURL     string // Endpoint for http mode
	ScorerTimeout time.Duration
	UploadDir     string // Where uploaded occurrence files are staged
	ArchiveBucket string // S3 bucket for raw uploads, archival disabled when empty

	RateLimitRPS   float64 // Per-client request rate on sensitive endpoints
	RateLimitBurst int

	AdminEmail    string // Seeded admin account
	AdminPassword string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "5000"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     getEnv("DB_NAME", "health_guardian_db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getDuration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    getInt("REDIS_DB", 0),
		CacheTTL:   getDuration("CACHE_TTL", 60*time.Second),
		IsProd:     os.Getenv("IS_PROD") == "true",

		SignificanceThreshold: getFloat("SIGNIFICANCE_THRESHOLD", 0.5),
		FanoutWorkers:         getInt("FANOUT_WORKERS", 8),

		ScorerMode:    getEnv("SCORER_MODE", "exec"),
		ScorerCommand: getEnv("SCORER_COMMAND", "python"),
		ScorerScript:  getEnv("SCORER_SCRIPT", "model.py"),
		ScorerURL:     os.Getenv("SCORER_URL"),
		ScorerTimeout: getDuration("SCORER_TIMEOUT", 60*time.Second),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		ArchiveBucket: os.Getenv("ARCHIVE_BUCKET"),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	}
	port := c.DBPort
	if port == "" {
		port = "3306"
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
