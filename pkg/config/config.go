package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// HTTP
	HTTPAddr string

	// Database. An empty URL selects the local SQLite file.
	DatabaseURL string
	SQLitePath  string
	DBMaxConns  int

	// Solver
	SolverTimeLimit time.Duration

	// Redis. Empty disables the role cache.
	RedisURL     string
	RoleCacheTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env if present, ignore when missing.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPAddr: getEnv("HTTP_ADDR", "0.0.0.0:8000"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("AGENDALO_SQLITE_PATH", ""),
		DBMaxConns:  getIntEnv("DB_MAX_CONNS", 0),

		SolverTimeLimit: getDurationEnv("SOLVER_TIME_LIMIT", 30*time.Second),

		RedisURL:     getEnv("REDIS_URL", ""),
		RoleCacheTTL: getDurationEnv("ROLE_CACHE_TTL", 5*time.Minute),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
