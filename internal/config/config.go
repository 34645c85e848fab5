package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/threecushion/backend/internal/game"
)

type Config struct {
	// Environment
	Environment string

	// Database (optional; presets are disabled without it)
	DatabaseURL    string
	MigrateOnStart bool

	// Redis (optional; sessions fall back to memory without it)
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Table sessions
	TableExpiryMinutes   int
	TableTokenTTLMinutes int

	// Projection
	MaxVelocity float64
	SpeedScale  float64
	MaxBounces  int

	// Security
	JWTSecret string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/threecushion?sslmode=disable"),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Table sessions
		TableExpiryMinutes:   getEnvInt("TABLE_EXPIRY_MINUTES", 1440),
		TableTokenTTLMinutes: getEnvInt("TABLE_TOKEN_TTL_MINUTES", 720),

		// Projection
		MaxVelocity: getEnvFloat("MAX_VELOCITY", game.DefaultMaxVelocity),
		SpeedScale:  getEnvFloat("SPEED_SCALE", game.DefaultSpeedScale),
		MaxBounces:  getEnvInt("MAX_BOUNCES", game.DefaultMaxBounces),

		// Security
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
	}
}

// Projection returns the projection policy described by the config.
func (c *Config) Projection() game.Policy {
	return game.Policy{
		SpeedScale:  c.SpeedScale,
		MaxBounces:  c.MaxBounces,
		MaxVelocity: c.MaxVelocity,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
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
