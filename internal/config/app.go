package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds service runtime configuration, sourced from the
// environment with optional .env overrides.
type AppConfig struct {
	DatabasePath string
	Port         int
	LogLevel     string
	DevMode      bool

	// Cron expression for the market snapshot refresh job.
	MarketRefreshSchedule string
}

// LoadAppConfig reads configuration from the environment. A .env file in the
// working directory is honored when present; missing keys fall back to
// defaults suitable for local development.
func LoadAppConfig() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		DatabasePath:          getEnv("COVERWISE_DB", "data/coverwise.db"),
		Port:                  getEnvInt("COVERWISE_PORT", 8000),
		LogLevel:              getEnv("COVERWISE_LOG_LEVEL", "info"),
		DevMode:               getEnvBool("COVERWISE_DEV_MODE", false),
		MarketRefreshSchedule: getEnv("COVERWISE_MARKET_REFRESH", "@daily"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
