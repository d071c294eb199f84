package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/chalkboard-sys/registry/pkg/jwtx"
)

type Config struct {
	Issuer     string // Issuer claim for tokens (default: chalkboard-registry)
	AccessKey  string // Required: HMAC key for access tokens
	RefreshKey string // Required: HMAC key for refresh tokens

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 24h)

	DatabaseFile         string        // Path to SQLite database file (default: ./registry.db)
	PolicyFile           string        // Optional: path to the JSON access policy table
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Revocation ledger purge interval (default: 1h)
}

// ErrMissingKeys means one or both token signing keys were absent from the
// environment. Running without them is never acceptable, so this is fatal at
// startup.
var ErrMissingKeys = errors.New("REGISTRY_ACCESS_KEY and REGISTRY_REFRESH_KEY must both be set")

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:               getEnvOrDefault("REGISTRY_ISSUER", "chalkboard-registry"),
		AccessKey:            os.Getenv("REGISTRY_ACCESS_KEY"),
		RefreshKey:           os.Getenv("REGISTRY_REFRESH_KEY"),
		AccessTTL:            getEnvDurationOrDefault("REGISTRY_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:           getEnvDurationOrDefault("REGISTRY_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:         getEnvOrDefault("REGISTRY_DATABASE_FILE", "registry.db"),
		PolicyFile:           os.Getenv("REGISTRY_POLICY_FILE"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.AccessKey == "" || cfg.RefreshKey == "" {
		return Config{}, ErrMissingKeys
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
