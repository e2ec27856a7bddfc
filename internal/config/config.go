package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	DB      DatabaseConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

// DatabaseConfig contains PostgreSQL connection parameters for the remote
// catalog store.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CatalogConfig contains the catalog pipeline knobs.
type CatalogConfig struct {
	// RemoteTimeout bounds the remote catalog fetch so a slow store cannot
	// delay the fallback to static-only results.
	RemoteTimeout time.Duration
	// CacheTTL enables the redis snapshot cache when > 0. Zero means fetch
	// fresh from the store on every call.
	CacheTTL time.Duration
	// RefreshInterval is the period of the snapshot re-warm worker, used
	// only when the cache is enabled.
	RefreshInterval time.Duration
	// PageSize is the default products-per-page when a request does not set
	// its own limit.
	PageSize int
	// StaticPath optionally overrides the embedded static catalog file.
	StaticPath string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis (only dialed when the snapshot cache is enabled)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Catalog
	var err error
	if cfg.Catalog.RemoteTimeout, err = parseDurationEnv("CATALOG_REMOTE_TIMEOUT", "5s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REMOTE_TIMEOUT: %w", err)
	}
	if cfg.Catalog.CacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.Catalog.RefreshInterval, err = parseDurationEnv("CATALOG_REFRESH_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_INTERVAL: %w", err)
	}
	cfg.Catalog.PageSize = getEnvInt("CATALOG_PAGE_SIZE", 12)
	cfg.Catalog.StaticPath = getEnv("STATIC_CATALOG_PATH", "")

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.Catalog.PageSize <= 0 {
		return nil, errors.New("CATALOG_PAGE_SIZE must be a positive integer")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
