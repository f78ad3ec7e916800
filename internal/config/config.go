package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Timekeeping TimekeepingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// TimekeepingConfig holds engine configuration
type TimekeepingConfig struct {
	// Timezone is the IANA name of the local timezone punches group by.
	Timezone string

	// BulkWorkers bounds the concurrent per-employee recomputes of a bulk job.
	BulkWorkers int

	// NightlySweepHour is the local hour the scheduler re-derives yesterday's
	// records, closing out days with punches that never got a read.
	NightlySweepHour int
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; variables come
	// from the process environment there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timekeeping"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Timekeeping configuration
	bulkWorkers, err := strconv.Atoi(getEnv("TK_BULK_WORKERS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid TK_BULK_WORKERS: %w", err)
	}
	sweepHour, err := strconv.Atoi(getEnv("TK_NIGHTLY_SWEEP_HOUR", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TK_NIGHTLY_SWEEP_HOUR: %w", err)
	}

	config.Timekeeping = TimekeepingConfig{
		Timezone:         getEnv("TK_TIMEZONE", "Asia/Manila"),
		BulkWorkers:      bulkWorkers,
		NightlySweepHour: sweepHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Timekeeping.BulkWorkers < 1 {
		return fmt.Errorf("TK_BULK_WORKERS must be at least 1")
	}
	if c.Timekeeping.NightlySweepHour < 0 || c.Timekeeping.NightlySweepHour > 23 {
		return fmt.Errorf("TK_NIGHTLY_SWEEP_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
