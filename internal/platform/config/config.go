package config

import (
	"errors"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	JWTSecret       string
	JWTIssuer       string
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	RateLimit       string `mapstructure:"RATE_LIMIT"` // ulule formatted rate, e.g. "60-M"
	MigrationsPath  string `mapstructure:"MIGRATIONS_PATH"`
	MetricsEnabled  bool   `mapstructure:"METRICS_ENABLED"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "receivables-app")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("METRICS_ENABLED", true)

	// Environment variables override the defaults and anything loaded from .env.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
		cfg.JWTSecret = defaultJWTSecret
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}
