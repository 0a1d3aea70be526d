package config

import (
	"os"
	"strconv"
	"time"

	"reportlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Backend  BackendConfig
	Server   ServerConfig
}

// DatabaseConfig holds recent-reports store connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// BackendConfig holds analysis backend client settings
type BackendConfig struct {
	BaseURL      string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Backend: BackendConfig{
			BaseURL:      os.Getenv("BACKEND_URL"),
			PollInterval: getEnvDurationOrDefault("BACKEND_POLL_INTERVAL", 2*time.Second),
			PollTimeout:  getEnvDurationOrDefault("BACKEND_POLL_TIMEOUT", 5*time.Minute),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(c *Config) error {
	if c.Database.URL == "" {
		return errors.New(errors.CodeInternal, "DATABASE_URL is required")
	}
	if c.Backend.BaseURL == "" {
		return errors.New(errors.CodeInternal, "BACKEND_URL is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.New(errors.CodeInternal, "PORT must be numeric")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
