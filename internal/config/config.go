package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Search  SearchConfig
	Session SessionConfig
	Logger  LoggerConfig
}

// ServerConfig holds the local HTTP surface configuration.
type ServerConfig struct {
	Host string
	Port int
}

// BackendConfig holds store backend connectivity configuration.
type BackendConfig struct {
	// BaseURL is the root of the store backend REST API, e.g.
	// "https://qkart.example.com/api/v1".
	BaseURL string

	// RequestTimeout bounds every individual backend call.
	RequestTimeout time.Duration

	// RetryMaxElapsed bounds the total time spent retrying an
	// idempotent read, including backoff pauses. Zero disables retries.
	RetryMaxElapsed time.Duration
}

// SearchConfig holds search debounce configuration.
type SearchConfig struct {
	// DebounceDelay is the quiet period required after the last
	// keystroke before a search request is issued.
	DebounceDelay time.Duration
}

// SessionConfig holds client-local session persistence configuration.
type SessionConfig struct {
	// CredentialsFile is the path of the file holding the auth token
	// and username between runs.
	CredentialsFile string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8081),
		},
		Backend: BackendConfig{
			BaseURL:         getEnv("BACKEND_URL", "http://localhost:8082/api/v1"),
			RequestTimeout:  getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			RetryMaxElapsed: getEnvAsDuration("BACKEND_RETRY_MAX_ELAPSED", 15*time.Second),
		},
		Search: SearchConfig{
			DebounceDelay: getEnvAsDuration("SEARCH_DEBOUNCE_DELAY", 500*time.Millisecond),
		},
		Session: SessionConfig{
			CredentialsFile: getEnv("SESSION_FILE", "data/session.json"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend URL is required")
	}

	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid backend URL: %s", c.Backend.BaseURL)
	}

	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("backend request timeout must be positive")
	}

	if c.Backend.RetryMaxElapsed < 0 {
		return fmt.Errorf("backend retry max elapsed cannot be negative")
	}

	if c.Search.DebounceDelay <= 0 {
		return fmt.Errorf("search debounce delay must be positive")
	}

	if c.Session.CredentialsFile == "" {
		return fmt.Errorf("session credentials file is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
