package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the dealer console client.
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	API      APIConfig
	LogLevel string
}

type APIConfig struct {
	// BaseURL is the root of the dealer REST API, e.g. http://localhost:8080
	BaseURL string
	// Token is the bearer token injected into every request
	Token string
	// TimeoutSeconds bounds every request; there are no retries
	TimeoutSeconds int
}

// ServerConfig holds configuration for the local stub API server.
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	// Tokens lists bearer tokens the stub accepts
	Tokens   []string
	LogLevel string
}

// Load reads client configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("DEALER_API_URL", "http://localhost:8080"),
			Token:          getEnv("DEALER_API_TOKEN", ""),
			TimeoutSeconds: getEnvAsInt("DEALER_API_TIMEOUT", 10),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadServer reads stub server configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:            getEnv("PORT", "8080"),
		Host:            getEnv("HOST", "0.0.0.0"),
		ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
		WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
		ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		Tokens:          getEnvAsSlice("API_TOKENS", []string{"devtoken"}),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if len(cfg.Tokens) == 0 {
		return nil, fmt.Errorf("at least one API token must be configured")
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("DEALER_API_URL is required")
	}

	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("DEALER_API_URL must start with http:// or https://")
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("DEALER_API_TIMEOUT must be positive")
	}

	return validateLogLevel(c.LogLevel)
}

func validateLogLevel(level string) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
