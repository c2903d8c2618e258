package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Image store configuration
	S3Bucket  string
	AWSRegion string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets (lowercase file names under SECRETS_DIR) for values not
// present in the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getValue("SERVER_PORT", "8080"),
		ServerHost:    getValue("SERVER_HOST", "0.0.0.0"),
		DBHost:        getValue("DB_HOST", "localhost"),
		DBPort:        getValue("DB_PORT", "5432"),
		DBUser:        getValue("DB_USER", ""),
		DBPassword:    getValue("DB_PASSWORD", ""),
		DBName:        getValue("DB_NAME", "foodgram"),
		DBSSLMode:     getValue("DB_SSL_MODE", "disable"),
		RedisHost:     getValue("REDIS_HOST", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		RedisURL:      getValue("REDIS_URL", ""),
		JWTSecret:     getValue("JWT_SECRET", ""),
		S3Bucket:      getValue("S3_BUCKET_NAME", "foodgram-recipe-images"),
		AWSRegion:     getValue("AWS_REGION", ""),
	}

	if raw := getValue("REDIS_DB", "0"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", raw, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a setting from the environment first, then from the
// matching Docker secret, then the default.
func getValue(envVar, fallback string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if value := readSecret(strings.ToLower(envVar)); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
