package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every setting the server cannot run without
// is present. S3 settings are optional; without them image upload is
// disabled rather than fatal.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBUser == "" {
		errors = append(errors, "DB_USER is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
