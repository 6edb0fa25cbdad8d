package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that values a running server cannot do without
// are present. Development gets defaults; production must be explicit.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		return ValidationError{Field: "DB_HOST/DB_NAME", Message: "database location is required"}
	}
	if cfg.ImportTimeout <= 0 {
		return ValidationError{Field: "IMPORT_TIMEOUT", Message: "must be a positive duration"}
	}
	if cfg.ImportMaxBytes <= 0 {
		return ValidationError{Field: "ImportMaxBytes", Message: "must be positive"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
		}
	}

	return nil
}
