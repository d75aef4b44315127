package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var problems []string
	add := func(field, msg string) {
		problems = append(problems, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_PORT": cfg.DBPort,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				add(field, "is required for the postgres driver")
			}
		}
		// Local development may run against a trust-auth database
		if cfg.DBPassword == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			add("DB_PASSWORD", "db_password secret or DB_PASSWORD is required")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver))
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		add("BCRYPT_COST", "must be between 4 and 31")
	}
	if cfg.WriteRateLimit <= 0 {
		add("RATE_LIMIT_WRITES", "must be positive")
	}
	if cfg.VerifyRateLimit <= 0 {
		add("RATE_LIMIT_VERIFICATIONS", "must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		add("CORS_ALLOWED_ORIGINS", "must list at least one origin")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}

	return nil
}
