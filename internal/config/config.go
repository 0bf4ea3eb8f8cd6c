package config

import (
	"errors"
	"os"

	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

// Config holds the service's own environment-driven settings.
type Config struct {
	Addr             string
	EnvFile          string
	Root             string
	JWTSecret        string
	AuditDatabaseURL string
	RedisExtension   bool
	Strict           bool
	LogLevel         string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:             getenv("WPCONFIG_ADDR", ":8080"),
		EnvFile:          getenv("WPCONFIG_ENV_FILE", ".env"),
		Root:             getenv("WPCONFIG_ROOT", "."),
		JWTSecret:        os.Getenv("WPCONFIG_JWT_SECRET"),
		AuditDatabaseURL: os.Getenv("WPCONFIG_AUDIT_DATABASE_URL"),
		RedisExtension:   wpconfig.ParseBool(os.Getenv("WPCONFIG_REDIS_EXTENSION")),
		Strict:           wpconfig.ParseBool(os.Getenv("WPCONFIG_STRICT")),
		LogLevel:         getenv("WPCONFIG_LOG_LEVEL", "info"),
	}
}

// ErrMissingJWTSecret is returned by Validate when the API would be unprotected.
var ErrMissingJWTSecret = errors.New("WPCONFIG_JWT_SECRET is not set")

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// LoaderOptions maps the service settings onto the constants loader.
func (c Config) LoaderOptions() wpconfig.Options {
	return wpconfig.Options{
		Root:           c.Root,
		RedisAvailable: c.RedisExtension,
		Strict:         c.Strict,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
