// Package config loads and validates environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Port int

	// Google Maps. The server key is preferred; the plain key is the
	// fallback name older deployments used. Either may be empty, in
	// which case geocoding/directions fail with a typed error and
	// landmark lookup degrades silently.
	GoogleMapsKey string

	// OpenAI key for simplify/tts/transcribe. May be empty; those
	// endpoints then report missing configuration.
	OpenAIKey string

	// JobsDir is where async TTS jobs persist metadata and audio.
	JobsDir string

	// UploadDir holds transient audio uploads for transcription.
	UploadDir string

	RequestTimeout  time.Duration
	ProviderTimeout time.Duration
}

// Load reads .env (if present) and then the environment, validating as
// it goes. Returns a ConfigError for any invalid value.
func Load() (*Config, error) {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_SERVER_KEY")
	if cfg.GoogleMapsKey == "" {
		cfg.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}

	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	cfg.JobsDir = os.Getenv("JOBS_DIR")
	if cfg.JobsDir == "" {
		cfg.JobsDir = "./jobs"
	}

	cfg.UploadDir = os.Getenv("UPLOAD_DIR")
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads/audio"
	}

	cfg.RequestTimeout = parseDurationEnv("REQUEST_TIMEOUT", 30*time.Second)
	cfg.ProviderTimeout = parseDurationEnv("PROVIDER_TIMEOUT", 6*time.Second)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		cfg.Port = 8080
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, &ConfigError{Field: "PORT", Message: "must be a valid integer"}
		}
		if port < 1 || port > 65535 {
			return nil, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"}
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Validate re-checks invariants on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	if c.JobsDir == "" {
		errs = append(errs, &ConfigError{Field: "JOBS_DIR", Message: "cannot be empty"})
	}
	return errors.Join(errs...)
}

// parseDurationEnv reads a duration from an environment variable.
// Falls back to defaultVal if the variable is unset or unparseable.
func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultVal
	}
	return d
}
