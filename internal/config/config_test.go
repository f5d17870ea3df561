package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JOBS_DIR", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("GOOGLE_MAPS_SERVER_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("PROVIDER_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.JobsDir != "./jobs" {
		t.Errorf("jobs dir = %q", cfg.JobsDir)
	}
	if cfg.UploadDir != "./uploads/audio" {
		t.Errorf("upload dir = %q", cfg.UploadDir)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.ProviderTimeout != 6*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.RequestTimeout, cfg.ProviderTimeout)
	}
}

func TestLoad_ServerKeyPreferredOverPlainKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_SERVER_KEY", "server-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "plain-key")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GoogleMapsKey != "server-key" {
		t.Errorf("key = %q, want server key", cfg.GoogleMapsKey)
	}
}

func TestLoad_PlainKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_SERVER_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "plain-key")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GoogleMapsKey != "plain-key" {
		t.Errorf("key = %q, want fallback key", cfg.GoogleMapsKey)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000", "-1"} {
		t.Setenv("PORT", port)
		_, err := Load()
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("PORT=%q: err = %v, want ConfigError", port, err)
			continue
		}
		if cfgErr.Field != "PORT" {
			t.Errorf("PORT=%q: field = %q", port, cfgErr.Field)
		}
	}
}

func TestLoad_CustomTimeouts(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("PROVIDER_TIMEOUT", "garbage")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("request timeout = %v", cfg.RequestTimeout)
	}
	// Unparseable falls back to the default rather than failing.
	if cfg.ProviderTimeout != 6*time.Second {
		t.Errorf("provider timeout = %v", cfg.ProviderTimeout)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080, JobsDir: "./jobs"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := &Config{Port: 0, JobsDir: ""}
	if err := bad.Validate(); err == nil {
		t.Error("invalid config accepted")
	}
}
