package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file in a temp working directory; defaults must apply.
	cfg, err := loadFromDir(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8090 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Backend.BaseURL != "http://localhost:3000" {
		t.Errorf("Unexpected backend default: %q", cfg.Backend.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default configuration must validate, got %v", err)
	}
}

func TestLoad_EnvOverridesWithoutConfigFile(t *testing.T) {
	t.Setenv("REPLYMATE_SERVER_PORT", "9999")
	t.Setenv("REPLYMATE_BACKEND_BASE_URL", "http://localhost:4444")
	t.Setenv("REPLYMATE_LOGGING_LEVEL", "debug")

	cfg, err := loadFromDir(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Env var must override the default port even with no config file, got %d", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://localhost:4444" {
		t.Errorf("Env var must override the backend URL, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Env var must override the log level, got %q", cfg.Logging.Level)
	}

	// Untouched keys keep their defaults.
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Unset keys must keep defaults, got host %q", cfg.Server.Host)
	}
}

// loadFromDir runs Load from a directory guaranteed to hold no config file.
func loadFromDir(t *testing.T) (*Config, error) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("Chdir() back error = %v", err)
		}
	})
	return Load("")
}
