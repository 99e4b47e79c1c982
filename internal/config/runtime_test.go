package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// Test history defaults
	if cfg.History.MaxDepth != 100 {
		t.Errorf("expected History.MaxDepth = 100, got %d", cfg.History.MaxDepth)
	}
	if cfg.History.MaxUnits != 64*1024 {
		t.Errorf("expected History.MaxUnits = 64KiB, got %d", cfg.History.MaxUnits)
	}

	// Test storage defaults
	if cfg.Storage.Path != "" {
		t.Errorf("expected Storage.Path empty, got %q", cfg.Storage.Path)
	}
	if cfg.Storage.InMemory {
		t.Error("expected Storage.InMemory = false")
	}

	// Test logging defaults
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected Logging.Level = warn, got %q", cfg.Logging.Level)
	}
}

func TestDefaultFile(t *testing.T) {
	path := DefaultFile()
	if !strings.HasSuffix(path, filepath.Join("trackedit", "config.yaml")) {
		t.Errorf("unexpected default config file %q", path)
	}
}

func TestConfigReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.History.MaxDepth = 1
	cfg.Storage.Path = "/tmp/elsewhere"

	cfg.Reset()

	if cfg.History.MaxDepth != 100 {
		t.Errorf("expected History.MaxDepth = 100 after reset, got %d", cfg.History.MaxDepth)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("expected Storage.Path empty after reset, got %q", cfg.Storage.Path)
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("TRACKEDIT_DATABASE", "/tmp/trackedit-db")
	t.Setenv("TRACKEDIT_HISTORY_DEPTH", "5")
	t.Setenv("TRACKEDIT_HISTORY_UNITS", "2048")
	t.Setenv("TRACKEDIT_LOG_LEVEL", "debug")
	t.Setenv("TRACKEDIT_METRICS_FILE", "/tmp/trackedit.prom")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	if cfg.Storage.Path != "/tmp/trackedit-db" {
		t.Errorf("expected Storage.Path from env, got %q", cfg.Storage.Path)
	}
	if cfg.History.MaxDepth != 5 {
		t.Errorf("expected History.MaxDepth = 5 from env, got %d", cfg.History.MaxDepth)
	}
	if cfg.History.MaxUnits != 2048 {
		t.Errorf("expected History.MaxUnits = 2048 from env, got %d", cfg.History.MaxUnits)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level = debug from env, got %q", cfg.Logging.Level)
	}
	if cfg.Metrics.TextfilePath != "/tmp/trackedit.prom" {
		t.Errorf("expected Metrics.TextfilePath from env, got %q", cfg.Metrics.TextfilePath)
	}
}

func TestConfigLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("TRACKEDIT_HISTORY_DEPTH", "not-a-number")
	t.Setenv("TRACKEDIT_HISTORY_UNITS", "-4")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	// Verify defaults are kept when env values are invalid
	if cfg.History.MaxDepth != 100 {
		t.Errorf("expected History.MaxDepth = 100 (default), got %d", cfg.History.MaxDepth)
	}
	if cfg.History.MaxUnits != 64*1024 {
		t.Errorf("expected History.MaxUnits = 64KiB (default), got %d", cfg.History.MaxUnits)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
history:
  max_depth: 10
storage:
  in_memory: true
logging:
  level: info
  json: true
metrics:
  textfile_path: /var/lib/node_exporter/trackedit.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxDepth != 10 {
		t.Errorf("expected History.MaxDepth = 10, got %d", cfg.History.MaxDepth)
	}
	// Keys absent from the file keep their defaults.
	if cfg.History.MaxUnits != 64*1024 {
		t.Errorf("expected History.MaxUnits default, got %d", cfg.History.MaxUnits)
	}
	if !cfg.Storage.InMemory {
		t.Error("expected Storage.InMemory = true")
	}
	if cfg.Logging.Level != "info" || !cfg.Logging.JSON {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Metrics.TextfilePath != "/var/lib/node_exporter/trackedit.prom" {
		t.Errorf("unexpected metrics path %q", cfg.Metrics.TextfilePath)
	}
	if cfg.Source != path {
		t.Errorf("expected Source = %q, got %q", path, cfg.Source)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "history:\n  max_depth: 10\n")
	t.Setenv("TRACKEDIT_HISTORY_DEPTH", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxDepth != 3 {
		t.Errorf("expected env to win, got %d", cfg.History.MaxDepth)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "history: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative_depth", "history:\n  max_depth: -1\n"},
		{"negative_units", "history:\n  max_units: -1\n"},
		{"unknown_level", "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAcceptsLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		cfg := DefaultRuntimeConfig()
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("level %q: unexpected error %v", level, err)
		}
	}
}
