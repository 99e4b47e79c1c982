// Package config provides centralized configuration for Trackedit runtime values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config home.
const AppName = "trackedit"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// History configuration
	History HistoryConfig `yaml:"history" json:"history"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Metrics configuration
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Source is the config file that was loaded, empty when none was found.
	Source string `yaml:"-" json:"source,omitempty"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	// MaxDepth is the maximum number of undo entries kept. Zero means unbounded.
	// Default: 100
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// MaxUnits is the maximum summed action size across both stacks.
	// Zero means unbounded.
	// Default: 64KiB
	MaxUnits int `yaml:"max_units" json:"max_units"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory. Empty uses the XDG data directory.
	Path string `yaml:"path" json:"path"`

	// InMemory keeps everything in memory; nothing survives the process.
	InMemory bool `yaml:"in_memory" json:"in_memory"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level" json:"level"`

	// JSON selects the JSON handler instead of text.
	JSON bool `yaml:"json" json:"json"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// TextfilePath is where history metrics are written on exit, in the
	// node_exporter textfile format. Empty disables the export.
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"`
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		History: HistoryConfig{
			MaxDepth: 100,
			MaxUnits: 64 * 1024, // 64KiB
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultFile returns the default config file location.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (or DefaultFile when path is empty), then environment overrides.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.loadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges the YAML file at path over the current values.
func (c *RuntimeConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.Source = path
	return nil
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	if v := os.Getenv("TRACKEDIT_DATABASE"); v != "" {
		c.Storage.Path = v
	}

	// History configuration
	if v := os.Getenv("TRACKEDIT_HISTORY_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.History.MaxDepth = n
		}
	}
	if v := os.Getenv("TRACKEDIT_HISTORY_UNITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.History.MaxUnits = n
		}
	}

	// Logging configuration
	if v := os.Getenv("TRACKEDIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	// Metrics configuration
	if v := os.Getenv("TRACKEDIT_METRICS_FILE"); v != "" {
		c.Metrics.TextfilePath = v
	}
}

// Validate reports values no component can run with.
func (c *RuntimeConfig) Validate() error {
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("history.max_depth must not be negative, got %d", c.History.MaxDepth)
	}
	if c.History.MaxUnits < 0 {
		return fmt.Errorf("history.max_units must not be negative, got %d", c.History.MaxUnits)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
