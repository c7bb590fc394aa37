// Package config loads the application configuration from an optional
// YAML file with environment variable overrides. Defaults work with no
// file at all.
package config

import (
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultDatabasePath is used when neither the config file nor LIBRIS_DB
// names a database.
const DefaultDatabasePath = "~/.local/share/libris/library.db"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds the SQLite database location
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Log:      LogConfig{Level: "warn"},
	}
}

// Load reads the config file at path (missing file is fine), applies
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if env := os.Getenv("LIBRIS_DB"); env != "" {
		cfg.Database.Path = env
	}
	if env := os.Getenv("LIBRIS_LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Path, validation.Required),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
	)
}

// SlogLevel maps the configured level onto slog
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
