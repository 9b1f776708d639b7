// Package config provides process configuration for the trade journal.
// The persisted application settings (conversion rate, notification
// toggles) live in the state snapshot; this package only covers how the
// process itself runs: where data lives, which snapshot backend to use,
// and how to log.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "trade-master/internal/errors"
)

// Config holds all process configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logs    LogsConfig    `mapstructure:"logs"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig selects and locates the snapshot backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "sqlite"
	DataDir string `mapstructure:"data_dir"`
}

// LogsConfig holds logging configuration.
type LogsConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	HistoryWeeks int    `mapstructure:"history_weeks"`
	Locale       string `mapstructure:"locale"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trademaster"
	}
	return filepath.Join(home, ".config", "trademaster")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.data_dir", configDir)
	v.SetDefault("logs.level", "info")
	v.SetDefault("logs.console", false)
	v.SetDefault("logs.file", true)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.history_weeks", 4)
	v.SetDefault("ui.locale", "en-US")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADEMASTER_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("TRADEMASTER_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TRADEMASTER_LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.Backend != "file" && c.Storage.Backend != "sqlite" {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "storage.backend must be 'file' or 'sqlite', got %q", c.Storage.Backend)
	}
	if c.Storage.DataDir == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "storage.data_dir is required")
	}
	if c.UI.HistoryWeeks <= 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "ui.history_weeks must be positive")
	}
	return nil
}
