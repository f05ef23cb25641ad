// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "forex-journal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// JournalConfig holds journal and account settings.
type JournalConfig struct {
	DBPath          string  `mapstructure:"db_path"`
	UserID          string  `mapstructure:"user_id"`
	AccountCurrency string  `mapstructure:"account_currency"` // only "USD" is supported
	DefaultLotSize  float64 `mapstructure:"default_lot_size"`
}

// DisplayConfig holds output preferences.
type DisplayConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	CurveTail    int  `mapstructure:"curve_tail"` // equity curve points shown by `stats`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/forex-journal"
	}
	return filepath.Join(home, ".config", "forex-journal")
}

// Load loads configuration from the given directory, writing a template
// config on first run. Environment variables FXJ_DB_PATH, FXJ_USER_ID and
// FXJ_LOG_LEVEL override file values.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("writing config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("reading config.toml: %w", err)
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

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("journal.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("journal.user_id", "local")
	v.SetDefault("journal.account_currency", "USD")
	v.SetDefault("journal.default_lot_size", 1.0)
	v.SetDefault("display.color_enabled", true)
	v.SetDefault("display.curve_tail", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "journal.log"))
	v.SetDefault("logging.max_size", 20)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FXJ_DB_PATH"); v != "" {
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("FXJ_USER_ID"); v != "" {
		cfg.Journal.UserID = v
	}
	if v := os.Getenv("FXJ_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	if c.Journal.AccountCurrency != "USD" {
		return fmt.Errorf("%w: account_currency %q (only USD is supported)",
			apperrors.ErrConfigInvalid, c.Journal.AccountCurrency)
	}
	if c.Journal.DefaultLotSize <= 0 {
		return fmt.Errorf("%w: default_lot_size must be positive", apperrors.ErrConfigInvalid)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", apperrors.ErrConfigInvalid, c.Logging.Level)
	}
	return nil
}
