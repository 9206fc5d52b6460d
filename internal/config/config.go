// Package config provides configuration management for the pricer CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"option-pricer/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver"`
	Journal JournalConfig `mapstructure:"journal"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// SolverConfig holds the implied-volatility iteration budget.
type SolverConfig struct {
	InitialGuess  float64 `mapstructure:"initial_guess"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
	MaxVolatility float64 `mapstructure:"max_volatility"`
}

// JournalConfig holds valuation journal configuration.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty: <config dir>/pricer.db
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"` // empty: <config dir>/logs/pricer.log
	MaxSize    int    `mapstructure:"max_size"`  // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/option-pricer"
	}
	return filepath.Join(home, ".config", "option-pricer")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			InitialGuess:  0.2,
			Tolerance:     1e-8,
			MaxIterations: 100,
			MaxVolatility: 5.0,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    false,
			File:       true,
			MaxSize:    20,
			MaxBackups: 3,
			MaxAge:     30,
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, the default config directory is used. A missing
// config file is not an error: a commented template is written and the
// defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = filepath.Join(configDir, "logs", "pricer.log")
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(configDir, "pricer.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateConfig(configDir)
		}
		return err
	}

	return v.Unmarshal(cfg)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("solver.initial_guess", cfg.Solver.InitialGuess)
	v.SetDefault("solver.tolerance", cfg.Solver.Tolerance)
	v.SetDefault("solver.max_iterations", cfg.Solver.MaxIterations)
	v.SetDefault("solver.max_volatility", cfg.Solver.MaxVolatility)
	v.SetDefault("journal.enabled", cfg.Journal.Enabled)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age", cfg.Logging.MaxAge)
	v.SetDefault("ui.color_enabled", cfg.UI.ColorEnabled)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRICER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PRICER_JOURNAL_PATH"); v != "" {
		cfg.Journal.Path = v
	}
}

// Validate validates the configuration. All failures unwrap to
// errors.ErrConfigInvalid.
func (c *Config) Validate() error {
	if c.Solver.InitialGuess <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver.initial_guess must be positive, got %g", c.Solver.InitialGuess)
	}
	if c.Solver.Tolerance <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver.tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if c.Solver.MaxIterations <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver.max_iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	if c.Solver.MaxVolatility <= c.Solver.InitialGuess {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver.max_volatility (%g) must exceed the initial guess (%g)",
			c.Solver.MaxVolatility, c.Solver.InitialGuess)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid, "invalid logging level: %s", c.Logging.Level)
	}
	return nil
}
