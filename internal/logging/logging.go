// Package logging provides structured logging functionality.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"option-pricer/internal/config"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Console:    false,
		File:       true,
		FilePath:   filepath.Join(config.DefaultConfigDir(), "logs", "pricer.log"),
		MaxSize:    20,
		MaxBackups: 3,
		MaxAge:     30,
	}
}

// FromConfig maps the application logging section to a LogConfig.
func FromConfig(c config.LoggingConfig) LogConfig {
	cfg := DefaultLogConfig()
	if c.Level != "" {
		cfg.Level = c.Level
	}
	cfg.Console = c.Console
	cfg.File = c.File
	if c.FilePath != "" {
		cfg.FilePath = c.FilePath
	}
	if c.MaxSize > 0 {
		cfg.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		cfg.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		cfg.MaxAge = c.MaxAge
	}
	return cfg
}

// NewLogger creates a new logger with default configuration.
func NewLogger() zerolog.Logger {
	return NewLoggerWithConfig(DefaultLogConfig())
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	// Console writer goes to stderr so it never mixes with command output.
	if cfg.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		writers = append(writers, consoleWriter)
	}

	// File writer with rotation
	if cfg.File {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			fileWriter := &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			}
			writers = append(writers, fileWriter)
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		return zerolog.Nop()
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	return zerolog.New(writer).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// ContextKey is the type for context keys.
type ContextKey string

// LoggerKey is the context key for the logger.
const LoggerKey ContextKey = "logger"

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// LogValuation logs a completed pricing run.
func LogValuation(logger zerolog.Logger, optionType string, spot, strike, maturity, vol, rate, price float64) {
	logger.Info().
		Str("event", "valuation").
		Str("option_type", optionType).
		Float64("spot", spot).
		Float64("strike", strike).
		Float64("maturity", maturity).
		Float64("volatility", vol).
		Float64("rate", rate).
		Float64("price", price).
		Msg("Contract priced")
}

// LogSolve logs the outcome of an implied-volatility solve.
func LogSolve(logger zerolog.Logger, optionType string, marketPrice, vol float64, err error) {
	if err != nil {
		logger.Warn().
			Str("event", "implied_vol").
			Str("option_type", optionType).
			Float64("market_price", marketPrice).
			Err(err).
			Msg("Solve failed")
		return
	}
	logger.Info().
		Str("event", "implied_vol").
		Str("option_type", optionType).
		Float64("market_price", marketPrice).
		Float64("implied_vol", vol).
		Msg("Solve converged")
}
