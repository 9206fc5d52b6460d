package main

import (
	"fmt"
	"os"

	"option-pricer/internal/cli"
	"option-pricer/internal/config"
	"option-pricer/internal/logging"
)

func main() {
	// The config directory must be known before cobra parses flags, so the
	// --config flag is pre-scanned here. PRICER_CONFIG_DIR works as well.
	configDir := os.Getenv("PRICER_CONFIG_DIR")
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricer: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(logging.FromConfig(cfg.Logging))

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
