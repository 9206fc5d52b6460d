// Package cli provides the command-line interface for the option pricer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"option-pricer/internal/config"
	"option-pricer/internal/logging"
	"option-pricer/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Journal store.Journal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}
	noColor = !cfg.UI.ColorEnabled

	// Open the valuation journal. Calculations still work without it.
	if cfg.Journal.Enabled {
		journal, err := store.NewSQLiteStore(cfg.Journal.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open valuation journal, calculations will not be recorded")
		} else {
			app.Journal = journal
		}
	}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Black-Scholes option pricer and implied-volatility solver",
		Long: `Pricer values European options under the Black-Scholes model.

It computes prices and Greeks (delta, gamma, theta, vega, rho) from the five
model parameters, and inverts the pricing formula to recover the implied
volatility from an observed market price. Every calculation is recorded in a
local SQLite journal.

Use 'pricer examples' to see common invocations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/option-pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newExamplesCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("pricer v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Solver Configuration")
	output.Printf("  Initial Guess:   %.4f\n", cfg.Solver.InitialGuess)
	output.Printf("  Tolerance:       %g\n", cfg.Solver.Tolerance)
	output.Printf("  Max Iterations:  %d\n", cfg.Solver.MaxIterations)
	output.Printf("  Max Volatility:  %.2f\n", cfg.Solver.MaxVolatility)
	output.Println()

	output.Bold("Journal Configuration")
	output.Printf("  Enabled:         %v\n", cfg.Journal.Enabled)
	output.Printf("  Path:            %s\n", cfg.Journal.Path)
	output.Println()

	output.Bold("Logging Configuration")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
	output.Println()

	output.Bold("UI Configuration")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)

	return nil
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common invocations",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			output.Bold("Common invocations")
			output.Println()
			output.Println(`  # Price a one-year at-the-money call
  pricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --type call

  # Price both sides and check put-call parity
  pricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --type both

  # Full sensitivity report
  pricer greeks --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --type put

  # Recover implied volatility from a market quote
  pricer iv --spot 100 --strike 100 --maturity 1 --rate 0.05 --type call --market-price 10.45

  # Review recent calculations
  pricer journal list --limit 20`)
		},
	}
}
