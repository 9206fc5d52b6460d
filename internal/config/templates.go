package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Option Pricer Configuration

[solver]
# Starting volatility estimate for the Newton-Raphson iteration
initial_guess = 0.2
# Absolute price tolerance for convergence
tolerance = 1e-8
# Iteration budget before the solve fails
max_iterations = 100
# Upper clamp on the volatility estimate
max_volatility = 5.0

[journal]
# Record every calculation in the SQLite journal
enabled = true
# Journal database path (default: <config dir>/pricer.db)
# path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Also log to stderr
console = false
# Log to a rotating file
file = true
# Log file size limit in megabytes
max_size = 20
# Rotated files to keep
max_backups = 3
# Days to keep rotated files
max_age = 30

[ui]
# Enable colored output
color_enabled = true
`

// createTemplateConfig writes a commented config template so users have
// something to edit on first run. The built-in defaults stay in effect.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
