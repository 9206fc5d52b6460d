package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "option-pricer/internal/errors"
)

func TestLoadMissingFileWritesTemplateAndUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if cfg.Solver != def.Solver {
		t.Errorf("solver config = %+v, want defaults %+v", cfg.Solver, def.Solver)
	}
	if cfg.Logging.Level != "info" || !cfg.Journal.Enabled {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Journal.Path != filepath.Join(dir, "pricer.db") {
		t.Errorf("journal path = %q, want default under config dir", cfg.Journal.Path)
	}
	if cfg.Logging.FilePath != filepath.Join(dir, "logs", "pricer.log") {
		t.Errorf("log path = %q, want default under config dir", cfg.Logging.FilePath)
	}

	// First run leaves a commented template behind.
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template config not written: %v", err)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[solver]
initial_guess = 0.3
tolerance = 1e-6
max_iterations = 50
max_volatility = 4.0

[journal]
enabled = false
path = "/tmp/custom.db"

[logging]
level = "debug"
console = true
file = false

[ui]
color_enabled = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Solver.InitialGuess != 0.3 || cfg.Solver.Tolerance != 1e-6 ||
		cfg.Solver.MaxIterations != 50 || cfg.Solver.MaxVolatility != 4.0 {
		t.Errorf("solver config not read: %+v", cfg.Solver)
	}
	if cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/custom.db" {
		t.Errorf("journal config not read: %+v", cfg.Journal)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Console || cfg.Logging.File {
		t.Errorf("logging config not read: %+v", cfg.Logging)
	}
	if cfg.UI.ColorEnabled {
		t.Errorf("ui config not read: %+v", cfg.UI)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[solver]
initial_guess = 0.25
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.InitialGuess != 0.25 {
		t.Errorf("initial_guess = %g, want 0.25", cfg.Solver.InitialGuess)
	}
	if cfg.Solver.MaxIterations != 100 || cfg.Solver.Tolerance != 1e-8 {
		t.Errorf("unset solver fields lost their defaults: %+v", cfg.Solver)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRICER_LOG_LEVEL", "warn")
	t.Setenv("PRICER_JOURNAL_PATH", "/tmp/env.db")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want env override warn", cfg.Logging.Level)
	}
	if cfg.Journal.Path != "/tmp/env.db" {
		t.Errorf("journal.path = %q, want env override", cfg.Journal.Path)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero initial guess", func(c *Config) { c.Solver.InitialGuess = 0 }, true},
		{"negative tolerance", func(c *Config) { c.Solver.Tolerance = -1e-8 }, true},
		{"zero iterations", func(c *Config) { c.Solver.MaxIterations = 0 }, true},
		{"max vol below guess", func(c *Config) { c.Solver.MaxVolatility = 0.1 }, true},
		{"bogus log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"empty log level ok", func(c *Config) { c.Logging.Level = "" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apperrors.Is(err, apperrors.ErrConfigInvalid) {
					t.Errorf("error %v does not wrap ErrConfigInvalid", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[solver]
max_iterations = -5
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}
