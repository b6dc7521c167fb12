// Package config holds the runtime configuration for the notty CLI:
// game setup, learning hyperparameters, and persistence selection.
// Values flow in from flags and NOTTY_-prefixed environment variables;
// this package owns defaults and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store backends for the Q-table.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds all notty settings.
type Config struct {
	// Game setup
	Players int    `mapstructure:"players"`
	Seed    uint64 `mapstructure:"seed"` // 0 means derive from entropy

	// Training
	Episodes int `mapstructure:"episodes"`

	// Learning hyperparameters
	Alpha        float64 `mapstructure:"alpha"`
	Gamma        float64 `mapstructure:"gamma"`
	Epsilon      float64 `mapstructure:"epsilon"`
	EpsilonDecay float64 `mapstructure:"epsilon_decay"`
	EpsilonMin   float64 `mapstructure:"epsilon_min"`
	SaveEvery    int     `mapstructure:"save_every"`

	// Persistence
	Store      string `mapstructure:"store"`       // json or sqlite
	QTablePath string `mapstructure:"qtable_path"` // empty means the per-user default

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Players:      2,
		Episodes:     1000,
		Alpha:        0.1,
		Gamma:        0.9,
		Epsilon:      0.2,
		EpsilonDecay: 0.9995,
		EpsilonMin:   0.05,
		SaveEvery:    100,
		Store:        StoreJSON,
		LogLevel:     "info",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Players < 2 || c.Players > 3 {
		return fmt.Errorf("players must be 2 or 3, got %d", c.Players)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon_decay must be in (0, 1], got %v", c.EpsilonDecay)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("epsilon_min must be in [0, epsilon], got %v", c.EpsilonMin)
	}
	if c.SaveEvery < 0 {
		return fmt.Errorf("save_every must not be negative, got %d", c.SaveEvery)
	}
	if c.Store != StoreJSON && c.Store != StoreSQLite {
		return fmt.Errorf("store must be %q or %q, got %q", StoreJSON, StoreSQLite, c.Store)
	}
	return nil
}

// ResolveQTablePath returns the Q-table location: the configured path, or
// the per-user default for the selected backend.
func (c *Config) ResolveQTablePath() (string, error) {
	if c.QTablePath != "" {
		return c.QTablePath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolving user config dir: %w", err)
	}
	name := "notty_qtable.json"
	if c.Store == StoreSQLite {
		name = "notty_qtable.db"
	}
	return filepath.Join(base, "notty", name), nil
}
