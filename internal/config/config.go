// Package config loads and saves the application configuration from
// ~/.deckforge/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Collection CollectionConfig `toml:"collection"`
	Build      BuildConfig      `toml:"build"`
	App        AppConfig        `toml:"app"`
}

// DatabaseConfig contains local card database settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // SQLite file path; empty = ~/.deckforge/deckforge.db
	AutoMigrate bool   `toml:"auto_migrate"` // Apply schema migrations on open
}

// CollectionConfig contains owned-collection import settings.
type CollectionConfig struct {
	FilePath    string `toml:"file_path"`    // Path to the collection CSV or text list
	Watch       bool   `toml:"watch"`        // Re-import automatically when the file changes
	WatchDelay  string `toml:"watch_delay"`  // Debounce delay (e.g. "2s")
}

// BuildConfig contains default deck-building options.
type BuildConfig struct {
	Archetype       string `toml:"archetype"`        // balanced, tribal, spellslinger, voltron, control
	Power           string `toml:"power"`            // precon, upgraded, high_power, cedh
	Playstyle       string `toml:"playstyle"`        // e.g. "stax_lite", "battlecruiser"
	EnforceLegality bool   `toml:"enforce_legality"` // Apply banlist and legality data
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool   `toml:"debug_mode"` // Enable debug logging
	ReportDir string `toml:"report_dir"` // Directory for HTML deck reports
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Collection: CollectionConfig{
			FilePath:   "",
			Watch:      false,
			WatchDelay: "2s",
		},
		Build: BuildConfig{
			Archetype:       "balanced",
			Power:           "upgraded",
			EnforceLegality: true,
		},
		App: AppConfig{
			DebugMode: false,
			ReportDir: "",
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".deckforge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabasePath resolves the configured or default database location.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deckforge.db"), nil
}

// Load loads the configuration from disk. Returns the defaults when no
// config file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Collection.WatchDelay); err != nil {
		return fmt.Errorf("invalid watch delay %q: %w", c.Collection.WatchDelay, err)
	}

	switch c.Build.Archetype {
	case "", "balanced", "tribal", "spellslinger", "voltron", "control":
	default:
		return fmt.Errorf("unknown archetype %q", c.Build.Archetype)
	}

	switch c.Build.Power {
	case "", "precon", "upgraded", "high_power", "cedh":
	default:
		return fmt.Errorf("unknown power level %q", c.Build.Power)
	}

	return nil
}

// GetWatchDelay returns the collection watch debounce as a duration.
func (c *Config) GetWatchDelay() (time.Duration, error) {
	return time.ParseDuration(c.Collection.WatchDelay)
}
