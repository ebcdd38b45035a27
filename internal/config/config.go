// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/shift"
)

// Config holds the application configuration.
type Config struct {
	Shift   ShiftConfig   `toml:"shift"`
	Input   InputConfig   `toml:"input"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Notify  NotifyConfig  `toml:"notify"`
}

// ShiftConfig holds the workday length settings, all in minutes.
type ShiftConfig struct {
	TargetMinutes       int `toml:"target_minutes"`        // e.g., 528 (8h48min)
	ToleranceMinutes    int `toml:"tolerance_minutes"`     // e.g., 10
	MinimumBreakMinutes int `toml:"minimum_break_minutes"` // e.g., 72 (1h12min)
}

// InputConfig controls how clock strings are read.
type InputConfig struct {
	StrictTimeFormat bool `toml:"strict_time_format"` // reject malformed HH:MM instead of treating it as empty
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// NotifyConfig holds clock-out reminder settings.
type NotifyConfig struct {
	Enabled     bool `toml:"enabled"`
	LeadMinutes int  `toml:"lead_minutes"` // remind this many minutes before clock-out
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Shift: ShiftConfig{
			TargetMinutes:       shift.DefaultTargetMinutes,
			ToleranceMinutes:    shift.DefaultToleranceMinutes,
			MinimumBreakMinutes: shift.DefaultMinimumBreakMinutes,
		},
		Input: InputConfig{
			StrictTimeFormat: true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Notify: NotifyConfig{
			Enabled:     true,
			LeadMinutes: 0,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ponto.db"
	}
	return filepath.Join(home, ".local", "share", "ponto", "ponto.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ponto", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"PONTO_TARGET_MINUTES", &cfg.Shift.TargetMinutes},
		{"PONTO_TOLERANCE_MINUTES", &cfg.Shift.ToleranceMinutes},
		{"PONTO_MINIMUM_BREAK_MINUTES", &cfg.Shift.MinimumBreakMinutes},
	}
	for _, o := range ints {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := clock.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("PONTO_STRICT_TIME_FORMAT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PONTO_STRICT_TIME_FORMAT: %w", err)
		}
		cfg.Input.StrictTimeFormat = b
	}
	if v := os.Getenv("PONTO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("PONTO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.ShiftConfig().Validate(); err != nil {
		return err
	}
	if c.Notify.LeadMinutes < 0 || c.Notify.LeadMinutes > 120 {
		return fmt.Errorf("notify lead_minutes must be between 0 and 120, got %d", c.Notify.LeadMinutes)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// ShiftConfig returns the calculation settings.
func (c *Config) ShiftConfig() shift.Config {
	return shift.Config{
		TargetMinutes:       c.Shift.TargetMinutes,
		ToleranceMinutes:    c.Shift.ToleranceMinutes,
		MinimumBreakMinutes: c.Shift.MinimumBreakMinutes,
	}
}

// TimeMode returns how clock strings should be parsed.
func (c *Config) TimeMode() clock.Mode {
	if c.Input.StrictTimeFormat {
		return clock.Strict
	}
	return clock.Lenient
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
