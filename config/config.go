// ABOUTME: Configuration loading for the pulse CLI and MCP server
// ABOUTME: Merges XDG YAML config, .env files, and PULSE_* environment overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/timewindow"
)

const AppName = "pulse"

// Config stores where data lives and the thresholds the dashboard uses.
type Config struct {
	DBPath           string `yaml:"db_path"`
	Timezone         string `yaml:"timezone,omitempty"`
	WeekDays         int    `yaml:"week_days"`
	StaleDealDays    int    `yaml:"stale_deal_days"`
	StaleContactDays int    `yaml:"stale_contact_days"`
	RecentDays       int    `yaml:"recent_days"`
}

// Dir returns the XDG config directory for pulse.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultDBPath returns the XDG data location of the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, "pulse.db")
}

func Default() *Config {
	opts := insights.DefaultOptions()
	return &Config{
		DBPath:           DefaultDBPath(),
		WeekDays:         timewindow.DefaultWindowDays,
		StaleDealDays:    opts.StaleDealDays,
		StaleContactDays: opts.StaleContactDays,
		RecentDays:       opts.RecentDays,
	}
}

// Load reads the config file, falling back to defaults when it does not
// exist. Variables from a .env file in the working directory are loaded
// first; environment variables override file values:
// - PULSE_DB_PATH
// - PULSE_TIMEZONE
// - PULSE_WEEK_DAYS
// - PULSE_STALE_DEAL_DAYS
// - PULSE_STALE_CONTACT_DAYS
// - PULSE_RECENT_DAYS.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFile(Path())
}

// LoadFile is Load without the .env step, reading from path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if path := os.Getenv("PULSE_DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	if tz := os.Getenv("PULSE_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"PULSE_WEEK_DAYS", &cfg.WeekDays},
		{"PULSE_STALE_DEAL_DAYS", &cfg.StaleDealDays},
		{"PULSE_STALE_CONTACT_DAYS", &cfg.StaleContactDays},
		{"PULSE_RECENT_DAYS", &cfg.RecentDays},
	}
	for _, v := range ints {
		raw := os.Getenv(v.env)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", v.env, raw, err)
		}
		*v.dst = n
	}
	return nil
}

// fillDefaults replaces zero or negative thresholds left by a sparse file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.WeekDays <= 0 {
		c.WeekDays = def.WeekDays
	}
	if c.StaleDealDays <= 0 {
		c.StaleDealDays = def.StaleDealDays
	}
	if c.StaleContactDays <= 0 {
		c.StaleContactDays = def.StaleContactDays
	}
	if c.RecentDays <= 0 {
		c.RecentDays = def.RecentDays
	}
}

// Save writes the config file, creating the XDG directory if needed.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Location resolves Timezone; empty means the machine's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) InsightOptions() insights.Options {
	return insights.Options{
		StaleDealDays:    c.StaleDealDays,
		StaleContactDays: c.StaleContactDays,
		RecentDays:       c.RecentDays,
	}
}

// Classifier builds a time-window classifier for this config. A non-zero
// now pins the reference instant.
func (c *Config) Classifier(now time.Time) (*timewindow.Classifier, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	opts := []timewindow.Option{
		timewindow.WithLocation(loc),
		timewindow.WithWindowDays(c.WeekDays),
	}
	if !now.IsZero() {
		opts = append(opts, timewindow.WithReference(now))
	}
	return timewindow.New(opts...), nil
}
