package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	xdgAppName = "kairos"
	configFile = "config.json"

	DefaultCalendar        = "primary"
	DefaultCalendarTimeout = 10 * time.Second
	// DefaultMaxBudget is one week of minutes.
	DefaultMaxBudget      = 7 * 24 * 60
	DefaultDigestSchedule = "0 8 * * *"
	DefaultSource         = "taskwarrior"
)

type Config struct {
	Calendar         string `json:"calendar"`
	CalendarTimeout  string `json:"calendar_timeout,omitempty"`
	MaxBudgetMinutes int    `json:"max_budget_minutes,omitempty"`
	DigestSchedule   string `json:"digest_schedule,omitempty"`
	// Source is where tasks come from: "taskwarrior", "org" or "file".
	Source string `json:"source,omitempty"`
	// Files are the org files or the YAML task file for the other sources.
	Files []string `json:"files,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Calendar == "" {
		c.Calendar = DefaultCalendar
	}
	if c.CalendarTimeout == "" {
		c.CalendarTimeout = DefaultCalendarTimeout.String()
	}
	if c.MaxBudgetMinutes <= 0 {
		c.MaxBudgetMinutes = DefaultMaxBudget
	}
	if c.DigestSchedule == "" {
		c.DigestSchedule = DefaultDigestSchedule
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
}

// Timeout returns the calendar fetch timeout, falling back to the default when
// the configured value does not parse or is not positive.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.CalendarTimeout)
	if err != nil || d <= 0 {
		return DefaultCalendarTimeout
	}
	return d
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
