package config

import (
	"fmt"
	"path/filepath"

	"github.com/robfig/cron/v3"
)

const (
	CueClockRunning = "running"
	CueClockWall    = "wall"
)

type Config struct {
	VaultPath string `koanf:"vault_path"`
	DBPath    string `koanf:"db_path"`
	PrefsPath string `koanf:"prefs_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	LogPath  string `koanf:"log_path"`

	// CueClock selects whether cues follow running time (pausable) or wall
	// time since the practice started.
	CueClock string `koanf:"cue_clock"`

	// Journal writes a markdown note per logged session into the vault.
	Journal bool `koanf:"journal"`

	// ReminderCron is a standard 5-field cron spec; empty disables reminders.
	ReminderCron string `koanf:"reminder_cron"`

	// MetricsPath receives a Prometheus textfile snapshot on exit when set.
	MetricsPath string `koanf:"metrics_path"`

	DefaultDrill   string `koanf:"default_drill"`
	DefaultMinutes int    `koanf:"default_minutes"`
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	cfg := defaults(vaultPath)
	cfg.resolvePaths()
	return cfg, cfg.Validate()
}

func defaults(vaultPath string) Config {
	return Config{
		VaultPath:      vaultPath,
		LogLevel:       "info",
		CueClock:       CueClockRunning,
		Journal:        true,
		DefaultDrill:   "focused_breathing",
		DefaultMinutes: 5,
	}
}

func (c *Config) resolvePaths() {
	state := filepath.Join(c.VaultPath, ".focusflow")
	if c.DBPath == "" {
		c.DBPath = filepath.Join(state, "focusflow.db")
	}
	if c.PrefsPath == "" {
		c.PrefsPath = filepath.Join(state, "preferences.json")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(state, "focusflow.log")
	}
}

func (c Config) Validate() error {
	if c.VaultPath == "" {
		return fmt.Errorf("vault path is required")
	}
	switch c.CueClock {
	case CueClockRunning, CueClockWall:
	default:
		return fmt.Errorf("cue_clock must be %q or %q, got %q", CueClockRunning, CueClockWall, c.CueClock)
	}
	if c.DefaultMinutes <= 0 {
		return fmt.Errorf("default_minutes must be positive, got %d", c.DefaultMinutes)
	}
	if c.ReminderCron != "" {
		if _, err := cron.ParseStandard(c.ReminderCron); err != nil {
			return fmt.Errorf("reminder_cron: %w", err)
		}
	}
	return nil
}
