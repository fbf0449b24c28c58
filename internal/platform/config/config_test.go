package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"focusflow/internal/platform/config"
)

func TestNewDerivesStatePaths(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/vault")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join("/vault", ".focusflow", "focusflow.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.PrefsPath != filepath.Join("/vault", ".focusflow", "preferences.json") {
		t.Fatalf("unexpected prefs path %s", cfg.PrefsPath)
	}
	if cfg.CueClock != config.CueClockRunning || !cfg.Journal || cfg.DefaultMinutes != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty vault must fail")
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	vault := t.TempDir()
	path := filepath.Join(vault, "focusflow.yaml")
	content := "cue_clock: wall\ndefault_minutes: 10\nlog_level: debug\nreminder_cron: \"0 20 * * *\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSFLOW_LOG_LEVEL", "warn")
	t.Setenv("FOCUSFLOW_JOURNAL", "false")

	cfg, err := config.Load(vault, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CueClock != config.CueClockWall || cfg.DefaultMinutes != 10 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env should override file, got %s", cfg.LogLevel)
	}
	if cfg.Journal {
		t.Fatalf("env should disable journal")
	}
	if cfg.ReminderCron != "0 20 * * *" {
		t.Fatalf("unexpected reminder %q", cfg.ReminderCron)
	}
}

func TestLoadUsesVaultConfigWhenPresent(t *testing.T) {
	vault := t.TempDir()
	if cfg, err := config.Load(vault, ""); err != nil || cfg.CueClock != config.CueClockRunning {
		t.Fatalf("missing vault config should fall back to defaults: %+v %v", cfg, err)
	}
	dir := filepath.Join(vault, ".focusflow")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_drill: body_scan\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(vault, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultDrill != "body_scan" {
		t.Fatalf("expected vault config to apply, got %s", cfg.DefaultDrill)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	vault := t.TempDir()
	cases := map[string]string{
		"cue clock": "cue_clock: sideways\n",
		"minutes":   "default_minutes: 0\n",
		"cron":      "reminder_cron: \"not a cron\"\n",
	}
	for name, content := range cases {
		path := filepath.Join(vault, name+".yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := config.Load(vault, path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if _, err := config.Load(vault, filepath.Join(vault, "missing.yaml")); err == nil {
		t.Fatalf("explicit missing config file must fail")
	}
}
