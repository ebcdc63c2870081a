package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvTimezone, EnvCurrency, EnvStoreDriver, EnvStorePath, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Timezone != DefaultTimezone || cfg.Currency != DefaultCurrency || cfg.Locale != DefaultLocale {
		t.Errorf("unexpected locale defaults: %+v", cfg)
	}
	if cfg.Store.Driver != "yaml" || !strings.HasSuffix(cfg.Store.Path, "subscriptions.yaml") {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.DueWithinDays != DefaultDueWithinDays || cfg.RemindSchedule != DefaultRemindSchedule {
		t.Errorf("unexpected reminder defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
timezone: UTC+05:30
currency: usd
locale: en-US
store:
  driver: SQLite
  path: /tmp/subs.db
due_within_days: 7
remind_schedule: "30 8 * * 1-5"
use_default_presets: false
presets:
  - name: Tiffin Service
    category: Food
    plans:
      - name: Month
        cost: 2400
        cycle: monthly
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Timezone != "UTC+05:30" || cfg.Currency != "USD" || cfg.Locale != "en-US" {
		t.Errorf("unexpected locale settings: %+v", cfg)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/subs.db" {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	if cfg.DueWithinDays != 7 || cfg.RemindSchedule != "30 8 * * 1-5" {
		t.Errorf("unexpected reminder settings: %+v", cfg)
	}

	catalog := cfg.Catalog()
	if len(catalog.Presets) != 1 || catalog.Presets[0].Plans[0].Cycle != Monthly {
		t.Errorf("unexpected catalog: %+v", catalog.Presets)
	}

	cal, err := cfg.Calendar()
	if err != nil {
		t.Fatal(err)
	}
	if _, offset := cal.Now().Zone(); offset != 19800 {
		t.Errorf("calendar offset = %d, want 19800", offset)
	}
}

func TestLoadConfig_SQLiteDefaultPath(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig(writeConfig(t, "store:\n  driver: sqlite\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cfg.Store.Path, "subscriptions.db") {
		t.Errorf("Store.Path = %s, want subscriptions.db", cfg.Store.Path)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvTimezone, "Europe/Stockholm")
	t.Setenv(EnvCurrency, "sek")
	t.Setenv(EnvStorePath, "/tmp/override.yaml")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadConfig(writeConfig(t, "timezone: Asia/Kolkata\ncurrency: INR\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != "Europe/Stockholm" || cfg.Currency != "SEK" {
		t.Errorf("env did not override file: %+v", cfg)
	}
	if cfg.Store.Path != "/tmp/override.yaml" || cfg.LogLevel != "debug" {
		t.Errorf("env did not set store path/log level: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad timezone", "timezone: Mars/Base\n", "invalid timezone"},
		{"bad driver", "store:\n  driver: postgres\n", "invalid store driver"},
		{"bad schedule", "remind_schedule: every morning\n", "invalid remind_schedule"},
		{"preset without plans", "presets:\n  - name: Empty\n    category: Other\n", "at least one plan"},
		{"preset with bad category", "presets:\n  - name: X\n    category: Travel\n    plans:\n      - {name: M, cost: 1, cycle: Monthly}\n", "unknown category"},
		{"preset with bad cycle", "presets:\n  - name: X\n    category: Other\n    plans:\n      - {name: M, cost: 1, cycle: weekly}\n", "unsupported billing cycle"},
		{"preset plan without cycle", "presets:\n  - name: Gym\n    category: Health\n    plans:\n      - {name: Basic, cost: 1200}\n", `preset "Gym" plan "Basic": unsupported billing cycle`},
		{"preset plan without name", "presets:\n  - name: Gym\n    category: Health\n    plans:\n      - {cost: 1200, cycle: Monthly}\n", "plan without a name"},
		{"preset plan with negative cost", "presets:\n  - name: Gym\n    category: Health\n    plans:\n      - {name: Basic, cost: -1, cycle: Monthly}\n", "cost must not be negative"},
		{"malformed yaml", "timezone: [unclosed\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearConfigEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	clearConfigEnv(t)
	cfg := NewDefaultConfig()
	cfg.Currency = "EUR"
	cfg.DueWithinDays = 14

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Currency != "EUR" || loaded.DueWithinDays != 14 {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}

func TestLoadConfig_PresetPlanWithoutCycle(t *testing.T) {
	clearConfigEnv(t)
	_, err := LoadConfig(writeConfig(t, "presets:\n  - name: Gym\n    category: Health\n    plans:\n      - {name: Basic, cost: 1200}\n"))
	if !errors.Is(err, ErrUnsupportedCycle) {
		t.Errorf("LoadConfig() error = %v, want ErrUnsupportedCycle", err)
	}
}
