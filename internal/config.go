package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// StoreConfig selects where subscriptions are kept.
type StoreConfig struct {
	Driver string `yaml:"driver,omitempty"` // "yaml" (default) or "sqlite"
	Path   string `yaml:"path,omitempty"`
}

type Config struct {
	// Timezone is the civil timezone for "today" and all date boundaries.
	// An IANA name or a fixed offset such as "UTC+05:30".
	Timezone string `yaml:"timezone,omitempty"`

	// Currency is an ISO 4217 code used when formatting amounts.
	Currency string `yaml:"currency,omitempty"`

	// Locale is a BCP 47 tag controlling digit grouping ("en-IN"), or "auto"
	// for the system locale.
	Locale string `yaml:"locale,omitempty"`

	Store StoreConfig `yaml:"store,omitempty"`

	// DueWithinDays is the reminder horizon in days.
	DueWithinDays int `yaml:"due_within_days,omitempty"`

	// RemindSchedule is the cron spec used by `remind --watch`.
	RemindSchedule string `yaml:"remind_schedule,omitempty"`

	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`

	// UseDefaultPresets controls whether the built-in preset catalog is
	// included. Defaults to true.
	UseDefaultPresets *bool `yaml:"use_default_presets,omitempty"`

	// Presets adds services to the catalog.
	Presets []Preset `yaml:"presets,omitempty"`
}

const (
	DefaultCurrency       = "INR"
	DefaultLocale         = "en-IN"
	DefaultRemindSchedule = "0 9 * * *"
	DefaultStoreDriver    = "yaml"
)

// Environment variables that override the config file.
const (
	EnvTimezone    = "SUBTRACK_TIMEZONE"
	EnvCurrency    = "SUBTRACK_CURRENCY"
	EnvStoreDriver = "SUBTRACK_STORE_DRIVER"
	EnvStorePath   = "SUBTRACK_STORE_PATH"
	EnvLogLevel    = "SUBTRACK_LOG_LEVEL"
)

// DefaultConfigDir returns ~/.subscription-tracker.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-tracker")
}

// DefaultConfigPath returns the default config file path (~/.subscription-tracker/config.yaml)
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// NewDefaultConfig returns a config with every default filled in. Use this when
// no config file exists.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads path, applies environment overrides and defaults, and
// validates the result. A missing file is not an error when path is the
// default location.
func LoadConfig(path string) (*Config, error) {
	// A .env file is optional; existing environment variables win.
	_ = godotenv.Load()

	cfg := &Config{}
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath():
			// fall through with defaults
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Currency = v
	}
	if v := os.Getenv(EnvStoreDriver); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	c.Currency = strings.ToUpper(c.Currency)
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DefaultStoreDriver
	}
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	if c.Store.Path == "" {
		name := "subscriptions.yaml"
		if c.Store.Driver == "sqlite" {
			name = "subscriptions.db"
		}
		c.Store.Path = filepath.Join(DefaultConfigDir(), name)
	}
	if c.DueWithinDays <= 0 {
		c.DueWithinDays = DefaultDueWithinDays
	}
	if c.RemindSchedule == "" {
		c.RemindSchedule = DefaultRemindSchedule
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate checks values that would otherwise fail much later: the timezone,
// the store driver, the cron schedule and the extra presets.
func (c *Config) Validate() error {
	if _, err := LoadZone(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	switch c.Store.Driver {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("invalid store driver %q (want yaml or sqlite)", c.Store.Driver)
	}
	if _, err := cron.ParseStandard(c.RemindSchedule); err != nil {
		return fmt.Errorf("invalid remind_schedule %q: %w", c.RemindSchedule, err)
	}
	for _, p := range c.Presets {
		if p.Name == "" || len(p.Plans) == 0 {
			return fmt.Errorf("preset %q needs a name and at least one plan", p.Name)
		}
		if _, err := ParseCategory(string(p.Category)); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		for _, plan := range p.Plans {
			if strings.TrimSpace(plan.Name) == "" {
				return fmt.Errorf("preset %q has a plan without a name", p.Name)
			}
			if plan.Cost < 0 {
				return fmt.Errorf("preset %q plan %q: cost must not be negative", p.Name, plan.Name)
			}
			if !plan.Cycle.Valid() {
				return fmt.Errorf("preset %q plan %q: %w", p.Name, plan.Name, &CycleError{Input: plan.Cycle.String()})
			}
		}
	}
	return nil
}

// Catalog returns the preset catalog described by the config.
func (c *Config) Catalog() *Catalog {
	useDefaults := c == nil || c.UseDefaultPresets == nil || *c.UseDefaultPresets
	var extra []Preset
	if c != nil {
		extra = c.Presets
	}
	return NewCatalog(useDefaults, extra)
}

// Calendar builds the process-wide calendar for the configured timezone.
func (c *Config) Calendar() (*Calendar, error) {
	return LoadCalendar(c.Timezone, nil)
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
