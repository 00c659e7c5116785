// Package config loads and saves budgetring settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all budgetring configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Chart      ChartConfig      `toml:"chart"`
	Appearance AppearanceConfig `toml:"appearance"`
	Currency   CurrencyConfig   `toml:"currency"`
	Feedback   FeedbackConfig   `toml:"feedback"`
	Budget     BudgetConfig     `toml:"budget"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath    string `toml:"db_path,omitempty"`
	ImportDir string `toml:"import_dir,omitempty"`
	DemoData  bool   `toml:"demo_data"`
	LogFile   string `toml:"log_file,omitempty"`
}

// ChartConfig holds donut geometry and tooltip sizing in chart pixels.
type ChartConfig struct {
	Size           float64 `toml:"size"`
	StrokeWidth    float64 `toml:"stroke_width"`
	GapDegrees     float64 `toml:"gap_degrees"`
	TooltipWidth   float64 `toml:"tooltip_width"`
	TooltipHeight  float64 `toml:"tooltip_height"`
	TooltipPadding float64 `toml:"tooltip_padding"`
	TooltipOffset  float64 `toml:"tooltip_offset"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// CurrencyConfig selects how amounts are displayed.
type CurrencyConfig struct {
	Code   string `toml:"code"`   // ISO 4217, e.g. "USD"
	Locale string `toml:"locale"` // BCP 47, e.g. "en-US"
}

// FeedbackConfig controls selection feedback.
type FeedbackConfig struct {
	Haptics bool `toml:"haptics"`
}

// BudgetConfig holds budget overrides.
type BudgetConfig struct {
	MonthlyTotal *float64           `toml:"monthly_total,omitempty"`
	Categories   map[string]float64 `toml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Chart: ChartConfig{
			Size:           200,
			StrokeWidth:    28,
			GapDegrees:     2,
			TooltipWidth:   120,
			TooltipHeight:  48,
			TooltipPadding: 8,
			TooltipOffset:  12,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Currency: CurrencyConfig{
			Code:   "USD",
			Locale: "en-US",
		},
		Feedback: FeedbackConfig{
			Haptics: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetring")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetring")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Environment variables that override the config file.
const (
	EnvCurrency = "BUDGETRING_CURRENCY"
	EnvLocale   = "BUDGETRING_LOCALE"
	EnvDB       = "BUDGETRING_DB"
	EnvHaptics  = "BUDGETRING_HAPTICS"
)

// ApplyEnv loads a .env file from the working directory, if present, and
// applies BUDGETRING_* overrides to cfg. Variables already set in the
// process environment win over the .env file.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Currency.Code = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Currency.Locale = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv(EnvHaptics); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvHaptics, v, err)
		}
		cfg.Feedback.Haptics = on
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// BudgetFor returns the configured monthly budget for category, falling
// back to fallback when no override exists.
func (c Config) BudgetFor(category string, fallback float64) float64 {
	want := NormalizeCategoryName(category)
	for name, v := range c.Budget.Categories {
		if NormalizeCategoryName(name) == want && v >= 0 {
			return v
		}
	}
	return fallback
}
