// Package config loads tally settings from a TOML file, a .env file and
// TALLY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "TALLY_"

// Config holds all tally configuration.
type Config struct {
	General      GeneralConfig      `toml:"general"`
	Participants ParticipantsConfig `toml:"participants"`
	Appearance   AppearanceConfig   `toml:"appearance"`
	Export       ExportConfig       `toml:"export"`
}

// GeneralConfig holds storage and view preferences.
type GeneralConfig struct {
	DataDir    string `toml:"data_dir,omitempty" env:"DATA_DIR"`
	Backend    string `toml:"backend" env:"BACKEND"`
	MonthsBack int    `toml:"months_back" env:"MONTHS_BACK"`
	// Ledger names the stored collection; several ledgers can share a data dir.
	Ledger string `toml:"ledger,omitempty" env:"LEDGER"`
}

// ParticipantsConfig names the two people sharing the ledger.
type ParticipantsConfig struct {
	A string `toml:"a" env:"NAME_A"`
	B string `toml:"b" env:"NAME_B"`
}

// AppearanceConfig holds theme and currency display settings.
type AppearanceConfig struct {
	Theme          string `toml:"theme" env:"THEME"`
	CurrencySymbol string `toml:"currency_symbol,omitempty" env:"CURRENCY"`
}

// ExportConfig controls where exports are written and how they are named.
type ExportConfig struct {
	Dir   string `toml:"dir,omitempty" env:"EXPORT_DIR"`
	Label string `toml:"label,omitempty" env:"EXPORT_LABEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend:    "file",
			MonthsBack: 6,
		},
		Participants: ParticipantsConfig{
			A: "Person A",
			B: "Person B",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG data directory used when data_dir is unset.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tally")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and TALLY_* overrides.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile returns the defaults overlaid with config.toml only.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

// Update rewrites config.toml with fn applied to its current contents.
// Overrides from flags, .env and TALLY_* stay out of the file.
func Update(fn func(Config) Config) (Config, error) {
	base, err := LoadFile()
	if err != nil {
		return base, err
	}
	base = fn(base)
	if err := base.Validate(); err != nil {
		return base, err
	}
	return base, Save(base)
}

// ApplyEnv loads ./.env when present and overlays TALLY_* variables on cfg.
// Variables that are already set win over the .env file.
func ApplyEnv(cfg *Config) error {
	_ = godotenv.Load()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	if c.General.MonthsBack < 1 {
		return fmt.Errorf("months_back must be at least 1, got %d", c.General.MonthsBack)
	}
	if l := c.General.Ledger; l == "." || l == ".." || strings.ContainsAny(l, `/\`) {
		return fmt.Errorf("ledger must be a plain name, got %q", l)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir returns the configured data directory or the XDG default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// ExportDir returns the configured export directory, defaulting to the
// working directory.
func (c Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	return "."
}

// Names returns the participants' display names.
func (c Config) Names() pipeline.Names {
	return pipeline.Names{
		model.PayerA: c.Participants.A,
		model.PayerB: c.Participants.B,
	}
}
