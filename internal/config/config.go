package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Sensitivity SensitivityConfig
	Limits      LimitsConfig
	UI          UIConfig
}

// SensitivityConfig shapes the sensitivity table grid.
type SensitivityConfig struct {
	StepCM float64 `mapstructure:"step_cm"`
	Span   int     `mapstructure:"span"`
}

// LimitsConfig is the global plausible measurement band in cm, used when no
// breed is selected.
type LimitsConfig struct {
	MinCM float64 `mapstructure:"min_cm"`
	MaxCM float64 `mapstructure:"max_cm"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultSpecies string `mapstructure:"default_species"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// TERNAK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("sensitivity.step_cm", 2.0)
	v.SetDefault("sensitivity.span", 1)
	v.SetDefault("limits.min_cm", 30.0)
	v.SetDefault("limits.max_cm", 300.0)
	v.SetDefault("ui.default_species", "cattle")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TERNAK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ternakscale"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TERNAK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// normalize pulls out-of-range settings back to defaults instead of erroring;
// a misconfigured preference should never block an estimate.
func normalize(c Config) Config {
	if c.Sensitivity.StepCM <= 0 || c.Sensitivity.StepCM > 10 {
		c.Sensitivity.StepCM = 2.0
	}
	if c.Sensitivity.Span < 1 || c.Sensitivity.Span > 5 {
		c.Sensitivity.Span = 1
	}
	if c.Limits.MinCM <= 0 || c.Limits.MaxCM <= c.Limits.MinCM {
		c.Limits.MinCM, c.Limits.MaxCM = 30.0, 300.0
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.DefaultSpecies)) {
	case "cattle", "goat", "sheep":
		c.UI.DefaultSpecies = strings.ToLower(strings.TrimSpace(c.UI.DefaultSpecies))
	default:
		c.UI.DefaultSpecies = "cattle"
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view for grid preferences.
func Save(cfg Config) error {
	path := os.Getenv("TERNAK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "ternakscale", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	cfg = normalize(cfg)
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("sensitivity.step_cm", cfg.Sensitivity.StepCM)
	v.Set("sensitivity.span", cfg.Sensitivity.Span)
	v.Set("limits.min_cm", cfg.Limits.MinCM)
	v.Set("limits.max_cm", cfg.Limits.MaxCM)
	v.Set("ui.default_species", cfg.UI.DefaultSpecies)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
