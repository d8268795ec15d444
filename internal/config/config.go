// Package config loads tabDB settings from an optional TOML file and from
// TABDB_* environment variables, in that order of precedence (env wins).
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TABDB_LIMITS_MAX_ROWS.
const EnvPrefix = "TABDB"

type Config struct {
	DataDir string        `toml:"data_dir" mapstructure:"data_dir"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`
	Limits  LimitsConfig  `toml:"limits" mapstructure:"limits"`
	Metrics MetricsConfig `toml:"metrics" mapstructure:"metrics"`
}

type LogConfig struct {
	Level     string `toml:"level" mapstructure:"level"`
	Format    string `toml:"format" mapstructure:"format"`
	AddSource bool   `toml:"add_source" mapstructure:"add_source"`
}

type StorageConfig struct {
	// AtomicWrites saves through a temp file and rename instead of
	// deleting the old file first.
	AtomicWrites bool `toml:"atomic_writes" mapstructure:"atomic_writes"`
}

type LimitsConfig struct {
	MaxTokens  int `toml:"max_tokens" mapstructure:"max_tokens"`
	MaxRows    int `toml:"max_rows" mapstructure:"max_rows"`
	MaxColumns int `toml:"max_columns" mapstructure:"max_columns"`
}

type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables it.
	Addr string `toml:"addr" mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: "./databases",
		Log: LogConfig{
			Level:  "INFO",
			Format: "text",
		},
		Storage: StorageConfig{AtomicWrites: true},
		Limits: LimitsConfig{
			MaxTokens:  1000,
			MaxRows:    1000,
			MaxColumns: 100,
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays TABDB_* variables. Every known key is seeded with its
// current value so viper can resolve the environment for it.
func applyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, val := range cfg.settings() {
		v.SetDefault(key, val)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func (c *Config) settings() map[string]any {
	return map[string]any{
		"data_dir":              c.DataDir,
		"log.level":             c.Log.Level,
		"log.format":            c.Log.Format,
		"log.add_source":        c.Log.AddSource,
		"storage.atomic_writes": c.Storage.AtomicWrites,
		"limits.max_tokens":     c.Limits.MaxTokens,
		"limits.max_rows":       c.Limits.MaxRows,
		"limits.max_columns":    c.Limits.MaxColumns,
		"metrics.addr":          c.Metrics.Addr,
	}
}

// applyDefaults fills values left empty by the file or environment.
func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.DataDir == "" {
		cfg.DataDir = d.DataDir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}

// Validate checks limits and enumerated values.
func (c *Config) Validate() error {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Limits.MaxTokens <= 0 || c.Limits.MaxRows <= 0 {
		return fmt.Errorf("config: limits must be positive")
	}
	// The id column always counts towards the column limit.
	if c.Limits.MaxColumns < 1 {
		return fmt.Errorf("config: limits.max_columns must be at least 1")
	}
	return nil
}
