// Package config resolves pipeline settings from defaults, an optional config
// file, SHOPCAT_* environment variables (also read from .env) and CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "SHOPCAT"

// DefaultCategorical lists the text columns label-encoded before training.
var DefaultCategorical = []string{
	"Gender", "Item Purchased", "Location", "Size", "Color",
	"Season", "Subscription Status", "Shipping Type",
	"Discount Applied", "Promo Code Used", "Payment Method",
	"Frequency of Purchases",
}

// Config represents the pipeline configuration
type Config struct {
	// Dataset
	Input       string   `mapstructure:"input"`
	IDColumn    string   `mapstructure:"id-column"`
	Target      string   `mapstructure:"target"`
	Categorical []string `mapstructure:"categorical"`

	// Split
	TestSize float64 `mapstructure:"test-size"`
	Seed     int64   `mapstructure:"seed"`

	// Forest
	Trees           int    `mapstructure:"trees"`
	MaxDepth        int    `mapstructure:"max-depth"`
	MinSamplesSplit int    `mapstructure:"min-samples-split"`
	MinSamplesLeaf  int    `mapstructure:"min-samples-leaf"`
	MaxFeatures     int    `mapstructure:"max-features"` // 0 means sqrt(features)
	Criterion       string `mapstructure:"criterion"`
	Workers         int    `mapstructure:"workers"` // 0 means runtime.NumCPU()

	// Output
	Top  int    `mapstructure:"top"`
	Plot string `mapstructure:"plot"` // empty disables the chart

	// Logging
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Default returns the settings of the original one-shot script.
func Default() Config {
	return Config{
		Input:           "shopping_behavior_updated (1).csv",
		IDColumn:        "Customer ID",
		Target:          "Category",
		Categorical:     append([]string(nil), DefaultCategorical...),
		TestSize:        0.2,
		Seed:            42,
		Trees:           100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Criterion:       "gini",
		Workers:         0,
		Top:             10,
		Plot:            "",
		LogLevel:        "warn",
		LogFormat:       "console",
	}
}

// New returns a viper instance seeded with Default values and bound to the environment.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("id-column", d.IDColumn)
	v.SetDefault("target", d.Target)
	v.SetDefault("categorical", d.Categorical)
	v.SetDefault("test-size", d.TestSize)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("trees", d.Trees)
	v.SetDefault("max-depth", d.MaxDepth)
	v.SetDefault("min-samples-split", d.MinSamplesSplit)
	v.SetDefault("min-samples-leaf", d.MinSamplesLeaf)
	v.SetDefault("max-features", d.MaxFeatures)
	v.SetDefault("criterion", d.Criterion)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("top", d.Top)
	v.SetDefault("plot", d.Plot)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load resolves the configuration. configFile may be empty; flags may be nil.
func Load(v *viper.Viper, configFile string, flags *pflag.FlagSet) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures all settings are usable.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("config: input path is required")
	}
	if c.Target == "" {
		return errors.New("config: target column is required")
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.New("config: test size must be in (0, 1)")
	}
	if c.Trees <= 0 {
		return errors.New("config: trees must be positive")
	}
	if c.MinSamplesSplit < 2 {
		return errors.New("config: min samples split must be at least 2")
	}
	if c.MinSamplesLeaf < 1 {
		return errors.New("config: min samples leaf must be at least 1")
	}
	if c.MaxDepth < 0 || c.MaxFeatures < 0 || c.Workers < 0 {
		return errors.New("config: max depth, max features and workers cannot be negative")
	}
	switch c.Criterion {
	case "gini", "entropy":
	default:
		return fmt.Errorf("config: unknown criterion %q", c.Criterion)
	}
	for _, col := range c.Categorical {
		if col == c.Target {
			return fmt.Errorf("config: target %q cannot be a categorical feature", col)
		}
	}
	return nil
}
