// Package config loads the configuration of the outline command: the
// heuristic settings of every pipeline stage plus batch, cache and logging
// options.
//
// Values come, in increasing priority, from the built-in defaults, an
// optional outline.yaml (in the working directory or $HOME/.outline, or the
// file named with --config) and OUTLINE_* environment variables. Nested keys
// map to variables with underscores: OUTLINE_BATCH_WORKERS,
// OUTLINE_HEURISTICS_LEVELS_STYLE_LEVELS.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/outline/layout"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "OUTLINE"

// Config is the complete configuration
type Config struct {
	Heuristics layout.Config `mapstructure:"heuristics" yaml:"heuristics"`
	Batch      BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Cache      CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Log        LogConfig     `mapstructure:"log" yaml:"log"`
}

// BatchConfig controls directory processing
type BatchConfig struct {
	// Workers is the number of documents processed at once
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Pattern selects the input files by name
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// Indent pretty-prints the JSON output
	Indent bool `mapstructure:"indent" yaml:"indent"`
}

// CacheConfig controls the result cache
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the SQLite database file
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls logging of the command
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Heuristics: layout.DefaultConfig(),
		Batch: BatchConfig{
			Workers: 4,
			Pattern: "*.pdf",
			Indent:  true,
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    "outline-cache.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration. cfgFile may be empty, in which case
// outline.yaml is looked up in the usual places and is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if err := setDefaults(v, DefaultConfig()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("outline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.outline")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every leaf of defaults with viper so that each
// nested key can be overridden from the environment
func setDefaults(v *viper.Viper, defaults *Config) error {
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to read defaults: %w", err)
	}
	setLeaves(v, "", tree)
	return nil
}

func setLeaves(v *viper.Viper, prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			setLeaves(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}

// Validate reports settings the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers))
	}
	if c.Batch.Pattern == "" {
		errs = append(errs, errors.New("batch.pattern must not be empty"))
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required when the cache is enabled"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}

	h := c.Heuristics
	if h.Levels.StyleLevels < 1 || h.Levels.StyleLevels > 6 {
		errs = append(errs, fmt.Errorf("heuristics.levels.style_levels must be between 1 and 6, got %d", h.Levels.StyleLevels))
	}
	if h.Heading.MarginBand < 0 || h.Heading.MarginBand >= 0.5 {
		errs = append(errs, fmt.Errorf("heuristics.heading.margin_band must be in [0, 0.5), got %v", h.Heading.MarginBand))
	}
	if h.Noise.MinLength > h.Noise.MaxLength && h.Noise.MaxLength > 0 {
		errs = append(errs, fmt.Errorf("heuristics.noise.min_length %d exceeds max_length %d", h.Noise.MinLength, h.Noise.MaxLength))
	}

	return errors.Join(errs...)
}

// YAML renders the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
