// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "5s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all collector configuration.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// CollectionConfig controls which plugins a poll requests and how often.
type CollectionConfig struct {
	Interval Duration `yaml:"interval"`
	Timeout  Duration `yaml:"timeout"`
	Plugins  []string `yaml:"plugins"`
}

// PathsConfig locates the data sources read by the built-in plugins.
type PathsConfig struct {
	Proc string `yaml:"proc"`
	DF   string `yaml:"df"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig holds the Prometheus endpoint settings. An empty Listen
// disables the endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Interval: Duration{5 * time.Second},
			Timeout:  Duration{10 * time.Second},
			Plugins:  []string{"disk", "load", "mem", "net", "stat"},
		},
		Paths: PathsConfig{
			Proc: "/proc",
			DF:   "df",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take precedence over values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	LogLevel string
	Plugins  []string
	Interval time.Duration
	Listen   string
}

// DefaultPath is where a new config file goes: the first search path, so a
// file written there is the one Locate prefers.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults.
//
// An optional configPath argument controls file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no file)
func LoadLayered(cli CLIOverrides, configPath ...string) (*Config, error) {
	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}

	cfg, err := Load(filePath)
	if err != nil {
		return nil, err
	}

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if len(cli.Plugins) > 0 {
		cfg.Collection.Plugins = cli.Plugins
	}
	if cli.Interval > 0 {
		cfg.Collection.Interval = Duration{cli.Interval}
	}
	if cli.Listen != "" {
		cfg.Metrics.Listen = cli.Listen
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies NODESTAT_* environment variable overrides.
func applyEnvOverrides(cfg *Config) error {
	if level := os.Getenv("NODESTAT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if plugins := os.Getenv("NODESTAT_PLUGINS"); plugins != "" {
		cfg.Collection.Plugins = splitList(plugins)
	}
	if interval := os.Getenv("NODESTAT_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("NODESTAT_INTERVAL: invalid duration %q: %w", interval, err)
		}
		cfg.Collection.Interval = Duration{d}
	}
	if listen := os.Getenv("NODESTAT_METRICS_ADDR"); listen != "" {
		cfg.Metrics.Listen = listen
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that the configuration can drive a collection loop.
func (c *Config) Validate() error {
	if c.Collection.Interval.Duration <= 0 {
		return fmt.Errorf("collection interval must be positive (got: %s)", c.Collection.Interval.Duration)
	}
	if c.Collection.Timeout.Duration <= 0 {
		return fmt.Errorf("collection timeout must be positive (got: %s)", c.Collection.Timeout.Duration)
	}
	if len(c.Collection.Plugins) == 0 {
		return fmt.Errorf("at least one plugin is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
