package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodestat.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	path := writeYAML(t, "logging:\n  level: warn\ncollection:\n  plugins: [load]\n")
	t.Setenv("NODESTAT_LOG_LEVEL", "error")
	cli := CLIOverrides{LogLevel: "debug", Plugins: []string{"mem", "net"}, Interval: time.Minute}

	cfg, err := LoadLayered(cli, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want CLI override", cfg.Logging.Level)
	}
	if !reflect.DeepEqual(cfg.Collection.Plugins, []string{"mem", "net"}) {
		t.Errorf("Plugins = %v, want CLI override", cfg.Collection.Plugins)
	}
	if cfg.Collection.Interval.Duration != time.Minute {
		t.Errorf("Interval = %v, want 1m", cfg.Collection.Interval.Duration)
	}
}

func TestLoadLayered_EnvOverridesFile(t *testing.T) {
	path := writeYAML(t, "logging:\n  level: warn\npaths:\n  proc: /host/proc\n")
	t.Setenv("NODESTAT_LOG_LEVEL", "error")
	t.Setenv("NODESTAT_PLUGINS", "load, mem,,")
	t.Setenv("NODESTAT_INTERVAL", "30s")

	cfg, err := LoadLayered(CLIOverrides{}, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %q, want env override", cfg.Logging.Level)
	}
	if !reflect.DeepEqual(cfg.Collection.Plugins, []string{"load", "mem"}) {
		t.Errorf("Plugins = %v, want [load mem]", cfg.Collection.Plugins)
	}
	if cfg.Collection.Interval.Duration != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Collection.Interval.Duration)
	}
	if cfg.Paths.Proc != "/host/proc" {
		t.Errorf("Proc = %q, want file value", cfg.Paths.Proc)
	}
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 5*time.Second {
		t.Errorf("Interval = %v, want 5s default", cfg.Collection.Interval.Duration)
	}
	if len(cfg.Collection.Plugins) != 5 {
		t.Errorf("Plugins = %v, want the five built-ins", cfg.Collection.Plugins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.Proc != "/proc" {
		t.Errorf("Proc = %q, want /proc", cfg.Paths.Proc)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	if _, err := Load(writeYAML(t, "collection:\n  interval: soon\n")); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoad_InvalidEnvInterval(t *testing.T) {
	t.Setenv("NODESTAT_INTERVAL", "often")
	if _, err := LoadFromBytes(nil); err == nil {
		t.Error("expected error for invalid NODESTAT_INTERVAL")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Collection.Interval = Duration{} }},
		{"zero timeout", func(c *Config) { c.Collection.Timeout = Duration{} }},
		{"no plugins", func(c *Config) { c.Collection.Plugins = nil }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Collection.Interval = Duration{42 * time.Second}
	cfg.Metrics.Listen = ":9100"

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Collection.Interval.Duration != 42*time.Second {
		t.Errorf("Interval = %v, want 42s", loaded.Collection.Interval.Duration)
	}
	if loaded.Metrics.Listen != ":9100" {
		t.Errorf("Listen = %q, want :9100", loaded.Metrics.Listen)
	}
}
