// Package config defines the configuration of the transientx command line tool.
//
// Configuration is read from YAML. Missing fields keep their defaults.
// Validation ensures known log levels and formats, a known snapshot format and
// sane demo sizes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete tool configuration.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
	Demo     DemoConfig     `json:"demo" yaml:"demo"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text, json
}

type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

type SnapshotConfig struct {
	Dir         string `json:"dir" yaml:"dir"`
	Format      string `json:"format" yaml:"format"` // json, yaml
	Concurrency int    `json:"concurrency" yaml:"concurrency"`
}

// DemoConfig sizes the demo workload.
type DemoConfig struct {
	Records      int `json:"records" yaml:"records"`
	Depth        int `json:"depth" yaml:"depth"`
	NestedModify int `json:"nestedModify" yaml:"nestedModify"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Metrics:  MetricsConfig{Enabled: true, Namespace: "transientx"},
		Snapshot: SnapshotConfig{Dir: "snapshots", Format: "json", Concurrency: 4},
		Demo:     DemoConfig{Records: 3, Depth: 2, NestedModify: 2},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("metrics namespace is required when metrics are enabled")
	}
	switch c.Snapshot.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown snapshot format %q", c.Snapshot.Format)
	}
	if c.Snapshot.Dir == "" {
		return errors.New("snapshot dir is required")
	}
	if c.Snapshot.Concurrency < 1 {
		return fmt.Errorf("snapshot concurrency must be positive, got %d", c.Snapshot.Concurrency)
	}
	if c.Demo.Records < 1 {
		return fmt.Errorf("demo records must be positive, got %d", c.Demo.Records)
	}
	if c.Demo.Depth < 0 || c.Demo.NestedModify < 0 {
		return errors.New("demo depth and nestedModify cannot be negative")
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
