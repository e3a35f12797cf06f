// Package config provides the layercheck configuration file structure,
// matching the schema of layercheck.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where layercheck looks for its configuration when no
// --config flag is given.
const DefaultPath = "layercheck.yaml"

// Config represents the full layercheck configuration file.
type Config struct {
	// Checklist is the path to the security layers checklist CSV.
	Checklist string `yaml:"checklist"`
	// Root is the directory artifact specs are resolved against.
	Root string `yaml:"root"`
	// OutputDir is where report artifacts are written.
	OutputDir string `yaml:"output_dir"`

	Audit   AuditConfig   `yaml:"audit"`
	Reports ReportsConfig `yaml:"reports,omitempty"`
}

// AuditConfig holds external audit tool settings.
type AuditConfig struct {
	Enabled        bool   `yaml:"enabled"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Dir            string `yaml:"dir,omitempty"`
}

// ReportsConfig holds report emission settings.
type ReportsConfig struct {
	// Formats lists additional export formats written by `layercheck
	// assess` alongside the standard text and JSON reports.
	Formats []string `yaml:"formats,omitempty"`
}

// NewDefaultConfig returns a Config populated with safe defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Checklist: "security_layers_checklist.csv",
		Root:      ".",
		OutputDir: ".",
		Audit: AuditConfig{
			Enabled:        true,
			TimeoutSeconds: 60,
		},
	}
}

// Load reads and parses the configuration at path. Values not present in
// the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig marshals cfg to YAML at path, creating parent directories as
// needed.
func WriteConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Checklist) == "" {
		return fmt.Errorf("checklist path is required")
	}
	if c.Audit.TimeoutSeconds < 0 {
		return fmt.Errorf("audit timeout must not be negative")
	}
	return nil
}

// Timeout returns the audit timeout as a duration, falling back to one
// minute when unset.
func (c *Config) Timeout() time.Duration {
	if c.Audit.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Audit.TimeoutSeconds) * time.Second
}
