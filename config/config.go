package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultSentinel terminates multi-line content capture in the shell
	DefaultSentinel = "/end/"

	// DefaultLogLvl is the default verbosity (see internal/util log levels)
	DefaultLogLvl = 2 // info
)

// DefaultFileSuffixes are the file-name suffixes touch accepts
var DefaultFileSuffixes = []string{".txt"}

// Config contains runtime configuration values for the virtual filesystem
// shell.
type Config struct {
	FileSuffixes []string // Suffixes touch accepts for new files (Default [".txt"])
	Sentinel     string   // Line that terminates multi-line content capture (Default "/end/")
	LogLvl       int      // Log verbosity level (Default info)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	FileSuffixes *[]string `yaml:"file_suffixes,omitempty" json:"file_suffixes,omitempty"`
	Sentinel     *string   `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`
	LogLvl       *int      `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		FileSuffixes: append([]string(nil), DefaultFileSuffixes...),
		Sentinel:     DefaultSentinel,
		LogLvl:       DefaultLogLvl,
	}
}

// NewConfig creates a Config from defaults merged with an optional override.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.FileSuffixes != nil {
		c.FileSuffixes = append([]string(nil), (*override.FileSuffixes)...)
	}
	if override.Sentinel != nil {
		c.Sentinel = *override.Sentinel
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults. This is a convenience function that combines NewDefaultConfig,
// LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
