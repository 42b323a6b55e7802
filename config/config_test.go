package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/orcnighte/terminal-system/internal/util"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with
// all default values when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

// TestNewConfig_WithAllOverride tests that NewConfig properly applies
// overrides while preserving defaults for unset fields.
func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	cfg := NewConfig(override)

	expCfg := &Config{
		FileSuffixes: *override.FileSuffixes,
		Sentinel:     *override.Sentinel,
		LogLvl:       *override.LogLvl,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_NilOverrideVals(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{}

	cfg := NewConfig(override)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values for nil override fields")
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		Sentinel: util.Pointer("EOF"),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.Sentinel = "EOF"

	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

func TestConfig_Merge_CopiesSuffixSlice(t *testing.T) {
	t.Parallel()

	suffixes := []string{".txt", ".log"}
	cfg := NewConfig(&ConfigOverride{FileSuffixes: &suffixes})

	// the config owns an independent copy of the override slice
	suffixes[0] = ".bin"
	assert.Equal(t, []string{".txt", ".log"}, cfg.FileSuffixes)
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext   string
		build func() (*ConfigOverride, []byte)
	}

	cases := []tc{
		{
			ext: ".yaml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".yml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".json",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := json.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
	}

	for _, c := range cases {
		c := c
		name := "valid" + c.ext
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			override, data := c.build()
			dir := t.TempDir()
			path := filepath.Join(dir, "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	// Setup: use path to non-existent file
	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	// Execute
	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	// Setup: create file with unsupported extension
	path := filepath.Join(t.TempDir(), "override.conf")
	require.NoError(t, os.WriteFile(path, []byte("sentinel: EOF"), 0o600))

	// Execute
	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

// TestNewConfigFromFile_FileError tests that file loading errors
// are properly propagated by the convenience function.
func TestNewConfigFromFile_FileError(t *testing.T) {
	t.Parallel()

	// Setup: use non-existent file path
	path := filepath.Join(t.TempDir(), "missing.json")

	// Execute
	_, err := NewConfigFromFile(path)
	require.Error(t, err)
}

func createDefaultCfg() *Config {
	return &Config{
		FileSuffixes: append([]string(nil), DefaultFileSuffixes...),
		Sentinel:     DefaultSentinel,
		LogLvl:       DefaultLogLvl,
	}
}

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	return &ConfigOverride{
		FileSuffixes: util.Pointer([]string{".txt", ".md"}),
		Sentinel:     util.Pointer("EOF"),
		LogLvl:       util.Pointer(DefaultLogLvl + 1),
	}
}
