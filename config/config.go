// Package config loads treegen settings from treegen.toml and the
// TREEGEN_* environment, with flags layered on top by the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/treegen/errors"
)

// Config holds generation defaults. Command-line flags override these.
type Config struct {
	// Prefix is prepended to every generated class name.
	Prefix string `mapstructure:"prefix"`

	// Output is the directory root generated artifacts are written under.
	Output string `mapstructure:"output"`

	// Language selects the backend, or "all" for every registered backend.
	Language string `mapstructure:"language"`
}

const configName = "treegen.toml"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "")
	v.SetDefault("output", "generated")
	v.SetDefault("language", "java")
}

// Load reads configuration from the nearest treegen.toml (walking up from
// the working directory) merged with TREEGEN_* environment variables.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TREEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// findProjectConfig searches for treegen.toml by walking up the directory
// tree. Returns the empty string if none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, configName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
