// Package config manages application configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Hooks HooksConfig `mapstructure:"hooks"`
}

// HooksConfig holds per-hook settings.
type HooksConfig struct {
	Vet    HookConfig `mapstructure:"vet"`
	Format HookConfig `mapstructure:"format"`
}

// HookConfig holds settings for a single hook.
type HookConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Load loads configuration from files and environment variables.
// It searches for config files in the following order:
// 1. /etc/gohooks/config.{toml,yaml,yml}
// 2. $XDG_CONFIG_HOME/gohooks/config.{toml,yaml,yml} (or ~/.config/gohooks/)
// 3. ./config.{toml,yaml,yml}
//
// Environment variables override file settings using the prefix GOHOOKS_
// For example: GOHOOKS_HOOKS_VET_TIMEOUT_SECONDS
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")

	v.AddConfigPath("/etc/gohooks/")
	v.AddConfigPath(getXDGConfigPath())
	v.AddConfigPath(".")

	v.SetEnvPrefix("GOHOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file is fine, defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance.
// This is useful for testing or when you want to configure Viper differently.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// getXDGConfigPath returns the XDG config directory for gohooks.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gohooks")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "gohooks")
}
