// Package config handles configuration loading for the taskline CLI.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the taskline CLI.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Color  ColorConfig  `mapstructure:"color"`
	Theme  ThemeConfig  `mapstructure:"theme"`
}

// RenderConfig holds render loop settings.
type RenderConfig struct {
	// Interval is the repaint interval for the render loop.
	Interval time.Duration `mapstructure:"interval"`
	// MaxEvents is the per-task event retention window.
	MaxEvents int `mapstructure:"max_events"`
}

// ColorConfig holds terminal color settings.
type ColorConfig struct {
	// Enabled toggles colored output.
	Enabled bool `mapstructure:"enabled"`
}

// ThemeConfig points at an optional theme file.
type ThemeConfig struct {
	// File is the path to a YAML theme file. Empty means built-in theme.
	File string `mapstructure:"file"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TASKLINE_*)
// 2. Project config (.taskline.yaml in current directory)
// 3. User config (~/.config/taskline/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Load user config from XDG path
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.SetEnvPrefix("TASKLINE")
	v.AutomaticEnv()
	v.BindEnv("render.interval", "TASKLINE_RENDER_INTERVAL")
	v.BindEnv("color.enabled", "TASKLINE_COLOR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers the built-in defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("render.interval", 100*time.Millisecond)
	v.SetDefault("render.max_events", 3)
	v.SetDefault("color.enabled", true)
	v.SetDefault("theme.file", "")
}

// getUserConfigDir returns the XDG config directory for taskline.
func getUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskline")
}

// findProjectConfig returns the path to .taskline.yaml in the current
// directory, or "" when there is none.
func findProjectConfig() string {
	if _, err := os.Stat(".taskline.yaml"); err == nil {
		return ".taskline.yaml"
	}
	return ""
}
