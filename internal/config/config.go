// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads expstat settings from a YAML file, the
// environment and defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"golang.org/x/benchexp/valuegroup"
)

// Sentinel validation errors.
var (
	ErrInvalidGroups   = errors.New("grouping window must satisfy 0 <= min_groups <= max_groups")
	ErrInvalidCapacity = errors.New("grouping max_capacity must not be negative")
	ErrInvalidMode     = errors.New("invalid grouping mode")
	ErrInvalidLevel    = errors.New("invalid logging level")
	ErrInvalidFormat   = errors.New("logging format must be text or json")
)

// Default configuration values.
const (
	DefaultMinGroups   = 2
	DefaultMaxGroups   = 10
	DefaultMaxCapacity = 100
	DefaultMode        = "any"
	DefaultLevel       = "warn"
	DefaultFormat      = "text"
)

const (
	configName = "expstat"
	configType = "yaml"
	envPrefix  = "EXPSTAT"
)

// Config holds all expstat settings.
type Config struct {
	Grouping GroupingConfig `mapstructure:"grouping"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GroupingConfig configures the value grouper.
type GroupingConfig struct {
	MinGroups   int    `mapstructure:"min_groups"`
	MaxGroups   int    `mapstructure:"max_groups"`
	MaxCapacity int    `mapstructure:"max_capacity"`
	Mode        string `mapstructure:"mode"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file
// path. Otherwise, expstat.yaml is searched in the current directory
// and $HOME. A missing config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grouping.min_groups", DefaultMinGroups)
	v.SetDefault("grouping.max_groups", DefaultMaxGroups)
	v.SetDefault("grouping.max_capacity", DefaultMaxCapacity)
	v.SetDefault("grouping.mode", DefaultMode)

	v.SetDefault("logging.level", DefaultLevel)
	v.SetDefault("logging.format", DefaultFormat)
}

// Validate checks cfg for out-of-range values.
func (cfg *Config) Validate() error {
	g := cfg.Grouping
	if g.MinGroups < 0 || g.MaxGroups < g.MinGroups {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidGroups, g.MinGroups, g.MaxGroups)
	}
	if g.MaxCapacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, g.MaxCapacity)
	}
	if _, err := valuegroup.ParseMode(g.Mode); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMode, g.Mode)
	}
	if _, err := parseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Logging.Format)
	}
	return nil
}

// Grouper returns the grouper and mode described by g.
func (g GroupingConfig) Grouper() (*valuegroup.Grouper, valuegroup.Mode, error) {
	mode, err := valuegroup.ParseMode(g.Mode)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidMode, g.Mode)
	}
	return &valuegroup.Grouper{
		MinGroups:   g.MinGroups,
		MaxGroups:   g.MaxGroups,
		MaxCapacity: g.MaxCapacity,
	}, mode, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// NewLogger returns a logger writing to w as configured by l.
func (l LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(l.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, l.Format)
}
