// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/benchexp/internal/config"
	"golang.org/x/benchexp/valuegroup"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultMinGroups, cfg.Grouping.MinGroups)
	assert.Equal(t, config.DefaultMaxGroups, cfg.Grouping.MaxGroups)
	assert.Equal(t, config.DefaultMaxCapacity, cfg.Grouping.MaxCapacity)
	assert.Equal(t, config.DefaultMode, cfg.Grouping.Mode)
	assert.Equal(t, config.DefaultLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultFormat, cfg.Logging.Format)

	g, mode, err := cfg.Grouping.Grouper()
	require.NoError(t, err)
	assert.Equal(t, valuegroup.Any, mode)
	assert.Equal(t, &valuegroup.Grouper{MinGroups: 2, MaxGroups: 10, MaxCapacity: 100}, g)
}

func TestFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
grouping:
  min_groups: 3
  max_groups: 6
  mode: powers
logging:
  format: json
`)
	t.Setenv("EXPSTAT_GROUPING_MAX_GROUPS", "8")
	t.Setenv("EXPSTAT_LOGGING_LEVEL", "debug")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Grouping.MinGroups)
	assert.Equal(t, 8, cfg.Grouping.MaxGroups, "environment overrides file")
	assert.Equal(t, "powers", cfg.Grouping.Mode)
	assert.Equal(t, "debug", cfg.Logging.Level)

	var buf bytes.Buffer
	log, err := cfg.Logging.NewLogger(&buf)
	require.NoError(t, err)
	log.Debug("hello", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"window", "grouping: {min_groups: 5, max_groups: 2}", config.ErrInvalidGroups},
		{"negative", "grouping: {min_groups: -1}", config.ErrInvalidGroups},
		{"capacity", "grouping: {max_capacity: -3}", config.ErrInvalidCapacity},
		{"mode", "grouping: {mode: ranges}", config.ErrInvalidMode},
		{"level", "logging: {level: loud}", config.ErrInvalidLevel},
		{"format", "logging: {format: xml}", config.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.yaml))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBadFile(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, "grouping: [unclosed"))
	assert.Error(t, err)

	_, err = config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}
