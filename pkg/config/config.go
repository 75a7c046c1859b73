// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads CLI configuration from a YAML file with environment
// overrides. Precedence: defaults < file < SCOPE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Env override variable names.
const (
	EnvAPIBaseURL = "SCOPE_API_BASE_URL"
	EnvProgram    = "SCOPE_PROGRAM"
	EnvLogLevel   = "SCOPE_LOG_LEVEL"
)

// Config is the resolved CLI configuration.
type Config struct {
	// APIBaseURL is the Process Hierarchy API root.
	APIBaseURL string

	// Program scopes every call to one transformation program.
	Program string

	// PollInterval is the live-feed refresh interval.
	PollInterval time.Duration

	// SnapshotDir is the BadgerDB directory for last-good snapshots.
	SnapshotDir string

	// LogLevel is the textual slog level ("debug", "info", ...).
	LogLevel string
}

// fileConfig is the YAML shape; durations are strings ("30s", "2m").
type fileConfig struct {
	APIBaseURL   string `yaml:"api_base_url"`
	Program      string `yaml:"program"`
	PollInterval string `yaml:"poll_interval"`
	SnapshotDir  string `yaml:"snapshot_dir"`
	LogLevel     string `yaml:"log_level"`
}

// Defaults returns the configuration used when no file or overrides exist.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		APIBaseURL:   "http://localhost:8085",
		Program:      "DEFAULT",
		PollInterval: 30 * time.Second,
		SnapshotDir:  filepath.Join(home, ".scope", "snapshots"),
		LogLevel:     "info",
	}
}

// DefaultPath is the conventional config location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scope", "config.yaml")
}

// Load resolves the configuration. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Defaults()

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults + env only
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if fc.APIBaseURL != "" {
			cfg.APIBaseURL = fc.APIBaseURL
		}
		if fc.Program != "" {
			cfg.Program = fc.Program
		}
		if fc.SnapshotDir != "" {
			cfg.SnapshotDir = fc.SnapshotDir
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = fc.LogLevel
		}
		if fc.PollInterval != "" {
			d, err := time.ParseDuration(fc.PollInterval)
			if err != nil {
				return cfg, fmt.Errorf("parse poll_interval %q: %w", fc.PollInterval, err)
			}
			cfg.PollInterval = d
		}
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvProgram); v != "" {
		cfg.Program = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}
