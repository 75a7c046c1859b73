// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for platform components.
//
// The system is built on Go's standard library slog package. The default is
// human-readable text on stderr (Unix CLI convention); services that run
// unattended switch to JSON. Every logger carries a "service" attribute so
// aggregated logs stay attributable.
//
// Basic usage:
//
//	logger := logging.Default("scope-cli")
//	logger.Info("hierarchy loaded", "nodes", count)
//	logger.Error("load failed", "error", err)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls handler construction.
type Config struct {
	// Level is the minimum severity; defaults to Info.
	Level slog.Level

	// Service is attached as a "service" attribute on every record.
	Service string

	// JSON switches from text to JSON output.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Default returns a text logger on stderr at Info level for the named
// service.
func Default(service string) *slog.Logger {
	return New(Config{Service: service})
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// slog level. Unknown values fall back to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
