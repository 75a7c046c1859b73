// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "scope-cli", Output: &buf})
	logger.Info("hierarchy loaded", "nodes", 42)

	out := buf.String()
	assert.Contains(t, out, "hierarchy loaded")
	assert.Contains(t, out, "service=scope-cli")
	assert.Contains(t, out, "nodes=42")
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "hierarchy-stub", JSON: true, Output: &buf})
	logger.Warn("bulk create finished with row errors", "failed_rows", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hierarchy-stub", record["service"])
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, float64(2), record["failed_rows"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	assert.Equal(t, 1, lines)
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_NoServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Output: &buf}).Info("bare")
	assert.NotContains(t, buf.String(), "service=")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}
