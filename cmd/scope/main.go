// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// scope is the terminal front end for the process scope hierarchy: it
// renders the L1..L4 tree, runs bulk imports from TSV files, and drives the
// two-phase cascading delete against the Process Hierarchy API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/pkg/config"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/pkg/logging"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/client"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/session"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/snapshot"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	flagConfigPath string // Path to the YAML config file
	flagProgram    string // Program override
	flagBaseURL    string // API base URL override
	flagTrace      bool   // Emit OpenTelemetry spans to stdout
)

var rootCmd = &cobra.Command{
	Use:   "scope",
	Short: "Manage the transformation program's process scope hierarchy",
	Long: `scope works with the 4-level process hierarchy (L1..L4) of a SAP
transformation program.

Examples:
  scope tree                        # Render the full hierarchy
  scope tree --search order         # Search, ancestors of matches stay visible
  scope tree --filter area=FI       # Attribute filters, AND across keys
  scope bulk-import rows.tsv        # Bulk create from a pasted-TSV file
  scope delete 42                   # Two-phase cascading delete with preview
  scope template scope-rows.tsv     # Write the TSV paste template
  scope watch                       # Poll the hypercare live feed`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", config.DefaultPath(),
		"Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagProgram, "program", "",
		"Transformation program id (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "api", "",
		"Process Hierarchy API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false,
		"Emit OpenTelemetry spans to stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig resolves config file + env + flag overrides and installs the
// default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	if flagProgram != "" {
		cfg.Program = flagProgram
	}
	if flagBaseURL != "" {
		cfg.APIBaseURL = flagBaseURL
	}
	slog.SetDefault(logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Service: "scope-cli",
	}))
	return cfg, nil
}

// newClient builds the hierarchy API client for the resolved config.
func newClient(cfg config.Config) (*client.Client, error) {
	return client.New(client.Config{
		BaseURL: cfg.APIBaseURL,
		Program: cfg.Program,
	})
}

// newSession builds a session with the snapshot store attached when the
// snapshot directory is usable; snapshot failures degrade to a session
// without offline support rather than blocking the command.
func newSession(cfg config.Config, api *client.Client) (*session.Session, func()) {
	opts := []session.Option{session.WithLogger(slog.Default())}
	cleanup := func() {}
	if cfg.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err == nil {
			store, err := snapshot.Open(snapshot.Config{Path: cfg.SnapshotDir})
			if err != nil {
				slog.Warn("snapshot store unavailable", "dir", cfg.SnapshotDir, "error", err)
			} else {
				opts = append(opts, session.WithSnapshot(store))
				cleanup = func() { _ = store.Close() }
			}
		}
	}
	return session.New(api, cfg.Program, opts...), cleanup
}

// setupTracing installs a stdout span exporter when --trace is set. The
// returned shutdown flushes pending spans.
func setupTracing() func() {
	if !flagTrace {
		return func() {}
	}
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		slog.Warn("failed to create stdout trace exporter", "error", err)
		return func() {}
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown trace provider", "error", err)
		}
	}
}
