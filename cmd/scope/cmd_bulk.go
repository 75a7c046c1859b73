// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/ingest"
)

var bulkDryRun bool

var bulkImportCmd = &cobra.Command{
	Use:   "bulk-import <file.tsv>",
	Short: "Bulk create nodes from a tab-separated file",
	Long: `Parses the file with the paste-mode rules (columns: level, code,
name, module, parent code) and submits the valid rows as one bulk-create
request. Rows with problems are shown and skipped; they never abort the
batch. With --dry-run nothing is submitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBulkImportCommand,
}

func init() {
	bulkImportCmd.Flags().BoolVar(&bulkDryRun, "dry-run", false,
		"Parse and show rows without submitting")
	rootCmd.AddCommand(bulkImportCmd)
}

func runBulkImportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	shutdown := setupTracing()
	defer shutdown()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	rows := ingest.ParsePaste(string(raw))
	if len(rows) == 0 {
		return fmt.Errorf("%s contains no parseable rows", args[0])
	}
	fmt.Print(renderBulkRows(rows))

	if bulkDryRun {
		valid := 0
		for _, row := range rows {
			if row.Valid() {
				valid++
			}
		}
		fmt.Printf("\n%d of %d rows would be submitted\n", valid, len(rows))
		return nil
	}

	api, err := newClient(cfg)
	if err != nil {
		return err
	}
	sess, cleanup := newSession(cfg, api)
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()
	if err := sess.Load(ctx); err != nil {
		return err
	}
	result, err := sess.BulkCreate(ctx, rows)
	if err != nil {
		return err
	}
	fmt.Printf("\nCreated %d node(s)\n", result.Created)
	for _, re := range result.Errors {
		fmt.Printf("  row %d rejected: %s\n", re.Row+1, re.Message)
	}
	return nil
}
