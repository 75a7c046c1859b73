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
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	treeSearch  string   // Free-text search query
	treeFilters []string // key=value[,value] attribute filters
	treeOffline bool     // Render from the last-good snapshot
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Render the process hierarchy",
	Long: `Fetches all four levels, builds the tree, and renders it with the
active search and filters applied. Ancestors of a matching node always stay
visible.

Examples:
  scope tree
  scope tree --search "journal"
  scope tree --filter area=FI --filter scope=in_scope,deferred
  scope tree --offline          # last-good snapshot, no network`,
	RunE: runTreeCommand,
}

func init() {
	treeCmd.Flags().StringVarP(&treeSearch, "search", "s", "",
		"Case-insensitive search over name, code, and description")
	treeCmd.Flags().StringArrayVarP(&treeFilters, "filter", "f", nil,
		"Attribute filter key=value[,value] (keys: area, scope, wave)")
	treeCmd.Flags().BoolVar(&treeOffline, "offline", false,
		"Render the last-good snapshot instead of calling the API")
	rootCmd.AddCommand(treeCmd)
}

func runTreeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	shutdown := setupTracing()
	defer shutdown()

	api, err := newClient(cfg)
	if err != nil {
		return err
	}
	sess, cleanup := newSession(cfg, api)
	defer cleanup()

	if treeOffline {
		err = sess.LoadOffline()
	} else {
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		err = sess.Load(ctx)
	}
	if err != nil {
		return err
	}

	state := sess.FilterState()
	state.SearchQuery = treeSearch
	for _, f := range treeFilters {
		key, values, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q, expected key=value[,value]", f)
		}
		state.SetFilter(strings.TrimSpace(key), strings.Split(values, ",")...)
	}

	fmt.Print(renderTree(sess.Roots(), sess.VisibleSet()))
	return nil
}
