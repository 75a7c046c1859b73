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
	"time"

	"github.com/spf13/cobra"
)

var importTemplateCmd = &cobra.Command{
	Use:   "import-template <code>...",
	Short: "Seed nodes from the fixed process catalog",
	Long: `Seeds the hierarchy from the server's fixed process catalog for the
selected top-level codes (e.g. OTC, P2P, R2R). Already-present codes are
skipped server-side.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
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
		result, err := sess.ImportTemplate(ctx, args)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d node(s)\n", result.Imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importTemplateCmd)
}
