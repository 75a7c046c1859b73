// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <node-id>",
	Short: "Delete a node and all of its descendants",
	Long: `Deletion is two-phase: first a non-destructive preview shows how
many descendants the cascade would remove, broken down by level; the
irreversible delete only runs after explicit confirmation (or --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteCommand,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false,
		"Skip the interactive confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDeleteCommand(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()
	if err := sess.Load(ctx); err != nil {
		return err
	}

	id := args[0]
	preview, err := sess.PreviewDelete(ctx, id)
	if err != nil {
		return err
	}
	if node := sess.Node(id); node != nil {
		fmt.Printf("Deleting %s %q (level %d)\n", node.Code, node.Name, node.Level)
	}
	if preview.DescendantsCount == 0 {
		fmt.Println("No descendants are affected.")
	} else {
		fmt.Printf("This cascade removes %d descendant(s):\n", preview.DescendantsCount)
		for level := 1; level <= 4; level++ {
			if n := preview.ByLevel[level]; n > 0 {
				fmt.Printf("  level %d: %d\n", level, n)
			}
		}
	}

	if !deleteYes {
		fmt.Print("This cannot be undone. Type 'yes' to continue: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := sess.ConfirmDelete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
