// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/ingest"
)

var templateCmd = &cobra.Command{
	Use:   "template [file.tsv]",
	Short: "Write the bulk-import TSV template",
	Long: `Writes the tab-separated template (header plus sample rows) that
bulk-import and the paste grid accept. Without a file argument the template
is printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Print(ingest.Template())
			return nil
		}
		if err := ingest.WriteTemplate(args[0]); err != nil {
			return err
		}
		fmt.Printf("Template written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
