// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/livefeed"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the hypercare live feed until interrupted",
	Long: `Polls the war-room summary on a fixed interval and prints a line
whenever the alert count changes. Ctrl-C tears the poller down cleanly.`,
	RunE: runWatchCommand,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", livefeed.DefaultInterval,
		"Polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := livefeed.New(
		api.LiveFeedSummary,
		func(s *datatypes.LiveFeedSummary) {
			fmt.Printf("%s  alerts=%d open_incidents=%d\n",
				s.GeneratedAt.Format(time.RFC3339), s.AlertCount, s.OpenIncidents)
		},
		livefeed.WithInterval(watchInterval),
	)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Watching %s every %s (Ctrl-C to stop)\n", cfg.APIBaseURL, watchInterval)
	<-ctx.Done()
	poller.Stop()
	return nil
}
