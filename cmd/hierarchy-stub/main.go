// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// hierarchy-stub runs the in-memory Process Hierarchy API stand-in for
// local development, pre-seeded with the OTC catalog subtree.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/pkg/logging"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/stubapi"
)

func main() {
	slog.SetDefault(logging.New(logging.Config{
		Level:   logging.ParseLevel(os.Getenv("STUB_LOG_LEVEL")),
		Service: "hierarchy-stub",
		JSON:    os.Getenv("STUB_LOG_JSON") == "true",
	}))

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "8085"
	}

	store := stubapi.NewStore()
	seeded := store.ImportTemplate([]string{"OTC"})
	slog.Info("stub store seeded", "nodes", seeded.Imported)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           stubapi.NewEngine(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("hierarchy stub listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("stub server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
