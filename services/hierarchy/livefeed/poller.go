// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package livefeed polls the war-room dashboard summary on a fixed interval
// and notifies the caller only when the alert count changes. The poller is
// the one piece of background work in the whole view layer, so tearing it
// down cleanly on navigation matters: Stop (or context cancellation) ends
// the goroutine and no further fetches leak out.
package livefeed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// DefaultInterval matches the dashboard's fixed 30-second refresh.
const DefaultInterval = 30 * time.Second

// ErrAlreadyStarted is returned by Start on a running poller.
var ErrAlreadyStarted = errors.New("live feed poller already started")

// SummaryFunc fetches the current summary. *client.Client.LiveFeedSummary
// satisfies it.
type SummaryFunc func(ctx context.Context) (*datatypes.LiveFeedSummary, error)

// ChangeFunc is invoked with the new summary whenever the alert count
// differs from the last observed value. It runs on the poller goroutine.
type ChangeFunc func(summary *datatypes.LiveFeedSummary)

// Poller periodically fetches the live-feed summary.
type Poller struct {
	fetch    SummaryFunc
	onChange ChangeFunc
	interval time.Duration
	log      *slog.Logger

	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Poller) { p.log = log }
}

// New returns a poller; it does nothing until Start.
func New(fetch SummaryFunc, onChange ChangeFunc, opts ...Option) *Poller {
	p := &Poller{
		fetch:    fetch,
		onChange: onChange,
		interval: DefaultInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling goroutine. The first fetch happens
// immediately so the dashboard has a baseline; afterwards the poller wakes
// on the fixed interval. A failed fetch is logged and skipped, the last
// observed count stays in place.
func (p *Poller) Start(ctx context.Context) error {
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		lastCount := -1
		poll := func() {
			summary, err := p.fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					p.log.Warn("live feed fetch failed", "error", err)
				}
				return
			}
			if summary.AlertCount == lastCount {
				return
			}
			lastCount = summary.AlertCount
			if p.onChange != nil {
				p.onChange(summary)
			}
		}

		poll()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				poll()
			}
		}
	}()
	return nil
}

// Stop cancels polling and waits for the goroutine to exit. Safe to call
// more than once and before Start.
func (p *Poller) Stop() {
	if !p.started {
		return
	}
	p.cancel()
	<-p.done
	p.started = false
}
