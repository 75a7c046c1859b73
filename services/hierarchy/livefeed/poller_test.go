// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package livefeed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// summarySource serves a scripted sequence of alert counts, one per fetch.
type summarySource struct {
	mu      sync.Mutex
	counts  []int
	errs    []error
	fetches int
}

func (s *summarySource) fetch(ctx context.Context) (*datatypes.LiveFeedSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.fetches
	s.fetches++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	count := s.counts[len(s.counts)-1]
	if i < len(s.counts) {
		count = s.counts[i]
	}
	return &datatypes.LiveFeedSummary{AlertCount: count, GeneratedAt: time.Now()}, nil
}

func collectChanges(t *testing.T, src *summarySource, wantChanges int) []int {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []int
	)
	gotAll := make(chan struct{})
	p := New(src.fetch, func(s *datatypes.LiveFeedSummary) {
		mu.Lock()
		seen = append(seen, s.AlertCount)
		if len(seen) == wantChanges {
			close(gotAll)
		}
		mu.Unlock()
	}, WithInterval(5*time.Millisecond))

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	select {
	case <-gotAll:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d changes, saw %v", wantChanges, seen)
	}
	mu.Lock()
	defer mu.Unlock()
	return append([]int(nil), seen...)
}

func TestPoller_NotifiesOnlyOnChange(t *testing.T) {
	src := &summarySource{counts: []int{3, 3, 3, 5, 5, 2}}
	seen := collectChanges(t, src, 3)
	assert.Equal(t, []int{3, 5, 2}, seen[:3], "repeated counts are suppressed")
}

func TestPoller_FirstFetchIsImmediate(t *testing.T) {
	src := &summarySource{counts: []int{7}}
	seen := collectChanges(t, src, 1)
	assert.Equal(t, 7, seen[0])
}

func TestPoller_FailedFetchIsSkipped(t *testing.T) {
	src := &summarySource{
		counts: []int{4, 0, 4, 6},
		errs:   []error{nil, errors.New("boom"), nil, nil},
	}
	seen := collectChanges(t, src, 2)
	// the failed poll neither notifies nor resets the last observed count
	assert.Equal(t, []int{4, 6}, seen[:2])
}

func TestPoller_StopEndsFetching(t *testing.T) {
	src := &summarySource{counts: []int{1}}
	p := New(src.fetch, nil, WithInterval(2*time.Millisecond))
	require.NoError(t, p.Start(context.Background()))

	time.Sleep(20 * time.Millisecond)
	p.Stop()

	src.mu.Lock()
	after := src.fetches
	src.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	src.mu.Lock()
	assert.Equal(t, after, src.fetches, "no fetches after Stop")
	src.mu.Unlock()

	p.Stop() // idempotent
}

func TestPoller_DoubleStart(t *testing.T) {
	src := &summarySource{counts: []int{1}}
	p := New(src.fetch, nil, WithInterval(time.Millisecond))
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()
	assert.ErrorIs(t, p.Start(context.Background()), ErrAlreadyStarted)
}

func TestPoller_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &summarySource{counts: []int{1}}
	p := New(src.fetch, nil, WithInterval(2*time.Millisecond))
	require.NoError(t, p.Start(ctx))
	cancel()

	time.Sleep(20 * time.Millisecond)
	src.mu.Lock()
	after := src.fetches
	src.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	src.mu.Lock()
	assert.Equal(t, after, src.fetches, "cancelled context stops polling")
	src.mu.Unlock()
}
