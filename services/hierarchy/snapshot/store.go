// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package snapshot persists the last successfully fetched flat node list in
// an embedded BadgerDB, so the hierarchy can still be rendered when the
// collaborator API is unreachable. One snapshot is kept per program; each
// successful load overwrites it.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// ErrNoSnapshot is returned by Load when no snapshot exists for the program.
var ErrNoSnapshot = errors.New("no snapshot for program")

// Snapshot is one stored flat list with its capture time.
type Snapshot struct {
	SavedAt time.Time                     `json:"saved_at"`
	Nodes   []*datatypes.ProcessLevelNode `json:"nodes"`
}

// Config holds store configuration.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory disables disk persistence; used by tests.
	InMemory bool
}

// Store is a BadgerDB-backed snapshot store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("snapshot store: Path is required unless InMemory is set")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// badger's own logger is chatty at INFO; the store logs nothing itself
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save overwrites the snapshot for program with the given flat list.
func (s *Store) Save(program string, flat []*datatypes.ProcessLevelNode) error {
	snap := Snapshot{SavedAt: time.Now().UTC(), Nodes: flat}
	payload, err := json.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(program), payload)
	})
	if err != nil {
		return fmt.Errorf("save snapshot for %q: %w", program, err)
	}
	return nil
}

// Load returns the stored snapshot for program, or ErrNoSnapshot.
func (s *Store) Load(program string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(program))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, program)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %q: %w", program, err)
	}
	return &snap, nil
}

func key(program string) []byte {
	return []byte("flatlist/" + program)
}
