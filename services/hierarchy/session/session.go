// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session orchestrates hierarchy loads and mutations against the
// Process Hierarchy API and owns the view-session state: the flat list, the
// built tree, the filter state, and the expanded-node set.
//
// The state machine is Idle → Loading → {Loaded | LoadError}; from Loaded,
// mutations pass through Mutating and end either back in Loaded via a full
// reload, or in Loaded with the failure recorded (the toast-and-stay
// convention). Nothing here is persisted across sessions except the
// optional last-good snapshot used for offline rendering.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/filter"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/ingest"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/snapshot"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/tree"
)

// =============================================================================
// State Machine
// =============================================================================

// State is the session lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateLoadError State = "load_error"
	StateMutating  State = "mutating"
)

// =============================================================================
// Collaborator Interfaces
// =============================================================================

// API is the subset of the Process Hierarchy client the session drives.
// *client.Client satisfies it; tests substitute fakes.
type API interface {
	FetchFlat(ctx context.Context) ([]*datatypes.ProcessLevelNode, error)
	CreateNode(ctx context.Context, req *datatypes.CreateNodeRequest) (*datatypes.ProcessLevelNode, error)
	UpdateNode(ctx context.Context, id string, req *datatypes.UpdateNodeRequest) (*datatypes.ProcessLevelNode, error)
	BulkCreate(ctx context.Context, req *datatypes.BulkCreateRequest) (*datatypes.BulkCreateResult, error)
	DeleteNode(ctx context.Context, id string, dryRun bool) (*datatypes.DeletePreview, error)
	ImportTemplate(ctx context.Context, codes []string) (*datatypes.ImportTemplateResult, error)
}

// Snapshotter stores the last successfully fetched flat list.
// *snapshot.Store satisfies it.
type Snapshotter interface {
	Save(program string, flat []*datatypes.ProcessLevelNode) error
	Load(program string) (*snapshot.Snapshot, error)
}

// =============================================================================
// Session
// =============================================================================

// Session is safe for concurrent use, though the intended caller is a
// single UI loop: the mutex exists so background pollers and tests cannot
// corrupt the caches, not to serialize competing mutations. Competing
// mutations are rejected with ErrMutationInFlight instead.
type Session struct {
	api     API
	program string
	log     *slog.Logger
	snap    Snapshotter
	metrics *Metrics

	mu       sync.Mutex
	state    State
	lastErr  error
	mutating bool
	flat     []*datatypes.ProcessLevelNode
	roots    []*datatypes.ProcessLevelNode
	filter   *datatypes.FilterState
	expanded map[string]bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithSnapshot enables last-good snapshot persistence.
func WithSnapshot(snap Snapshotter) Option {
	return func(s *Session) { s.snap = snap }
}

// WithMetrics attaches prometheus instruments.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New returns an idle session for one program.
func New(api API, program string, opts ...Option) *Session {
	s := &Session{
		api:     api,
		program: program,
		log:     slog.Default(),
		state:   StateIdle,
		filter:  datatypes.NewFilterState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// Loading
// =============================================================================

// Load fetches the flat list for all four levels, rebuilds the tree, and
// moves the session to Loaded. On failure the session moves to LoadError
// but keeps the previously loaded view intact, so the last successfully
// rendered state stays available.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.mutating {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	s.state = StateLoading
	s.mu.Unlock()

	flat, err := s.api.FetchFlat(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateLoadError
		s.lastErr = err
		s.metrics.loadFailed()
		return fmt.Errorf("load hierarchy: %w", err)
	}
	s.commitLocked(flat, true)
	return nil
}

// LoadOffline restores the last-good snapshot instead of calling the API.
func (s *Session) LoadOffline() error {
	if s.snap == nil {
		return fmt.Errorf("offline load: no snapshot store configured")
	}
	snap, err := s.snap.Load(s.program)
	if err != nil {
		s.mu.Lock()
		s.state = StateLoadError
		s.lastErr = err
		s.mu.Unlock()
		return fmt.Errorf("offline load: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(snap.Nodes, false)
	s.log.Info("hierarchy restored from snapshot",
		"program", s.program, "nodes", len(snap.Nodes), "saved_at", snap.SavedAt)
	return nil
}

// commitLocked installs a freshly fetched flat list. Callers hold s.mu.
func (s *Session) commitLocked(flat []*datatypes.ProcessLevelNode, saveSnapshot bool) {
	s.flat = flat
	s.roots = tree.Build(flat)
	s.state = StateLoaded
	s.lastErr = nil

	if s.expanded == nil {
		// first load: all top-level roots start expanded
		s.expanded = make(map[string]bool, len(s.roots))
		for _, r := range s.roots {
			s.expanded[r.ID] = true
		}
	} else {
		s.pruneExpandedLocked()
	}

	if saveSnapshot && s.snap != nil {
		if err := s.snap.Save(s.program, flat); err != nil {
			s.log.Warn("failed to save hierarchy snapshot", "program", s.program, "error", err)
		}
	}
	s.metrics.loadOK()
}

// pruneExpandedLocked drops expanded entries for nodes that no longer
// exist, e.g. after a cascading delete.
func (s *Session) pruneExpandedLocked() {
	alive := make(map[string]bool, len(s.flat))
	for _, n := range s.flat {
		alive[n.ID] = true
	}
	for id := range s.expanded {
		if !alive[id] {
			delete(s.expanded, id)
		}
	}
}

// =============================================================================
// Mutations
// =============================================================================

func (s *Session) beginMutation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutating {
		return ErrMutationInFlight
	}
	if s.state != StateLoaded {
		return ErrNotLoaded
	}
	s.mutating = true
	s.state = StateMutating
	return nil
}

// finishMutation records the outcome and, on success, runs the full reload.
// A failed mutation returns the session to Loaded with the error recorded;
// a successful mutation whose reload fails ends in LoadError.
func (s *Session) finishMutation(ctx context.Context, kind string, mutErr error) error {
	if mutErr != nil {
		s.mu.Lock()
		s.mutating = false
		s.state = StateLoaded
		s.lastErr = mutErr
		s.mu.Unlock()
		s.metrics.mutationFailed(kind)
		s.log.Warn("hierarchy mutation failed", "kind", kind, "error", mutErr)
		return mutErr
	}
	s.metrics.mutationOK(kind)

	flat, err := s.api.FetchFlat(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutating = false
	if err != nil {
		s.state = StateLoadError
		s.lastErr = err
		s.metrics.loadFailed()
		return fmt.Errorf("%s succeeded but reload failed: %w", kind, err)
	}
	s.commitLocked(flat, true)
	return nil
}

// Create validates and creates a single node. Validation failures are
// reported locally as *ValidationError and make no API call. On success the
// created node (with server-assigned id and code) is returned after the
// reload completes.
func (s *Session) Create(ctx context.Context, req *datatypes.CreateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}
	if err := s.beginMutation(); err != nil {
		return nil, err
	}
	created, err := s.api.CreateNode(ctx, req)
	if ferr := s.finishMutation(ctx, "create", err); ferr != nil {
		if err != nil {
			return nil, ferr
		}
		// create landed, only the reload failed
		return created, ferr
	}
	return created, nil
}

// Update performs a full replace of the editable fields of one node.
func (s *Session) Update(ctx context.Context, id string, req *datatypes.UpdateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "name is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Field: "request", Reason: err.Error()}
	}
	s.mu.Lock()
	known := s.nodeLocked(id) != nil
	loaded := s.state == StateLoaded || s.state == StateMutating
	s.mu.Unlock()
	if loaded && !known {
		return nil, &ValidationError{Field: "id", Reason: fmt.Sprintf("node %q not found", id)}
	}
	if err := s.beginMutation(); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateNode(ctx, id, req)
	if ferr := s.finishMutation(ctx, "update", err); ferr != nil {
		if err != nil {
			return nil, ferr
		}
		return updated, ferr
	}
	return updated, nil
}

// PreviewDelete fetches the non-destructive cascade preview for a node:
// how many descendants the delete would remove, by level. It performs no
// state transition; the destructive call only happens via ConfirmDelete.
func (s *Session) PreviewDelete(ctx context.Context, id string) (*datatypes.DeletePreview, error) {
	return s.api.DeleteNode(ctx, id, true)
}

// ConfirmDelete performs the irreversible cascading delete. Callers are
// expected to have shown the PreviewDelete result and obtained explicit
// confirmation first.
func (s *Session) ConfirmDelete(ctx context.Context, id string) error {
	if err := s.beginMutation(); err != nil {
		return err
	}
	_, err := s.api.DeleteNode(ctx, id, false)
	return s.finishMutation(ctx, "delete", err)
}

// BulkCreate submits the valid rows of a bulk batch. With zero valid rows
// it returns ingest.ErrNoValidRows and makes no API call. The result
// carries the created count and per-row server errors; both are for the
// caller to surface, and failed rows are never retried here.
func (s *Session) BulkCreate(ctx context.Context, rows []datatypes.BulkRow) (*datatypes.BulkCreateResult, error) {
	payload, err := ingest.BuildPayload(s.program, rows)
	if err != nil {
		return nil, err
	}
	if err := s.beginMutation(); err != nil {
		return nil, err
	}
	result, err := s.api.BulkCreate(ctx, payload)
	if ferr := s.finishMutation(ctx, "bulk_create", err); ferr != nil {
		if err != nil {
			return nil, ferr
		}
		return result, ferr
	}
	if result != nil && len(result.Errors) > 0 {
		s.log.Warn("bulk create finished with row errors",
			"created", result.Created, "failed_rows", len(result.Errors))
	}
	return result, nil
}

// ImportTemplate seeds nodes from the fixed catalog for the selected
// top-level codes.
func (s *Session) ImportTemplate(ctx context.Context, codes []string) (*datatypes.ImportTemplateResult, error) {
	if len(codes) == 0 {
		return nil, &ValidationError{Field: "codes", Reason: "select at least one template code"}
	}
	if err := s.beginMutation(); err != nil {
		return nil, err
	}
	result, err := s.api.ImportTemplate(ctx, codes)
	if ferr := s.finishMutation(ctx, "import_template", err); ferr != nil {
		if err != nil {
			return nil, ferr
		}
		return result, ferr
	}
	return result, nil
}

// =============================================================================
// Create Validation
// =============================================================================

func (s *Session) validateCreate(req *datatypes.CreateNodeRequest) error {
	if !datatypes.ValidLevel(req.Level) {
		return &ValidationError{
			Field:  "level",
			Reason: fmt.Sprintf("level %d out of range [%d,%d]", req.Level, datatypes.MinLevel, datatypes.MaxLevel),
		}
	}
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if err := req.Validate(); err != nil {
		return &ValidationError{Field: "request", Reason: err.Error()}
	}

	hasParent := req.ParentID != "" || req.ParentCode != ""
	if req.Level == datatypes.MinLevel && hasParent {
		return &ValidationError{Field: "parent", Reason: "level 1 nodes cannot have a parent"}
	}
	if req.Level > datatypes.MinLevel && !hasParent {
		return &ValidationError{Field: "parent", Reason: fmt.Sprintf("level %d nodes require a parent", req.Level)}
	}
	if !hasParent {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var parent *datatypes.ProcessLevelNode
	if req.ParentID != "" {
		parent = s.nodeLocked(req.ParentID)
		if parent == nil {
			return &ValidationError{Field: "parent", Reason: fmt.Sprintf("parent %q not found", req.ParentID)}
		}
	} else {
		for _, n := range s.flat {
			if n.Code == req.ParentCode {
				parent = n
				break
			}
		}
		if parent == nil {
			return &ValidationError{Field: "parent", Reason: fmt.Sprintf("parent code %q not found", req.ParentCode)}
		}
	}
	if parent.Level != req.Level-1 {
		return &ValidationError{
			Field:  "parent",
			Reason: fmt.Sprintf("parent is level %d, expected level %d", parent.Level, req.Level-1),
		}
	}
	return nil
}

// =============================================================================
// View State Accessors
// =============================================================================

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent load or mutation error, nil after a
// successful load.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Flat returns the last loaded flat list.
func (s *Session) Flat() []*datatypes.ProcessLevelNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*datatypes.ProcessLevelNode, len(s.flat))
	copy(out, s.flat)
	return out
}

// Roots returns the built forest. The forest is rebuilt wholesale on every
// load; callers must treat it as read-only.
func (s *Session) Roots() []*datatypes.ProcessLevelNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roots
}

// Node returns the node with the given id from the flat list, or nil.
func (s *Session) Node(id string) *datatypes.ProcessLevelNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodeLocked(id)
}

func (s *Session) nodeLocked(id string) *datatypes.ProcessLevelNode {
	for _, n := range s.flat {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// FilterState returns the mutable filter state. It is owned by the single
// UI loop; VisibleSet reads it on demand.
func (s *Session) FilterState() *datatypes.FilterState {
	return s.filter
}

// VisibleSet recomputes node visibility for the current filter state.
func (s *Session) VisibleSet() map[string]bool {
	s.mu.Lock()
	roots := s.roots
	s.mu.Unlock()
	return filter.VisibleSet(roots, s.filter)
}

// IsExpanded reports whether the node's children are shown.
func (s *Session) IsExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

// ToggleExpanded flips a node's expand/collapse state and returns the new
// value.
func (s *Session) ToggleExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded == nil {
		s.expanded = make(map[string]bool)
	}
	if s.expanded[id] {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = true
	return true
}

// ExpandAll marks every node expanded.
func (s *Session) ExpandAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = make(map[string]bool, len(s.flat))
	for _, n := range s.flat {
		s.expanded[n.ID] = true
	}
}

// CollapseAll collapses everything, including the roots.
func (s *Session) CollapseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = make(map[string]bool)
}
