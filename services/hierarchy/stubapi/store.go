// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package stubapi is an in-memory stand-in for the Process Hierarchy API.
//
// It exists for client and session tests and for local development; it is
// not the production collaborator. It implements the full wire contract the
// client depends on: per-level listing, create, bulk create with per-row
// errors, full update, dry-run delete preview, cascading delete, and
// template import.
package stubapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// Store is the in-memory node store. It ignores the program parameter: the
// stub models a single program, which is all the tests and the local dev
// loop need.
type Store struct {
	mu     sync.RWMutex
	nodes  map[string]*datatypes.ProcessLevelNode
	seq    int
	alerts int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]*datatypes.ProcessLevelNode)}
}

// =============================================================================
// Queries
// =============================================================================

// ListLevel returns all nodes of one level, ordered by code for a stable
// wire order.
func (s *Store) ListLevel(level int) []*datatypes.ProcessLevelNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*datatypes.ProcessLevelNode
	for _, n := range s.nodes {
		if n.Level == level {
			out = append(out, n.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Get returns a copy of the node, or nil.
func (s *Store) Get(id string) *datatypes.ProcessLevelNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n, ok := s.nodes[id]; ok {
		return n.Clone()
	}
	return nil
}

// Count returns the total number of nodes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *Store) byCodeLocked(code string) *datatypes.ProcessLevelNode {
	for _, n := range s.nodes {
		if n.Code == code {
			return n
		}
	}
	return nil
}

// =============================================================================
// Mutations
// =============================================================================

// Create validates and persists one node, assigning the id and, when
// omitted, a generated code.
func (s *Store) Create(req *datatypes.CreateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(req)
}

func (s *Store) createLocked(req *datatypes.CreateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	if !datatypes.ValidLevel(req.Level) {
		return nil, fmt.Errorf("level %d out of range", req.Level)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Code != "" && s.byCodeLocked(req.Code) != nil {
		return nil, fmt.Errorf("duplicate code %q", req.Code)
	}

	var parent *datatypes.ProcessLevelNode
	switch {
	case req.Level == datatypes.MinLevel:
		if req.ParentID != "" || req.ParentCode != "" {
			return nil, fmt.Errorf("level 1 nodes cannot have a parent")
		}
	case req.ParentID != "":
		parent = s.nodes[req.ParentID]
		if parent == nil {
			return nil, fmt.Errorf("parent %q not found", req.ParentID)
		}
	case req.ParentCode != "":
		parent = s.byCodeLocked(req.ParentCode)
		if parent == nil {
			return nil, fmt.Errorf("parent code %q not found", req.ParentCode)
		}
	default:
		return nil, fmt.Errorf("level %d nodes require a parent", req.Level)
	}
	if parent != nil && parent.Level != req.Level-1 {
		return nil, fmt.Errorf("parent is level %d, expected level %d", parent.Level, req.Level-1)
	}

	s.seq++
	code := req.Code
	if code == "" {
		code = fmt.Sprintf("L%d-%04d", req.Level, s.seq)
	}
	status := req.ScopeStatus
	if status == "" {
		status = datatypes.ScopeInScope
	}
	node := &datatypes.ProcessLevelNode{
		ID:              uuid.NewString(),
		Level:           req.Level,
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		ProcessAreaCode: req.ProcessAreaCode,
		ScopeStatus:     status,
		Wave:            req.Wave,
	}
	if parent != nil {
		node.ParentID = parent.ID
	}
	s.nodes[node.ID] = node
	return node.Clone(), nil
}

// BulkCreate processes items in order, so a row may reference the code of a
// row that precedes it in the same batch. Failed rows are reported by index
// and never roll back the rows that already landed.
func (s *Store) BulkCreate(req *datatypes.BulkCreateRequest) *datatypes.BulkCreateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := &datatypes.BulkCreateResult{}
	for i, item := range req.Items {
		_, err := s.createLocked(&datatypes.CreateNodeRequest{
			Program:         req.Program,
			Level:           item.Level,
			Code:            item.Code,
			Name:            item.Name,
			ProcessAreaCode: item.ProcessAreaCode,
			ParentCode:      item.ParentCode,
		})
		if err != nil {
			result.Errors = append(result.Errors, datatypes.RowError{Row: i, Message: err.Error()})
			continue
		}
		result.Created++
	}
	return result
}

// Update replaces the editable fields of one node.
func (s *Store) Update(id string, req *datatypes.UpdateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %q not found", id)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	node.Name = strings.TrimSpace(req.Name)
	node.Description = req.Description
	node.ProcessAreaCode = req.ProcessAreaCode
	if req.ScopeStatus != "" {
		node.ScopeStatus = req.ScopeStatus
	}
	node.Wave = req.Wave
	return node.Clone(), nil
}

// Preview returns the dry-run cascade preview for a node.
func (s *Store) Preview(id string) (*datatypes.DeletePreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("node %q not found", id)
	}
	preview := &datatypes.DeletePreview{ByLevel: make(map[int]int)}
	for _, did := range s.descendantsLocked(id) {
		preview.DescendantsCount++
		preview.ByLevel[s.nodes[did].Level]++
	}
	return preview, nil
}

// Delete removes a node and all of its descendants.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("node %q not found", id)
	}
	for _, did := range s.descendantsLocked(id) {
		delete(s.nodes, did)
	}
	delete(s.nodes, id)
	return nil
}

// descendantsLocked returns the ids of every node below id (excluding id).
func (s *Store) descendantsLocked(id string) []string {
	children := make(map[string][]string, len(s.nodes))
	for _, n := range s.nodes {
		if n.ParentID != "" {
			children[n.ParentID] = append(children[n.ParentID], n.ID)
		}
	}
	var out []string
	queue := append([]string(nil), children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, children[cur]...)
	}
	return out
}

// =============================================================================
// Live Feed
// =============================================================================

// SetAlerts sets the hypercare alert count the summary endpoint reports.
func (s *Store) SetAlerts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = n
}

// Alerts returns the current alert count.
func (s *Store) Alerts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}
