// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the hierarchy service.
//
// This file contains the ProcessLevelNode record, the unit of the 4-level
// process scope hierarchy (L1..L4). For transient bulk-ingest rows see
// bulkrow.go, for API request/response payloads see requests.go.
package datatypes

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Level and Scope Constants
// =============================================================================

const (
	// MinLevel is the top of the process hierarchy (L1, no parent).
	MinLevel = 1

	// MaxLevel is the deepest supported process level (L4).
	MaxLevel = 4
)

// ScopeStatus classifies whether a process node is part of the
// transformation scope.
type ScopeStatus string

const (
	ScopeInScope    ScopeStatus = "in_scope"
	ScopeOutOfScope ScopeStatus = "out_of_scope"
	ScopeDeferred   ScopeStatus = "deferred"
)

// Valid reports whether s is one of the three known scope statuses.
func (s ScopeStatus) Valid() bool {
	switch s {
	case ScopeInScope, ScopeOutOfScope, ScopeDeferred:
		return true
	}
	return false
}

// ValidLevel reports whether level is within the supported L1..L4 range.
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// =============================================================================
// ProcessLevelNode
// =============================================================================

// ProcessLevelNode is one node in the 4-level process scope hierarchy.
//
// # Description
//
// Nodes arrive from the Process Hierarchy API as flat per-level lists and are
// assembled into a forest by the tree package. Children is derived state: it
// is populated by tree.Build and never persisted or sent back to the API.
//
// # Fields
//
//   - ID: opaque identifier, unique within a program. The API is loosely
//     typed and may serialize ids as JSON strings or numbers; both decode
//     into the string form here (see UnmarshalJSON).
//   - Level: 1..4. Level 1 nodes have no parent; every deeper node must
//     reference a parent exactly one level above.
//   - ParentID: empty for roots. Same flexible decoding as ID.
//   - Code: short display code, server-generated when omitted on create.
//   - ProcessAreaCode: optional functional-module classification (e.g. "FI",
//     "SD"). Absent in the payload decodes to the empty string.
//   - ScopeStatus: defaults to in_scope when the API omits it.
//   - Wave: optional positive implementation-wave grouping.
//   - SortOrder: optional explicit ordering among siblings.
type ProcessLevelNode struct {
	ID              string      `json:"id"`
	Level           int         `json:"level"`
	ParentID        string      `json:"parent_id,omitempty"`
	Code            string      `json:"code,omitempty"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	ProcessAreaCode string      `json:"process_area_code,omitempty"`
	ScopeStatus     ScopeStatus `json:"scope_status,omitempty"`
	Wave            *int        `json:"wave,omitempty"`
	SortOrder       *int        `json:"sort_order,omitempty"`

	// Children is derived by tree.Build and is never part of the wire
	// contract for create/update calls.
	Children []*ProcessLevelNode `json:"children,omitempty"`
}

// IsRoot reports whether the node has no parent reference.
func (n *ProcessLevelNode) IsRoot() bool {
	return n.ParentID == ""
}

// Clone returns a copy of the node with Children reset and pointer fields
// duplicated, so tree construction never aliases or mutates API results.
func (n *ProcessLevelNode) Clone() *ProcessLevelNode {
	c := *n
	c.Children = nil
	if n.Wave != nil {
		w := *n.Wave
		c.Wave = &w
	}
	if n.SortOrder != nil {
		o := *n.SortOrder
		c.SortOrder = &o
	}
	return &c
}

// UnmarshalJSON decodes a node, coercing numeric id/parent_id values to
// strings and defaulting an absent scope_status to in_scope.
func (n *ProcessLevelNode) UnmarshalJSON(data []byte) error {
	type plain ProcessLevelNode
	aux := struct {
		ID       json.RawMessage `json:"id"`
		ParentID json.RawMessage `json:"parent_id"`
		*plain
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := coerceID(aux.ID)
	if err != nil {
		return fmt.Errorf("node id: %w", err)
	}
	parentID, err := coerceID(aux.ParentID)
	if err != nil {
		return fmt.Errorf("node parent_id: %w", err)
	}
	n.ID = id
	n.ParentID = parentID
	if n.ScopeStatus == "" {
		n.ScopeStatus = ScopeInScope
	}
	return nil
}

// coerceID accepts a JSON string, number, null, or absent field and returns
// the canonical string form ("" for null/absent).
func coerceID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), nil
	}
	return "", fmt.Errorf("value %s is neither string nor number", raw)
}
