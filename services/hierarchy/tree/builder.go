// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tree assembles the flat per-level node lists returned by the
// Process Hierarchy API into a rooted forest.
package tree

import (
	"log/slog"
	"sort"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// Build converts a flat list of leveled nodes into a forest of roots with
// populated Children.
//
// # Description
//
// Two passes: the first clones every node (Build never mutates its input)
// and indexes the clones by id; the second attaches each node to its parent.
// Nodes whose parent reference cannot be resolved, and nodes that list
// themselves as their own parent, become roots. That is a deliberate
// fallback for malformed upstream data, not silent loss: every node in the
// input appears exactly once in the output forest, and each fallback is
// logged at WARN so integrity problems stay observable.
//
// Children are ordered by SortOrder where present; nodes without a SortOrder
// keep their relative source order after the explicitly ordered ones (the
// sort is stable).
//
// Build never panics on malformed input; the worst case is a forest with
// more roots than expected.
func Build(flat []*datatypes.ProcessLevelNode) []*datatypes.ProcessLevelNode {
	index := make(map[string]*datatypes.ProcessLevelNode, len(flat))
	ordered := make([]*datatypes.ProcessLevelNode, 0, len(flat))
	for _, n := range flat {
		if n == nil {
			continue
		}
		if _, dup := index[n.ID]; dup {
			slog.Warn("duplicate node id in flat list, keeping first occurrence", "id", n.ID)
			continue
		}
		c := n.Clone()
		c.Children = []*datatypes.ProcessLevelNode{}
		index[c.ID] = c
		ordered = append(ordered, c)
	}

	var roots []*datatypes.ProcessLevelNode
	for _, c := range ordered {
		switch {
		case c.ParentID == "":
			roots = append(roots, c)
		case c.ParentID == c.ID:
			slog.Warn("node references itself as parent, treating as root", "id", c.ID)
			roots = append(roots, c)
		default:
			parent, ok := index[c.ParentID]
			if !ok {
				slog.Warn("orphaned node, parent not in flat list, treating as root",
					"id", c.ID, "parent_id", c.ParentID, "level", c.Level)
				roots = append(roots, c)
				break
			}
			parent.Children = append(parent.Children, c)
		}
	}

	sortSiblings(roots)
	for _, r := range roots {
		sortSubtree(r)
	}
	return roots
}

func sortSubtree(n *datatypes.ProcessLevelNode) {
	sortSiblings(n.Children)
	for _, c := range n.Children {
		sortSubtree(c)
	}
}

// sortSiblings orders nodes by explicit SortOrder; unordered nodes keep
// their relative source order behind the ordered ones.
func sortSiblings(nodes []*datatypes.ProcessLevelNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		si, sj := nodes[i].SortOrder, nodes[j].SortOrder
		switch {
		case si != nil && sj != nil:
			return *si < *sj
		case si != nil:
			return true
		default:
			return false
		}
	})
}
