// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package filter decides node visibility for a search query plus a set of
// attribute-equality filters.
//
// Visibility is monotone upward: a node is visible when it matches the
// active state itself, or when any descendant does, so filtering never hides
// the ancestors of a match. The subtree-contains-a-match computation runs
// bottom-up exactly once per VisibleSet call, keeping the whole pass O(n)
// regardless of tree depth.
package filter

import (
	"strconv"
	"strings"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// MatchesSelf reports whether the node's own text fields match the search
// query. The match is a case-insensitive substring test over name, code, and
// description. An empty (or whitespace-only) query matches everything.
func MatchesSelf(n *datatypes.ProcessLevelNode, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{n.Name, n.Code, n.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// MatchesFilters reports whether the node satisfies every active filter key.
// Keys combine with AND; the values within one key combine with OR. A key
// the engine does not recognize never matches, which makes a typo in a
// filter name visible (empty result) instead of silently ignored.
func MatchesFilters(n *datatypes.ProcessLevelNode, filters map[string][]string) bool {
	for key, accepted := range filters {
		if len(accepted) == 0 {
			continue
		}
		val, known := attributeValue(n, key)
		if !known {
			return false
		}
		hit := false
		for _, want := range accepted {
			if val == want {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Matches combines MatchesSelf and MatchesFilters for one node.
func Matches(n *datatypes.ProcessLevelNode, state *datatypes.FilterState) bool {
	if state == nil {
		return true
	}
	return MatchesSelf(n, state.SearchQuery) && MatchesFilters(n, state.Filters)
}

// VisibleSet computes the visibility of every node in the forest for the
// given state in a single bottom-up pass.
//
// The returned map holds an entry for every node id: true when the node or
// any of its descendants matches. Render loops should consult this set via
// IsVisible instead of re-deriving subtree matches per node.
func VisibleSet(roots []*datatypes.ProcessLevelNode, state *datatypes.FilterState) map[string]bool {
	visible := make(map[string]bool)
	var walk func(n *datatypes.ProcessLevelNode) bool
	walk = func(n *datatypes.ProcessLevelNode) bool {
		vis := Matches(n, state)
		for _, c := range n.Children {
			// walk every child even after a hit so the set is complete
			if walk(c) {
				vis = true
			}
		}
		visible[n.ID] = vis
		return vis
	}
	for _, r := range roots {
		walk(r)
	}
	return visible
}

// IsVisible looks the node up in a set produced by VisibleSet.
func IsVisible(n *datatypes.ProcessLevelNode, set map[string]bool) bool {
	return set[n.ID]
}

func attributeValue(n *datatypes.ProcessLevelNode, key string) (string, bool) {
	switch key {
	case datatypes.FilterKeyArea:
		return n.ProcessAreaCode, true
	case datatypes.FilterKeyScope:
		return string(n.ScopeStatus), true
	case datatypes.FilterKeyWave:
		if n.Wave == nil {
			return "", true
		}
		return strconv.Itoa(*n.Wave), true
	}
	return "", false
}
