// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Known filter keys understood by the filter engine.
const (
	FilterKeyArea  = "area"  // matches ProcessAreaCode
	FilterKeyScope = "scope" // matches ScopeStatus
	FilterKeyWave  = "wave"  // matches Wave (decimal string)
)

// FilterState is the session-scoped search and attribute-filter state.
//
// It lives for the duration of one view session, is mutated by user
// interaction, and is never persisted. A filter key maps to the set of
// acceptable values: a node matches a key when its attribute equals any
// value in the set (OR within a key), and matches the state when it matches
// every active key (AND across keys). A key with no values is inactive.
type FilterState struct {
	SearchQuery string
	Filters     map[string][]string
}

// NewFilterState returns an empty state that matches everything.
func NewFilterState() *FilterState {
	return &FilterState{Filters: make(map[string][]string)}
}

// SetFilter replaces the acceptable values for key. Passing no values
// deactivates the key.
func (f *FilterState) SetFilter(key string, values ...string) {
	if f.Filters == nil {
		f.Filters = make(map[string][]string)
	}
	if len(values) == 0 {
		delete(f.Filters, key)
		return
	}
	f.Filters[key] = values
}

// ClearFilter deactivates a single key.
func (f *FilterState) ClearFilter(key string) {
	delete(f.Filters, key)
}

// ClearAll resets the whole filter map in one step. The search query is a
// separate control and is not touched.
func (f *FilterState) ClearAll() {
	f.Filters = make(map[string][]string)
}

// Active reports whether any search text or filter key is in effect.
func (f *FilterState) Active() bool {
	if f.SearchQuery != "" {
		return true
	}
	for _, vals := range f.Filters {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}
