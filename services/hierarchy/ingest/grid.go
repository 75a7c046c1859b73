// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

const (
	// InitialGridRows is the number of blank rows a fresh grid offers.
	InitialGridRows = 8

	// GridExtendStep is how many blank rows Extend appends.
	GridExtendStep = 5
)

// Grid is the structured bulk-entry mode: a fixed-size, user-extendable
// array of editable rows. A row counts as filled iff its trimmed name is
// non-empty; unfilled rows are silently skipped at submission.
type Grid struct {
	rows []datatypes.BulkRow
}

// NewGrid returns a grid with InitialGridRows blank rows.
func NewGrid() *Grid {
	return &Grid{rows: make([]datatypes.BulkRow, InitialGridRows)}
}

// Len returns the current number of rows, filled or not.
func (g *Grid) Len() int {
	return len(g.rows)
}

// Rows returns a copy of all rows in order.
func (g *Grid) Rows() []datatypes.BulkRow {
	out := make([]datatypes.BulkRow, len(g.rows))
	copy(out, g.rows)
	return out
}

// Extend appends GridExtendStep blank rows.
func (g *Grid) Extend() {
	g.rows = append(g.rows, make([]datatypes.BulkRow, GridExtendStep)...)
}

// SetRow replaces the row at index i.
func (g *Grid) SetRow(i int, row datatypes.BulkRow) error {
	if i < 0 || i >= len(g.rows) {
		return fmt.Errorf("grid row %d out of range [0,%d)", i, len(g.rows))
	}
	row.Err = ""
	g.rows[i] = row
	return nil
}

// FilledRows returns the filled rows with validation applied: a filled row
// whose level is outside [1,4] carries ErrMsgInvalidLevel. Unfilled rows are
// absent from the result.
func (g *Grid) FilledRows() []datatypes.BulkRow {
	out := make([]datatypes.BulkRow, 0, len(g.rows))
	for _, row := range g.rows {
		if !row.Filled() {
			continue
		}
		row.Err = ""
		if !datatypes.ValidLevel(row.Level) {
			row.Err = ErrMsgInvalidLevel
		}
		out = append(out, row)
	}
	return out
}

// ParentOption is one selectable parent for a grid row.
type ParentOption struct {
	Code  string
	Label string
	Level int

	// Pending marks an option sourced from an earlier grid row that has not
	// been persisted yet; the API resolves it by code after the batch lands.
	Pending bool
}

// ParentOptions lists the parents selectable for the row at rowIdx:
// already-persisted nodes of level 1..3, plus prior filled grid rows (index
// strictly before rowIdx) whose own level is known and below 4 and that
// carry a code to reference them by. The grid does no dependency ordering
// beyond this prior-row restriction; the server resolves codes against the
// final persisted set.
func (g *Grid) ParentOptions(persisted []*datatypes.ProcessLevelNode, rowIdx int) []ParentOption {
	var opts []ParentOption
	for _, n := range persisted {
		if n == nil || n.Level >= datatypes.MaxLevel || n.Code == "" {
			continue
		}
		opts = append(opts, ParentOption{Code: n.Code, Label: n.Name, Level: n.Level})
	}
	if rowIdx > len(g.rows) {
		rowIdx = len(g.rows)
	}
	for i := 0; i < rowIdx; i++ {
		row := g.rows[i]
		if !row.Filled() || row.Code == "" {
			continue
		}
		if !datatypes.ValidLevel(row.Level) || row.Level >= datatypes.MaxLevel {
			continue
		}
		opts = append(opts, ParentOption{Code: row.Code, Label: row.Name, Level: row.Level, Pending: true})
	}
	return opts
}
