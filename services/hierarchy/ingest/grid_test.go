// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

func TestGrid_InitialSizeAndExtend(t *testing.T) {
	g := NewGrid()
	assert.Equal(t, InitialGridRows, g.Len())
	g.Extend()
	assert.Equal(t, InitialGridRows+GridExtendStep, g.Len())
}

func TestGrid_SetRowBounds(t *testing.T) {
	g := NewGrid()
	assert.Error(t, g.SetRow(-1, datatypes.BulkRow{}))
	assert.Error(t, g.SetRow(InitialGridRows, datatypes.BulkRow{}))
	assert.NoError(t, g.SetRow(0, datatypes.BulkRow{Level: 1, Name: "Alpha"}))
}

func TestGrid_FilledRows(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.SetRow(0, datatypes.BulkRow{Level: 1, Name: "Alpha", Code: "A"}))
	require.NoError(t, g.SetRow(2, datatypes.BulkRow{Level: 9, Name: "Bad Level"}))
	require.NoError(t, g.SetRow(4, datatypes.BulkRow{Level: 2, Name: "   "})) // not filled

	filled := g.FilledRows()
	require.Len(t, filled, 2, "empty rows are skipped silently, not errors")
	assert.True(t, filled[0].Valid())
	assert.Equal(t, ErrMsgInvalidLevel, filled[1].Err)
}

func TestGrid_ParentOptions(t *testing.T) {
	persisted := []*datatypes.ProcessLevelNode{
		{ID: "1", Level: 1, Code: "OTC", Name: "Order to Cash"},
		{ID: "2", Level: 3, Code: "OTC-SO-STD", Name: "Standard Order"},
		{ID: "3", Level: 4, Code: "OTC-X", Name: "Too Deep"}, // level 4 cannot parent
	}
	g := NewGrid()
	require.NoError(t, g.SetRow(0, datatypes.BulkRow{Level: 2, Code: "NEW-L2", Name: "New Branch"}))
	require.NoError(t, g.SetRow(1, datatypes.BulkRow{Level: 2, Name: "No Code"})) // unreferenceable

	t.Run("first row sees only persisted parents", func(t *testing.T) {
		opts := g.ParentOptions(persisted, 0)
		require.Len(t, opts, 2)
		for _, o := range opts {
			assert.False(t, o.Pending)
			assert.Less(t, o.Level, datatypes.MaxLevel)
		}
	})

	t.Run("later rows also see prior filled rows with codes", func(t *testing.T) {
		opts := g.ParentOptions(persisted, 3)
		require.Len(t, opts, 3)
		last := opts[len(opts)-1]
		assert.True(t, last.Pending)
		assert.Equal(t, "NEW-L2", last.Code)
	})
}
