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

func TestBuildPayload_MapsValidRows(t *testing.T) {
	rows := []datatypes.BulkRow{
		{Level: 1, Code: "OTC", Name: "Order to Cash", Module: "SD"},
		{Level: 9, Name: "Bad", Err: ErrMsgInvalidLevel},
		{Level: 2, Name: " Sales Mgmt ", Module: "SD", ParentCode: "OTC"},
		{}, // empty row
	}
	req, err := BuildPayload("PRG-1", rows)
	require.NoError(t, err)
	assert.Equal(t, "PRG-1", req.Program)
	require.Len(t, req.Items, 2, "error rows and empty rows are excluded")
	assert.Equal(t, "Sales Mgmt", req.Items[1].Name, "names are trimmed")
	assert.Equal(t, "OTC", req.Items[1].ParentCode)
}

func TestBuildPayload_EmptinessGuard(t *testing.T) {
	t.Run("all empty", func(t *testing.T) {
		req, err := BuildPayload("PRG-1", make([]datatypes.BulkRow, 8))
		assert.Nil(t, req)
		assert.ErrorIs(t, err, ErrNoValidRows)
	})

	t.Run("all errored", func(t *testing.T) {
		rows := []datatypes.BulkRow{{Level: 9, Name: "X", Err: ErrMsgInvalidLevel}}
		_, err := BuildPayload("PRG-1", rows)
		assert.ErrorIs(t, err, ErrNoValidRows)
	})
}

func TestTemplate_Contract(t *testing.T) {
	tpl := Template()
	assert.Contains(t, tpl, TemplateHeader+"\n")
	lines := 0
	for _, r := range tpl {
		if r == '\n' {
			lines++
		}
	}
	assert.Equal(t, 4, lines, "header plus three sample rows")
}
