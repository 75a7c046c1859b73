// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stubapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

func mustCreate(t *testing.T, s *Store, req *datatypes.CreateNodeRequest) *datatypes.ProcessLevelNode {
	t.Helper()
	n, err := s.Create(req)
	require.NoError(t, err)
	return n
}

func TestStore_Create(t *testing.T) {
	t.Run("assigns id and generated code", func(t *testing.T) {
		s := NewStore()
		n := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Name: "  Order to Cash  "})
		assert.NotEmpty(t, n.ID)
		assert.NotEmpty(t, n.Code)
		assert.Equal(t, "Order to Cash", n.Name, "names are trimmed")
		assert.Equal(t, datatypes.ScopeInScope, n.ScopeStatus)
	})

	t.Run("parent by id and by code", func(t *testing.T) {
		s := NewStore()
		root := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "OTC", Name: "OTC"})

		byID := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 2, Name: "A", ParentID: root.ID})
		assert.Equal(t, root.ID, byID.ParentID)

		byCode := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 2, Name: "B", ParentCode: "OTC"})
		assert.Equal(t, root.ID, byCode.ParentID)
	})

	t.Run("rejections", func(t *testing.T) {
		s := NewStore()
		mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "OTC", Name: "OTC"})

		cases := []struct {
			name string
			req  *datatypes.CreateNodeRequest
		}{
			{"bad level", &datatypes.CreateNodeRequest{Level: 0, Name: "X"}},
			{"blank name", &datatypes.CreateNodeRequest{Level: 1, Name: " "}},
			{"duplicate code", &datatypes.CreateNodeRequest{Level: 1, Code: "OTC", Name: "Again"}},
			{"root with parent", &datatypes.CreateNodeRequest{Level: 1, Name: "X", ParentCode: "OTC"}},
			{"child without parent", &datatypes.CreateNodeRequest{Level: 2, Name: "X"}},
			{"missing parent", &datatypes.CreateNodeRequest{Level: 2, Name: "X", ParentCode: "NOPE"}},
			{"parent level gap", &datatypes.CreateNodeRequest{Level: 3, Name: "X", ParentCode: "OTC"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.Create(tc.req)
				assert.Error(t, err)
			})
		}
		assert.Equal(t, 1, s.Count(), "rejected creates leave the store untouched")
	})
}

func TestStore_ListLevel_SortedByCode(t *testing.T) {
	s := NewStore()
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "P2P", Name: "P2P"})
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "OTC", Name: "OTC"})

	l1 := s.ListLevel(1)
	require.Len(t, l1, 2)
	assert.Equal(t, "OTC", l1[0].Code)
	assert.Equal(t, "P2P", l1[1].Code)
	assert.Empty(t, s.ListLevel(2))
}

func TestStore_BulkCreate(t *testing.T) {
	t.Run("earlier rows are visible as parents", func(t *testing.T) {
		s := NewStore()
		result := s.BulkCreate(&datatypes.BulkCreateRequest{Items: []datatypes.BulkCreateItem{
			{Level: 1, Code: "OTC", Name: "Order to Cash"},
			{Level: 2, Code: "OTC-SO", Name: "Sales Mgmt", ParentCode: "OTC"},
			{Level: 3, Name: "Standard Order", ParentCode: "OTC-SO"},
		}})
		assert.Equal(t, 3, result.Created)
		assert.Empty(t, result.Errors)
	})

	t.Run("per-row errors without rollback", func(t *testing.T) {
		s := NewStore()
		result := s.BulkCreate(&datatypes.BulkCreateRequest{Items: []datatypes.BulkCreateItem{
			{Level: 1, Code: "OTC", Name: "Order to Cash"},
			{Level: 2, Name: "Orphan", ParentCode: "MISSING"},
			{Level: 1, Code: "P2P", Name: "Procure to Pay"},
		}})
		assert.Equal(t, 2, result.Created)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Message, "MISSING")
		assert.Equal(t, 2, s.Count(), "landed rows stay landed")
	})
}

func TestStore_Update(t *testing.T) {
	s := NewStore()
	n := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Name: "OTC"})

	wave := 2
	updated, err := s.Update(n.ID, &datatypes.UpdateNodeRequest{
		Name: "Order to Cash", ScopeStatus: datatypes.ScopeDeferred, Wave: &wave,
	})
	require.NoError(t, err)
	assert.Equal(t, "Order to Cash", updated.Name)
	assert.Equal(t, datatypes.ScopeDeferred, updated.ScopeStatus)

	_, err = s.Update("missing", &datatypes.UpdateNodeRequest{Name: "X"})
	assert.Error(t, err)
	_, err = s.Update(n.ID, &datatypes.UpdateNodeRequest{Name: "  "})
	assert.Error(t, err)
}

func seedThreeLevelTree(t *testing.T, s *Store) (rootID string) {
	t.Helper()
	root := mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "OTC", Name: "OTC"})
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 2, Code: "OTC-SO", Name: "Sales", ParentCode: "OTC"})
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 2, Code: "OTC-BIL", Name: "Billing", ParentCode: "OTC"})
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 3, Code: "OTC-SO-STD", Name: "Standard", ParentCode: "OTC-SO"})
	return root.ID
}

func TestStore_PreviewAndDelete(t *testing.T) {
	s := NewStore()
	rootID := seedThreeLevelTree(t, s)
	mustCreate(t, s, &datatypes.CreateNodeRequest{Level: 1, Code: "P2P", Name: "P2P"})

	preview, err := s.Preview(rootID)
	require.NoError(t, err)
	assert.Equal(t, 3, preview.DescendantsCount)
	assert.Equal(t, map[int]int{2: 2, 3: 1}, preview.ByLevel)
	assert.Equal(t, 5, s.Count(), "preview removes nothing")

	require.NoError(t, s.Delete(rootID))
	assert.Equal(t, 1, s.Count(), "cascade removes the whole subtree")
	assert.Nil(t, s.Get(rootID))

	_, err = s.Preview("missing")
	assert.Error(t, err)
	assert.Error(t, s.Delete("missing"))
}

func TestStore_ImportTemplate(t *testing.T) {
	s := NewStore()
	result := s.ImportTemplate([]string{"OTC"})
	assert.Equal(t, 4, result.Imported)

	// re-import is idempotent, unknown codes are a no-op
	again := s.ImportTemplate([]string{"OTC", "XYZ"})
	assert.Equal(t, 0, again.Imported)
	assert.Equal(t, 4, s.Count())

	more := s.ImportTemplate([]string{"P2P", "R2R"})
	assert.Equal(t, 6, more.Imported)
}

func TestStore_Alerts(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Alerts())
	s.SetAlerts(7)
	assert.Equal(t, 7, s.Alerts())
}
