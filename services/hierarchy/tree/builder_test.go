// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// node is a test helper for flat-list entries.
func node(id string, level int, name, parentID string) *datatypes.ProcessLevelNode {
	return &datatypes.ProcessLevelNode{ID: id, Level: level, Name: name, ParentID: parentID}
}

func TestBuild_WellFormedForest(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{
		node("1", 1, "OTC", ""),
		node("2", 2, "Sales Mgmt", "1"),
		node("3", 3, "Standard Order", "2"),
	}
	roots := Build(flat)

	require.Len(t, roots, 1)
	require.Equal(t, "1", roots[0].ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "2", roots[0].Children[0].ID)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "3", roots[0].Children[0].Children[0].ID)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{
		node("1", 1, "OTC", ""),
		node("2", 2, "Sales Mgmt", "1"),
	}
	Build(flat)
	assert.Nil(t, flat[0].Children, "input nodes must stay untouched")
}

func TestBuild_OrphanBecomesRoot(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{
		node("1", 1, "OTC", ""),
		node("9", 3, "Lost Child", "does-not-exist"),
	}
	roots := Build(flat)

	require.Len(t, roots, 2, "orphan must surface as a root, not vanish")
	ids := map[string]bool{}
	for _, n := range Flatten(roots) {
		ids[n.ID] = true
	}
	assert.True(t, ids["9"], "orphan must stay in the flattened output")
}

func TestBuild_SelfReferenceBecomesRoot(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{
		node("loop", 2, "Self Parent", "loop"),
	}
	roots := Build(flat)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
	// Flatten terminating at all proves there is no recursion cycle.
	assert.Len(t, Flatten(roots), 1)
}

func TestBuild_DuplicateIDKeepsFirst(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{
		node("1", 1, "First", ""),
		node("1", 1, "Second", ""),
	}
	roots := Build(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, "First", roots[0].Name)
}

func TestBuild_NilEntriesSkipped(t *testing.T) {
	flat := []*datatypes.ProcessLevelNode{node("1", 1, "OTC", ""), nil}
	assert.Len(t, Build(flat), 1)
}

func TestBuild_SiblingOrder(t *testing.T) {
	so := func(v int) *int { return &v }

	t.Run("explicit sort order wins", func(t *testing.T) {
		a := node("a", 2, "A", "r")
		a.SortOrder = so(2)
		b := node("b", 2, "B", "r")
		b.SortOrder = so(1)
		roots := Build([]*datatypes.ProcessLevelNode{node("r", 1, "Root", ""), a, b})
		require.Len(t, roots[0].Children, 2)
		assert.Equal(t, "b", roots[0].Children[0].ID)
		assert.Equal(t, "a", roots[0].Children[1].ID)
	})

	t.Run("source order is stable without sort order", func(t *testing.T) {
		roots := Build([]*datatypes.ProcessLevelNode{
			node("r", 1, "Root", ""),
			node("x", 2, "X", "r"),
			node("y", 2, "Y", "r"),
			node("z", 2, "Z", "r"),
		})
		var got []string
		for _, c := range roots[0].Children {
			got = append(got, c.ID)
		}
		assert.Equal(t, []string{"x", "y", "z"}, got)
	})
}

// TestBuild_RoundtripProperty checks that for any well-formed flat list the
// pre-order flattening of the built forest is a permutation of the input
// and every parent/child edge matches the input's parent_id relation.
func TestBuild_RoundtripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 60).Draw(rt, "n")
		flat := make([]*datatypes.ProcessLevelNode, 0, n)
		// candidates by level, so children always attach one level down
		byLevel := map[int][]string{}
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("n%d", i)
			level := 1
			if len(byLevel[1]) > 0 && rapid.Bool().Draw(rt, "child") {
				// pick a parent among nodes of level 1..3
				var parents []string
				var parentLevels []int
				for lvl := 1; lvl < datatypes.MaxLevel; lvl++ {
					for _, pid := range byLevel[lvl] {
						parents = append(parents, pid)
						parentLevels = append(parentLevels, lvl)
					}
				}
				idx := rapid.IntRange(0, len(parents)-1).Draw(rt, "parent")
				level = parentLevels[idx] + 1
				flat = append(flat, node(id, level, "Node "+id, parents[idx]))
				byLevel[level] = append(byLevel[level], id)
				continue
			}
			flat = append(flat, node(id, level, "Node "+id, ""))
			byLevel[1] = append(byLevel[1], id)
		}

		roots := Build(flat)
		flattened := Flatten(roots)
		require.Len(rt, flattened, len(flat), "flattening must contain every node exactly once")

		parentOf := map[string]string{}
		for _, in := range flat {
			parentOf[in.ID] = in.ParentID
		}
		seen := map[string]bool{}
		for _, out := range flattened {
			require.False(rt, seen[out.ID], "node %s appears twice", out.ID)
			seen[out.ID] = true
			for _, c := range out.Children {
				require.Equal(rt, out.ID, parentOf[c.ID], "edge %s->%s not in input", out.ID, c.ID)
			}
		}
		for _, r := range roots {
			require.Empty(rt, parentOf[r.ID], "root %s had a parent in the input", r.ID)
		}
	})
}

func TestCount(t *testing.T) {
	roots := Build([]*datatypes.ProcessLevelNode{
		node("1", 1, "OTC", ""),
		node("2", 2, "Sales Mgmt", "1"),
		node("3", 3, "Standard Order", "2"),
	})
	assert.Equal(t, 3, Count(roots))
}
