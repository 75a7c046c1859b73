// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tree

import (
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// Flatten returns the forest in pre-order: each root followed by its
// subtree. Flattening a forest built from a well-formed flat list yields a
// permutation of that list.
func Flatten(roots []*datatypes.ProcessLevelNode) []*datatypes.ProcessLevelNode {
	var out []*datatypes.ProcessLevelNode
	Walk(roots, func(n *datatypes.ProcessLevelNode, _ int) {
		out = append(out, n)
	})
	return out
}

// Walk visits every node in pre-order, passing its depth (0 for roots).
func Walk(roots []*datatypes.ProcessLevelNode, fn func(n *datatypes.ProcessLevelNode, depth int)) {
	var visit func(n *datatypes.ProcessLevelNode, depth int)
	visit = func(n *datatypes.ProcessLevelNode, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range roots {
		visit(r, 0)
	}
}

// Count returns the number of nodes in the forest.
func Count(roots []*datatypes.ProcessLevelNode) int {
	total := 0
	Walk(roots, func(*datatypes.ProcessLevelNode, int) { total++ })
	return total
}
