// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/filter"
)

var (
	styleCode     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleArea     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleOutScope = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true)
	styleDeferred = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDim      = lipgloss.NewStyle().Faint(true)
)

// renderTree writes the forest with two-space indentation per level,
// skipping nodes the visibility set hides.
func renderTree(roots []*datatypes.ProcessLevelNode, visible map[string]bool) string {
	var b strings.Builder
	var walk func(n *datatypes.ProcessLevelNode, depth int)
	walk = func(n *datatypes.ProcessLevelNode, depth int) {
		if !filter.IsVisible(n, visible) {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(renderNode(n))
		b.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	if b.Len() == 0 {
		return styleDim.Render("(no matching nodes)") + "\n"
	}
	return b.String()
}

func renderNode(n *datatypes.ProcessLevelNode) string {
	name := n.Name
	switch n.ScopeStatus {
	case datatypes.ScopeOutOfScope:
		name = styleOutScope.Render(name)
	case datatypes.ScopeDeferred:
		name = styleDeferred.Render(name + " (deferred)")
	}
	parts := []string{styleCode.Render(n.Code), name}
	if n.ProcessAreaCode != "" {
		parts = append(parts, styleArea.Render("["+n.ProcessAreaCode+"]"))
	}
	if n.Wave != nil {
		parts = append(parts, styleArea.Render(fmt.Sprintf("wave %d", *n.Wave)))
	}
	return strings.Join(parts, " ")
}

// renderBulkRows prints parsed bulk rows as a feedback table, error rows
// marked and kept in their original positions.
func renderBulkRows(rows []datatypes.BulkRow) string {
	var b strings.Builder
	for i, row := range rows {
		line := fmt.Sprintf("%3d  L%d  %-12s %-36s %-6s %s",
			i+1, row.Level, row.Code, row.Name, row.Module, row.ParentCode)
		if row.Err != "" {
			line = styleOutScope.Render(fmt.Sprintf("%3d  %s", i+1, row.Err)) +
				styleDim.Render("  "+row.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
