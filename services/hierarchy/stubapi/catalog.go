// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stubapi

import "github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"

// catalogEntry is one seedable node of the fixed process catalog.
type catalogEntry struct {
	level      int
	code       string
	name       string
	area       string
	parentCode string
}

// processCatalog is the fixed template catalog, keyed by top-level code.
// Import seeds the L1 node plus its listed subtree.
var processCatalog = map[string][]catalogEntry{
	"OTC": {
		{1, "OTC", "Order to Cash", "SD", ""},
		{2, "OTC-SO", "Sales Order Management", "SD", "OTC"},
		{2, "OTC-BIL", "Billing", "SD", "OTC"},
		{3, "OTC-SO-STD", "Standard Order Processing", "SD", "OTC-SO"},
	},
	"P2P": {
		{1, "P2P", "Procure to Pay", "MM", ""},
		{2, "P2P-REQ", "Purchase Requisitioning", "MM", "P2P"},
		{2, "P2P-INV", "Invoice Verification", "MM", "P2P"},
	},
	"R2R": {
		{1, "R2R", "Record to Report", "FI", ""},
		{2, "R2R-GL", "General Ledger Accounting", "FI", "R2R"},
		{3, "R2R-GL-JE", "Journal Entry Processing", "FI", "R2R-GL"},
	},
}

// ImportTemplate seeds the catalog subtrees for the selected codes. Entries
// whose code already exists are skipped, so re-importing is harmless. The
// returned count is the number of nodes actually created.
func (s *Store) ImportTemplate(codes []string) *datatypes.ImportTemplateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := &datatypes.ImportTemplateResult{}
	for _, code := range codes {
		for _, entry := range processCatalog[code] {
			if s.byCodeLocked(entry.code) != nil {
				continue
			}
			_, err := s.createLocked(&datatypes.CreateNodeRequest{
				Level:           entry.level,
				Code:            entry.code,
				Name:            entry.name,
				ProcessAreaCode: entry.area,
				ParentCode:      entry.parentCode,
			})
			if err != nil {
				continue
			}
			result.Imported++
		}
	}
	return result
}

// CatalogCodes returns the selectable top-level codes.
func CatalogCodes() []string {
	return []string{"OTC", "P2P", "R2R"}
}
