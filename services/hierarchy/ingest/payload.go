// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"errors"
	"strings"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// ErrNoValidRows is returned when a submission contains zero submittable
// rows (all empty or all carrying errors). Callers must surface it locally
// and make no network call.
var ErrNoValidRows = errors.New("no valid rows to submit")

// BuildPayload maps the valid rows (no error, non-empty trimmed name) to a
// bulk-create request. Empty optional fields are left zero so omitempty
// drops them from the wire payload; the server then generates codes and
// skips parent resolution for them.
func BuildPayload(program string, rows []datatypes.BulkRow) (*datatypes.BulkCreateRequest, error) {
	items := make([]datatypes.BulkCreateItem, 0, len(rows))
	for _, row := range rows {
		if !row.Valid() {
			continue
		}
		items = append(items, datatypes.BulkCreateItem{
			Level:           row.Level,
			Code:            strings.TrimSpace(row.Code),
			Name:            strings.TrimSpace(row.Name),
			ProcessAreaCode: strings.TrimSpace(row.Module),
			ParentCode:      strings.TrimSpace(row.ParentCode),
		})
	}
	if len(items) == 0 {
		return nil, ErrNoValidRows
	}
	return &datatypes.BulkCreateRequest{Program: program, Items: items}, nil
}
