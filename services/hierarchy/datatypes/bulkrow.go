// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "strings"

// BulkRow is one candidate node produced by grid entry or paste parsing.
//
// It is transient: rows never persist and never travel over the wire as-is.
// A row with a non-empty Err is excluded from submission but retained so the
// caller can show per-row feedback. Module maps to ProcessAreaCode on
// submission.
type BulkRow struct {
	Level      int    `json:"level"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Module     string `json:"module"`
	ParentCode string `json:"parent_code"`
	Err        string `json:"error,omitempty"`
}

// Filled reports whether the row holds user input. A row is filled iff its
// trimmed name is non-empty; unfilled rows are silently ignored at
// submission, not errors.
func (r BulkRow) Filled() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Valid reports whether the row may be submitted.
func (r BulkRow) Valid() bool {
	return r.Err == "" && r.Filled()
}
