// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ingest turns bulk input, either an editable grid or pasted
// tab-separated text, into validated node-creation requests.
//
// Both modes normalize to []datatypes.BulkRow. Rows that fail validation are
// kept with a user-facing error message and excluded from submission;
// payload.go maps the surviving rows to the bulk-create wire payload.
package ingest

import (
	"strconv"
	"strings"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// Row error messages. These surface verbatim in per-row feedback.
const (
	ErrMsgInvalidLevel = "Invalid level"
	ErrMsgNameRequired = "Name is required"
)

// ParsePaste converts raw pasted text into bulk rows.
//
// # Description
//
// Lines are separated by newlines, fields within a line by a single tab.
// Expected column order: level, code, name, module, parent_code; trailing
// columns are optional and decode to empty strings.
//
// Per-line rules:
//   - fewer than 3 tab-separated fields: the line is noise (blank line,
//     stray text) and is dropped entirely, it does not even produce an
//     error row;
//   - level must parse as an integer in [1,4], otherwise the row is kept
//     with Err = ErrMsgInvalidLevel;
//   - the trimmed name must be non-empty, otherwise Err = ErrMsgNameRequired.
//
// The function is pure and idempotent: callers re-parse the full text on
// every input event, and identical text always yields an identical slice.
func ParsePaste(text string) []datatypes.BulkRow {
	rows := make([]datatypes.BulkRow, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		row := datatypes.BulkRow{
			Code:       strings.TrimSpace(fieldAt(fields, 1)),
			Name:       strings.TrimSpace(fieldAt(fields, 2)),
			Module:     strings.TrimSpace(fieldAt(fields, 3)),
			ParentCode: strings.TrimSpace(fieldAt(fields, 4)),
		}
		level, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		switch {
		case err != nil:
			row.Err = ErrMsgInvalidLevel
		case !datatypes.ValidLevel(level):
			row.Level = level
			row.Err = ErrMsgInvalidLevel
		case row.Name == "":
			row.Level = level
			row.Err = ErrMsgNameRequired
		default:
			row.Level = level
		}
		rows = append(rows, row)
	}
	return rows
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
