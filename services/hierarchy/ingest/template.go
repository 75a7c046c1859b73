// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"os"
	"strings"
)

// TemplateHeader is the literal header row of the downloadable paste
// template. The column order is the contract ParsePaste expects.
const TemplateHeader = "Level\tCode\tName\tModule\tParent Code"

// templateSamples are example rows shipped with the template so users see
// the expected shape. Pasting the template back including the header yields
// one "Invalid level" feedback row for the header (its level column does not
// parse) followed by these rows; only the sample rows are submittable.
var templateSamples = []string{
	"1\tL1-OTC\tOrder to Cash\tSD\t",
	"2\tL2-SO\tSales Order Management\tSD\tL1-OTC",
	"3\tL3-STD\tStandard Order Processing\tSD\tL2-SO",
}

// Template returns the full TSV template: header plus sample rows,
// newline-terminated.
func Template() string {
	var b strings.Builder
	b.WriteString(TemplateHeader)
	b.WriteString("\n")
	for _, row := range templateSamples {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTemplate writes the template to path.
func WriteTemplate(path string) error {
	return os.WriteFile(path, []byte(Template()), 0o644)
}
