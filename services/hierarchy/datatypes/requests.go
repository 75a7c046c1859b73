// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Request and response payloads for the Process Hierarchy API.
//
// Struct tags carry both the JSON wire contract and go-playground/validator
// rules; the Validate methods are the single place request validation runs,
// on the client before a call is made and in the stub server on bind.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// hierarchyValidate is the shared validator instance for hierarchy payloads.
var hierarchyValidate = validator.New()

// =============================================================================
// Single-Node Requests
// =============================================================================

// CreateNodeRequest is the body of POST /levels.
//
// Exactly one of ParentID / ParentCode may be set for levels 2..4; level 1
// nodes must carry neither. ParentCode exists for bulk-grid forward
// references, where a row names a parent that is persisted in the same batch.
type CreateNodeRequest struct {
	Program         string      `json:"program,omitempty"`
	Level           int         `json:"level" validate:"required,min=1,max=4"`
	Code            string      `json:"code,omitempty"`
	Name            string      `json:"name" validate:"required"`
	Description     string      `json:"description,omitempty"`
	ProcessAreaCode string      `json:"process_area_code,omitempty"`
	ParentID        string      `json:"parent_id,omitempty"`
	ParentCode      string      `json:"parent_code,omitempty"`
	ScopeStatus     ScopeStatus `json:"scope_status,omitempty" validate:"omitempty,oneof=in_scope out_of_scope deferred"`
	Wave            *int        `json:"wave,omitempty" validate:"omitempty,min=1"`
}

// Validate checks the struct-tag rules.
func (r *CreateNodeRequest) Validate() error {
	return hierarchyValidate.Struct(r)
}

// UpdateNodeRequest is the body of PUT /levels/{id}.
//
// Updates are a full replace of the editable fields; there is no partial
// patch and no optimistic locking, last write wins.
type UpdateNodeRequest struct {
	Name            string      `json:"name" validate:"required"`
	Description     string      `json:"description,omitempty"`
	ProcessAreaCode string      `json:"process_area_code,omitempty"`
	ScopeStatus     ScopeStatus `json:"scope_status,omitempty" validate:"omitempty,oneof=in_scope out_of_scope deferred"`
	Wave            *int        `json:"wave,omitempty" validate:"omitempty,min=1"`
}

// Validate checks the struct-tag rules.
func (r *UpdateNodeRequest) Validate() error {
	return hierarchyValidate.Struct(r)
}

// =============================================================================
// Bulk Requests
// =============================================================================

// BulkCreateItem is one creation candidate inside a bulk request. Parent
// references are by code only and are resolved server-side against the final
// persisted set, which is what permits grid rows to reference rows created
// earlier in the same batch.
type BulkCreateItem struct {
	Level           int    `json:"level" validate:"required,min=1,max=4"`
	Code            string `json:"code,omitempty"`
	Name            string `json:"name" validate:"required"`
	ProcessAreaCode string `json:"process_area_code,omitempty"`
	ParentCode      string `json:"parent_code,omitempty"`
}

// BulkCreateRequest is the body of POST /levels/bulk.
type BulkCreateRequest struct {
	Program string           `json:"program,omitempty"`
	Items   []BulkCreateItem `json:"items" validate:"required,min=1,dive"`
}

// Validate checks the struct-tag rules.
func (r *BulkCreateRequest) Validate() error {
	return hierarchyValidate.Struct(r)
}

// RowError reports a server-side rejection of one bulk row. Row is the
// zero-based index into the submitted items. Errors are terminal for the
// row; the client never retries them.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkCreateResult is the response of POST /levels/bulk. Created rows are
// not rolled back when other rows fail.
type BulkCreateResult struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors,omitempty"`
}

// =============================================================================
// Delete Preview
// =============================================================================

// DeletePreview is the response of DELETE /levels/{id}?dryRun=true: the
// non-destructive count of descendants the cascading delete would remove,
// broken down by level.
type DeletePreview struct {
	DescendantsCount int         `json:"descendants_count"`
	ByLevel          map[int]int `json:"by_level"`
}

// =============================================================================
// Template Import
// =============================================================================

// ImportTemplateRequest seeds nodes from the fixed process catalog for the
// selected top-level codes.
type ImportTemplateRequest struct {
	Program string   `json:"program,omitempty"`
	Codes   []string `json:"codes" validate:"required,min=1"`
}

// Validate checks the struct-tag rules.
func (r *ImportTemplateRequest) Validate() error {
	return hierarchyValidate.Struct(r)
}

// ImportTemplateResult is the response of POST /levels/import-template.
type ImportTemplateResult struct {
	Imported int `json:"imported"`
}

// =============================================================================
// Live Feed
// =============================================================================

// LiveFeedSummary is the war-room dashboard summary polled on a fixed
// interval. Consumers re-render only when AlertCount changes.
type LiveFeedSummary struct {
	AlertCount    int       `json:"alert_count"`
	OpenIncidents int       `json:"open_incidents"`
	GeneratedAt   time.Time `json:"generated_at"`
}
