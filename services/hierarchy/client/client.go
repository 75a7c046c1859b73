// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package client is the HTTP client for the Process Hierarchy API, the
// external collaborator that owns node persistence and the cascading delete.
//
// The client performs no retries: a non-success response surfaces as a typed
// *APIError carrying the server's message, and the caller decides what stays
// on screen. Every request carries a UUID correlation id and passes through
// a shared rate limiter.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

var tracer = otel.Tracer("sap-transformation.hierarchy.client")

// Default client tuning. The API is a single-user planning backend; the
// limiter only guards against accidental tight loops.
const (
	DefaultTimeout   = 30 * time.Second
	defaultRateLimit = rate.Limit(10)
	defaultRateBurst = 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the collaborator root, e.g. "http://localhost:8085".
	BaseURL string

	// Program scopes every request to one transformation program.
	Program string

	// Timeout bounds each HTTP round trip. Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to the Process Hierarchy API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	program    string
	limiter    *rate.Limiter
	log        *slog.Logger
}

// New validates cfg and returns a ready client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("hierarchy client: BaseURL is required")
	}
	if cfg.Program == "" {
		return nil, fmt.Errorf("hierarchy client: Program is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		program:    cfg.Program,
		limiter:    rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		log:        log,
	}, nil
}

// Program returns the program id this client is scoped to.
func (c *Client) Program() string {
	return c.program
}

// =============================================================================
// Error Type
// =============================================================================

// APIError is a completed call the server rejected (the ServerRejection
// class): status code plus the server's message when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hierarchy api: status %d", e.Status)
	}
	return fmt.Sprintf("hierarchy api: %s (status %d)", e.Message, e.Status)
}

// =============================================================================
// Operations
// =============================================================================

// ListLevel fetches the flat node list for one level (1..4).
func (c *Client) ListLevel(ctx context.Context, level int) ([]*datatypes.ProcessLevelNode, error) {
	if !datatypes.ValidLevel(level) {
		return nil, fmt.Errorf("level %d out of range [%d,%d]", level, datatypes.MinLevel, datatypes.MaxLevel)
	}
	q := url.Values{}
	q.Set("level", strconv.Itoa(level))
	q.Set("program", c.program)
	var nodes []*datatypes.ProcessLevelNode
	if err := c.do(ctx, http.MethodGet, "/levels", q, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// FetchFlat fetches all four levels concurrently and merges them in level
// order. The per-level requests are independent; any failure fails the
// whole load with the failing level named in the error.
func (c *Client) FetchFlat(ctx context.Context) ([]*datatypes.ProcessLevelNode, error) {
	ctx, span := tracer.Start(ctx, "Client.FetchFlat")
	defer span.End()

	byLevel := make([][]*datatypes.ProcessLevelNode, datatypes.MaxLevel)
	g, gctx := errgroup.WithContext(ctx)
	for level := datatypes.MinLevel; level <= datatypes.MaxLevel; level++ {
		g.Go(func() error {
			nodes, err := c.ListLevel(gctx, level)
			if err != nil {
				return fmt.Errorf("fetch level %d: %w", level, err)
			}
			byLevel[level-1] = nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	var flat []*datatypes.ProcessLevelNode
	for _, nodes := range byLevel {
		flat = append(flat, nodes...)
	}
	span.SetAttributes(attribute.Int("hierarchy.node_count", len(flat)))
	return flat, nil
}

// CreateNode creates one node and returns the server's record with the
// assigned id and code. The request inherits the client's program when it
// does not name one.
func (c *Client) CreateNode(ctx context.Context, req *datatypes.CreateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	if req.Program == "" {
		req.Program = c.program
	}
	var node datatypes.ProcessLevelNode
	if err := c.do(ctx, http.MethodPost, "/levels", nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateNode performs a full replace of the editable fields of one node.
func (c *Client) UpdateNode(ctx context.Context, id string, req *datatypes.UpdateNodeRequest) (*datatypes.ProcessLevelNode, error) {
	var node datatypes.ProcessLevelNode
	if err := c.do(ctx, http.MethodPut, "/levels/"+url.PathEscape(id), nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// BulkCreate submits many creation candidates in one request. The result
// carries the created count alongside per-row server errors; succeeded rows
// are never rolled back and failed rows are never retried here.
func (c *Client) BulkCreate(ctx context.Context, req *datatypes.BulkCreateRequest) (*datatypes.BulkCreateResult, error) {
	if req.Program == "" {
		req.Program = c.program
	}
	var result datatypes.BulkCreateResult
	if err := c.do(ctx, http.MethodPost, "/levels/bulk", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteNode deletes a node. With dryRun the call is non-destructive and
// returns the preview of the cascade (descendant counts by level); without
// it the server performs the irreversible cascading delete and the returned
// preview is nil.
func (c *Client) DeleteNode(ctx context.Context, id string, dryRun bool) (*datatypes.DeletePreview, error) {
	q := url.Values{}
	q.Set("dryRun", strconv.FormatBool(dryRun))
	path := "/levels/" + url.PathEscape(id)
	if dryRun {
		var preview datatypes.DeletePreview
		if err := c.do(ctx, http.MethodDelete, path, q, nil, &preview); err != nil {
			return nil, err
		}
		return &preview, nil
	}
	return nil, c.do(ctx, http.MethodDelete, path, q, nil, nil)
}

// ImportTemplate seeds nodes from the fixed process catalog for the given
// top-level codes.
func (c *Client) ImportTemplate(ctx context.Context, codes []string) (*datatypes.ImportTemplateResult, error) {
	req := &datatypes.ImportTemplateRequest{Program: c.program, Codes: codes}
	var result datatypes.ImportTemplateResult
	if err := c.do(ctx, http.MethodPost, "/levels/import-template", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LiveFeedSummary fetches the war-room dashboard summary.
func (c *Client) LiveFeedSummary(ctx context.Context) (*datatypes.LiveFeedSummary, error) {
	q := url.Values{}
	q.Set("program", c.program)
	var summary datatypes.LiveFeedSummary
	if err := c.do(ctx, http.MethodGet, "/hypercare/summary", q, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// =============================================================================
// Transport
// =============================================================================

// errorBody is the shape the collaborator uses for failure responses.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	ctx, span := tracer.Start(ctx, "Client."+method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("hierarchy.path", path),
	)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.log.Debug("hierarchy api call", "method", method, "path", path, "request_id", requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); readErr == nil {
			if jsonErr := json.Unmarshal(raw, &eb); jsonErr == nil {
				apiErr.Message = eb.Error
			}
		}
		span.SetStatus(codes.Error, apiErr.Error())
		c.log.Warn("hierarchy api rejected request",
			"method", method, "path", path, "status", resp.StatusCode,
			"message", apiErr.Message, "request_id", requestID)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
