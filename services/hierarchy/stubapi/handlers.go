// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stubapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub002/services/hierarchy/datatypes"
)

// ListLevels handles GET /levels?level=N&program=P.
func ListLevels(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		level, err := strconv.Atoi(c.Query("level"))
		if err != nil || !datatypes.ValidLevel(level) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level must be an integer in [1,4]"})
			return
		}
		nodes := store.ListLevel(level)
		if nodes == nil {
			nodes = []*datatypes.ProcessLevelNode{}
		}
		c.JSON(http.StatusOK, nodes)
	}
}

// CreateNode handles POST /levels.
func CreateNode(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CreateNodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		node, err := store.Create(&req)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.Info("stub: node created", "id", node.ID, "code", node.Code, "level", node.Level)
		c.JSON(http.StatusCreated, node)
	}
}

// BulkCreate handles POST /levels/bulk.
func BulkCreate(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.BulkCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result := store.BulkCreate(&req)
		slog.Info("stub: bulk create", "created", result.Created, "errors", len(result.Errors))
		c.JSON(http.StatusOK, result)
	}
}

// UpdateNode handles PUT /levels/:id.
func UpdateNode(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.UpdateNodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		node, err := store.Update(c.Param("id"), &req)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, node)
	}
}

// DeleteNode handles DELETE /levels/:id?dryRun=true|false. The dry run
// returns the cascade preview; the real run deletes the subtree.
func DeleteNode(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if c.Query("dryRun") == "true" {
			preview, err := store.Preview(id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, preview)
			return
		}
		if err := store.Delete(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Info("stub: node deleted with cascade", "id", id)
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ImportTemplate handles POST /levels/import-template.
func ImportTemplate(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ImportTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, store.ImportTemplate(req.Codes))
	}
}

// LiveFeedSummary handles GET /hypercare/summary.
func LiveFeedSummary(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, datatypes.LiveFeedSummary{
			AlertCount:    store.Alerts(),
			OpenIncidents: store.Alerts(),
			GeneratedAt:   time.Now().UTC(),
		})
	}
}

// SetAlerts handles POST /hypercare/alerts, a stub-only control endpoint so
// tests and the dev loop can drive the live feed.
func SetAlerts(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			AlertCount int `json:"alert_count"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		store.SetAlerts(body.AlertCount)
		c.JSON(http.StatusOK, gin.H{"alert_count": body.AlertCount})
	}
}
