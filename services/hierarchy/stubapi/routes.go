// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the stub's endpoints onto router.
func SetupRoutes(router *gin.Engine, store *Store) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "nodes": store.Count()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/levels", ListLevels(store))
	router.POST("/levels", CreateNode(store))
	router.POST("/levels/bulk", BulkCreate(store))
	router.POST("/levels/import-template", ImportTemplate(store))
	router.PUT("/levels/:id", UpdateNode(store))
	router.DELETE("/levels/:id", DeleteNode(store))

	router.GET("/hypercare/summary", LiveFeedSummary(store))
	router.POST("/hypercare/alerts", SetAlerts(store))
}

// NewEngine returns a release-mode gin engine with the stub routes mounted.
func NewEngine(store *Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, store)
	return router
}
