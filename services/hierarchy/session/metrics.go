// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the session's prometheus instruments. All Session methods
// tolerate a nil *Metrics, so tests and embedded uses can skip registration.
type Metrics struct {
	loads            prometheus.Counter
	loadFailures     prometheus.Counter
	mutations        *prometheus.CounterVec
	mutationFailures *prometheus.CounterVec
}

// NewMetrics registers the session instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		loads: factory.NewCounter(prometheus.CounterOpts{
			Name: "hierarchy_session_loads_total",
			Help: "Successful full hierarchy loads.",
		}),
		loadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hierarchy_session_load_failures_total",
			Help: "Hierarchy loads that ended in LoadError.",
		}),
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hierarchy_session_mutations_total",
			Help: "Successful mutations by kind.",
		}, []string{"kind"}),
		mutationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hierarchy_session_mutation_failures_total",
			Help: "Failed mutations by kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) loadOK() {
	if m != nil {
		m.loads.Inc()
	}
}

func (m *Metrics) loadFailed() {
	if m != nil {
		m.loadFailures.Inc()
	}
}

func (m *Metrics) mutationOK(kind string) {
	if m != nil {
		m.mutations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) mutationFailed(kind string) {
	if m != nil {
		m.mutationFailures.WithLabelValues(kind).Inc()
	}
}
