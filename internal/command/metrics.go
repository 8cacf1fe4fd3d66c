// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result constants for command execution metrics.
const (
	ResultSuccess          = "success"
	ResultError            = "error"
	ResultNotFound         = "not_found"
	ResultPermissionDenied = "permission_denied"
	ResultInvalidArgs      = "invalid_args"
)

// Executions is the counter for command executions.
// Use RegisterMetrics to register this with a Prometheus registry.
var Executions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lightgate_command_executions_total",
		Help: "Total number of authentication command executions",
	},
	[]string{"command", "result"},
)

// Duration is the histogram for command execution duration. Login and
// register spend most of their time in Argon2 and storage round-trips.
var Duration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "lightgate_command_duration_seconds",
		Help:    "Command execution duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"command"},
)

// RegisterMetrics registers command package metrics with the given Prometheus
// registry. This must be called at startup to make metrics available on
// /metrics. Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Executions)
	reg.MustRegister(Duration)
}

// RecordExecution increments the execution counter for a command result.
func RecordExecution(command, result string) {
	Executions.WithLabelValues(command, result).Inc()
}

// RecordDuration records the duration of one command execution.
func RecordDuration(command string, d time.Duration) {
	Duration.WithLabelValues(command).Observe(d.Seconds())
}
