// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for reconciliation metrics.
const (
	ReconcileAuthenticated        = "authenticated"
	ReconcileLoginRequired        = "login_required"
	ReconcileRegistrationRequired = "registration_required"
	ReconcileStorageError         = "storage_error"
	ReconcileOffline              = "offline"
)

// LoginAttempts counts login command attempts by result.
// Use RegisterMetrics to register this with a Prometheus registry.
var LoginAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lightgate_login_attempts_total",
		Help: "Total number of login attempts",
	},
	[]string{"result"},
)

// GateDenials counts gameplay actions cancelled by the gate.
// Use RegisterMetrics to register this with a Prometheus registry.
var GateDenials = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lightgate_gate_denials_total",
		Help: "Total number of gameplay actions denied to unauthenticated players",
	},
	[]string{"action"},
)

// AutoKicks counts players disconnected for authenticating too slowly.
// Use RegisterMetrics to register this with a Prometheus registry.
var AutoKicks = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "lightgate_auto_kicks_total",
		Help: "Total number of players kicked for exceeding the login timeout",
	},
)

// Reconciliations counts join reconciliation passes by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Reconciliations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lightgate_reconciliations_total",
		Help: "Total number of join reconciliation passes by outcome",
	},
	[]string{"outcome"},
)

// Punishments counts bruteforce punishment dispatches.
// Use RegisterMetrics to register this with a Prometheus registry.
var Punishments = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "lightgate_bruteforce_punishments_total",
		Help: "Total number of bruteforce punishment dispatches",
	},
)

// RegisterMetrics registers auth package metrics with the given Prometheus
// registry. Call once at startup; panics on duplicate registration
// (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(GateDenials)
	reg.MustRegister(AutoKicks)
	reg.MustRegister(Reconciliations)
	reg.MustRegister(Punishments)
}
