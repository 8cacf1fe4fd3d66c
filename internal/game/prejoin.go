// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package game adapts the host game server to the gating engine: it routes
// join, quit, action, and command callbacks into the reconciler, the gate,
// and the command dispatcher, and runs the periodic player-facing tasks.
package game

import (
	"net/netip"

	"github.com/lightgate/lightgate/internal/auth"
)

// PreJoinGuard caps how many players may connect from one network address.
// It runs before join reconciliation, on the connection path.
type PreJoinGuard struct {
	roster  auth.Roster
	limit   int
	message string
}

// NewPreJoinGuard creates a guard allowing at most limit concurrent players
// per address.
func NewPreJoinGuard(roster auth.Roster, limit int, message string) *PreJoinGuard {
	return &PreJoinGuard{roster: roster, limit: limit, message: message}
}

// Check returns (allowed, rejection message). A joining connection is
// rejected when limit players already share its address.
func (g *PreJoinGuard) Check(addr netip.Addr) (bool, string) {
	matches := 0
	for _, p := range g.roster.Online() {
		if p.Addr() == addr {
			matches++
		}
	}
	if matches >= g.limit {
		return false, g.message
	}
	return true, ""
}
