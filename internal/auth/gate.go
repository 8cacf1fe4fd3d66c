// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/session"
)

// Action names a gated gameplay action.
type Action string

// Gated actions. Command is special-cased: allow-listed command lines
// bypass the gate so unauthenticated players can still log in.
const (
	ActionMove          Action = "move"
	ActionChat          Action = "chat"
	ActionCommand       Action = "command"
	ActionInteract      Action = "interact"
	ActionDropItem      Action = "drop_item"
	ActionPickupItem    Action = "pickup_item"
	ActionDamageDealt   Action = "damage_dealt"
	ActionDamageTaken   Action = "damage_taken"
	ActionBlockBreak    Action = "block_break"
	ActionBlockPlace    Action = "block_place"
	ActionItemUse       Action = "item_use"
	ActionInventoryOpen Action = "inventory_open"
)

// Gate decides whether a player's action proceeds. The decision is a pure
// read of the session registry: authenticated players act, everyone else is
// cancelled. It runs on the hot path for every action of every player, so
// it never blocks and touches no I/O.
type Gate struct {
	registry *session.Registry
	allowed  []glob.Glob
	patterns []string
}

// NewGate creates a gate over the registry. allowedCommands are glob
// patterns for command lines that bypass the gate (e.g. "/login*",
// "/register*"). Returns an error if any pattern fails to compile.
func NewGate(registry *session.Registry, allowedCommands []string) (*Gate, error) {
	if registry == nil {
		return nil, oops.Errorf("session registry is required")
	}

	g := &Gate{registry: registry}
	for _, p := range allowedCommands {
		compiled, err := glob.Compile(p)
		if err != nil {
			return nil, oops.Code("GATE_BAD_PATTERN").
				With("pattern", p).
				Wrap(err)
		}
		g.allowed = append(g.allowed, compiled)
		g.patterns = append(g.patterns, p)
	}
	return g, nil
}

// Allow reports whether the player may perform the action. Absence from the
// registry denies: an identity never reconciled has no business acting.
func (g *Gate) Allow(id uuid.UUID, _ Action) bool {
	return g.registry.IsAuthenticated(id)
}

// AllowCommand reports whether the player may run the command line.
// Authenticated players run everything; others only allow-listed commands.
func (g *Gate) AllowCommand(id uuid.UUID, commandLine string) bool {
	if g.registry.IsAuthenticated(id) {
		return true
	}
	return g.isAllowListed(commandLine)
}

func (g *Gate) isAllowListed(commandLine string) bool {
	// Match against the bare command word as well as the full line, so a
	// pattern like "/login*" allows "/login hunter2".
	word := commandLine
	if i := strings.IndexByte(commandLine, ' '); i >= 0 {
		word = commandLine[:i]
	}
	for _, compiled := range g.allowed {
		if compiled.Match(commandLine) || compiled.Match(word) {
			return true
		}
	}
	return false
}

// AllowedPatterns returns the configured allow-list patterns.
func (g *Gate) AllowedPatterns() []string {
	out := make([]string, len(g.patterns))
	copy(out, g.patterns)
	return out
}
