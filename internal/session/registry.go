// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package session tracks the authentication state of connected players.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// State classifies a connected player's authentication progress.
type State int

const (
	// StateNone means the player is not tracked at all. Untracked players
	// are denied every gated action.
	StateNone State = iota

	// StateAuthenticated means the player passed login or session checks.
	StateAuthenticated

	// StatePendingLogin means the player has credentials but has not
	// supplied a correct password on this connection.
	StatePendingLogin

	// StatePendingRegistration means the player has no credentials yet.
	StatePendingRegistration
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StatePendingLogin:
		return "pending_login"
	case StatePendingRegistration:
		return "pending_registration"
	default:
		return "none"
	}
}

// Registry is the single source of truth for whether a player may act.
//
// Each player occupies exactly one state, held as a tagged value in one map
// rather than three separate sets, so the mutual-exclusivity invariant holds
// by construction. Reads happen on the game loop while writes complete on
// background goroutines after credential lookups resolve, so every access
// goes through the lock.
type Registry struct {
	mu     sync.RWMutex
	states map[uuid.UUID]State
}

// NewRegistry creates an empty registry. Everyone starts untracked after a
// process restart; nothing is persisted.
func NewRegistry() *Registry {
	return &Registry{
		states: make(map[uuid.UUID]State),
	}
}

// IsAuthenticated reports whether the player passed authentication.
func (r *Registry) IsAuthenticated(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[id] == StateAuthenticated
}

// State returns the player's current state, StateNone if untracked.
func (r *Registry) State(id uuid.UUID) State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[id]
}

// Authenticate marks the player authenticated, displacing any pending state.
// Idempotent.
func (r *Registry) Authenticate(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[id] = StateAuthenticated
}

// Unauthenticate removes the player from the authenticated state without
// placing it into a pending one. Callers decide what follows. Players in a
// pending state are left untouched.
func (r *Registry) Unauthenticate(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[id] == StateAuthenticated {
		delete(r.states, id)
	}
}

// MarkPendingLogin places the player into the pending-login state,
// displacing authenticated or pending-registration membership.
func (r *Registry) MarkPendingLogin(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[id] = StatePendingLogin
}

// MarkPendingRegistration places the player into the pending-registration
// state, displacing authenticated or pending-login membership.
func (r *Registry) MarkPendingRegistration(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[id] = StatePendingRegistration
}

// ClearPendingLogin removes the player only if it is pending login.
// Used on disconnect cleanup.
func (r *Registry) ClearPendingLogin(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[id] == StatePendingLogin {
		delete(r.states, id)
	}
}

// ClearPendingRegistration removes the player only if it is pending
// registration.
func (r *Registry) ClearPendingRegistration(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[id] == StatePendingRegistration {
		delete(r.states, id)
	}
}

// Remove drops the player from the registry regardless of state.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, id)
}

// Snapshot returns a copy of all tracked states, safe to modify.
func (r *Registry) Snapshot() map[uuid.UUID]State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID]State, len(r.states))
	for id, st := range r.states {
		out[id] = st
	}
	return out
}
