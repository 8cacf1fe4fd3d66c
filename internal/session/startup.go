// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package session

import (
	"sync"

	"github.com/google/uuid"
)

// StartupSet records players who have completed one join reconciliation
// since the process started. A persisted last-login timestamp can claim a
// session is still valid, but in-memory authentication state cannot survive
// a restart, so the first join after boot always requires a fresh login.
type StartupSet struct {
	mu   sync.RWMutex
	seen map[uuid.UUID]struct{}
}

// NewStartupSet creates an empty startup set.
func NewStartupSet() *StartupSet {
	return &StartupSet{
		seen: make(map[uuid.UUID]struct{}),
	}
}

// Add records that the player has reconciled once this process lifetime.
func (s *StartupSet) Add(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[id] = struct{}{}
}

// Contains reports whether the player has reconciled since startup.
func (s *StartupSet) Contains(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of recorded players.
func (s *StartupSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
