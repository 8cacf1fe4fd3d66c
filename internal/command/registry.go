// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package command

import (
	"log/slog"
	"strings"
	"sync"
)

// Registry manages command registration and lookup.
// It is thread-safe for concurrent access.
type Registry struct {
	commands map[string]Entry
	mu       sync.RWMutex
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Entry),
	}
}

// Register adds a command to the registry. If a command with the same name
// exists, it is overwritten and a warning is logged.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(entry.Name)
	if _, ok := r.commands[name]; ok {
		slog.Warn("command conflict: overwriting existing command", "command", name)
	}
	r.commands[name] = entry
}

// Get retrieves a command by name (case-insensitive).
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.commands[strings.ToLower(name)]
	return entry, ok
}

// All returns all registered commands. The returned slice is a copy.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.commands))
	for _, e := range r.commands {
		entries = append(entries, e)
	}
	return entries
}
