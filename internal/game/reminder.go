// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package game

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/session"
)

// DefaultReminderInterval is how often pending players are re-prompted.
const DefaultReminderInterval = 5 * time.Second

// Reminder periodically re-sends the login or register prompt to players
// stuck in a pending state. The timeout progress bar is driven by the
// kicker sweep, not here.
type Reminder struct {
	registry *session.Registry
	roster   auth.Roster
	interval time.Duration
	login    string
	register string
}

// NewReminder creates a reminder task.
func NewReminder(registry *session.Registry, roster auth.Roster, loginPrompt, registerPrompt string) (*Reminder, error) {
	if registry == nil {
		return nil, oops.Errorf("registry must not be nil")
	}
	if roster == nil {
		return nil, oops.Errorf("roster must not be nil")
	}
	return &Reminder{
		registry: registry,
		roster:   roster,
		interval: DefaultReminderInterval,
		login:    loginPrompt,
		register: registerPrompt,
	}, nil
}

// WithInterval overrides the prompt interval. Returns the reminder for
// chaining.
func (r *Reminder) WithInterval(interval time.Duration) *Reminder {
	r.interval = interval
	return r
}

// Run prompts until ctx is cancelled.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prompt()
		}
	}
}

// Prompt runs one reminder pass over the connected players.
func (r *Reminder) Prompt() {
	for _, p := range r.roster.Online() {
		switch r.registry.State(p.Identity()) {
		case session.StatePendingLogin:
			p.SendMessage(r.login)
		case session.StatePendingRegistration:
			p.SendMessage(r.register)
		}
	}
}
