// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an authentication domain event.
type EventType string

// Authentication event types.
const (
	EventAuthenticated        EventType = "authenticated"
	EventUnauthenticated      EventType = "unauthenticated"
	EventLoginRequired        EventType = "login_required"
	EventRegistrationRequired EventType = "registration_required"
	EventWrongPassword        EventType = "wrong_password"
	EventRegistered           EventType = "registered"
	EventUnregistered         EventType = "unregistered"
)

// Cause records what drove an authentication transition.
type Cause string

// Transition causes.
const (
	CauseAutomatic Cause = "automatic" // session revalidation on join
	CauseCommand   Cause = "command"   // explicit player or admin command
)

// Event is a fire-and-forget domain notification. Collaborators (gate
// presentation, logging, reminders) subscribe; the core never waits on
// delivery.
type Event struct {
	Type      EventType
	Identity  uuid.UUID
	Cause     Cause
	Timestamp time.Time
}

// Notifier publishes authentication events.
type Notifier interface {
	Notify(event Event)
}

// Broadcaster distributes authentication events to subscribers.
type Broadcaster struct {
	mu   sync.RWMutex
	subs []chan Event
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe creates a channel receiving all published events.
func (b *Broadcaster) Subscribe() chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 64)
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Notify sends an event to all subscribers without blocking. A subscriber
// with a full buffer misses the event; authentication state never depends
// on delivery.
func (b *Broadcaster) Notify(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("auth event dropped: subscriber buffer full",
				"event_type", string(event.Type),
				"identity", event.Identity.String(),
			)
		}
	}
}

// Compile-time interface check.
var _ Notifier = (*Broadcaster)(nil)
