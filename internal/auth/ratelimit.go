// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AttemptVerdict is the outcome of an attempt-rate check.
type AttemptVerdict int

const (
	// AttemptAllowed means the attempt may proceed.
	AttemptAllowed AttemptVerdict = iota

	// AttemptTooSoon means the attempt arrived inside the cooldown window.
	// Too-soon attempts do not consume a failure slot.
	AttemptTooSoon
)

// AttemptLimiter throttles login attempts per identity: a minimum delay
// between consecutive attempts, and a consecutive-failure count the caller
// compares against the punishment threshold.
//
// Counters are deliberately kept across reconnects; only a successful login
// or the periodic global clear resets them. A disconnect-reconnect cycle
// must not grant a fresh set of attempts.
type AttemptLimiter struct {
	mu       sync.Mutex
	delay    time.Duration
	last     map[uuid.UUID]time.Time
	failures map[uuid.UUID]int
}

// NewAttemptLimiter creates a limiter enforcing the given delay between
// attempts.
func NewAttemptLimiter(delay time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		delay:    delay,
		last:     make(map[uuid.UUID]time.Time),
		failures: make(map[uuid.UUID]int),
	}
}

// CheckAndRecordAttempt compares now against the identity's previous attempt
// plus the configured delay. Inside the window it rejects without recording;
// otherwise it records now as the latest attempt.
func (l *AttemptLimiter) CheckAndRecordAttempt(id uuid.UUID, now time.Time) AttemptVerdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.last[id]; ok && now.Sub(prev) < l.delay {
		return AttemptTooSoon
	}
	l.last[id] = now
	return AttemptAllowed
}

// RecordFailure increments the identity's consecutive-failure counter and
// returns the new count.
func (l *AttemptLimiter) RecordFailure(id uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures[id]++
	return l.failures[id]
}

// RecordSuccess resets the identity's failure counter.
func (l *AttemptLimiter) RecordSuccess(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, id)
}

// Failures returns the identity's current consecutive-failure count.
func (l *AttemptLimiter) Failures(id uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[id]
}

// Clear wipes all failure counters. Scheduled on a long interval (24h) so
// stale counts cannot lock players out forever.
func (l *AttemptLimiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures = make(map[uuid.UUID]int)
}
