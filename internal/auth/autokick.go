// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/session"
)

// DefaultSweepInterval is how often the auto-kick sweep runs.
const DefaultSweepInterval = time.Second

// AutoKicker periodically sweeps connected players and disconnects anyone
// who has stayed non-authenticated past the configured timeout. Players not
// yet tracked get an entry timestamp on first sight; authenticated players
// are skipped; the rest either see a progress indicator or get kicked.
type AutoKicker struct {
	registry *session.Registry
	roster   Roster
	timeout  time.Duration
	interval time.Duration
	message  string
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entered map[uuid.UUID]time.Time
}

// NewAutoKicker creates an AutoKicker sweeping at DefaultSweepInterval.
// Returns an error if registry or roster is nil, or timeout is not positive.
func NewAutoKicker(registry *session.Registry, roster Roster, timeout time.Duration, message string) (*AutoKicker, error) {
	if registry == nil {
		return nil, oops.Errorf("session registry is required")
	}
	if roster == nil {
		return nil, oops.Errorf("roster is required")
	}
	if timeout <= 0 {
		return nil, oops.Errorf("kick timeout must be positive, got %s", timeout)
	}
	return &AutoKicker{
		registry: registry,
		roster:   roster,
		timeout:  timeout,
		interval: DefaultSweepInterval,
		message:  message,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		entered:  make(map[uuid.UUID]time.Time),
	}, nil
}

// WithLogger replaces the kicker's logger.
func (k *AutoKicker) WithLogger(logger *slog.Logger) *AutoKicker {
	if logger != nil {
		k.logger = logger
	}
	return k
}

// WithClock replaces the kicker's time source.
func (k *AutoKicker) WithClock(now func() time.Time) *AutoKicker {
	if now != nil {
		k.now = now
	}
	return k
}

// WithInterval replaces the sweep interval.
func (k *AutoKicker) WithInterval(interval time.Duration) *AutoKicker {
	if interval > 0 {
		k.interval = interval
	}
	return k
}

// Run sweeps until the context is cancelled.
func (k *AutoKicker) Run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.Sweep()
		}
	}
}

// Sweep evaluates every connected player once. A panic while evaluating one
// player must not stop the rest of the sweep.
func (k *AutoKicker) Sweep() {
	for _, p := range k.roster.Online() {
		k.evaluate(p)
	}
}

func (k *AutoKicker) evaluate(p Player) {
	defer func() {
		if rec := recover(); rec != nil {
			k.logger.Error("auto-kick evaluation panicked",
				"identity", p.Identity().String(),
				"panic", fmt.Sprint(rec),
			)
		}
	}()

	id := p.Identity()

	k.mu.Lock()
	entered, tracked := k.entered[id]
	if !tracked {
		k.entered[id] = k.now()
		k.mu.Unlock()
		return
	}
	k.mu.Unlock()

	if k.registry.IsAuthenticated(id) {
		return
	}

	elapsed := k.now().Sub(entered)
	if elapsed >= k.timeout {
		k.logger.Info("kicking player for exceeding login timeout",
			"identity", id.String(),
			"elapsed", elapsed.String(),
		)
		AutoKicks.Inc()
		k.Forget(id)
		p.Kick(k.message)
		return
	}

	p.ShowProgress(float64(elapsed) / float64(k.timeout))
}

// Track records a player's entry time immediately, without waiting for the
// next sweep. Called from the join path.
func (k *AutoKicker) Track(id uuid.UUID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.entered[id] = k.now()
}

// Forget drops a player's entry record. Called on disconnect so the map
// does not grow without bound.
func (k *AutoKicker) Forget(id uuid.UUID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.entered, id)
}
