// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/session"
	"github.com/lightgate/lightgate/pkg/errutil"
)

// ReconcilerMessages are the user-facing templates the reconciler sends.
type ReconcilerMessages struct {
	AutoLogin    string // sent on the auto-login path
	StorageError string // generic "something went wrong"
}

// Reconciler decides, once per connection, which session state a player
// enters. It combines the credential row, the session-expiry window, the
// last-known network address, and startup membership into the ordered
// first-match algorithm in Reconcile.
type Reconciler struct {
	store    CredentialStore
	registry *session.Registry
	startup  *session.StartupSet
	notifier Notifier
	expiry   time.Duration
	messages ReconcilerMessages
	logger   *slog.Logger
	now      func() time.Time
}

// NewReconciler creates a Reconciler. Returns an error if any required
// dependency is nil.
func NewReconciler(store CredentialStore, registry *session.Registry, startup *session.StartupSet, notifier Notifier, expiry time.Duration, messages ReconcilerMessages) (*Reconciler, error) {
	if store == nil {
		return nil, oops.Errorf("credential store is required")
	}
	if registry == nil {
		return nil, oops.Errorf("session registry is required")
	}
	if startup == nil {
		return nil, oops.Errorf("startup set is required")
	}
	if notifier == nil {
		return nil, oops.Errorf("notifier is required")
	}
	return &Reconciler{
		store:    store,
		registry: registry,
		startup:  startup,
		notifier: notifier,
		expiry:   expiry,
		messages: messages,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}, nil
}

// WithLogger replaces the reconciler's logger.
func (r *Reconciler) WithLogger(logger *slog.Logger) *Reconciler {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithClock replaces the reconciler's time source.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	if now != nil {
		r.now = now
	}
	return r
}

// Reconcile runs one reconciliation pass for a joining player. It blocks on
// the credential lookup, so callers run it on a background goroutine; the
// resulting registry mutation is applied when the lookup resolves.
//
// Checks apply in order, first match wins:
//  1. no credential row          -> pending registration
//  2. no startup membership      -> pending login (forced once per process)
//  3. network address changed    -> unauthenticate, pending login
//  4. session window expired     -> pending login
//  5. otherwise                  -> authenticate (auto-login)
//
// A storage failure records no state at all: the gate's absence rule then
// denies everything (fail closed).
func (r *Reconciler) Reconcile(ctx context.Context, p Player) {
	id := p.Identity()

	row, err := r.store.Search(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		errutil.LogError(r.logger, "credential lookup failed during join reconciliation", err)
		Reconciliations.WithLabelValues(ReconcileStorageError).Inc()
		if p.Online() {
			p.SendMessage(r.messages.StorageError)
		}
		return
	}

	// The player may have disconnected while the lookup was in flight.
	if !p.Online() {
		Reconciliations.WithLabelValues(ReconcileOffline).Inc()
		return
	}

	if row == nil || errors.Is(err, ErrNotFound) {
		r.registry.MarkPendingRegistration(id)
		r.notify(EventRegistrationRequired, p, CauseAutomatic)
		Reconciliations.WithLabelValues(ReconcileRegistrationRequired).Inc()
		return
	}

	if !r.startup.Contains(id) {
		r.startup.Add(id)
		r.registry.MarkPendingLogin(id)
		r.notify(EventLoginRequired, p, CauseAutomatic)
		Reconciliations.WithLabelValues(ReconcileLoginRequired).Inc()
		return
	}

	if PackAddr(p.Addr()) != row.LastAddress {
		r.registry.Unauthenticate(id)
		r.notify(EventUnauthenticated, p, CauseAutomatic)
		r.registry.MarkPendingLogin(id)
		r.notify(EventLoginRequired, p, CauseAutomatic)
		Reconciliations.WithLabelValues(ReconcileLoginRequired).Inc()
		return
	}

	if r.now().UnixMilli()-row.LastLogin > r.expiry.Milliseconds() {
		r.registry.MarkPendingLogin(id)
		r.notify(EventLoginRequired, p, CauseAutomatic)
		Reconciliations.WithLabelValues(ReconcileLoginRequired).Inc()
		return
	}

	r.registry.Authenticate(id)
	r.notify(EventAuthenticated, p, CauseAutomatic)
	Reconciliations.WithLabelValues(ReconcileAuthenticated).Inc()
	if r.messages.AutoLogin != "" {
		p.SendMessage(r.messages.AutoLogin)
	}
}

// HandleQuit persists session metadata for an authenticated player and
// clears all in-memory tracking. A pending player just gets untracked.
// Failure counters are intentionally left alone so a reconnect does not
// grant fresh login attempts.
func (r *Reconciler) HandleQuit(ctx context.Context, p Player) {
	id := p.Identity()

	// Defensive: a disconnect can race a still-resolving reconciliation,
	// so check state before best-effort persistence.
	if r.registry.IsAuthenticated(id) {
		now := r.now().UnixMilli()
		if err := r.store.UpdateColumn(ctx, id, ColumnLastLogin, now); err != nil {
			errutil.LogError(r.logger, "failed to persist last login on quit", err)
		}
		if err := r.store.UpdateColumn(ctx, id, ColumnLastAddress, PackAddr(p.Addr())); err != nil {
			errutil.LogError(r.logger, "failed to persist last address on quit", err)
		}
		r.notify(EventUnauthenticated, p, CauseAutomatic)
	}

	r.registry.Remove(id)
}

func (r *Reconciler) notify(t EventType, p Player, cause Cause) {
	r.notifier.Notify(Event{
		Type:      t,
		Identity:  p.Identity(),
		Cause:     cause,
		Timestamp: r.now(),
	})
}
