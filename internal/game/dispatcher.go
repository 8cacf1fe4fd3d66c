// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
	"github.com/lightgate/lightgate/internal/session"
)

// storageTimeout bounds the credential round-trip triggered by a join or
// quit so a stalled pool cannot pin goroutines forever.
const storageTimeout = 10 * time.Second

// Dispatcher is the host-facing event surface. The game server calls it
// from its event loop; anything that touches storage is pushed onto a
// background goroutine so the loop never blocks.
type Dispatcher struct {
	registry   *session.Registry
	reconciler *auth.Reconciler
	kicker     *auth.AutoKicker
	gate       *auth.Gate
	commands   *command.Dispatcher
	services   *command.Services
	logger     *slog.Logger
}

// NewDispatcher wires the host event surface. All collaborators are
// required.
func NewDispatcher(
	registry *session.Registry,
	reconciler *auth.Reconciler,
	kicker *auth.AutoKicker,
	gate *auth.Gate,
	commands *command.Dispatcher,
	services *command.Services,
) (*Dispatcher, error) {
	if registry == nil {
		return nil, oops.Errorf("registry must not be nil")
	}
	if reconciler == nil {
		return nil, oops.Errorf("reconciler must not be nil")
	}
	if kicker == nil {
		return nil, oops.Errorf("kicker must not be nil")
	}
	if gate == nil {
		return nil, oops.Errorf("gate must not be nil")
	}
	if commands == nil {
		return nil, oops.Errorf("command dispatcher must not be nil")
	}
	if services == nil {
		return nil, oops.Errorf("services must not be nil")
	}
	return &Dispatcher{
		registry:   registry,
		reconciler: reconciler,
		kicker:     kicker,
		gate:       gate,
		commands:   commands,
		services:   services,
		logger:     slog.Default(),
	}, nil
}

// WithLogger sets the logger. Returns the dispatcher for chaining.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	d.logger = logger
	return d
}

// HandleJoin starts tracking the player for the login timeout and kicks off
// credential reconciliation in the background.
func (d *Dispatcher) HandleJoin(ctx context.Context, p auth.Player) {
	d.kicker.Track(p.Identity())
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
		defer cancel()
		d.reconciler.Reconcile(ctx, p)
	}()
}

// HandleQuit stops timeout tracking and persists the session trail in the
// background.
func (d *Dispatcher) HandleQuit(ctx context.Context, p auth.Player) {
	d.kicker.Forget(p.Identity())
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
		defer cancel()
		d.reconciler.HandleQuit(ctx, p)
	}()
}

// HandleAction reports whether the player may perform the action. Denials
// are counted but not messaged; movement and damage events fire far too
// often to chat on every one.
func (d *Dispatcher) HandleAction(p auth.Player, action auth.Action) bool {
	if d.gate.Allow(p.Identity(), action) {
		return true
	}
	auth.GateDenials.WithLabelValues(string(action)).Inc()
	return false
}

// HandleChat reports whether the player's chat line may pass through.
func (d *Dispatcher) HandleChat(p auth.Player) bool {
	return d.HandleAction(p, auth.ActionChat)
}

// HandleCommand intercepts a slash command. It returns true when the
// engine consumed the line, either by dispatching one of its own commands
// or by blocking an unauthenticated player; false hands the line back to
// the host's command system.
func (d *Dispatcher) HandleCommand(ctx context.Context, p auth.Player, line string) bool {
	id := p.Identity()
	if !d.gate.AllowCommand(id, line) {
		auth.GateDenials.WithLabelValues(string(auth.ActionCommand)).Inc()
		d.prompt(p)
		return true
	}

	parsed, err := command.Parse(line)
	if err != nil {
		return false
	}
	if _, ok := d.commands.Registry().Get(parsed.Name); !ok {
		// Not one of ours; the host runs it, subject to the gate check
		// already passed above.
		return false
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
		defer cancel()
		exec := &command.Execution{Actor: p, Services: d.services}
		if err := d.commands.Dispatch(ctx, line, exec); err != nil {
			var oopsErr oops.OopsError
			if errors.As(err, &oopsErr) && oopsErr.Code() == command.CodePermissionDenied {
				p.SendMessage(d.services.Messages.NoPermission)
			}
		}
	}()
	return true
}

// prompt nudges an unauthenticated player toward the right command.
func (d *Dispatcher) prompt(p auth.Player) {
	switch d.registry.State(p.Identity()) {
	case session.StatePendingRegistration:
		p.SendMessage(d.services.Messages.RegisterPrompt)
	default:
		p.SendMessage(d.services.Messages.LoginPrompt)
	}
}
