// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package command provides the player command registry and dispatch system
// for the authentication surface: login, register, changepassword, email,
// and the admin unlogin/unregister commands.
package command

import (
	"context"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/config"
)

// Handler is the function signature for command handlers. Handlers run off
// the game loop; blocking on storage is fine.
type Handler func(ctx context.Context, exec *Execution) error

// Entry represents a registered command.
type Entry struct {
	Name    string // canonical name without the leading slash, e.g. "login"
	Usage   string // usage pattern, e.g. "/login <password>"
	Admin   bool   // requires an operator actor
	Handler Handler
}

// Execution provides context for one command invocation.
type Execution struct {
	Actor    auth.Player
	Args     []string
	Services *Services
}

// Services provides access to collaborators for command handlers. Handlers
// access services only through exec.Services and must not retain them.
type Services struct {
	Auth     *auth.Service
	Roster   auth.Roster
	Messages config.Messages
}

// Reply sends a templated message to the acting player, substituting
// {PLAYER} with name and {USAGE} with the entry usage when present.
func (e *Execution) Reply(msg string) {
	e.Actor.SendMessage(msg)
}
