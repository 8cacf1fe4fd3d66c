// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"net/netip"

	"github.com/google/uuid"
)

// Player is the narrow view of a connected player the engine needs from the
// host game server. Implementations wrap the host runtime; tests supply
// fakes.
type Player interface {
	// Identity returns the stable account UUID.
	Identity() uuid.UUID

	// Name returns the display name, used in templated messages.
	Name() string

	// Addr returns the connection's network address.
	Addr() netip.Addr

	// Online reports whether the player is still connected. In-flight
	// storage results must check this before applying side effects that
	// need a live connection.
	Online() bool

	// Operator reports whether the player holds server operator rights.
	// Gates the admin command surface (unlogin, unregister).
	Operator() bool

	// SendMessage delivers a templated chat message to the player.
	SendMessage(msg string)

	// Kick forcibly disconnects the player with a reason.
	Kick(reason string)

	// ShowProgress drives a 0..1 progress indicator, used for the login
	// timeout bar. Implementations may ignore it.
	ShowProgress(ratio float64)
}

// Roster lists currently connected players.
type Roster interface {
	Online() []Player

	// Lookup finds a connected player by identity.
	Lookup(id uuid.UUID) (Player, bool)

	// LookupName finds a connected player by display name
	// (case-insensitive). Used by the admin command surface.
	LookupName(name string) (Player, bool)
}

// ConsoleDispatcher runs a command as the server console. Used for the
// configured bruteforce punishment ("tempban {PLAYER}" and similar).
type ConsoleDispatcher interface {
	DispatchCommand(cmd string) error
}
