// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// UnregisterHandler deletes a player's credential. The target may be given
// by display name (must be online) or by raw UUID (works offline). Admin
// only. Usage: /unregister <player>
func UnregisterHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 1 {
		replyUsage(exec, "/unregister <player>")
		return nil
	}

	arg := exec.Args[0]
	messages := exec.Services.Messages

	var (
		id     uuid.UUID
		target auth.Player
		label  = arg
	)
	if parsed, err := uuid.Parse(arg); err == nil {
		id = parsed
		if p, ok := exec.Services.Roster.Lookup(id); ok {
			target = p
			label = p.Name()
		}
	} else {
		p, ok := exec.Services.Roster.LookupName(arg)
		if !ok {
			replyPlayer(exec, messages.PlayerNotFound, arg)
			return nil
		}
		id = p.Identity()
		target = p
		label = p.Name()
	}

	st, err := exec.Services.Auth.Unregister(ctx, id, target)
	if st == auth.StatusOK {
		replyPlayer(exec, messages.UnregisterOK, label)
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
