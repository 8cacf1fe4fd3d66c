// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// UnloginHandler forces a connected player back to the pending-login state.
// Admin only. Usage: /unlogin <player>
func UnloginHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 1 {
		replyUsage(exec, "/unlogin <player>")
		return nil
	}

	name := exec.Args[0]
	messages := exec.Services.Messages
	target, ok := exec.Services.Roster.LookupName(name)
	if !ok {
		replyPlayer(exec, messages.PlayerNotFound, name)
		return nil
	}

	st, err := exec.Services.Auth.Unlogin(ctx, target)
	if st == auth.StatusOK {
		replyPlayer(exec, messages.UnloginOK, target.Name())
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
