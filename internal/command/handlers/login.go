// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// LoginHandler authenticates a player against their stored credential.
// Usage: /login <password>
func LoginHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 1 {
		replyUsage(exec, "/login <password>")
		return nil
	}

	st, err := exec.Services.Auth.Login(ctx, exec.Actor, exec.Args[0])
	messages := exec.Services.Messages
	if st == auth.StatusOK {
		exec.Reply(messages.LoginSuccess)
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
