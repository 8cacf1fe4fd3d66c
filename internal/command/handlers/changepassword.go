// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// ChangePasswordHandler rotates the credential of an authenticated player.
// Usage: /changepassword <old> <new> <new>
func ChangePasswordHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 3 {
		replyUsage(exec, "/changepassword <old> <new> <new>")
		return nil
	}

	st, err := exec.Services.Auth.ChangePassword(ctx, exec.Actor, exec.Args[0], exec.Args[1], exec.Args[2])
	messages := exec.Services.Messages
	if st == auth.StatusOK {
		exec.Reply(messages.ChangePasswordOK)
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
