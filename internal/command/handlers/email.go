// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"
	"net/mail"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// EmailHandler stores a recovery email for an authenticated player.
// Usage: /email <address>
func EmailHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 1 {
		replyUsage(exec, "/email <address>")
		return nil
	}

	addr, err := mail.ParseAddress(exec.Args[0])
	if err != nil {
		replyUsage(exec, "/email <address>")
		return nil
	}

	st, err := exec.Services.Auth.SetEmail(ctx, exec.Actor, addr.Address)
	messages := exec.Services.Messages
	if st == auth.StatusOK {
		exec.Reply(messages.EmailSaved)
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
