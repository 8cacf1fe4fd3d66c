// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package handlers

import (
	"context"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
)

// RegisterHandler creates a credential for an unregistered player and logs
// them in. Usage: /register <password> <password>
func RegisterHandler(ctx context.Context, exec *command.Execution) error {
	if len(exec.Args) != 2 {
		replyUsage(exec, "/register <password> <password>")
		return nil
	}

	st, err := exec.Services.Auth.Register(ctx, exec.Actor, exec.Args[0], exec.Args[1])
	messages := exec.Services.Messages
	if st == auth.StatusOK {
		exec.Reply(messages.RegisterSuccess)
		return nil
	}
	if msg := statusMessage(st, messages); msg != "" {
		exec.Reply(msg)
	}
	return err
}
