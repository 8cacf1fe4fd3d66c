// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package handlers implements the built-in authentication commands and
// their registration with the command registry.
package handlers

import (
	"strings"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/command"
	"github.com/lightgate/lightgate/internal/config"
)

// RegisterAll registers the built-in command set.
func RegisterAll(registry *command.Registry) {
	registry.Register(command.Entry{
		Name:    "login",
		Usage:   "/login <password>",
		Handler: LoginHandler,
	})
	registry.Register(command.Entry{
		Name:    "register",
		Usage:   "/register <password> <password>",
		Handler: RegisterHandler,
	})
	registry.Register(command.Entry{
		Name:    "changepassword",
		Usage:   "/changepassword <old> <new> <new>",
		Handler: ChangePasswordHandler,
	})
	registry.Register(command.Entry{
		Name:    "email",
		Usage:   "/email <address>",
		Handler: EmailHandler,
	})
	registry.Register(command.Entry{
		Name:    "unlogin",
		Usage:   "/unlogin <player>",
		Admin:   true,
		Handler: UnloginHandler,
	})
	registry.Register(command.Entry{
		Name:    "unregister",
		Usage:   "/unregister <player>",
		Admin:   true,
		Handler: UnregisterHandler,
	})
}

// replyUsage sends the usage template with {USAGE} substituted.
func replyUsage(exec *command.Execution, usage string) {
	msg := strings.ReplaceAll(exec.Services.Messages.Usage, "{USAGE}", usage)
	exec.Reply(msg)
}

// replyPlayer substitutes {PLAYER} with name and sends the result.
func replyPlayer(exec *command.Execution, template, name string) {
	exec.Reply(strings.ReplaceAll(template, "{PLAYER}", name))
}

// statusMessage maps an authentication status to its configured template.
// Returns the empty string for statuses the caller handles itself.
func statusMessage(st auth.Status, m config.Messages) string {
	switch st {
	case auth.StatusTooSoon:
		return m.CommandTooFast
	case auth.StatusAlreadyAuthenticated:
		return m.AlreadyAuthenticated
	case auth.StatusNotAuthenticated:
		return m.NotAuthenticated
	case auth.StatusNotRegistered:
		return m.NotRegistered
	case auth.StatusAlreadyRegistered:
		return m.AlreadyRegistered
	case auth.StatusWrongPassword:
		return m.WrongPassword
	case auth.StatusPasswordMismatch:
		return m.PasswordMismatch
	case auth.StatusWeakPassword:
		return m.WeakPassword
	case auth.StatusStorageError:
		return m.StorageError
	default:
		return ""
	}
}
