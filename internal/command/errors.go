// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package command

import (
	"github.com/samber/oops"
)

// Error codes for command dispatch failures.
const (
	CodeUnknownCommand   = "UNKNOWN_COMMAND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeInvalidArgs      = "INVALID_ARGS"
	CodeNilActor         = "NIL_ACTOR"
	CodeNilServices      = "NIL_SERVICES"
)

// ErrNilRegistry is returned by NewDispatcher when no registry is provided.
var ErrNilRegistry = oops.Errorf("registry must not be nil")

// ErrUnknownCommand creates an error for an unknown command.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrPermissionDenied creates an error for an actor lacking operator rights.
func ErrPermissionDenied(cmd string) error {
	return oops.Code(CodePermissionDenied).
		With("command", cmd).
		Errorf("permission denied for command %s", cmd)
}

// ErrInvalidArgs creates an error for invalid arguments.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments")
}

// ErrNilActor creates an error for dispatch without an acting player.
func ErrNilActor() error {
	return oops.Code(CodeNilActor).Errorf("no player associated with command")
}

// ErrNilServices creates an error for dispatch without wired services.
func ErrNilServices() error {
	return oops.Code(CodeNilServices).Errorf("execution services not configured")
}
