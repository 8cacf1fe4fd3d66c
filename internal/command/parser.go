// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package command

import (
	"strings"

	"github.com/samber/oops"
)

// ParsedCommand represents a parsed slash-command input.
type ParsedCommand struct {
	Name string   // command name without the leading slash
	Args []string // whitespace-delimited arguments
	Raw  string   // original input
}

// Parse splits raw chat input into command name and arguments. The leading
// slash is stripped; arguments are whitespace-delimited. Passwords with
// internal whitespace are unsupported, as on the wire protocol.
func Parse(input string) (*ParsedCommand, error) {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return nil, oops.Code("EMPTY_INPUT").Errorf("no command provided")
	}

	fields := strings.Fields(trimmed)
	return &ParsedCommand{
		Name: fields[0],
		Args: fields[1:],
		Raw:  input,
	}, nil
}
