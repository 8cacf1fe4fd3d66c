// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lightgate/command")

// Dispatcher handles command parsing, operator checks, and execution.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a new command dispatcher with the given registry.
func NewDispatcher(registry *Registry) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	return &Dispatcher{registry: registry}, nil
}

// Registry returns the backing command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch parses and executes a command. Handlers block on storage, so
// callers run Dispatch off the game loop.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, exec *Execution) (err error) {
	if exec.Actor == nil {
		return ErrNilActor()
	}
	if exec.Services == nil {
		return ErrNilServices()
	}

	parsed, err := Parse(input)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", parsed.Name),
			attribute.String("player.id", exec.Actor.Identity().String()),
		),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		RecordDuration(parsed.Name, time.Since(start))
		RecordExecution(parsed.Name, result(err))
	}()

	entry, ok := d.registry.Get(parsed.Name)
	if !ok {
		err = ErrUnknownCommand(parsed.Name)
		return err
	}

	if entry.Admin && !exec.Actor.Operator() {
		err = ErrPermissionDenied(parsed.Name)
		return err
	}

	exec.Args = parsed.Args
	err = entry.Handler(ctx, exec)
	if err != nil {
		slog.WarnContext(ctx, "command execution failed",
			"command", parsed.Name,
			"player_id", exec.Actor.Identity().String(),
			"error", err,
		)
	}
	return err
}

// result maps a dispatch error to a metrics label.
func result(err error) string {
	if err == nil {
		return ResultSuccess
	}
	var oopsErr oops.OopsError
	if errors.As(err, &oopsErr) {
		switch oopsErr.Code() {
		case CodeUnknownCommand:
			return ResultNotFound
		case CodePermissionDenied:
			return ResultPermissionDenied
		case CodeInvalidArgs:
			return ResultInvalidArgs
		}
	}
	return ResultError
}
