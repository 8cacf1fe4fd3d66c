// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/auth"
	authpg "github.com/lightgate/lightgate/internal/auth/postgres"
	"github.com/lightgate/lightgate/internal/command"
	"github.com/lightgate/lightgate/internal/command/handlers"
	"github.com/lightgate/lightgate/internal/config"
	"github.com/lightgate/lightgate/internal/session"
)

// Host is what the embedding game server supplies to the engine.
type Host struct {
	Roster  auth.Roster
	Console auth.ConsoleDispatcher
}

// Engine assembles the authentication gating machinery around a credential
// pool and a host. It owns the background tasks: the kick sweep, the prompt
// reminder, and the daily failed-attempt reset.
type Engine struct {
	Registry    *session.Registry
	Startup     *session.StartupSet
	Limiter     *auth.AttemptLimiter
	Broadcaster *auth.Broadcaster
	Service     *auth.Service
	Gate        *auth.Gate
	Reconciler  *auth.Reconciler
	Kicker      *auth.AutoKicker
	Reminder    *Reminder
	PreJoin     *PreJoinGuard
	Dispatcher  *Dispatcher

	cron   *cron.Cron
	logger *slog.Logger
}

// NewEngine wires every component from the configuration. The pool must be
// connected and migrated.
func NewEngine(cfg config.Config, pool *pgxpool.Pool, host Host, logger *slog.Logger) (*Engine, error) {
	if pool == nil {
		return nil, oops.Errorf("pool must not be nil")
	}
	if host.Roster == nil {
		return nil, oops.Errorf("host roster must not be nil")
	}
	if host.Console == nil {
		return nil, oops.Errorf("host console must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	registry := session.NewRegistry()
	startup := session.NewStartupSet()
	limiter := auth.NewAttemptLimiter(cfg.Auth.AttemptDelay())
	broadcaster := auth.NewBroadcaster()
	store := authpg.NewCredentialRepository(pool)
	hasher := auth.NewArgon2idHasher()

	service, err := auth.NewService(store, hasher, registry, startup, limiter, broadcaster, host.Console, auth.ServiceConfig{
		Policy:      cfg.PasswordPolicy(),
		MaxFailed:   cfg.Auth.MaxFailedAttempts,
		Punishments: cfg.Auth.Punishments,
	})
	if err != nil {
		return nil, err
	}
	service = service.WithLogger(logger)

	gate, err := auth.NewGate(registry, cfg.Auth.AllowedCommands)
	if err != nil {
		return nil, err
	}

	reconciler, err := auth.NewReconciler(store, registry, startup, broadcaster, cfg.Auth.SessionExpiry(), auth.ReconcilerMessages{
		AutoLogin:    cfg.Messages.LoginAuto,
		StorageError: cfg.Messages.StorageError,
	})
	if err != nil {
		return nil, err
	}
	reconciler = reconciler.WithLogger(logger)

	kicker, err := auth.NewAutoKicker(registry, host.Roster, cfg.Auth.KickTimeout(), cfg.Messages.KickTimeout)
	if err != nil {
		return nil, err
	}
	kicker = kicker.WithLogger(logger)

	reminder, err := NewReminder(registry, host.Roster, cfg.Messages.LoginPrompt, cfg.Messages.RegisterPrompt)
	if err != nil {
		return nil, err
	}

	commands := command.NewRegistry()
	handlers.RegisterAll(commands)
	cmdDispatcher, err := command.NewDispatcher(commands)
	if err != nil {
		return nil, err
	}

	services := &command.Services{
		Auth:     service,
		Roster:   host.Roster,
		Messages: cfg.Messages,
	}

	dispatcher, err := NewDispatcher(registry, reconciler, kicker, gate, cmdDispatcher, services)
	if err != nil {
		return nil, err
	}
	dispatcher = dispatcher.WithLogger(logger)

	return &Engine{
		Registry:    registry,
		Startup:     startup,
		Limiter:     limiter,
		Broadcaster: broadcaster,
		Service:     service,
		Gate:        gate,
		Reconciler:  reconciler,
		Kicker:      kicker,
		Reminder:    reminder,
		PreJoin:     NewPreJoinGuard(host.Roster, cfg.Auth.PlayersSameIP, cfg.Messages.SameIPLimit),
		Dispatcher:  dispatcher,
		logger:      logger,
	}, nil
}

// Run starts the background tasks and blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.cron = cron.New()
	// Failed login attempt counters reset once a day, so a slow trickle of
	// typos never accumulates into a punishment.
	if _, err := e.cron.AddFunc("@every 24h", e.Limiter.Clear); err != nil {
		return oops.With("schedule", "@every 24h").Wrap(err)
	}
	e.cron.Start()
	defer func() {
		stopCtx := e.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(5 * time.Second):
			e.logger.Warn("cron jobs did not drain in time")
		}
	}()

	go e.Kicker.Run(ctx)
	go e.Reminder.Run(ctx)

	e.logger.Info("authentication engine running")
	<-ctx.Done()
	return nil
}
