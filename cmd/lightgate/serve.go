// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/lightgate/lightgate/internal/auth"
	"github.com/lightgate/lightgate/internal/config"
	"github.com/lightgate/lightgate/internal/game"
	"github.com/lightgate/lightgate/internal/logging"
	"github.com/lightgate/lightgate/internal/observability"
	"github.com/lightgate/lightgate/internal/store"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the authentication engine",
		Long: `Run the authentication engine in standalone mode: connect to the
database, apply pending migrations, and expose metrics and health probes.
A game server attaches through the host adapter; until one does, the
roster is empty and console punishments are logged instead of executed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	// Flag defaults mirror config.Default so an untouched flag never
	// overrides a value from the config file.
	defaults := config.Default()
	cmd.Flags().String("log.format", defaults.Log.Format, "log format (json or text)")
	cmd.Flags().String("log.level", defaults.Log.Level, "log level (debug, info, warn or error)")
	cmd.Flags().String("metrics.addr", defaults.Metrics.Addr, "metrics/health HTTP address (empty disables)")
	cmd.Flags().String("database.url", defaults.Database.URL, "Postgres DSN")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault(logging.Options{
		Service: "lightgate",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   cfg.Log.SlogLevel(),
	})
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return oops.With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return oops.With("operation", "create migrator").Wrap(err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return oops.With("operation", "run migrations").Wrap(err)
	}
	if err := migrator.Close(); err != nil {
		return oops.With("operation", "close migrator").Wrap(err)
	}
	logger.Info("migrations applied")

	engine, err := game.NewEngine(cfg, pool, game.Host{
		Roster:  emptyRoster{},
		Console: logConsole{logger: logger},
	}, logger)
	if err != nil {
		return err
	}

	var ready atomic.Bool
	obs, obsErr, err := startObservability(cfg.Metrics.Addr, ready.Load)
	if err != nil {
		return err
	}
	if obs != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := obs.Stop(shutdownCtx); stopErr != nil {
				logger.Error("observability shutdown failed", "error", stopErr)
			}
		}()
	} else {
		logger.Info("metrics endpoint disabled")
	}
	ready.Store(true)

	engineDone := make(chan error, 1)
	go func() {
		engineDone <- engine.Run(ctx)
	}()

	select {
	case err := <-engineDone:
		return err
	case err, ok := <-obsErr:
		if ok && err != nil {
			return oops.With("operation", "observability server").Wrap(err)
		}
		<-engineDone
		return nil
	}
}

// startObservability starts the metrics/health server, or returns all nils
// when addr is empty (the endpoint is disabled). A nil error channel never
// fires in the caller's select.
func startObservability(addr string, ready observability.ReadinessChecker) (*observability.Server, <-chan error, error) {
	if addr == "" {
		return nil, nil, nil
	}
	obs := observability.NewServer(addr, ready)
	errCh, err := obs.Start()
	if err != nil {
		return nil, nil, err
	}
	return obs, errCh, nil
}

// emptyRoster is the standalone-mode roster: no host attached, no players.
type emptyRoster struct{}

func (emptyRoster) Online() []auth.Player                 { return nil }
func (emptyRoster) Lookup(uuid.UUID) (auth.Player, bool)  { return nil, false }
func (emptyRoster) LookupName(string) (auth.Player, bool) { return nil, false }

// logConsole logs console commands instead of executing them. The embedding
// game server replaces it with a real dispatcher.
type logConsole struct {
	logger *slog.Logger
}

func (c logConsole) DispatchCommand(line string) error {
	c.logger.Info("console command (standalone, not executed)", "command", line)
	return nil
}
