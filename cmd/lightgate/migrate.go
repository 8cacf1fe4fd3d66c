// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/lightgate/lightgate/internal/config"
	"github.com/lightgate/lightgate/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply, roll back, or inspect the credential schema migrations.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				return m.Up()
			})
		},
	})
	var force bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations, dropping the credential schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return oops.Code("CONFIRM_REQUIRED").
					Errorf("migrate down drops the credential schema; re-run with --force")
			}
			return withMigrator(cmd, func(m *store.Migrator) error {
				return m.Down()
			})
		},
	}
	down.Flags().BoolVar(&force, "force", false, "confirm the destructive rollback")
	cmd.AddCommand(down)
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version: %d dirty: %t\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return oops.With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			cmd.PrintErrf("failed to close migrator: %v\n", closeErr)
		}
	}()

	return fn(migrator)
}
