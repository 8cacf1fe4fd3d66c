// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the lightgate CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lightgate",
		Short: "Lightgate - authentication gating for game servers",
		Long: `Lightgate gates player actions on a game server behind password
authentication: players must register or log in before they can move, chat,
or interact, and idle unauthenticated players are kicked.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
