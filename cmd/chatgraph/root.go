// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ChatGraph CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatgraph",
		Short: "ChatGraph - a GraphQL chat backend",
		Long: `ChatGraph is a GraphQL chat backend with user registration,
JWT login, and a user directory annotated with the latest direct
message per conversation, backed by PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
