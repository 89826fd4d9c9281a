// Package cmd provides the CLI commands for aadb.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aadb-project/aadb/internal/config"
	"github.com/aadb-project/aadb/internal/version"
)

// NewRootCmd creates the root command for the aadb CLI.
func NewRootCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "aadb",
		Short: "Autoantibody reference database API",
		Long: `aadb serves the autoantibody reference database over HTTP and
provides maintenance commands that work directly against its store.

Configuration is read from config/<env>.yaml; the environment defaults
to $ENV or "local".`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("aadb version " + version.String() + "\n")

	cmd.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "Config environment (config/<env>.yaml)")

	cmd.AddCommand(newServeCmd(&env))
	cmd.AddCommand(newBackupCmd(&env))
	cmd.AddCommand(newImportCmd(&env))
	cmd.AddCommand(newSearchCmd(&env))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
