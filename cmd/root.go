// Package cmd holds the command line entry points.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the command line with ctx, which is canceled on interrupt.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "familles",
		Short:         "Jeu des 7 familles à écouter",
		Long:          "Tire au hasard des phrases des familles choisies et les fait écouter, séparées par un compte à rebours.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "Extra TOML config file, read last")
	root.PersistentFlags().String("catalog", "", "YAML catalog replacing the built-in one")
	root.PersistentFlags().String("assets", "", "Directory the clip paths are relative to")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newFamiliesCmd())
	root.AddCommand(versionCmd)
	return root
}
