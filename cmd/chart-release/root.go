package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chart-release",
		Short:   "Promote release tags into Helm chart metadata",
		Version: fmt.Sprintf("%s (commit %s)", Version, Commit),
		// Errors are printed once in main with the diagnostic prefix.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.AddCommand(newUpdateCmd())
	return cmd
}
