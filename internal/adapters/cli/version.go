package cli

import (
	"refstar/internal/core/version"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			bi := version.Info()
			cmd.Printf("refstar %s (commit %s, built %s)\n", bi.Version, bi.Commit, bi.Date)
		},
	}
}
