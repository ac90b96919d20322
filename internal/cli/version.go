package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeleppane/release-py/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the release tool's version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "release %s\n", version.Version)
		fmt.Fprintf(out, "  commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
}
