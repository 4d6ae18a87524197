package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/concolith/concolith/version"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for concolith.

This includes the semantic version, the git commit hash and commit time
(when the build recorded them), and the Go version used to compile the binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		fmt.Print(info.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
