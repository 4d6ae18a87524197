// Package cmd implements the concolith command-line driver: explore,
// replay, and version, wired the way the teacher's cobra root command
// dispatches to its own subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/concolith/concolith/logging"
)

// cmdLogger is the sub-logger every subcommand in this package logs
// through, mirroring the teacher's package-level GlobalLogger convention.
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)

var rootCmd = &cobra.Command{
	Use:   "concolith",
	Short: "A concolic path exploration engine",
	Long:  "concolith drives a concrete+symbolic path exploration session against an instrumented host",
}

// Execute runs the root command, dispatching to whichever subcommand the
// caller invoked.
func Execute() error {
	return rootCmd.Execute()
}
