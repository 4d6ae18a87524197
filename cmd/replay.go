package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/concolith/concolith/cmd/exitcodes"
	"github.com/concolith/concolith/explorer"
	"github.com/concolith/concolith/report"
	"github.com/concolith/concolith/session/store"
)

// replayCmd represents the command provider for reprinting a previously persisted session.
var replayCmd = &cobra.Command{
	Use:           "replay",
	Short:         "Reprint a previously persisted exploration session",
	Long:          `Reprint the path records recorded by a previous "explore" run, from either a bbolt store or a CBOR snapshot`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunReplay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if err := addReplayFlags(); err != nil {
		cmdLogger.Panic("Failed to initialize the replay command", err)
	}
	rootCmd.AddCommand(replayCmd)
}

func cmdRunReplay(cmd *cobra.Command, args []string) error {
	storePath, _ := cmd.Flags().GetString("store")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")

	if storePath == "" && snapshotPath == "" {
		err := fmt.Errorf("one of --store or --snapshot must be provided")
		cmdLogger.Error("Failed to run the replay command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
	}

	var doc report.Document
	switch {
	case storePath != "":
		s, err := store.Open(storePath)
		if err != nil {
			cmdLogger.Error("Failed to open path store", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
		}
		defer s.Close()

		paths, err := s.LoadPaths()
		if err != nil {
			cmdLogger.Error("Failed to load persisted paths", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
		doc = report.FromResult(explorer.Result{
			Paths:            paths,
			Iterations:       len(paths),
			TerminatedReason: explorer.ReasonExhausted,
		})
	case snapshotPath != "":
		loaded, err := report.ReadCBORSnapshot(snapshotPath)
		if err != nil {
			cmdLogger.Error("Failed to read CBOR snapshot", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
		doc = loaded
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		if err := doc.WriteJSON(outPath); err != nil {
			cmdLogger.Error("Failed to write report", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
		return nil
	}

	b, err := doc.Marshal()
	if err != nil {
		cmdLogger.Error("Failed to marshal report", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}
	fmt.Println(string(b))
	return nil
}
