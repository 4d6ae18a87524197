package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/concolith/concolith/cmd/exitcodes"
	"github.com/concolith/concolith/config"
	"github.com/concolith/concolith/demo"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/explorer"
	"github.com/concolith/concolith/logging"
	"github.com/concolith/concolith/logging/colors"
	"github.com/concolith/concolith/report"
	"github.com/concolith/concolith/session/store"
	"github.com/concolith/concolith/solver"
)

// exploreCmd represents the command provider for running an exploration session.
var exploreCmd = &cobra.Command{
	Use:           "explore",
	Short:         "Run a path exploration session",
	Long:          `Run a path exploration session against an instrumented host`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunExplore,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if err := addExploreFlags(); err != nil {
		cmdLogger.Panic("Failed to initialize the explore command", err)
	}
	rootCmd.AddCommand(exploreCmd)
}

// cmdRunExplore loads Options (from a config file if --config was given, defaults otherwise), applies any
// flag overrides, selects the requested demonstration host, runs the Explorer to completion, and emits the
// resulting report document.
func cmdRunExplore(cmd *cobra.Command, args []string) error {
	opts, err := loadExploreOptions(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
	}
	if err := opts.Validate(); err != nil {
		cmdLogger.Error("Invalid configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
	}

	demoName, err := cmd.Flags().GetString("demo")
	if err != nil {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
	}
	host, seeds, execute, err := selectDemoHost(opts, demoName)
	if err != nil {
		cmdLogger.Error("Failed to select demonstration host", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
	}

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(opts.SearchWidth), opts.MaxIterations)
	exp.Events.PathDiscovered.Subscribe(func(event explorer.PathDiscoveredEvent) {
		cmdLogger.Info(colors.GreenBold, "[new path] ", colors.Reset, fmt.Sprintf("%v", event.Record.Seeds),
			" ", fmt.Sprintf("%v", event.Record.Constraints),
			logging.StructuredLogInfo{"format": logging.PATH_DISCOVERED, "seeds": event.Record.Seeds})
	})

	var pathStore *store.Store
	if storePath, _ := cmd.Flags().GetString("store"); storePath != "" {
		pathStore, err = store.Open(storePath)
		if err != nil {
			cmdLogger.Error("Failed to open path store", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeInvalidConfig)
		}
		defer pathStore.Close()
		exp.Events.PathDiscovered.Subscribe(func(event explorer.PathDiscoveredEvent) {
			if err := pathStore.RecordPath(event.Record); err != nil {
				cmdLogger.Warn("Failed to persist discovered path", err)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	result, runErr := exp.Run(ctx, seeds, execute)

	var hostErr *errs.HostFailure
	if errors.As(runErr, &hostErr) {
		cmdLogger.Error("Host execution failed", runErr)
		return exitcodes.NewErrorWithExitCode(runErr, exitcodes.ExitCodeHostError)
	}
	if runErr != nil {
		cmdLogger.Error("Exploration failed", runErr)
		return exitcodes.NewErrorWithExitCode(runErr, exitcodes.ExitCodeGeneralError)
	}

	if reentrancyErr := host.Recorder.ReentrancyError(); reentrancyErr != nil {
		cmdLogger.Warn("Recorder reentrancy bound was exceeded during this run", reentrancyErr)
	}

	cmdLogger.Info(colors.CyanBold, fmt.Sprintf("%d", len(result.Paths)), colors.Reset, " distinct paths over ",
		colors.CyanBold, fmt.Sprintf("%d", result.Iterations), colors.Reset, " iterations (", result.TerminatedReason, ")",
		logging.StructuredLogInfo{"format": logging.EXPLORATION_SUMMARY, "reason": result.TerminatedReason})

	doc := report.FromResult(result)
	if err := emitReport(cmd, doc); err != nil {
		cmdLogger.Error("Failed to write report", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}
	return nil
}

// loadExploreOptions resolves the explore command's Options: from --config if provided, or the package
// defaults otherwise, with any --max-iterations/--search-width/--debug overrides applied last.
func loadExploreOptions(cmd *cobra.Command) (*config.Options, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	var opts *config.Options
	if configPath != "" {
		opts, err = config.ReadOptionsFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		opts = config.DefaultOptions()
	}

	if v, _ := cmd.Flags().GetInt("max-iterations"); v > 0 {
		opts.MaxIterations = v
	}
	if v, _ := cmd.Flags().GetInt("search-width"); v > 0 {
		opts.SearchWidth = v
	}
	if cmd.Flags().Changed("debug") {
		opts.Debug, _ = cmd.Flags().GetBool("debug")
	}
	return opts, nil
}

// selectDemoHost builds the instrumented host named by demoName and returns it along with its initial
// seeds and ExecuteFunc, applying opts.Debug and opts.InterceptionEnabled to its Recorder.
func selectDemoHost(opts *config.Options, demoName string) (*demo.Host, map[string]any, explorer.ExecuteFunc, error) {
	h := demo.NewHost(opts.MaxRecursionDepth)
	h.Recorder.SetInterceptionEnabled(opts.InterceptionEnabled)
	if opts.Debug {
		h.Recorder.Debug = func(event string, fields map[string]any) {
			fmt.Fprintf(os.Stderr, "%s %v\n", event, fields)
		}
	}

	switch demoName {
	case "five-case-select":
		seeds, execute := h.FiveCaseSelect()
		return h, seeds, execute, nil
	case "single-branch":
		seeds, execute := h.SingleBranch()
		return h, seeds, execute, nil
	case "conjunction-pruning":
		seeds, execute := h.ConjunctionPruning()
		return h, seeds, execute, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown demo host %q", demoName)
	}
}

// emitReport writes doc as the session's JSON output document, to --out if given or stdout otherwise,
// and additionally writes a CBOR snapshot to --snapshot if given.
func emitReport(cmd *cobra.Command, doc report.Document) error {
	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		if err := doc.WriteJSON(outPath); err != nil {
			return err
		}
	} else {
		b, err := doc.Marshal()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}

	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	if snapshotPath != "" {
		if err := doc.WriteCBORSnapshot(snapshotPath); err != nil {
			return err
		}
	}
	return nil
}
