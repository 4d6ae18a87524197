package cmd

// addExploreFlags adds the various flags for the explore command.
func addExploreFlags() error {
	// Prevent alphabetical sorting of usage message
	exploreCmd.Flags().SortFlags = false

	// Config file
	exploreCmd.Flags().String("config", "", "path to an Options JSON config file")

	// Demo scenario selection, since this module ships no target-program loader of its own
	exploreCmd.Flags().String("demo", "five-case-select",
		"instrumented demonstration host to run: five-case-select, single-branch, or conjunction-pruning")

	// Output document
	exploreCmd.Flags().String("out", "", "path to write the session's JSON output document (default: stdout)")

	// Optional CBOR snapshot
	exploreCmd.Flags().String("snapshot", "", "path to write a CBOR snapshot of the session's output document")

	// Optional persistent store
	exploreCmd.Flags().String("store", "", "path to a bbolt store used to persist discovered paths")

	// Overrides for config.Options
	exploreCmd.Flags().Int("max-iterations", 0, "override Options.MaxIterations (0 means use the config value)")
	exploreCmd.Flags().Int("search-width", 0, "override Options.SearchWidth (0 means use the config value)")
	exploreCmd.Flags().Bool("debug", false, "override Options.Debug")

	return nil
}
