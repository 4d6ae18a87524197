package cmd

// addReplayFlags adds the various flags for the replay command.
func addReplayFlags() error {
	replayCmd.Flags().SortFlags = false

	// Persisted store to replay from
	replayCmd.Flags().String("store", "", "path to a bbolt store previously populated by `explore --store`")

	// Persisted CBOR snapshot to replay from, as an alternative to --store
	replayCmd.Flags().String("snapshot", "", "path to a CBOR snapshot previously written by `explore --snapshot`")

	// Output document
	replayCmd.Flags().String("out", "", "path to write the replayed JSON output document (default: stdout)")

	return nil
}
