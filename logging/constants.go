package logging

// These constants are used to identify specialized formatting for various logs to console
const (
	// PATH_DISCOVERED is the constant to identify that a newly discovered path needs special console formatting
	PATH_DISCOVERED = "pathDiscovered"

	// EXPLORATION_SUMMARY is the constant to identify that a terminal exploration summary needs special console formatting
	EXPLORATION_SUMMARY = "explorationSummary"

	// METRICS is the constant to identify that we are printing out metrics that needs special console formatting
	METRICS = "metrics"
)

// These constants are used to identify the various services that may do some logging
const (
	// SOLVER_SERVICE is the constant used to identify the solver package
	SOLVER_SERVICE = "solver"
	// EXPLORER_SERVICE is the constant used to identify the explorer package
	EXPLORER_SERVICE = "explorer"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)
