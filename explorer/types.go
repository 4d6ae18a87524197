package explorer

// PathRecord is one distinctly fingerprinted path discovered during
// exploration, per spec.md §6's Output format.
type PathRecord struct {
	Seeds       map[string]any
	Constraints []string
	DurationNS  uint64
}

// Result is the full outcome of one Explorer.Run call: every distinct
// path discovered, how many host executions it took, and why exploration
// stopped.
type Result struct {
	Paths            []PathRecord
	Iterations       int
	TerminatedReason string
}

// Reasons a Run call can terminate, per spec.md §6's Output format.
const (
	ReasonExhausted     = "exhausted"
	ReasonMaxIterations = "max_iterations"
	ReasonCancelled     = "cancelled"
)
