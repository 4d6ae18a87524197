// Package errs defines the error taxonomy of spec.md §7: InvalidConfig,
// RecorderReentrancy, SolverUnsat, SolverBounded, SolverUnsupported, and
// HostFailure. SortMismatch is defined in the constraint package, not
// here.
package errs

import "github.com/pkg/errors"

// InvalidConfig indicates a bad option value at session start; fatal to
// the session.
type InvalidConfig struct {
	Reason string
}

func (e *InvalidConfig) Error() string { return "invalid config: " + e.Reason }

// NewInvalidConfig constructs an InvalidConfig error.
func NewInvalidConfig(reason string) error {
	return errors.WithStack(&InvalidConfig{Reason: reason})
}

// RecorderReentrancy indicates the reentrancy bound was exceeded.
// Recoverable: the Recorder returns the concrete result and continues.
type RecorderReentrancy struct {
	Depth int
	Bound int
}

func (e *RecorderReentrancy) Error() string {
	return "recorder reentrancy bound exceeded"
}

// NewRecorderReentrancy constructs a RecorderReentrancy error.
func NewRecorderReentrancy(depth, bound int) error {
	return &RecorderReentrancy{Depth: depth, Bound: bound}
}

// SolverUnsat is not truly an error condition — it is the expected result
// of an infeasible formula — but it is represented as an error value so
// that it can be propagated through ordinary Go control flow at call sites
// that want to treat UNSAT uniformly with other solver failures.
var SolverUnsat = errors.New("solver: unsatisfiable")

// SolverBounded indicates the solver's search window was exhausted without
// reaching a decision. Treated like SolverUnsat by the Explorer, but
// logged distinctly so bounded-window exhaustion can be diagnosed
// separately from genuine infeasibility.
var SolverBounded = errors.New("solver: search window exhausted")

// SolverUnsupported indicates the solver was asked to decide an atom shape
// it does not handle (e.g. a real- or string-sorted atom for the bounded
// linear solver). Treated like SolverUnsat by the Explorer.
var SolverUnsupported = errors.New("solver: unsupported atom shape")

// HostFailure wraps an error raised by the host's execute() callback,
// surfaced to the caller of Explorer.Run along with the current partial
// list of path records.
type HostFailure struct {
	Cause error
}

func (e *HostFailure) Error() string { return "host execution failed: " + e.Cause.Error() }

func (e *HostFailure) Unwrap() error { return e.Cause }

// NewHostFailure wraps cause as a HostFailure.
func NewHostFailure(cause error) error {
	return &HostFailure{Cause: cause}
}
