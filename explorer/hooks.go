package explorer

import (
	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/solver"
	"github.com/concolith/concolith/trace"
)

// Hooks defines the extension points an Explorer session can be
// configured with, mirroring the shape of the teacher's FuzzerHooks.
type Hooks struct {
	// SolveFunc overrides how candidate formulas are solved. Defaults to
	// the session's configured solver.Solver when nil.
	SolveFunc SolveFunc

	// FingerprintFunc overrides PC fingerprinting. Defaults to
	// Fingerprinter.Fingerprint when nil.
	FingerprintFunc FingerprintFunc
}

// SolveFunc resolves a candidate formula to a Solution or an error.
type SolveFunc func(expr constraint.Expr) (solver.Solution, error)

// FingerprintFunc computes the canonical fingerprint of a PC snapshot.
type FingerprintFunc func(pc []trace.Constraint) string
