package explorer

import (
	"reflect"

	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/solver"
	"github.com/concolith/concolith/trace"
)

// candidate is one pending suffix-negation target formula, per spec.md
// §4.7 step 3.
type candidate struct {
	formula constraint.Expr
}

// maxFreshRetries bounds the "append an NE atom and retry" loop of
// spec.md §4.7's Deduplication of solutions section.
const maxFreshRetries = 5

// generateCandidates builds the batch of candidate formulas for one PC,
// ordered deepest-suffix-first per spec.md §4.7 step 3. Three-way
// compares contribute their two unobserved sign buckets as separate
// candidates rather than a single negation.
func generateCandidates(pc []trace.Constraint) []candidate {
	n := len(pc)
	out := make([]candidate, 0, n)

	for i := n; i >= 1; i-- {
		prefix := trace.AsConjunction(pc[:i-1])
		c := pc[i-1]

		if c.Op.IsThreeWay() {
			for _, alt := range trace.ThreeWayAlternatives(c) {
				out = append(out, candidate{formula: conjoin(prefix, alt)})
			}
			continue
		}
		if c.Expr == nil {
			continue
		}
		out = append(out, candidate{formula: conjoin(prefix, constraint.Negate(c.Expr))})
	}
	return out
}

// conjoin returns b alone if a is the trivial True sentinel, otherwise
// a && b.
func conjoin(a, b constraint.Expr) constraint.Expr {
	if a == nil || a.Equal(constraint.True) {
		return b
	}
	return constraint.MustBinary(constraint.AND, a, b)
}

// assignmentTracker records solutions already handed out as new seeds, so
// duplicate assignments can be detected and refined away per spec.md
// §4.7's Deduplication of solutions section.
type assignmentTracker struct {
	tried []solver.Solution
}

func (t *assignmentTracker) seen(sol solver.Solution) bool {
	for _, prior := range t.tried {
		if reflect.DeepEqual(prior, sol) {
			return true
		}
	}
	return false
}

func (t *assignmentTracker) record(sol solver.Solution) {
	t.tried = append(t.tried, sol)
}

// freshAssignment solves formula, retrying with an added NE-against-prior
// atom up to maxFreshRetries times if the solution duplicates one already
// handed out. Only single-variable solutions can be refined this way; a
// duplicate multi-variable solution is discarded immediately, per spec.md
// §4.7's "small bounded number of retries... discarded" language.
func freshAssignment(solve func(constraint.Expr) (solver.Solution, error), tracker *assignmentTracker, formula constraint.Expr) (solver.Solution, error) {
	for attempt := 0; attempt <= maxFreshRetries; attempt++ {
		sol, err := solve(formula)
		if err != nil {
			return nil, err
		}
		if !tracker.seen(sol) {
			tracker.record(sol)
			return sol, nil
		}
		if len(sol) != 1 {
			return nil, errs.SolverUnsat
		}
		for name, v := range sol {
			iv, ok := v.(int64)
			if !ok {
				return nil, errs.SolverUnsat
			}
			formula = conjoin(formula, constraint.MustBinary(constraint.NE, constraint.NewVar(name, constraint.SortInt), constraint.IntConst(iv)))
		}
	}
	return nil, errs.SolverUnsat
}
