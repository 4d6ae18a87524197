// Package solver implements C6 (spec.md §4.6): a bounded solver over
// conjunctions of simple per-variable integer bounds, plus the pluggable
// Solver capability interface components receive it through.
package solver

import "github.com/concolith/concolith/constraint"

// Solution is a satisfying assignment returned by a Solver: a mapping from
// variable name to a concrete value of that variable's declared sort.
// An infeasible formula never yields an empty Solution; it yields an error
// (errs.SolverUnsat/SolverBounded/SolverUnsupported) instead. A formula
// with no atoms (constraint.True) yields an empty Solution.
type Solution map[string]any

// Solver is the plug-in capability interface of spec.md §4.6: "components
// receive the solver through a capability solve(expression) -> Solution |
// Unsat". Any component satisfying this interface — the bundled
// BoundedLinearSolver or an external solver such as z3solver.Solver — can
// be substituted behind Explorer's Hooks.
type Solver interface {
	Solve(expr constraint.Expr) (Solution, error)
}
