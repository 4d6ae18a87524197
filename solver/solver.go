package solver

import (
	"math"

	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
)

// DefaultSearchWidth is the design value of spec.md §4.6/§6's search_width
// option.
const DefaultSearchWidth = 1000

// atomOp is the narrowed set of comparison operators a single linear atom
// can carry once normalized so the variable is on the left.
type atomOp int

const (
	opEQ atomOp = iota
	opNE
	opLT
	opLE
	opGT
	opGE
)

func atomOpFromConstraintOp(op constraint.Op) (atomOp, bool) {
	switch op {
	case constraint.EQ:
		return opEQ, true
	case constraint.NE:
		return opNE, true
	case constraint.LT:
		return opLT, true
	case constraint.LE:
		return opLE, true
	case constraint.GT:
		return opGT, true
	case constraint.GE:
		return opGE, true
	default:
		return 0, false
	}
}

// BoundedLinearSolver implements C6: the bounded linear-integer solver of
// spec.md §4.6. It is stateless and safe for concurrent use.
type BoundedLinearSolver struct {
	SearchWidth int
}

// NewBoundedLinearSolver constructs a BoundedLinearSolver with the given
// search window (spec.md §6 search_width, design default 1000).
func NewBoundedLinearSolver(searchWidth int) *BoundedLinearSolver {
	if searchWidth <= 0 {
		searchWidth = DefaultSearchWidth
	}
	return &BoundedLinearSolver{SearchWidth: searchWidth}
}

// Solve implements the Solver interface over expr (spec.md §4.6).
func (s *BoundedLinearSolver) Solve(expr constraint.Expr) (Solution, error) {
	cases := flattenToConjunctions(expr)

	var lastErr error = errs.SolverUnsat
	for _, atoms := range cases {
		sol, err := s.solveConjunction(atoms)
		if err == nil {
			return sol, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// flattenToConjunctions converts expr into a disjunction of conjunctions
// (a lazy DNF expansion), implementing spec.md §4.6's "descend OR by
// disjunctive enumeration" over arbitrarily nested AND/OR trees. Each
// returned []Expr is one candidate conjunction of atoms to try in order;
// constraint.True contributes no atom.
func flattenToConjunctions(expr constraint.Expr) [][]constraint.Expr {
	switch e := expr.(type) {
	case constraint.Binary:
		switch e.Op {
		case constraint.AND:
			left := flattenToConjunctions(e.Left)
			right := flattenToConjunctions(e.Right)
			out := make([][]constraint.Expr, 0, len(left)*len(right))
			for _, l := range left {
				for _, r := range right {
					merged := make([]constraint.Expr, 0, len(l)+len(r))
					merged = append(merged, l...)
					merged = append(merged, r...)
					out = append(out, merged)
				}
			}
			return out
		case constraint.OR:
			return append(flattenToConjunctions(e.Left), flattenToConjunctions(e.Right)...)
		}
	}
	if expr.Equal(constraint.True) {
		return [][]constraint.Expr{{}}
	}
	return [][]constraint.Expr{{expr}}
}

// solveConjunction applies spec.md §4.6's algorithm to one flat list of
// atoms, none of which is itself an AND/OR node.
func (s *BoundedLinearSolver) solveConjunction(atoms []constraint.Expr) (Solution, error) {
	bounds := make(map[string]*bound)
	order := make([]string, 0)

	for _, atom := range atoms {
		name, op, k, err := normalizeAtom(atom)
		if err != nil {
			return nil, err
		}
		b, ok := bounds[name]
		if !ok {
			b = newBound()
			bounds[name] = b
			order = append(order, name)
		}
		if conflict := b.apply(op, k); conflict {
			return nil, errs.SolverUnsat
		}
	}

	sol := make(Solution, len(order))
	for _, name := range order {
		v, err := s.decide(bounds[name])
		if err != nil {
			return nil, err
		}
		sol[name] = v
	}
	return sol, nil
}

// decide implements algorithm steps 3-4 of spec.md §4.6 for a single
// variable's accumulated bound.
func (s *BoundedLinearSolver) decide(b *bound) (int64, error) {
	max := int64(math.MaxInt64)
	if b.max != nil {
		max = *b.max
	}

	// With no explicit lower bound, default to 0 rather than the
	// representable minimum: spec.md §4.6 targets enumerable, small-integer
	// domains, and starting the window at 0 finds the values that domain
	// actually exercises. Fall back to the true minimum only when 0 itself
	// couldn't satisfy the accumulated upper bound.
	min := int64(0)
	if max < 0 {
		min = math.MinInt64
	}
	if b.min != nil {
		min = *b.min
	}

	if b.required != nil {
		v := *b.required
		if v < min || v > max || b.forbidden[v] {
			return 0, errs.SolverUnsat
		}
		return v, nil
	}

	if min > max {
		return 0, errs.SolverUnsat
	}

	end := max
	width := int64(s.SearchWidth)
	if width > 0 && min <= math.MaxInt64-width+1 {
		if candidate := min + width - 1; candidate < end {
			end = candidate
		}
	}

	for v := min; ; v++ {
		if !b.forbidden[v] {
			return v, nil
		}
		if v == end {
			break
		}
	}
	return 0, errs.SolverBounded
}

// normalizeAtom recognizes a single `Var cmp Const` or `Const cmp Var`
// comparison atom over integers, flipping the operator when the variable
// is on the right (spec.md §4.6 step 1). Non-integer or non-linear atoms
// yield errs.SolverUnsupported.
func normalizeAtom(expr constraint.Expr) (name string, op atomOp, k int64, err error) {
	b, ok := expr.(constraint.Binary)
	if !ok {
		return "", 0, 0, errs.SolverUnsupported
	}
	cop, ok := atomOpFromConstraintOp(b.Op)
	if !ok {
		return "", 0, 0, errs.SolverUnsupported
	}

	if v, isVar := b.Left.(constraint.Var); isVar {
		if c, isConst := b.Right.(constraint.IntConst); isConst && v.VSort == constraint.SortInt {
			return v.Name, cop, int64(c), nil
		}
		return "", 0, 0, errs.SolverUnsupported
	}
	if v, isVar := b.Right.(constraint.Var); isVar {
		if c, isConst := b.Left.(constraint.IntConst); isConst && v.VSort == constraint.SortInt {
			return v.Name, flipAtomOp(cop), int64(c), nil
		}
		return "", 0, 0, errs.SolverUnsupported
	}
	return "", 0, 0, errs.SolverUnsupported
}

func flipAtomOp(op atomOp) atomOp {
	switch op {
	case opLT:
		return opGT
	case opGT:
		return opLT
	case opLE:
		return opGE
	case opGE:
		return opLE
	default:
		return op
	}
}
