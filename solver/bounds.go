package solver

import "golang.org/x/exp/constraints"

// bound accumulates the induced min/max/forbidden/required facts for one
// integer variable across a conjunction of atoms, per spec.md §4.6's
// algorithm step 2.
type bound struct {
	min, max *int64
	required *int64
	forbidden map[int64]bool
}

func newBound() *bound {
	return &bound{forbidden: make(map[int64]bool)}
}

// apply folds one normalized atom into b, returning conflict=true when an
// EQ atom disagrees with an earlier EQ on the same variable.
func (b *bound) apply(op atomOp, k int64) (conflict bool) {
	switch op {
	case opEQ:
		if b.required != nil && *b.required != k {
			return true
		}
		v := k
		b.required = &v
	case opNE:
		b.forbidden[k] = true
	case opLT:
		b.max = tighterUpper(b.max, k-1)
	case opLE:
		b.max = tighterUpper(b.max, k)
	case opGT:
		b.min = tighterLower(b.min, k+1)
	case opGE:
		b.min = tighterLower(b.min, k)
	}
	return false
}

// tighterLower returns the larger of a (if set) and b, generically over any
// integer type — used here with int64, grounded on the teacher's
// constraints.Integer-parameterized AbsDiff in utils/integer_utils.go.
func tighterLower[T constraints.Integer](a *T, b T) *T {
	if a == nil || b > *a {
		v := b
		return &v
	}
	return a
}

// tighterUpper returns the smaller of a (if set) and b.
func tighterUpper[T constraints.Integer](a *T, b T) *T {
	if a == nil || b < *a {
		v := b
		return &v
	}
	return a
}
