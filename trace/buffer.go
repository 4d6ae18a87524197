package trace

import (
	"sync"

	"github.com/concolith/concolith/constraint"
)

// PathCondition is the per-execution, ordered container of recorded
// Constraints backing C3 (spec.md §4.3). It is the Recorder's sole
// mutable object; the Explorer only ever holds read-only Snapshots of it.
type PathCondition struct {
	mu          sync.Mutex
	constraints []Constraint
}

// NewPathCondition constructs an empty PathCondition buffer.
func NewPathCondition() *PathCondition {
	return &PathCondition{}
}

// Append adds a Constraint to the end of the buffer. O(1) amortized.
func (p *PathCondition) Append(c Constraint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.constraints = append(p.constraints, c)
}

// Snapshot returns a shallow copy of the buffer's contents suitable for
// the Explorer to retain across the lifetime of an iteration.
func (p *PathCondition) Snapshot() []Constraint {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Constraint, len(p.constraints))
	copy(out, p.constraints)
	return out
}

// Reset empties the buffer.
func (p *PathCondition) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.constraints = nil
}

// Len returns the number of constraints currently buffered.
func (p *PathCondition) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.constraints)
}

// AsConjunction returns constraint.True if the buffer is empty, otherwise a
// left-associated AND of every recorded expression in the buffer. A
// three-way compare contributes its observed sign-bucket expression; see
// ThreeWayAlternatives for how the Explorer derives negation targets for
// it.
func AsConjunction(constraints []Constraint) constraint.Expr {
	var acc constraint.Expr
	for _, c := range constraints {
		if c.Expr == nil {
			continue
		}
		if acc == nil {
			acc = c.Expr
			continue
		}
		acc = constraint.MustBinary(constraint.AND, acc, c.Expr)
	}
	if acc == nil {
		return constraint.True
	}
	return acc
}
