package trace

import "github.com/concolith/concolith/constraint"

// CompareKind identifies the raw comparison an instrumented comparison or
// branch/switch event performed, per spec.md §3's Constraint record and
// §4.4's event table. It is a superset of constraint.Op's comparison
// operators, adding the three-way and identity compare kinds that have no
// direct Expr operator of their own.
type CompareKind int

const (
	// Binary branch comparisons — these map 1:1 onto constraint.Op.
	CmpEQ CompareKind = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE

	// Three-way numeric compares (spec.md §4.4 lcmp/fcmpl/fcmpg/dcmpl/dcmpg).
	CmpLCMP
	CmpFCMPL
	CmpFCMPG
	CmpDCMPL
	CmpDCMPG

	// Reference identity compares.
	CmpACMP_EQ
	CmpACMP_NE
)

// ToOp returns the constraint.Op corresponding to a binary branch or
// identity comparison kind (CmpACMP_EQ/CmpACMP_NE map to EQ/NE). It panics
// if called on a three-way kind, since those do not correspond 1:1 to a
// comparison Op — the Recorder handles them separately (see recorder.go's
// threeWay helper).
func (k CompareKind) ToOp() constraint.Op {
	switch k {
	case CmpEQ:
		return constraint.EQ
	case CmpNE:
		return constraint.NE
	case CmpLT:
		return constraint.LT
	case CmpLE:
		return constraint.LE
	case CmpGT:
		return constraint.GT
	case CmpGE:
		return constraint.GE
	case CmpACMP_EQ:
		return constraint.EQ
	case CmpACMP_NE:
		return constraint.NE
	default:
		panic("trace: ToOp called on a non-binary CompareKind")
	}
}

// IsThreeWay reports whether k is one of the three-way numeric compare
// kinds (lcmp/fcmpl/fcmpg/dcmpl/dcmpg).
func (k CompareKind) IsThreeWay() bool {
	switch k {
	case CmpLCMP, CmpFCMPL, CmpFCMPG, CmpDCMPL, CmpDCMPG:
		return true
	default:
		return false
	}
}

// Constraint is an immutable record of one observed comparison or
// branch/switch event, per spec.md §3. Outcome holds a bool for binary
// branch events, or -1/0/1 for three-way compares.
type Constraint struct {
	Left, Right constraint.Expr
	Op          CompareKind
	Outcome     any
	Timestamp   uint64
	// Expr is the Expr appended to the path condition for this event. For a
	// three-way compare it is the comparison of the observed sign bucket
	// (Left < Right, Left == Right, or Left > Right); the Explorer derives
	// that compare's candidate negations from Left/Right/Outcome instead of
	// negating Expr.
	Expr constraint.Expr
}
