package trace

import "github.com/concolith/concolith/constraint"

// ThreeWayAlternatives returns the two sign-bucket Exprs that were NOT
// observed for a three-way Constraint (spec.md §9: "the recorded
// expression pairs sign(a-b) with the observed outcome so that negation
// yields the two unobserved buckets as separate candidates, rather than
// one combined disjunction"). It panics if c.Op is not a three-way kind.
func ThreeWayAlternatives(c Constraint) []constraint.Expr {
	if !c.Op.IsThreeWay() {
		panic("trace: ThreeWayAlternatives called on a non-three-way Constraint")
	}
	sign, ok := c.Outcome.(int)
	if !ok {
		panic("trace: three-way Constraint has non-int Outcome")
	}

	buckets := [3]constraint.Expr{
		constraint.MustBinary(constraint.LT, c.Left, c.Right),
		constraint.MustBinary(constraint.EQ, c.Left, c.Right),
		constraint.MustBinary(constraint.GT, c.Left, c.Right),
	}
	observed := sign + 1 // map {-1,0,1} -> {0,1,2}

	alts := make([]constraint.Expr, 0, 2)
	for i, b := range buckets {
		if i != observed {
			alts = append(alts, b)
		}
	}
	return alts
}
