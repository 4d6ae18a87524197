package constraint

// Negate returns an expression logically equivalent to ¬expr (spec.md
// §4.5). It is total and pure, and is an involution on comparison-rooted
// and boolean-composition-rooted trees: Negate(Negate(e)).Equal(e) holds
// for every comparison or boolean-connective expression e.
func Negate(expr Expr) Expr {
	switch e := expr.(type) {
	case Binary:
		if IsComparison(e.Op) {
			return MustBinary(Complement(e.Op), e.Left, e.Right)
		}
		if e.Op == AND {
			return MustBinary(OR, Negate(e.Left), Negate(e.Right))
		}
		if e.Op == OR {
			return MustBinary(AND, Negate(e.Left), Negate(e.Right))
		}
		// Arithmetic Binary expressions are not boolean; wrap with NOT,
		// which will fail sort validation if misused — this is intentional,
		// since negating a non-boolean expression is a programming error
		// the caller should surface rather than silently coerce.
		return MustUnary(NOT, e)
	case Unary:
		if e.Op == NOT {
			// Double-negation elimination.
			return e.Operand
		}
		return MustUnary(NOT, e)
	default:
		return MustUnary(NOT, expr)
	}
}
