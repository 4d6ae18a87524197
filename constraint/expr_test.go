package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBinaryComparisonSortMismatch asserts that comparing an int against a string is a sort mismatch.
func TestNewBinaryComparisonSortMismatch(t *testing.T) {
	x := NewVar("x", SortInt)
	s := StrConst("hello")

	_, err := NewBinary(EQ, x, s)
	require.Error(t, err)

	var mismatch *SortMismatch
	assert.ErrorAs(t, err, &mismatch)
}

// TestNewBinaryComparisonCoercesIntAndReal asserts that comparing an int against a real is allowed and yields
// SortBool, per the int/real-coercible comparison rule.
func TestNewBinaryComparisonCoercesIntAndReal(t *testing.T) {
	x := NewVar("x", SortInt)
	y := NewVar("y", SortReal)

	b, err := NewBinary(LT, x, y)
	require.NoError(t, err)
	assert.Equal(t, SortBool, b.Sort())
}

// TestNewBinaryArithmeticMixedNumericCoercesToReal asserts that mixing an int and a real operand of an
// arithmetic operator yields a real result, matching ordinary numeric promotion.
func TestNewBinaryArithmeticMixedNumericCoercesToReal(t *testing.T) {
	x := NewVar("x", SortInt)
	y := NewVar("y", SortReal)

	b, err := NewBinary(ADD, x, y)
	require.NoError(t, err)
	assert.Equal(t, SortReal, b.Sort())
}

// TestNewBinaryBooleanConnectiveRequiresBoolOperands asserts that AND/OR reject non-boolean operands.
func TestNewBinaryBooleanConnectiveRequiresBoolOperands(t *testing.T) {
	x := NewVar("x", SortInt)
	y := NewVar("y", SortInt)

	_, err := NewBinary(AND, x, y)
	assert.Error(t, err)
}

// TestNewUnaryRejectsMismatchedOperand asserts that NOT rejects a non-boolean operand and NEG rejects a
// non-numeric one.
func TestNewUnaryRejectsMismatchedOperand(t *testing.T) {
	x := NewVar("x", SortInt)
	_, err := NewUnary(NOT, x)
	assert.Error(t, err)

	s := StrConst("hello")
	_, err = NewUnary(NEG, s)
	assert.Error(t, err)
}

// TestExprEqualDistinguishesStructure asserts Equal is structural: same operator and operand shape compares
// equal, a differing constant or operator does not.
func TestExprEqualDistinguishesStructure(t *testing.T) {
	x := NewVar("x", SortInt)
	a := MustBinary(GT, x, IntConst(5))
	b := MustBinary(GT, x, IntConst(5))
	c := MustBinary(GT, x, IntConst(6))
	d := MustBinary(GE, x, IntConst(5))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

// TestRealConstStringIsStableAcrossEqualValues asserts that RealConst's printed form does not vary with Go's
// shortest-round-trip float formatting, since it is persisted as part of a path's printed grammar.
func TestRealConstStringIsStableAcrossEqualValues(t *testing.T) {
	a := RealConst(1.0 / 3.0)
	b := RealConst(1.0 / 3.0)
	assert.Equal(t, a.String(), b.String())
}

// TestTrueExprIsTheEmptyConjunctionSentinel asserts that True is boolean-sorted, prints as "true", and is
// only equal to itself.
func TestTrueExprIsTheEmptyConjunctionSentinel(t *testing.T) {
	assert.Equal(t, SortBool, True.Sort())
	assert.Equal(t, "true", True.String())
	assert.True(t, True.Equal(trueExpr{}))
	assert.False(t, True.Equal(IntConst(1)))
}

// TestBinaryStringIsInfixParenthesized asserts the printed form of a Binary expression.
func TestBinaryStringIsInfixParenthesized(t *testing.T) {
	x := NewVar("x", SortInt)
	b := MustBinary(GT, x, IntConst(5))
	assert.Equal(t, "(x > 5)", b.String())
}
