package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNegateComparisonInvolution asserts that negating a comparison twice
// yields back an operator-equal expression, per spec.md §8.
func TestNegateComparisonInvolution(t *testing.T) {
	x := NewVar("x", SortInt)
	five := IntConst(5)

	for _, op := range []Op{EQ, NE, LT, LE, GT, GE} {
		cmp := MustBinary(op, x, five)
		once := Negate(cmp)
		twice := Negate(once)
		assert.True(t, twice.Equal(cmp), "double negation of %v should equal original", op)
	}
}

// TestNegateDeMorgan matches spec.md §8 scenario 5.
func TestNegateDeMorgan(t *testing.T) {
	x := NewVar("x", SortInt)
	y := NewVar("y", SortInt)

	left := MustBinary(GT, x, IntConst(0))
	right := MustBinary(LT, y, IntConst(10))
	conj := MustBinary(AND, left, right)

	negated := Negate(conj)

	expectedLeft := MustBinary(LE, x, IntConst(0))
	expectedRight := MustBinary(GE, y, IntConst(10))
	expected := MustBinary(OR, expectedLeft, expectedRight)

	assert.True(t, negated.Equal(expected), "negate(AND(x>0,y<10)) should equal OR(x<=0,y>=10)")
}

// TestNegateDoubleNotElimination verifies NOT(NOT(x)) collapses to x.
func TestNegateDoubleNotElimination(t *testing.T) {
	x := NewVar("x", SortInt)
	cmp := MustBinary(GT, x, IntConst(0))
	not := MustUnary(NOT, cmp)

	result := Negate(not)
	assert.True(t, result.Equal(cmp))
}

func TestBinarySortMismatch(t *testing.T) {
	x := NewVar("x", SortInt)
	s := StrConst("hi")

	_, err := NewBinary(EQ, x, s)
	require.Error(t, err)

	var mismatch *SortMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestBinaryIntRealCoercion(t *testing.T) {
	x := NewVar("x", SortInt)
	r := RealConst(1.5)

	b, err := NewBinary(LT, x, r)
	require.NoError(t, err)
	assert.Equal(t, SortBool, b.Sort())
}

func TestFlipAndComplement(t *testing.T) {
	assert.Equal(t, GT, Flip(LT))
	assert.Equal(t, LE, Flip(GE))
	assert.Equal(t, EQ, Flip(EQ))
	assert.Equal(t, NE, Flip(NE))

	assert.Equal(t, NE, Complement(EQ))
	assert.Equal(t, GE, Complement(LT))
	assert.Equal(t, GT, Complement(LE))
}
