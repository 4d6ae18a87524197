package symbolic

import (
	"testing"

	"github.com/concolith/concolith/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryDeclareRedeclareSameSort asserts that redeclaring a variable with the same sort updates its
// seed in place rather than erroring.
func TestRegistryDeclareRedeclareSameSort(t *testing.T) {
	r := NewRegistry()

	_, err := r.Declare("x", constraint.SortInt, int64(5))
	require.NoError(t, err)

	v, err := r.Declare("x", constraint.SortInt, int64(9))
	require.NoError(t, err)
	assert.Equal(t, int64(9), v.Seed)

	looked, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(9), looked.Seed)
}

// TestRegistryDeclareSortMismatch asserts that redeclaring a variable with a different sort is an error.
func TestRegistryDeclareSortMismatch(t *testing.T) {
	r := NewRegistry()

	_, err := r.Declare("x", constraint.SortInt, int64(5))
	require.NoError(t, err)

	_, err = r.Declare("x", constraint.SortReal, 5.0)
	assert.Error(t, err)
}

// TestRegistryClearDropsDeclarations asserts that Clear empties the registry entirely.
func TestRegistryClearDropsDeclarations(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Declare("x", constraint.SortInt, int64(1))
	r.Clear()

	_, ok := r.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, r.Seeds())
}

// TestTagEqualityIgnoresOrder asserts that two tags built from the same labels in different orders compare equal.
func TestTagEqualityIgnoresOrder(t *testing.T) {
	a := NewTag("x", "y")
	b := NewTag("y", "x")
	assert.True(t, a.Equal(b))

	c := a.WithLabel("z")
	assert.False(t, a.Equal(c))
	assert.False(t, c.Empty())
}

// TestLabelRegistryIsUserSymbolic matches spec.md §4.1: a tag is user-symbolic only if at least one of its
// labels is registered, and an empty tag is never user-symbolic.
func TestLabelRegistryIsUserSymbolic(t *testing.T) {
	labels := NewLabelRegistry()
	labels.Add("choice")

	assert.True(t, labels.IsUserSymbolic(NewTag("choice")))
	assert.False(t, labels.IsUserSymbolic(NewTag("unrelated")))
	assert.False(t, labels.IsUserSymbolic(Tag{}))

	labels.Clear()
	assert.False(t, labels.IsUserSymbolic(NewTag("choice")))
}

// TestSymbolicatorMakeSymbolicIntRegistersLabelAndVariable asserts that MakeSymbolicInt both declares the
// variable and registers it as a symbolic label in one call.
func TestSymbolicatorMakeSymbolicIntRegistersLabelAndVariable(t *testing.T) {
	s := NewSymbolicator()

	tag, err := s.MakeSymbolicInt("x", 5)
	require.NoError(t, err)
	assert.True(t, s.Labels.IsUserSymbolic(tag))

	v, ok := s.Variables.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, constraint.SortInt, v.Sort)
	assert.Equal(t, int64(5), v.Seed)
}

// TestSymbolicatorResetClearsLabelsAndVariables asserts that Reset drops both registered labels and
// declared variables, per spec.md §6.
func TestSymbolicatorResetClearsLabelsAndVariables(t *testing.T) {
	s := NewSymbolicator()
	tag, err := s.MakeSymbolicInt("x", 5)
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.Labels.IsUserSymbolic(tag))
	_, ok := s.Variables.Lookup("x")
	assert.False(t, ok)
}

// TestSymbolicatorClearLabelsKeepsVariables asserts that ClearLabels drops labels without touching the
// declared variable set.
func TestSymbolicatorClearLabelsKeepsVariables(t *testing.T) {
	s := NewSymbolicator()
	tag, err := s.MakeSymbolicInt("x", 5)
	require.NoError(t, err)

	s.ClearLabels()

	assert.False(t, s.Labels.IsUserSymbolic(tag))
	_, ok := s.Variables.Lookup("x")
	assert.True(t, ok)
}
