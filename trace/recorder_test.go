package trace

import (
	"testing"

	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, maxDepth int) (*Recorder, symbolic.Tag) {
	t.Helper()
	labels := symbolic.NewLabelRegistry()
	vars := symbolic.NewRegistry()
	_, err := vars.Declare("x", constraint.SortInt, int64(0))
	require.NoError(t, err)
	labels.Add("x")
	return NewRecorder(labels, vars, maxDepth), symbolic.NewTag("x")
}

func TestIcmpJumpRecordsTakenBranch(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	taken := r.IcmpJump(DefaultThreadKey, 5, tag, 3, symbolic.Tag{}, CmpGT, true)
	assert.True(t, taken)

	snap := r.Buffer(DefaultThreadKey).Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "(x > 3)", snap[0].Expr.String())
}

func TestIcmpJumpRecordsComplementWhenNotTaken(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	taken := r.IcmpJump(DefaultThreadKey, 5, tag, 3, symbolic.Tag{}, CmpGT, false)
	assert.False(t, taken)

	snap := r.Buffer(DefaultThreadKey).Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "(x <= 3)", snap[0].Expr.String())
}

func TestIcmpJumpSkippedWhenNeitherOperandSymbolic(t *testing.T) {
	r, _ := newTestRecorder(t, 10)

	taken := r.IcmpJump(DefaultThreadKey, 1, symbolic.Tag{}, 2, symbolic.Tag{}, CmpLT, true)
	assert.True(t, taken)
	assert.Equal(t, 0, r.Buffer(DefaultThreadKey).Len())
}

func TestBranchUnaryAgainstZero(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	taken := r.Branch(DefaultThreadKey, tag, 0, IFEQ, true)
	assert.True(t, taken)

	snap := r.Buffer(DefaultThreadKey).Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "(x == 0)", snap[0].Expr.String())
}

func TestLcmpNormalSign(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	sign := r.Lcmp(DefaultThreadKey, 3, tag, 7, symbolic.Tag{})
	assert.Equal(t, -1, sign)

	snap := r.Buffer(DefaultThreadKey).Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "(x < 7)", snap[0].Expr.String())
	assert.True(t, snap[0].Op.IsThreeWay())

	alts := ThreeWayAlternatives(snap[0])
	require.Len(t, alts, 2)
	assert.Equal(t, "(x == 7)", alts[0].String())
	assert.Equal(t, "(x > 7)", alts[1].String())
}

func TestFcmplNaNYieldsNegativeOne(t *testing.T) {
	r, tag := newTestRecorder(t, 10)
	nan := float64(0)
	nan = nan / nan

	sign := r.Fcmpl(DefaultThreadKey, nan, tag, 1.0, symbolic.Tag{})
	assert.Equal(t, -1, sign)
}

func TestFcmpgNaNYieldsPositiveOne(t *testing.T) {
	r, tag := newTestRecorder(t, 10)
	nan := float64(0)
	nan = nan / nan

	sign := r.Fcmpg(DefaultThreadKey, nan, tag, 1.0, symbolic.Tag{})
	assert.Equal(t, 1, sign)
}

func TestSwitchCaseDefaultArmNotRecorded(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	selected := r.SwitchCase(DefaultThreadKey, tag, -1)
	assert.Equal(t, int64(-1), selected)
	assert.Equal(t, 0, r.Buffer(DefaultThreadKey).Len())
}

func TestSwitchCaseMatchedArmRecordsEquality(t *testing.T) {
	r, tag := newTestRecorder(t, 10)

	selected := r.SwitchCase(DefaultThreadKey, tag, 2)
	assert.Equal(t, int64(2), selected)

	snap := r.Buffer(DefaultThreadKey).Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "(x == 2)", snap[0].Expr.String())
}

// TestReentrancyBoundary exercises spec.md §8 scenario 6: calls at depth
// 1..bound-1 record normally, the call that pushes depth to exactly the
// bound is a no-op, and depth unwinds correctly afterward so a later,
// non-reentrant call records again.
func TestReentrancyBoundary(t *testing.T) {
	const bound = 3
	r, tag := newTestRecorder(t, bound)

	var release []func()
	depthRecorded := func(n int) bool {
		proceed, rel := r.enter(DefaultThreadKey)
		release = append(release, rel)
		return proceed
	}

	assert.True(t, depthRecorded(1))
	assert.True(t, depthRecorded(2))
	assert.False(t, depthRecorded(3)) // depth == bound: no-op

	var reentrancyErr *errs.RecorderReentrancy
	require.ErrorAs(t, r.ReentrancyError(), &reentrancyErr)
	assert.Equal(t, bound, reentrancyErr.Bound)

	for _, rel := range release {
		rel()
	}

	// Depth has unwound to zero; a fresh call records normally again.
	taken := r.IcmpJump(DefaultThreadKey, 1, tag, 0, symbolic.Tag{}, CmpEQ, false)
	assert.False(t, taken)
	assert.Equal(t, 1, r.Buffer(DefaultThreadKey).Len())
}

func TestShutdownStopsRecording(t *testing.T) {
	r, tag := newTestRecorder(t, 10)
	r.Shutdown()

	taken := r.IcmpJump(DefaultThreadKey, 1, tag, 0, symbolic.Tag{}, CmpEQ, true)
	assert.True(t, taken)
	assert.Equal(t, 0, r.Buffer(DefaultThreadKey).Len())
}

func TestInterceptionDisabledStopsRecording(t *testing.T) {
	r, tag := newTestRecorder(t, 10)
	r.SetInterceptionEnabled(false)

	taken := r.IcmpJump(DefaultThreadKey, 1, tag, 0, symbolic.Tag{}, CmpEQ, true)
	assert.True(t, taken)
	assert.Equal(t, 0, r.Buffer(DefaultThreadKey).Len())
}
