package explorer_test

import (
	"context"
	"testing"

	"github.com/concolith/concolith/demo"
	"github.com/concolith/concolith/explorer"
	"github.com/concolith/concolith/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFiveCaseSelect covers spec.md §8 scenario 1.
func TestFiveCaseSelect(t *testing.T) {
	host := demo.NewHost(10)
	seeds, execute := host.FiveCaseSelect()

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(1000), 6)
	result, err := exp.Run(context.Background(), seeds, execute)
	require.NoError(t, err)

	// Choice values outside [0,4] dispatch to the default arm, for which
	// SwitchCase records nothing, so exactly the five named cases are
	// discoverable and the run converges instead of inventing new paths
	// for every out-of-range value the solver proposes.
	require.Len(t, result.Paths, 5)
	assert.Equal(t, explorer.ReasonExhausted, result.TerminatedReason)

	seen := make(map[int64]bool)
	for _, p := range result.Paths {
		seen[p.Seeds["choice"].(int64)] = true
	}
	for k := int64(0); k < 5; k++ {
		assert.True(t, seen[k], "expected a path for choice == %d", k)
	}
}

// TestSingleBranch covers spec.md §8 scenario 2.
func TestSingleBranch(t *testing.T) {
	host := demo.NewHost(10)
	seeds, execute := host.SingleBranch()

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(1000), 10)
	result, err := exp.Run(context.Background(), seeds, execute)
	require.NoError(t, err)

	require.Len(t, result.Paths, 2)

	var sawLow, sawHigh bool
	for _, p := range result.Paths {
		x := p.Seeds["x"].(int64)
		if x <= 10 {
			sawLow = true
		} else {
			sawHigh = true
		}
	}
	assert.True(t, sawLow)
	assert.True(t, sawHigh)
}

// TestConjunctionPruning covers spec.md §8 scenario 3.
func TestConjunctionPruning(t *testing.T) {
	host := demo.NewHost(10)
	seeds, execute := host.ConjunctionPruning()

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(1000), 10)
	result, err := exp.Run(context.Background(), seeds, execute)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Paths), 3)

	var negative, midRange, highRange bool
	for _, p := range result.Paths {
		x := p.Seeds["x"].(int64)
		switch {
		case x < 0:
			negative = true
		case x >= 0 && x < 100:
			midRange = true
		case x >= 100:
			highRange = true
		}
	}
	assert.True(t, negative, "expected a path with x < 0")
	assert.True(t, midRange, "expected a path with 0 <= x < 100")
	assert.True(t, highRange, "expected a path with x >= 100")
}

func TestMaxIterationsTerminatesRun(t *testing.T) {
	host := demo.NewHost(10)
	seeds, execute := host.SingleBranch()

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(1000), 1)
	result, err := exp.Run(context.Background(), seeds, execute)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, explorer.ReasonMaxIterations, result.TerminatedReason)
}

func TestCancellationStopsRun(t *testing.T) {
	host := demo.NewHost(10)
	seeds, execute := host.FiveCaseSelect()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := explorer.NewExplorer(solver.NewBoundedLinearSolver(1000), 10)
	result, err := exp.Run(ctx, seeds, execute)
	require.NoError(t, err)
	assert.Equal(t, explorer.ReasonCancelled, result.TerminatedReason)
	assert.Equal(t, 0, result.Iterations)
}
