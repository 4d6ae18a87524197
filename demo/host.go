// Package demo provides small instrumented hosts exercising the concrete
// scenarios of spec.md §8, used by explorer's tests and by `concolith
// explore --demo`.
package demo

import (
	"github.com/concolith/concolith/explorer"
	"github.com/concolith/concolith/symbolic"
	"github.com/concolith/concolith/trace"
)

// Host bundles a Symbolicator and a Recorder into one instrumented
// process, the way a real target program would wire its own
// instrumentation against this module.
type Host struct {
	Symbolicator *symbolic.Symbolicator
	Recorder     *trace.Recorder
}

// NewHost constructs a fresh Host with the given reentrancy bound.
func NewHost(maxRecursionDepth int) *Host {
	symb := symbolic.NewSymbolicator()
	rec := trace.NewRecorder(symb.Labels, symb.Variables, maxRecursionDepth)
	return &Host{Symbolicator: symb, Recorder: rec}
}

func (h *Host) snapshot() []trace.Constraint {
	return h.Recorder.Buffer(trace.DefaultThreadKey).Snapshot()
}

func (h *Host) reset() {
	h.Recorder.ResetBuffer(trace.DefaultThreadKey)
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

// FiveCaseSelect implements spec.md §8 scenario 1: a five-armed switch on
// a symbolic int `choice` seeded at 0. Any value outside [0,4] dispatches
// to the default arm (selectedCase -1), for which SwitchCase records
// nothing, so the five named cases are the only paths the exploration can
// ever discover.
func (h *Host) FiveCaseSelect() (map[string]any, explorer.ExecuteFunc) {
	tag, _ := h.Symbolicator.MakeSymbolicInt("choice", 0)
	seeds := map[string]any{"choice": int64(0)}

	execute := func(seeds map[string]any) ([]trace.Constraint, error) {
		h.reset()
		choice := asInt64(seeds["choice"])
		selected := choice
		if choice < 0 || choice > 4 {
			selected = -1
		}
		h.Recorder.SwitchCase(trace.DefaultThreadKey, tag, selected)
		return h.snapshot(), nil
	}
	return seeds, execute
}

// SingleBranch implements spec.md §8 scenario 2: a comparison of `x`
// against the literal bound 10, on a symbolic int `x` seeded at 5.
func (h *Host) SingleBranch() (map[string]any, explorer.ExecuteFunc) {
	tag, _ := h.Symbolicator.MakeSymbolicInt("x", 5)
	seeds := map[string]any{"x": int64(5)}

	execute := func(seeds map[string]any) ([]trace.Constraint, error) {
		h.reset()
		x := asInt64(seeds["x"])
		h.Recorder.IcmpJump(trace.DefaultThreadKey, x, tag, 10, symbolic.Tag{}, trace.CmpGT, x > 10)
		return h.snapshot(), nil
	}
	return seeds, execute
}

// ConjunctionPruning implements spec.md §8 scenario 3: `x >= 0` followed
// by `x < 100`, each compared against its literal bound, on a symbolic
// int `x` seeded at 0.
func (h *Host) ConjunctionPruning() (map[string]any, explorer.ExecuteFunc) {
	tag, _ := h.Symbolicator.MakeSymbolicInt("x", 0)
	seeds := map[string]any{"x": int64(0)}

	execute := func(seeds map[string]any) ([]trace.Constraint, error) {
		h.reset()
		x := asInt64(seeds["x"])
		h.Recorder.IcmpJump(trace.DefaultThreadKey, x, tag, 0, symbolic.Tag{}, trace.CmpGE, x >= 0)
		h.Recorder.IcmpJump(trace.DefaultThreadKey, x, tag, 100, symbolic.Tag{}, trace.CmpLT, x < 100)
		return h.snapshot(), nil
	}
	return seeds, execute
}
