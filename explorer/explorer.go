// Package explorer implements C7 (spec.md §4.7): the driver that
// repeatedly runs a host, negates suffixes of the path condition it
// observed, solves for new seeds, and iterates to a fixpoint or a bound.
package explorer

import (
	"context"
	"time"

	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/solver"
	"github.com/concolith/concolith/trace"
)

// ExecuteFunc runs the host once with the given seed assignment and
// returns the PC snapshot the host's Recorder collected. The Explorer
// does not reach inside the Recorder (spec.md §4.7) — it is the host's
// responsibility to snapshot and reset its own thread's PathCondition
// buffer around this call.
type ExecuteFunc func(seeds map[string]any) ([]trace.Constraint, error)

// Explorer drives one exploration session: the INIT->RUN->COLLECT->...->
// DONE state machine of spec.md §4.7.
type Explorer struct {
	// Solver is the capability every candidate formula is solved through,
	// unless Hooks.SolveFunc overrides it.
	Solver solver.Solver

	// MaxIterations is the hard upper bound on host executions (spec.md
	// §6 max_iterations, default 100).
	MaxIterations int

	Hooks  Hooks
	Events Events

	metrics      *Metrics
	fingerprints *Fingerprinter
}

// DefaultMaxIterations is the design default of spec.md §6.
const DefaultMaxIterations = 100

// NewExplorer constructs an Explorer bound to the given Solver capability.
func NewExplorer(s solver.Solver, maxIterations int) *Explorer {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Explorer{
		Solver:        s,
		MaxIterations: maxIterations,
		metrics:       NewMetrics(),
		fingerprints:  NewFingerprinter(),
	}
}

// Metrics returns the Explorer's running counters.
func (e *Explorer) Metrics() *Metrics { return e.metrics }

func (e *Explorer) solve(expr constraint.Expr) (solver.Solution, error) {
	if e.Hooks.SolveFunc != nil {
		return e.Hooks.SolveFunc(expr)
	}
	return e.Solver.Solve(expr)
}

func (e *Explorer) fingerprint(pc []trace.Constraint) string {
	if e.Hooks.FingerprintFunc != nil {
		return e.Hooks.FingerprintFunc(pc)
	}
	return e.fingerprints.Fingerprint(pc)
}

// Run executes the exploration loop of spec.md §4.7 starting from seeds,
// driving the host via execute, until the work queue empties, the
// MaxIterations bound is reached, or ctx is cancelled. It propagates only
// HostFailure (spec.md §7); all other exploration-ending conditions are
// reported via Result.TerminatedReason rather than an error.
func (e *Explorer) Run(ctx context.Context, seeds map[string]any, execute ExecuteFunc) (Result, error) {
	seen := make(map[string]struct{})
	tracker := &assignmentTracker{}
	tracker.record(toSolution(seeds))
	var queue []candidate

	currentSeeds := cloneSeeds(seeds)
	var records []PathRecord
	iterations := 0
	reason := ReasonExhausted

	for {
		select {
		case <-ctx.Done():
			reason = ReasonCancelled
			return e.finish(records, iterations, reason), nil
		default:
		}

		if iterations >= e.MaxIterations {
			reason = ReasonMaxIterations
			return e.finish(records, iterations, reason), nil
		}

		start := time.Now()
		pc, err := execute(currentSeeds)
		iterations++
		e.metrics.recordIteration()
		if err != nil {
			e.Events.IterationDone.Publish(IterationDoneEvent{Iteration: iterations})
			return e.finish(records, iterations, reason), errs.NewHostFailure(err)
		}
		duration := time.Since(start)

		fp := e.fingerprint(pc)
		newPath := false
		if _, ok := seen[fp]; !ok {
			seen[fp] = struct{}{}
			newPath = true
			record := PathRecord{
				Seeds:       cloneSeeds(currentSeeds),
				Constraints: printPC(pc),
				DurationNS:  uint64(duration.Nanoseconds()),
			}
			records = append(records, record)
			e.metrics.recordPathFound()
			e.Events.PathDiscovered.Publish(PathDiscoveredEvent{Record: record})

			queue = append(queue, generateCandidates(pc)...)
		}
		e.Events.IterationDone.Publish(IterationDoneEvent{Iteration: iterations, NewPath: newPath})

		nextSeeds, found := e.popNextSeeds(&queue, tracker, currentSeeds)
		if !found {
			reason = ReasonExhausted
			return e.finish(records, iterations, reason), nil
		}
		currentSeeds = nextSeeds
	}
}

// popNextSeeds pops candidates off queue until one solves satisfiably,
// merging the solution into currentSeeds. Returns (nil, false) once the
// queue is exhausted (spec.md §4.7 step 5).
func (e *Explorer) popNextSeeds(queue *[]candidate, tracker *assignmentTracker, currentSeeds map[string]any) (map[string]any, bool) {
	for len(*queue) > 0 {
		cand := (*queue)[0]
		*queue = (*queue)[1:]

		sol, err := freshAssignment(e.solve, tracker, cand.formula)
		e.metrics.recordCandidateTried()
		if err != nil {
			e.metrics.recordUnsat()
			continue
		}
		return mergeSeeds(currentSeeds, sol), true
	}
	return nil, false
}

func (e *Explorer) finish(records []PathRecord, iterations int, reason string) Result {
	e.Events.ExplorationStopped.Publish(ExplorationStoppedEvent{Reason: reason, Iterations: iterations})
	return Result{Paths: records, Iterations: iterations, TerminatedReason: reason}
}

func cloneSeeds(seeds map[string]any) map[string]any {
	out := make(map[string]any, len(seeds))
	for k, v := range seeds {
		out[k] = v
	}
	return out
}

func toSolution(seeds map[string]any) solver.Solution {
	out := make(solver.Solution, len(seeds))
	for k, v := range seeds {
		out[k] = v
	}
	return out
}

func mergeSeeds(base map[string]any, sol solver.Solution) map[string]any {
	out := cloneSeeds(base)
	for k, v := range sol {
		out[k] = v
	}
	return out
}

func printPC(pc []trace.Constraint) []string {
	out := make([]string, 0, len(pc))
	for _, c := range pc {
		if c.Expr != nil {
			out = append(out, c.Expr.String())
		}
	}
	return out
}
