package explorer

import "sync/atomic"

// Metrics tracks counters for one Explorer run. Since the Explorer is
// single-threaded (spec.md §5), plain atomics suffice; adapted from the
// counter-accumulation shape of the teacher's FuzzerMetrics without the
// per-worker slice, since there is only ever one driving goroutine here.
type Metrics struct {
	iterations      atomic.Uint64
	pathsFound      atomic.Uint64
	candidatesTried atomic.Uint64
	unsatCount      atomic.Uint64
}

// NewMetrics constructs a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordIteration()      { m.iterations.Add(1) }
func (m *Metrics) recordPathFound()      { m.pathsFound.Add(1) }
func (m *Metrics) recordCandidateTried() { m.candidatesTried.Add(1) }
func (m *Metrics) recordUnsat()          { m.unsatCount.Add(1) }

// Iterations returns the number of host executions performed so far.
func (m *Metrics) Iterations() uint64 { return m.iterations.Load() }

// PathsFound returns the number of distinctly fingerprinted paths
// recorded so far.
func (m *Metrics) PathsFound() uint64 { return m.pathsFound.Load() }

// CandidatesTried returns the number of work-queue candidates solved
// (successfully or not) so far.
func (m *Metrics) CandidatesTried() uint64 { return m.candidatesTried.Load() }

// UnsatCount returns the number of candidates discarded as UNSAT,
// bounded, or unsupported so far.
func (m *Metrics) UnsatCount() uint64 { return m.unsatCount.Load() }
