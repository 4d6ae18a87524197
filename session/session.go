// Package session implements spec.md §9's explicit Session value: the
// label registry, shutdown flag, and per-thread Recorder state that
// together form the module's process-wide state, bundled so a host can
// thread it explicitly instead of reaching for global variables.
package session

import (
	"sync"

	"github.com/concolith/concolith/symbolic"
	"github.com/concolith/concolith/trace"
)

// DefaultMaxRecursionDepth is the reentrancy bound of spec.md §6 applied
// when a Session is constructed without an explicit override.
const DefaultMaxRecursionDepth = 10

// Session bundles a Symbolicator and the Recorder built against its label
// and variable registries, the unit a host threads through its own
// comparison sites.
type Session struct {
	ID           string
	Symbolicator *symbolic.Symbolicator
	Recorder     *trace.Recorder
}

// New constructs a fresh Session with the given reentrancy bound.
func New(maxRecursionDepth int) *Session {
	symb := symbolic.NewSymbolicator()
	return &Session{
		ID:           symbolic.NewSessionID(),
		Symbolicator: symb,
		Recorder:     trace.NewRecorder(symb.Labels, symb.Variables, maxRecursionDepth),
	}
}

// Shutdown permanently disables recording for this Session by setting its
// Recorder's shutdown flag (spec.md §4.4).
func (s *Session) Shutdown() { s.Recorder.Shutdown() }

// Reset clears key's thread-local PC buffer and this Session's label and
// variable state, mirroring the Symbolicator interface's `reset()` entry
// point of spec.md §6.
func (s *Session) Reset(key trace.ThreadKey) {
	s.Recorder.ResetBuffer(key)
	s.Symbolicator.Reset()
}

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns the process-wide Session façade spec.md §9 describes for
// hosts that cannot pass a Session through their own comparison sites. It
// is lazily constructed on first use with DefaultMaxRecursionDepth; hosts
// that need a different bound should construct their own Session with New
// instead.
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = New(DefaultMaxRecursionDepth)
	})
	return defaultSession
}
