package symbolic

import (
	"github.com/concolith/concolith/constraint"
	"github.com/google/uuid"
)

// Symbolicator implements the inbound Symbolicator interface of spec.md
// §6: it declares symbolic variables, issues them identity Tags, and
// manages the lifecycle of the registered label set.
type Symbolicator struct {
	Labels    *LabelRegistry
	Variables *Registry
}

// NewSymbolicator constructs a Symbolicator with fresh, empty registries.
func NewSymbolicator() *Symbolicator {
	return &Symbolicator{
		Labels:    NewLabelRegistry(),
		Variables: NewRegistry(),
	}
}

// MakeSymbolicInt declares an integer-sorted symbolic variable seeded at
// seed, registers name as a symbolic label, and returns the Tag to attach
// to the instrumented runtime value.
func (s *Symbolicator) MakeSymbolicInt(name string, seed int64) (Tag, error) {
	return s.makeSymbolic(name, constraint.SortInt, seed)
}

// MakeSymbolicReal declares a real-sorted symbolic variable.
func (s *Symbolicator) MakeSymbolicReal(name string, seed float64) (Tag, error) {
	return s.makeSymbolic(name, constraint.SortReal, seed)
}

// MakeSymbolicString declares a string-sorted symbolic variable.
func (s *Symbolicator) MakeSymbolicString(name string, seed string) (Tag, error) {
	return s.makeSymbolic(name, constraint.SortString, seed)
}

func (s *Symbolicator) makeSymbolic(name string, sort constraint.Sort, seed any) (Tag, error) {
	if _, err := s.Variables.Declare(name, sort, seed); err != nil {
		return Tag{}, err
	}
	s.Labels.Add(name)
	return NewTag(name), nil
}

// AddLabel registers an additional symbolic label not tied to a declared
// variable (spec.md §6).
func (s *Symbolicator) AddLabel(label string) {
	s.Labels.Add(label)
}

// ClearLabels clears the registered label set without touching declared
// variables.
func (s *Symbolicator) ClearLabels() {
	s.Labels.Clear()
}

// Reset clears session state: both the registered labels and the declared
// variables (spec.md §6).
func (s *Symbolicator) Reset() {
	s.Labels.Clear()
	s.Variables.Clear()
}

// NewSessionID returns a fresh unique identifier for a session, using
// github.com/google/uuid the way the teacher's fuzzing/types
// package identifies call messages and test cases.
func NewSessionID() string {
	return uuid.NewString()
}
