// Package config defines the recognized configuration options of spec.md
// §6 and their JSON file persistence.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/concolith/concolith/errs"
)

// Options describes the recognized options of spec.md §6's Configuration
// table, serialized as one JSON document per exploration session.
type Options struct {
	// Debug emits per-event diagnostics to the standard error stream via
	// trace.Recorder.Debug.
	Debug bool `json:"debug"`

	// InterceptionEnabled is the master gate for the Recorder; when false,
	// every recorder entry point is a no-op.
	InterceptionEnabled bool `json:"interceptionEnabled"`

	// MaxRecursionDepth is the reentrancy bound (default 10).
	MaxRecursionDepth int `json:"maxRecursionDepth"`

	// MaxIterations is the Explorer termination bound (default 100).
	MaxIterations int `json:"maxIterations"`

	// SearchWidth is the solver's scan window (default 1000).
	SearchWidth int `json:"searchWidth"`
}

// ReadOptionsFromFile reads a JSON-serialized Options from path, starting
// from DefaultOptions so any field the file omits keeps its default.
func ReadOptionsFromFile(path string) (*Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	opts := DefaultOptions()
	if err := json.Unmarshal(b, opts); err != nil {
		return nil, errors.WithStack(err)
	}
	return opts, nil
}

// WriteToFile writes o to path in a JSON-serialized format.
func (o *Options) WriteToFile(path string) error {
	b, err := json.MarshalIndent(o, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Validate checks that o meets the positivity requirements spec.md §6
// implies for its bounded fields. A violation is an invalid-configuration
// error (errs.InvalidConfig, surfaced as exit code 2 by cmd/).
func (o *Options) Validate() error {
	if o.MaxRecursionDepth <= 0 {
		return errs.NewInvalidConfig("max recursion depth must be a positive number")
	}
	if o.MaxIterations <= 0 {
		return errs.NewInvalidConfig("max iterations must be a positive number")
	}
	if o.SearchWidth <= 0 {
		return errs.NewInvalidConfig("search width must be a positive number")
	}
	return nil
}
