// Package report renders an explorer.Result as the session output document
// of spec.md §6, plus an additional CBOR snapshot for compact storage.
package report

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/concolith/concolith/explorer"
)

// PathDocument is the per-path entry of spec.md §6's Output format.
type PathDocument struct {
	Seeds       map[string]any `json:"seeds"`
	Constraints []string       `json:"constraints"`
	DurationNS  uint64         `json:"duration_ns"`
}

// Document is the one-JSON-document-per-session shape of spec.md §6.
type Document struct {
	Paths            []PathDocument `json:"paths"`
	Iterations       int            `json:"iterations"`
	TerminatedReason string         `json:"terminated_reason"`
}

// FromResult converts an explorer.Result into its wire Document form.
func FromResult(result explorer.Result) Document {
	doc := Document{
		Paths:            make([]PathDocument, 0, len(result.Paths)),
		Iterations:       result.Iterations,
		TerminatedReason: result.TerminatedReason,
	}
	for _, p := range result.Paths {
		doc.Paths = append(doc.Paths, PathDocument{
			Seeds:       p.Seeds,
			Constraints: p.Constraints,
			DurationNS:  p.DurationNS,
		})
	}
	return doc
}

// WriteJSON serializes doc to path as indented JSON.
func (d Document) WriteJSON(path string) error {
	b, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Marshal serializes doc to JSON bytes, e.g. for writing to stdout.
func (d Document) Marshal() ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
