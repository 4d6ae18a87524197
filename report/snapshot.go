package report

import (
	"os"

	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
)

// WriteCBORSnapshot serializes doc as CBOR to path, a more compact
// alternative to WriteJSON suited to archiving many sessions, grounded on
// the teacher's CBOR use for embedded contract metadata.
func (d Document) WriteCBORSnapshot(path string) error {
	b, err := cbor.Marshal(d, cbor.EncOptions{})
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// ReadCBORSnapshot decodes a Document previously written by
// WriteCBORSnapshot.
func ReadCBORSnapshot(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.WithStack(err)
	}
	var doc Document
	if err := cbor.Unmarshal(b, &doc); err != nil {
		return Document{}, errors.WithStack(err)
	}
	return doc, nil
}
