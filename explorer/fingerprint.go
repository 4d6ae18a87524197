package explorer

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/concolith/concolith/trace"
	"golang.org/x/crypto/sha3"
)

// Fingerprint computes the canonical, order-preserving hash of a PC
// snapshot (spec.md §4.7 step 2), used as the key of the Explorer's `seen`
// set. Grounded on valuegeneration/value_set.go's hashProvider field,
// reused here across the Explorer's lifetime rather than recreated per
// call.
type Fingerprinter struct {
	hashProvider hash.Hash
}

// NewFingerprinter constructs a Fingerprinter with a fresh hash provider.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{hashProvider: sha3.NewLegacyKeccak256()}
}

// Fingerprint returns the hex-encoded hash of the PC's printed, ordered
// form. A Constraint with a nil Expr contributes its operands and observed
// outcome instead; the Recorder sets Expr on every Constraint it appends,
// three-way compares included.
func (f *Fingerprinter) Fingerprint(pc []trace.Constraint) string {
	f.hashProvider.Reset()
	for _, c := range pc {
		if c.Expr != nil {
			f.hashProvider.Write([]byte(c.Expr.String()))
		} else {
			f.hashProvider.Write([]byte(fmt.Sprintf("3way(%s,%s)=%v", c.Left.String(), c.Right.String(), c.Outcome)))
		}
		f.hashProvider.Write([]byte{0})
	}
	return hex.EncodeToString(f.hashProvider.Sum(nil))
}
