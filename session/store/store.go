// Package store persists a Session's discovered fingerprints and
// PathRecords to disk between runs, so a `replay` invocation can reprint
// the path records of an earlier `explore --store` run. Nothing in this
// module loads a stored seen-set back into an Explorer; each exploration
// starts from an empty seen-set.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/concolith/concolith/explorer"
)

var (
	bucketMeta  = []byte("meta")
	bucketPaths = []byte("paths")
	bucketSeen  = []byte("seen")
)

var schemaVersionKey = []byte("schema_version")

// CurrentSchemaVersion is the on-disk schema version this package writes
// and checks for compatibility on Open. Bump the major component whenever
// the stored record shapes change incompatibly.
const CurrentSchemaVersion = "1.0.0"

// Store is a bbolt-backed, batched-write persistence layer for one
// exploration session's seen fingerprints and PathRecords, grounded on the
// teacher's pending-write-then-flush persistentCache design.
type Store struct {
	db *bbolt.DB

	pendingMutex   sync.Mutex
	pendingPaths   []explorer.PathRecord
	pendingSeen    []string
	flushThreshold int
}

// Open opens (creating if absent) a Store at path, verifying its schema
// version is compatible with CurrentSchemaVersion.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketPaths, bucketSeen} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	s := &Store{db: db, flushThreshold: 25}
	if err := s.checkSchemaVersion(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// checkSchemaVersion stamps a fresh store with CurrentSchemaVersion, or
// rejects an existing one whose major version differs from this build's,
// per the compiler-version range matching style of
// compilation/platforms/solc.go.
func (s *Store) checkSchemaVersion() error {
	current, err := semver.NewVersion(CurrentSchemaVersion)
	if err != nil {
		return errors.WithStack(err)
	}

	var stored string
	err = s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(schemaVersionKey); v != nil {
			stored = string(v)
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if stored == "" {
		return errors.WithStack(s.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketMeta).Put(schemaVersionKey, []byte(CurrentSchemaVersion))
		}))
	}

	storedVersion, err := semver.NewVersion(stored)
	if err != nil {
		return errors.Wrapf(err, "stored schema version %q is not valid semver", stored)
	}
	if storedVersion.Major() != current.Major() {
		return errors.Errorf("store schema version %s is incompatible with this build's %s", storedVersion, current)
	}
	return nil
}

// RecordPath queues record for write, flushing once flushThreshold pending
// writes (paths and fingerprints combined) accumulate.
func (s *Store) RecordPath(record explorer.PathRecord) error {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()

	s.pendingPaths = append(s.pendingPaths, record)
	if len(s.pendingPaths)+len(s.pendingSeen) >= s.flushThreshold {
		return s.flushLocked()
	}
	return nil
}

// RecordSeen queues fingerprint for write.
func (s *Store) RecordSeen(fingerprint string) error {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()

	s.pendingSeen = append(s.pendingSeen, fingerprint)
	if len(s.pendingPaths)+len(s.pendingSeen) >= s.flushThreshold {
		return s.flushLocked()
	}
	return nil
}

// Flush writes any queued records to disk immediately.
func (s *Store) Flush() error {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		paths := tx.Bucket(bucketPaths)
		for _, p := range s.pendingPaths {
			b, err := json.Marshal(p)
			if err != nil {
				return err
			}
			seq, err := paths.NextSequence()
			if err != nil {
				return err
			}
			if err := paths.Put([]byte(fmt.Sprintf("%020d", seq)), b); err != nil {
				return err
			}
		}

		seen := tx.Bucket(bucketSeen)
		for _, fp := range s.pendingSeen {
			if err := seen.Put([]byte(fp), []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	s.pendingPaths = s.pendingPaths[:0]
	s.pendingSeen = s.pendingSeen[:0]
	return nil
}

// LoadPaths returns every PathRecord persisted so far, in insertion order.
func (s *Store) LoadPaths() ([]explorer.PathRecord, error) {
	var records []explorer.PathRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPaths).ForEach(func(_, v []byte) error {
			var r explorer.PathRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}

// HasSeen reports whether fingerprint has already been recorded, checking
// both the flushed store and any not-yet-flushed pending writes.
func (s *Store) HasSeen(fingerprint string) (bool, error) {
	s.pendingMutex.Lock()
	for _, fp := range s.pendingSeen {
		if fp == fingerprint {
			s.pendingMutex.Unlock()
			return true, nil
		}
	}
	s.pendingMutex.Unlock()

	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketSeen).Get([]byte(fingerprint)) != nil
		return nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return found, nil
}

// Close flushes pending writes and closes the underlying database.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return errors.WithStack(s.db.Close())
}
