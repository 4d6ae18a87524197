package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/concolith/concolith/explorer"
)

func TestRecordAndLoadPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	record := explorer.PathRecord{
		Seeds:       map[string]any{"x": float64(5)},
		Constraints: []string{"(x > 10)"},
		DurationNS:  42,
	}
	require.NoError(t, s.RecordPath(record))
	require.NoError(t, s.Flush())

	loaded, err := s.LoadPaths()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, record.Constraints, loaded[0].Constraints)
}

func TestHasSeenFindsPendingAndFlushedFingerprints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordSeen("fp-pending"))
	found, err := s.HasSeen("fp-pending")
	require.NoError(t, err)
	assert.True(t, found, "pending writes must be visible before flush")

	require.NoError(t, s.Flush())
	found, err = s.HasSeen("fp-pending")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.HasSeen("never-seen")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFlushesAutomaticallyPastThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < s.flushThreshold+1; i++ {
		require.NoError(t, s.RecordSeen(string(rune('a'+i%26))+"-fp"))
	}
	assert.Empty(t, s.pendingSeen, "threshold crossing should have flushed automatically")
}

func TestReopenWithCompatibleSchemaSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
}

func TestReopenWithIncompatibleSchemaFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(schemaVersionKey, []byte("9.0.0"))
	}))
	require.NoError(t, s1.Close())

	_, err = Open(path)
	assert.Error(t, err)
}
