package quarantine_test

import (
	"testing"

	"github.com/lakeforge/rowcore/pkg/ownref"
	"github.com/lakeforge/rowcore/pkg/quarantine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddAcquiresOneReference: Add takes exactly one owned reference per
// quarantined value, and Drain releases each exactly once.
func TestAddAcquiresOneReference(t *testing.T) {
	acquiredBefore := ownref.Acquired()
	releasedBefore := ownref.Released()

	l := &quarantine.List{}
	l.Add(0, "a")
	l.Add(2, int64(7))
	require.Equal(t, 2, l.Len())
	assert.Equal(t, acquiredBefore+2, ownref.Acquired())
	assert.Equal(t, releasedBefore, ownref.Released(), "nothing released before the drain")

	l.Drain()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, releasedBefore+2, ownref.Released())
}

// TestAddRefTransfersOwnership: AddRef must not take a second reference on
// a handle the caller already acquired.
func TestAddRefTransfersOwnership(t *testing.T) {
	ref := ownref.Acquire("v")
	acquiredAfter := ownref.Acquired()

	l := &quarantine.List{}
	l.AddRef(5, ref)
	assert.Equal(t, acquiredAfter, ownref.Acquired(), "AddRef does not double-acquire")

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Index)
	assert.Equal(t, "v", entries[0].Ref.Value)

	releasedBefore := ownref.Released()
	l.Drain()
	assert.Equal(t, releasedBefore+1, ownref.Released())
}

// TestDrainIsIdempotent: draining an already-drained list releases
// nothing further, and a released Ref tolerates a second Release.
func TestDrainIsIdempotent(t *testing.T) {
	l := &quarantine.List{}
	l.Add(0, "x")
	ref := l.Entries()[0].Ref

	l.Drain()
	releasedAfter := ownref.Released()

	l.Drain()
	ref.Release()
	assert.Equal(t, releasedAfter, ownref.Released())
}
