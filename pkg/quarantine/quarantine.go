// Package quarantine holds the transient list of (inputIndex, owned
// reference) pairs for rows that did not conform to the normal-case type.
// Every encoder, fast or slow, appends to the same List; the orchestrator
// drains it exactly once per call.
package quarantine

import "github.com/lakeforge/rowcore/pkg/ownref"

// Entry pairs a rejected row's original input index with the owned
// reference taken on it.
type Entry struct {
	Index int
	Ref   *ownref.Ref
}

// List is the quarantine for one ingestion call.
type List struct {
	entries []Entry
}

// Add quarantines the value at index, acquiring an owned reference on it.
// Used by the fast encoders, which never hold a reference before the
// type-check rejects.
func (l *List) Add(index int, value any) {
	l.entries = append(l.entries, Entry{Index: index, Ref: ownref.Acquire(value)})
}

// AddRef quarantines an already-acquired reference, transferring
// ownership to the list rather than taking a second reference. Used by
// the slow encoder, which acquires before conversion and must not
// double-acquire on rejection.
func (l *List) AddRef(index int, ref *ownref.Ref) {
	l.entries = append(l.entries, Entry{Index: index, Ref: ref})
}

// Entries returns the quarantined entries in index order.
func (l *List) Entries() []Entry { return l.entries }

// Len reports how many rows are quarantined.
func (l *List) Len() int { return len(l.entries) }

// Drain releases every owned reference and empties the list. Must be
// called exactly once per ingestion call, on every path (normal,
// interrupted, or errored).
func (l *List) Drain() {
	for _, e := range l.entries {
		e.Ref.Release()
	}
	l.entries = nil
}
