// Package memdriver is a reference in-memory implementation of the
// driver.Driver contract, adapted from the arena-allocation style used
// elsewhere for bulk memory management. It exists so the ingestion core is
// runnable and testable end to end; it is not the allocator contract
// itself, which remains an external collaborator.
package memdriver

import (
	"sync"
	"sync/atomic"

	"github.com/lakeforge/rowcore/pkg/driver"
	"github.com/lakeforge/rowcore/pkg/partition"
)

// Driver serves writable partitions from arena-style chunks, opening a new
// chunk when the existing ones are full, and falls back to direct
// allocation once maxArenas chunks are in use and full, or when a request
// exceeds the chunk size.
type Driver struct {
	mu         sync.Mutex
	chunkSize  int
	arenas     []*arena
	maxArenas  int
	allocCount int64
}

type arena struct {
	data   []byte
	offset int
}

// New returns a Driver serving chunkSize-byte arenas, up to maxArenas of
// them, before falling back to direct per-partition allocation.
func New(chunkSize, maxArenas int) *Driver {
	return &Driver{chunkSize: chunkSize, maxArenas: maxArenas}
}

// AllocWritablePartition implements driver.Driver.
func (d *Driver) AllocWritablePartition(minSize int, schema partition.Schema, hint string) (driver.Partition, error) {
	atomic.AddInt64(&d.allocCount, 1)
	buf := d.alloc(minSize)
	return &Partition{buf: buf}, nil
}

// AllocCount reports how many partitions this driver has handed out, for
// diagnostics and tests.
func (d *Driver) AllocCount() int64 { return atomic.LoadInt64(&d.allocCount) }

func (d *Driver) alloc(size int) []byte {
	if size > d.chunkSize {
		return make([]byte, size)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range d.arenas {
		if a.offset+size <= len(a.data) {
			start := a.offset
			a.offset += size
			return a.data[start:a.offset]
		}
	}

	if len(d.arenas) < d.maxArenas {
		a := &arena{data: make([]byte, d.chunkSize)}
		a.offset = size
		d.arenas = append(d.arenas, a)
		return a.data[0:size]
	}

	return make([]byte, size)
}

// Partition is memdriver's driver.Partition implementation: a plain byte
// slice with a flag recording whether it is write-locked. The flag is not
// checked by any method.
type Partition struct {
	buf    []byte
	locked bool
	size   int
}

func (p *Partition) Capacity() int { return len(p.buf) }

func (p *Partition) LockWriteRaw() []byte {
	p.locked = true
	return p.buf
}

func (p *Partition) UnlockWrite(usedBytes int) {
	p.locked = false
	p.size = usedBytes
}

func (p *Partition) Size() int { return p.size }

// Bytes returns the partition's backing buffer truncated to its committed
// size, for tests that read rows back out.
func (p *Partition) Bytes() []byte { return p.buf[:p.size] }
