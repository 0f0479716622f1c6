// Package driver defines the allocator contract the partition writer draws
// on: the driver and the memory resource it hands out. This is an external
// collaborator whose interface is consumed here, not implemented; see
// pkg/driver/memdriver for a reference in-memory implementation used by
// tests and the CLI demo.
package driver

import "github.com/lakeforge/rowcore/pkg/partition"

// Partition is a driver-allocated byte buffer under exclusive write
// access. LockWriteRaw is called exactly once per partition, immediately
// after allocation, and returns a slice of length Capacity(); the writer
// holds it for the partition's entire writable lifetime and calls
// UnlockWrite exactly once when finalizing.
type Partition interface {
	Capacity() int
	LockWriteRaw() []byte
	UnlockWrite(usedBytes int)
	Size() int
}

// Driver allocates writable partitions. hint is an opaque scheduling hint
// (e.g. a preferred NUMA node or storage tier); the reference
// implementation ignores it.
type Driver interface {
	AllocWritablePartition(minSize int, schema partition.Schema, hint string) (Partition, error)
}
