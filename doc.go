// Package rowcore implements the host-to-engine data ingestion core of a
// data-parallel computation engine: it turns a heterogeneous,
// dynamically-typed in-memory sequence into typed, row-major binary
// partitions, while inferring a normal-case row type from a sample,
// quarantining values that violate it, and honoring caller-supplied schema
// hints and column names.
//
// # Architecture
//
// Ingestion runs in three stages:
//
//  1. Type inference (pkg/sample, pkg/dictproj): a bounded prefix of the
//     input is classified against the type lattice (pkg/rowtype) and
//     collapsed into a single normal-case row type, lifting Option(T) and
//     tuple super-types under a threshold band.
//
//  2. Encoding (pkg/encode): one of five fast, type-specialized encoders
//     handles the common cases (bool, int, float, string, tuple-of-scalars);
//     anything else falls back to the generic slow encoder, which is
//     interruptible and polls the host runtime's signal bridge (pkg/signal)
//     between rows.
//
//  3. Partitioning (pkg/partition): encoded rows are appended into a chain
//     of capacity-bounded byte buffers drawn from an external driver
//     (pkg/driver), each finalized and handed to the backend
//     (pkg/backend) once full.
//
// Values that don't conform to the normal-case type are quarantined
// (pkg/quarantine) rather than aborting the transfer; every quarantined
// object holds exactly one owned reference (pkg/ownref) until the
// orchestrator drains the list at the end of the call.
//
// # Entry point
//
// pkg/ingest.Orchestrator.Parallelize is the public operation:
//
//	drv := memdriver.New(16*1024*1024, 8)
//	ctx := localctx.New(drv)
//	o := ingest.New(ctx)
//	ds, err := o.Parallelize(context.Background(), rows, nil, nil)
//
// # Scope
//
// The partition allocator, the backend context that consumes partitions,
// file-source ingestion, and the options store are external collaborators
// whose interfaces this core consumes; pkg/driver/memdriver and
// pkg/backend/localctx are reference implementations used by tests and the
// cmd/rowcore CLI, not the contracts themselves.
package rowcore
