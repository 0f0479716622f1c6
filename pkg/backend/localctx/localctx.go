// Package localctx is a reference in-memory implementation of
// backend.Context. It exists so the ingestion core is runnable end to end
// in tests and the CLI demo; the real backend context is an external
// collaborator.
package localctx

import (
	"github.com/google/uuid"

	"github.com/lakeforge/rowcore/pkg/backend"
	"github.com/lakeforge/rowcore/pkg/driver"
	"github.com/lakeforge/rowcore/pkg/partition"
)

// Context is a minimal backend.Context over a single driver.Driver and a
// fixed options map.
type Context struct {
	Driver  driver.Driver
	Options map[string]any
}

// New returns a Context backed by drv, seeded with the ingestion core's
// four consumed options at their documented defaults.
func New(drv driver.Driver) *Context {
	return &Context{
		Driver: drv,
		Options: map[string]any{
			"AUTO_UPCAST_NUMBERS":  false,
			"NORMALCASE_THRESHOLD": 0.9,
			"OPTIONAL_THRESHOLD":   0.9,
			"RUNTIME_LIBRARY":      "",
		},
	}
}

func (c *Context) FromPartitions(schema partition.Schema, finalized []partition.Finalized, columnNames []string) (*backend.Dataset, error) {
	parts := make([]driver.Partition, len(finalized))
	for i, f := range finalized {
		parts[i] = f.Partition
	}
	return &backend.Dataset{
		Name:        uuid.NewString(),
		Schema:      schema,
		ColumnNames: columnNames,
		Partitions:  parts,
	}, nil
}

func (c *Context) MakeError(message string) *backend.Dataset {
	return backend.MakeErrorDataset(message)
}

func (c *Context) GetOptions() map[string]any { return c.Options }

func (c *Context) GetDriver() driver.Driver { return c.Driver }

func (c *Context) SetName(dataset *backend.Dataset, name string) { dataset.Name = name }
