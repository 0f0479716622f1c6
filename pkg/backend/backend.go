// Package backend defines the Context contract the ingestion orchestrator
// consumes to turn partitions into datasets: an external collaborator
// whose interface is consumed here, not implemented. See
// pkg/backend/localctx for a reference in-memory implementation.
package backend

import (
	"github.com/lakeforge/rowcore/pkg/driver"
	"github.com/lakeforge/rowcore/pkg/partition"
)

// Dataset is the handle returned from every public ingestion operation.
// IsError is the single downstream query callers use to distinguish an
// error dataset from a materialized one.
type Dataset struct {
	Name        string
	Schema      partition.Schema
	ColumnNames []string
	Partitions  []driver.Partition
	ErrorMsg    string
}

// IsError reports whether this dataset carries an error rather than rows.
func (d *Dataset) IsError() bool { return d.ErrorMsg != "" }

// Context is the contract of the backend collaborator that consumes
// produced partitions and builds datasets from them.
type Context interface {
	FromPartitions(schema partition.Schema, partitions []partition.Finalized, columnNames []string) (*Dataset, error)
	MakeError(message string) *Dataset
	GetOptions() map[string]any
	GetDriver() driver.Driver
	SetName(dataset *Dataset, name string)
}

// MakeErrorDataset is a free function so callers that don't have a
// Context handy (e.g. parameter validation before any backend call) can
// still build a conforming error dataset.
func MakeErrorDataset(message string) *Dataset {
	return &Dataset{ErrorMsg: message}
}
