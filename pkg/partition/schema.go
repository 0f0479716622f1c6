// Package partition implements the row-major binary partition writer: a
// chain of capacity-bounded byte buffers, each holding a header row count
// followed by a packed row payload, drawn from a driver.Driver.
package partition

import "github.com/lakeforge/rowcore/pkg/rowtype"

// Layout names the physical arrangement of a partition's payload. ROW is
// the only layout this core produces.
type Layout int

const (
	LayoutRow Layout = iota
)

// Schema pairs a Layout with the row type it encodes.
type Schema struct {
	Layout  Layout
	RowType rowtype.Type
}

// NewSchema builds a ROW-layout schema for rowType, which must be a Tuple.
func NewSchema(rowType rowtype.Type) Schema {
	return Schema{Layout: LayoutRow, RowType: rowType}
}

// HeaderSize is the fixed byte size of the row-count header at the start
// of every partition's payload area.
const HeaderSize = 8

// FixedSlotCount returns the number of 8-byte fixed slots a row of this
// schema's type occupies: one per field, plus one more if any field has
// variable length.
func (s Schema) FixedSlotCount() int {
	n := len(s.RowType.Fields)
	if s.HasVariableLengthField() {
		n++
	}
	return n
}

// HasVariableLengthField reports whether any field of the row type is
// variable length (currently only STR).
func (s Schema) HasVariableLengthField() bool {
	for _, f := range s.RowType.Fields {
		if f.Kind == rowtype.KindStr {
			return true
		}
	}
	return false
}
