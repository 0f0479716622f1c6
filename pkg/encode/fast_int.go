package encode

import (
	"encoding/binary"

	"github.com/lakeforge/rowcore/pkg/quarantine"
)

// FastI64 encodes values whose normal-case type is Tuple(I64). When
// autoUpcast is set, booleans are widened to 0/1. Values that don't fit
// in 64 bits are quarantined.
func FastI64(values []any, autoUpcast bool, appendRow Appender, q *quarantine.List) error {
	for i, v := range values {
		n, ok := asI64(v, autoUpcast)
		if !ok {
			q.Add(i, v)
			continue
		}
		if err := appendRow(8, func(slot []byte, _ int) error {
			binary.LittleEndian.PutUint64(slot[0:8], uint64(n))
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
