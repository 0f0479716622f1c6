package encode

import (
	"encoding/binary"

	"github.com/lakeforge/rowcore/pkg/quarantine"
)

// FastBool encodes values whose normal-case type is Tuple(BOOL): a single
// 8-byte slot per row holding 0 or 1. Non-boolean values are quarantined.
func FastBool(values []any, appendRow Appender, q *quarantine.List) error {
	for i, v := range values {
		b, ok := asBool(v)
		if !ok {
			q.Add(i, v)
			continue
		}
		n := uint64(0)
		if b {
			n = 1
		}
		if err := appendRow(8, func(slot []byte, _ int) error {
			binary.LittleEndian.PutUint64(slot[0:8], n)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
