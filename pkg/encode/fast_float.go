package encode

import (
	"encoding/binary"
	"math"

	"github.com/lakeforge/rowcore/pkg/quarantine"
)

// FastF64 encodes values whose normal-case type is Tuple(F64). The 8-byte
// slot holds the IEEE-754 double's bit pattern in little-endian order, so
// a float occupies the same aligned slot layout as I64 and BOOL. When
// autoUpcast is set, booleans and integers are widened.
func FastF64(values []any, autoUpcast bool, appendRow Appender, q *quarantine.List) error {
	for i, v := range values {
		f, ok := asF64(v, autoUpcast)
		if !ok {
			q.Add(i, v)
			continue
		}
		if err := appendRow(8, func(slot []byte, _ int) error {
			binary.LittleEndian.PutUint64(slot[0:8], math.Float64bits(f))
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
