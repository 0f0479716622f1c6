package encode

import (
	"github.com/lakeforge/rowcore/pkg/quarantine"
)

// FastStr encodes values whose normal-case type is Tuple(STR): one
// descriptor slot, one size slot, and the NUL-terminated string bytes in
// the tail. Non-string values are quarantined.
func FastStr(values []any, appendRow Appender, q *quarantine.List) error {
	const nFixed = 2 // one descriptor slot + one variable-length-size slot
	for i, v := range values {
		s, ok := asStr(v)
		if !ok {
			q.Add(i, v)
			continue
		}
		tailLen := len(s) + 1
		required := nFixed*8 + tailLen
		if err := appendRow(required, func(slot []byte, _ int) error {
			written := putString(slot, nFixed, 0, 0, s)
			putUint64(slot[8:16], uint64(written))
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
