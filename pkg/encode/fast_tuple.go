package encode

import (
	"math"

	"github.com/lakeforge/rowcore/pkg/quarantine"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/sample"
)

func asTupleElems(v any) ([]any, bool) {
	switch t := v.(type) {
	case sample.Tuple:
		return []any(t), true
	case []any:
		return t, true
	}
	return nil, false
}

// fieldValue is a validated, typed tuple field ready to be written.
type fieldValue struct {
	kind rowtype.Kind
	i64  int64
	f64  float64
	str  string
}

// FastTuple encodes values whose normal-case type is a Tuple of only
// BOOL/I64/F64/STR fields. A row is accepted only if it is a tuple of
// matching arity and every field individually type-checks against its
// target; if any field rejects, the entire row is quarantined and nothing
// is written; the buffer is never touched for a row that fails
// validation, so there is no partial row to roll back. Field checks are
// strict: numeric widening applies only to the scalar encoders, never to
// tuple fields, so a bool in an I64 field quarantines the row regardless
// of the upcast option.
func FastTuple(values []any, target rowtype.Type, appendRow Appender, q *quarantine.List) error {
	fields := target.Fields
	hasVarLen := false
	for _, f := range fields {
		if f.Kind == rowtype.KindStr {
			hasVarLen = true
			break
		}
	}
	nFixed := len(fields)
	if hasVarLen {
		nFixed++
	}

	for i, v := range values {
		elems, ok := asTupleElems(v)
		if !ok || len(elems) != len(fields) {
			q.Add(i, v)
			continue
		}

		resolved := make([]fieldValue, len(fields))
		tailLen := 0
		rejected := false
		for j, f := range fields {
			switch f.Kind {
			case rowtype.KindBool:
				b, ok := asBool(elems[j])
				if !ok {
					rejected = true
					break
				}
				n := int64(0)
				if b {
					n = 1
				}
				resolved[j] = fieldValue{kind: rowtype.KindBool, i64: n}
			case rowtype.KindI64:
				n, ok := asI64(elems[j], false)
				if !ok {
					rejected = true
					break
				}
				resolved[j] = fieldValue{kind: rowtype.KindI64, i64: n}
			case rowtype.KindF64:
				fv, ok := asF64(elems[j], false)
				if !ok {
					rejected = true
					break
				}
				resolved[j] = fieldValue{kind: rowtype.KindF64, f64: fv}
			case rowtype.KindStr:
				s, ok := asStr(elems[j])
				if !ok {
					rejected = true
					break
				}
				resolved[j] = fieldValue{kind: rowtype.KindStr, str: s}
				tailLen += len(s) + 1
			default:
				rejected = true
			}
			if rejected {
				break
			}
		}

		if rejected {
			q.Add(i, v)
			continue
		}

		required := nFixed*8 + tailLen
		err := appendRow(required, func(slot []byte, _ int) error {
			tailOffset := 0
			for j, fv := range resolved {
				switch fv.kind {
				case rowtype.KindBool, rowtype.KindI64:
					putUint64(slot[j*8:j*8+8], uint64(fv.i64))
				case rowtype.KindF64:
					putUint64(slot[j*8:j*8+8], math.Float64bits(fv.f64))
				case rowtype.KindStr:
					written := putString(slot, nFixed, j, tailOffset, fv.str)
					tailOffset += written
				}
			}
			if hasVarLen {
				putUint64(slot[len(fields)*8:len(fields)*8+8], uint64(tailOffset))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
