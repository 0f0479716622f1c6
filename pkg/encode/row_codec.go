package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lakeforge/rowcore/pkg/rowtype"
)

// rowTag identifies the variant encoded in the slow path's self-describing
// byte stream. The fast paths never use these tags; they write the fixed
// slot-and-tail layout directly.
type rowTag byte

const (
	tagNull rowTag = iota
	tagBool
	tagI64
	tagF64
	tagStr
	tagSome
	tagTuple
	tagList
	tagDict
	tagPyObject
)

// buildRow converts a borrowed input value into a Row that conforms to
// target, or reports that the value doesn't match (the caller quarantines
// it). Unlike Classify, this validates against a specific expected type
// rather than inferring one.
func buildRow(v any, target rowtype.Type) (rowtype.Row, bool) {
	switch target.Kind {
	case rowtype.KindOption:
		if v == nil {
			return rowtype.NullRow(target.InnerType()), true
		}
		inner, ok := buildRow(v, target.InnerType())
		if !ok {
			return rowtype.Row{}, false
		}
		return rowtype.SomeRow(inner), true
	case rowtype.KindNull:
		if v == nil {
			return rowtype.Row{Type: rowtype.Null, IsNull: true}, true
		}
		return rowtype.Row{}, false
	case rowtype.KindBool:
		b, ok := v.(bool)
		if !ok {
			return rowtype.Row{}, false
		}
		return rowtype.Row{Type: rowtype.Bool, Bool: b}, true
	case rowtype.KindI64:
		n, ok := asI64(v, false)
		if !ok {
			return rowtype.Row{}, false
		}
		return rowtype.Row{Type: rowtype.I64, I64: n}, true
	case rowtype.KindF64:
		f, ok := asF64(v, false)
		if !ok {
			return rowtype.Row{}, false
		}
		return rowtype.Row{Type: rowtype.F64, F64: f}, true
	case rowtype.KindStr:
		s, ok := v.(string)
		if !ok {
			return rowtype.Row{}, false
		}
		return rowtype.Row{Type: rowtype.Str, Str: s}, true
	case rowtype.KindTuple:
		elems, ok := asTupleElems(v)
		if !ok || len(elems) != len(target.Fields) {
			return rowtype.Row{}, false
		}
		rows := make([]rowtype.Row, len(elems))
		for i, e := range elems {
			r, ok := buildRow(e, target.Fields[i])
			if !ok {
				return rowtype.Row{}, false
			}
			rows[i] = r
		}
		return rowtype.Row{Type: target, Elems: rows}, true
	case rowtype.KindList:
		list, ok := v.([]any)
		if !ok {
			return rowtype.Row{}, false
		}
		rows := make([]rowtype.Row, len(list))
		for i, e := range list {
			r, ok := buildRow(e, target.InnerType())
			if !ok {
				return rowtype.Row{}, false
			}
			rows[i] = r
		}
		return rowtype.Row{Type: target, Elems: rows}, true
	case rowtype.KindDict, rowtype.KindGenericDict, rowtype.KindEmptyDict:
		m, ok := v.(map[string]any)
		if !ok {
			return rowtype.Row{}, false
		}
		keys := make([]rowtype.Row, 0, len(m))
		vals := make([]rowtype.Row, 0, len(m))
		valueType := rowtype.PyObject
		if target.Kind == rowtype.KindDict {
			valueType = target.ValueType()
		}
		for k, val := range m {
			vr, ok := buildRow(val, valueType)
			if !ok {
				return rowtype.Row{}, false
			}
			keys = append(keys, rowtype.Row{Type: rowtype.Str, Str: k})
			vals = append(vals, vr)
		}
		return rowtype.Row{Type: target, Keys: keys, Values: vals}, true
	case rowtype.KindPyObject:
		return rowtype.Row{Type: rowtype.PyObject, Str: fmt.Sprintf("%v", v)}, true
	default:
		return rowtype.Row{}, false
	}
}

// encodeRow serializes r into a self-describing byte stream: a type tag
// followed by the variant's payload, recursing through tuples, lists, and
// dicts. This is the slow path's wire format, not the fixed slot-and-tail
// layout the fast encoders use; the slow path exists precisely for shapes
// that layout doesn't cover (options, lists, generic dicts, nested
// tuples).
func encodeRow(r rowtype.Row) []byte {
	switch r.Type.Kind {
	case rowtype.KindNull:
		return []byte{byte(tagNull)}
	case rowtype.KindBool:
		v := byte(0)
		if r.Bool {
			v = 1
		}
		return []byte{byte(tagBool), v}
	case rowtype.KindI64:
		buf := make([]byte, 9)
		buf[0] = byte(tagI64)
		binary.LittleEndian.PutUint64(buf[1:], uint64(r.I64))
		return buf
	case rowtype.KindF64:
		buf := make([]byte, 9)
		buf[0] = byte(tagF64)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(r.F64))
		return buf
	case rowtype.KindStr, rowtype.KindPyObject:
		tag := tagStr
		if r.Type.Kind == rowtype.KindPyObject {
			tag = tagPyObject
		}
		b := []byte(r.Str)
		buf := make([]byte, 5+len(b))
		buf[0] = byte(tag)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(b)))
		copy(buf[5:], b)
		return buf
	case rowtype.KindOption:
		if r.IsNull {
			return []byte{byte(tagNull)}
		}
		inner := encodeRow(r.Elems[0])
		buf := make([]byte, 1+len(inner))
		buf[0] = byte(tagSome)
		copy(buf[1:], inner)
		return buf
	case rowtype.KindTuple, rowtype.KindList:
		tag := tagTuple
		if r.Type.Kind == rowtype.KindList {
			tag = tagList
		}
		var body []byte
		for _, e := range r.Elems {
			body = append(body, encodeRow(e)...)
		}
		buf := make([]byte, 5+len(body))
		buf[0] = byte(tag)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(r.Elems)))
		copy(buf[5:], body)
		return buf
	case rowtype.KindDict, rowtype.KindGenericDict, rowtype.KindEmptyDict:
		var body []byte
		for i := range r.Keys {
			body = append(body, encodeRow(r.Keys[i])...)
			body = append(body, encodeRow(r.Values[i])...)
		}
		buf := make([]byte, 5+len(body))
		buf[0] = byte(tagDict)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(r.Keys)))
		copy(buf[5:], body)
		return buf
	default:
		return []byte{byte(tagNull)}
	}
}
