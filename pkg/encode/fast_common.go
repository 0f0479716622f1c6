package encode

// asBool reports whether v is a bool and its value.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asI64 reports whether v is representable as an I64 field, widening
// booleans to 0/1 when autoUpcast is set. The second bool result mirrors
// the fast-encoder convention of "did this value match the target type".
func asI64(v any, autoUpcast bool) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			// does not fit in 64 bits; quarantine rather than wrap
			return 0, false
		}
		return int64(n), true
	case bool:
		if autoUpcast {
			if n {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}
	return 0, false
}

// asF64 reports whether v is representable as an F64 field, widening
// booleans and integers when autoUpcast is set.
func asF64(v any, autoUpcast bool) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if !autoUpcast {
		return 0, false
	}
	if b, ok := asBool(v); ok {
		if b {
			return 1.0, true
		}
		return 0.0, true
	}
	if i, ok := asI64(v, false); ok {
		return float64(i), true
	}
	return 0, false
}

func asStr(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
