// Package sample implements the histogram-based sample inferencer: it
// classifies a bounded prefix of heterogeneous input values into the type
// lattice and collapses the resulting histogram into a single normal-case
// row type, lifting options and tuple super-types under a threshold band.
package sample

import (
	"sort"

	"github.com/lakeforge/rowcore/pkg/rowtype"
)

// Tuple is the Go-side representation of a fixed-arity tuple value, the
// analogue of a native tuple object in the host runtime.
type Tuple []any

// Inferencer classifies values and infers a single normal-case type over a
// sample.
type Inferencer struct {
	// MaxSampleSize bounds how much of the input is sampled. Zero (the
	// default) means no ceiling: the full input is sampled, matching "the
	// full length in the current core" baseline behavior. Callers that
	// want to bound inference cost on very large inputs set this field.
	MaxSampleSize int
}

// Classify maps a single dynamic value to a ground Type. Scalars map
// directly; tuple element types are classified per-field (not pooled);
// mapping values become Dict(STR,V) with V inferred over the mapping's
// own pooled values; empty containers yield the designated empty
// constants.
func (e *Inferencer) Classify(v any, threshold float64) rowtype.Type {
	switch val := v.(type) {
	case nil:
		return rowtype.Null
	case bool:
		return rowtype.Bool
	case int:
		return rowtype.I64
	case int32:
		return rowtype.I64
	case int64:
		return rowtype.I64
	case float64:
		return rowtype.F64
	case float32:
		return rowtype.F64
	case string:
		return rowtype.Str
	case Tuple:
		fields := make([]rowtype.Type, len(val))
		for i, elem := range val {
			fields[i] = e.Classify(elem, threshold)
		}
		return rowtype.MakeTuple(fields...)
	case []any:
		if len(val) == 0 {
			return rowtype.MakeList(rowtype.Unknown)
		}
		return rowtype.MakeList(e.Infer(val, threshold))
	case map[string]any:
		if len(val) == 0 {
			return rowtype.EmptyDict
		}
		values := make([]any, 0, len(val))
		for _, v := range val {
			values = append(values, v)
		}
		return rowtype.MakeDict(rowtype.Str, e.Infer(values, threshold))
	default:
		return rowtype.PyObject
	}
}

type bucket struct {
	typ   rowtype.Type
	count int
}

// Infer collapses the histogram of observed value types into a single
// normal-case type, returning UNKNOWN for an empty sample.
func (e *Inferencer) Infer(values []any, threshold float64) rowtype.Type {
	n := len(values)
	if e.MaxSampleSize > 0 && e.MaxSampleSize < n {
		values = values[:e.MaxSampleSize]
		n = e.MaxSampleSize
	}
	if n == 0 {
		return rowtype.Unknown
	}

	buckets := make([]*bucket, 0, n)
	find := func(t rowtype.Type) *bucket {
		for _, b := range buckets {
			if rowtype.Equal(b.typ, t) {
				return b
			}
		}
		return nil
	}
	for _, v := range values {
		t := e.Classify(v, threshold)
		if b := find(t); b != nil {
			b.count++
		} else {
			buckets = append(buckets, &bucket{typ: t, count: 1})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return typeOutranks(buckets[i].typ, buckets[j].typ)
	})

	m := buckets[0].typ
	maxCount := buckets[0].count
	for _, b := range buckets {
		if b.count > maxCount {
			m = b.typ
			maxCount = b.count
		}
	}

	// Step 4: majority tuple super-option.
	var mt rowtype.Type
	mtCount := -1
	for _, b := range buckets {
		if b.typ.IsTuple() && b.count > mtCount {
			mt = b.typ
			mtCount = b.count
		}
	}
	if mtCount >= 0 {
		s := mt
		cov := 0
		defined := false
		for _, b := range buckets {
			if rowtype.Equal(b.typ, mt) {
				continue
			}
			sup, ok := rowtype.SuperOption(b.typ, mt)
			if !ok {
				continue
			}
			if !defined {
				s = sup
				defined = true
			} else {
				folded, ok2 := rowtype.SuperOption(s, sup)
				if !ok2 {
					continue
				}
				s = folded
			}
			cov += b.count
		}
		if defined && cov > maxCount {
			frac := float64(cov) / float64(n)
			if frac > 1-threshold && frac < threshold {
				m = s
			}
		}
	}

	// Step 5: NULL option-lifting.
	if m.Kind != rowtype.KindNull {
		if nb := find(rowtype.Null); nb != nil {
			frac := float64(nb.count) / float64(n)
			if frac > 1-threshold && frac < threshold {
				m = rowtype.MakeOption(m)
			}
		}
	}

	return m
}

// typeOutranks reports whether a should sort before b when picking the
// majority type: structurally larger types (ones b is a sub-option of)
// precede smaller ones, and wider numeric types precede narrower ones
// (F64 before I64 before BOOL), so a tie between mixed numerics resolves
// to the type the others widen into. Incomparable types fall back to a
// stable lexical order so the sort is deterministic.
func typeOutranks(a, b rowtype.Type) bool {
	if rowtype.Equal(a, b) {
		return false
	}
	if rowtype.IsSubOption(b, a) {
		return true
	}
	if rowtype.IsSubOption(a, b) {
		return false
	}
	ra, rb := numericRank(a), numericRank(b)
	if ra != rb && ra > 0 && rb > 0 {
		return ra > rb
	}
	return a.String() > b.String()
}

func numericRank(t rowtype.Type) int {
	switch t.Kind {
	case rowtype.KindF64:
		return 3
	case rowtype.KindI64:
		return 2
	case rowtype.KindBool:
		return 1
	default:
		return 0
	}
}
