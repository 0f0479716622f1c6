// Package rowtype implements the type lattice used to describe the shape of
// ingested rows: scalars, options, tuples, lists, and string-keyed
// dictionaries, plus the subtype and super-option operators used by the
// sample inferencer to collapse a histogram of observed types into one
// normal-case row type.
package rowtype

import "strings"

// Kind tags the variant a Type holds. Kept as a small enum rather than an
// interface hierarchy so Equal/IsSubOption/SuperOption stay total switches
// instead of dynamic dispatch.
type Kind int

const (
	KindUnknown Kind = iota
	KindBool
	KindI64
	KindF64
	KindStr
	KindNull
	KindPyObject
	KindEmptyDict
	KindGenericDict
	KindOption
	KindTuple
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "UNKNOWN"
	case KindBool:
		return "BOOL"
	case KindI64:
		return "I64"
	case KindF64:
		return "F64"
	case KindStr:
		return "STR"
	case KindNull:
		return "NULL"
	case KindPyObject:
		return "PYOBJECT"
	case KindEmptyDict:
		return "EMPTYDICT"
	case KindGenericDict:
		return "GENERICDICT"
	case KindOption:
		return "OPTION"
	case KindTuple:
		return "TUPLE"
	case KindList:
		return "LIST"
	case KindDict:
		return "DICT"
	default:
		return "?"
	}
}

// Type is a value in the lattice. Tuple/List/Dict/Option carry their
// parameters inline rather than through an interface; scalars carry none.
type Type struct {
	Kind   Kind
	Inner  *Type  // Option(T), List(T)
	Fields []Type // Tuple(T1,...,Tn)
	Key    *Type  // Dict(K,V)
	Value  *Type  // Dict(K,V)
}

var (
	Bool        = Type{Kind: KindBool}
	I64         = Type{Kind: KindI64}
	F64         = Type{Kind: KindF64}
	Str         = Type{Kind: KindStr}
	Null        = Type{Kind: KindNull}
	PyObject    = Type{Kind: KindPyObject}
	Unknown     = Type{Kind: KindUnknown}
	EmptyDict   = Type{Kind: KindEmptyDict}
	GenericDict = Type{Kind: KindGenericDict}
)

// MakeOption returns Option(t). NULL is a value of Option(t) for every t.
func MakeOption(t Type) Type {
	inner := t
	return Type{Kind: KindOption, Inner: &inner}
}

// MakeTuple returns Tuple(fields...).
func MakeTuple(fields ...Type) Type {
	return Type{Kind: KindTuple, Fields: fields}
}

// MakeList returns List(t).
func MakeList(t Type) Type {
	inner := t
	return Type{Kind: KindList, Inner: &inner}
}

// MakeDict returns Dict(k,v).
func MakeDict(k, v Type) Type {
	kk, vv := k, v
	return Type{Kind: KindDict, Key: &kk, Value: &vv}
}

func (t Type) IsOption() bool { return t.Kind == KindOption }
func (t Type) IsTuple() bool  { return t.Kind == KindTuple }
func (t Type) IsList() bool   { return t.Kind == KindList }
func (t Type) IsDict() bool {
	return t.Kind == KindDict || t.Kind == KindEmptyDict || t.Kind == KindGenericDict
}

// InnerType returns the parameter of an Option or List type, or UNKNOWN
// for any other kind.
func (t Type) InnerType() Type {
	if t.Inner == nil {
		return Unknown
	}
	return *t.Inner
}

// Parameters returns the field types of a Tuple.
func (t Type) Parameters() []Type { return t.Fields }

func (t Type) KeyType() Type {
	if t.Key == nil {
		return Unknown
	}
	return *t.Key
}

func (t Type) ValueType() Type {
	if t.Value == nil {
		return Unknown
	}
	return *t.Value
}

// Equal is structural equality.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindOption, KindList:
		return Equal(a.InnerType(), b.InnerType())
	case KindTuple:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Equal(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	case KindDict:
		return Equal(a.KeyType(), b.KeyType()) && Equal(a.ValueType(), b.ValueType())
	default:
		return true
	}
}

// IsSubOption reports whether t1 ⊑ t2: reflexive, T ⊑ Option(T), NULL ⊑
// Option(T) for any T, and lifted componentwise through Tuple.
func IsSubOption(t1, t2 Type) bool {
	if Equal(t1, t2) {
		return true
	}
	if t2.Kind == KindOption {
		if t1.Kind == KindNull {
			return true
		}
		return IsSubOption(t1, t2.InnerType())
	}
	if t1.Kind == KindTuple && t2.Kind == KindTuple && len(t1.Fields) == len(t2.Fields) {
		for i := range t1.Fields {
			if !IsSubOption(t1.Fields[i], t2.Fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// SuperOption returns the least upper bound of t1 and t2 under
// option-lifting, and whether one is defined. t ⊔ t = t; T ⊔ NULL =
// Option(T); Option(T) ⊔ T = Option(T); componentwise on equal-arity
// tuples. Undefined otherwise.
func SuperOption(t1, t2 Type) (Type, bool) {
	if Equal(t1, t2) {
		return t1, true
	}
	// An option already absorbs NULL; lifting again would nest options.
	if t1.Kind == KindOption && t2.Kind == KindNull {
		return t1, true
	}
	if t2.Kind == KindOption && t1.Kind == KindNull {
		return t2, true
	}
	if t1.Kind == KindNull && t2.Kind != KindNull {
		return MakeOption(t2), true
	}
	if t2.Kind == KindNull && t1.Kind != KindNull {
		return MakeOption(t1), true
	}
	if t1.Kind == KindOption && Equal(t1.InnerType(), t2) {
		return t1, true
	}
	if t2.Kind == KindOption && Equal(t2.InnerType(), t1) {
		return t2, true
	}
	if t1.Kind == KindTuple && t2.Kind == KindTuple && len(t1.Fields) == len(t2.Fields) {
		fields := make([]Type, len(t1.Fields))
		for i := range t1.Fields {
			f, ok := SuperOption(t1.Fields[i], t2.Fields[i])
			if !ok {
				return Type{}, false
			}
			fields[i] = f
		}
		return MakeTuple(fields...), true
	}
	return Type{}, false
}

// HasSuperOptionType reports whether superOption(t1,t2) is defined, without
// constructing the result.
func HasSuperOptionType(t1, t2 Type) bool {
	_, ok := SuperOption(t1, t2)
	return ok
}

// String renders a Type for logs and error messages.
func (t Type) String() string {
	switch t.Kind {
	case KindOption:
		return "Option(" + t.InnerType().String() + ")"
	case KindTuple:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.String()
		}
		return "Tuple(" + strings.Join(parts, ",") + ")"
	case KindList:
		return "List(" + t.InnerType().String() + ")"
	case KindDict:
		return "Dict(" + t.KeyType().String() + "," + t.ValueType().String() + ")"
	default:
		return t.Kind.String()
	}
}

// AllScalarFields reports whether every field of a Tuple is one of
// BOOL/I64/F64/STR, the fast-tuple encoder's eligibility test.
func (t Type) AllScalarFields() bool {
	if t.Kind != KindTuple {
		return false
	}
	for _, f := range t.Fields {
		switch f.Kind {
		case KindBool, KindI64, KindF64, KindStr:
		default:
			return false
		}
	}
	return true
}
