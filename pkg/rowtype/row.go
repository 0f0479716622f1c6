package rowtype

// Row is the runtime counterpart of Type: a tagged value the slow encoder
// builds from an arbitrary input element before serializing it generically.
// Fast encoders never construct a Row; they write bytes directly.
type Row struct {
	Type   Type
	Bool   bool
	I64    int64
	F64    float64
	Str    string
	IsNull bool
	Elems  []Row // Tuple fields, List elements
	Keys   []Row // Dict keys, parallel to Values
	Values []Row
}

// NullRow builds the NULL value of Option(t).
func NullRow(t Type) Row {
	return Row{Type: MakeOption(t), IsNull: true}
}

// SomeRow wraps a present value as Option(v.Type).
func SomeRow(v Row) Row {
	return Row{Type: MakeOption(v.Type), Elems: []Row{v}}
}
