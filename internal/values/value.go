package values

// Value represents a runtime value in the Pyjinn interpreter. All script
// values implement this interface — the tagged-variant pattern mirrors the
// teacher's internal/interp/value.go, keeping Type()/String() as the only
// universally required operations so the rest of the system can stay
// switch-on-concrete-type rather than interface{}.
type Value interface {
	// Type returns the variant's type name, e.g. "int", "str", "list".
	Type() string
	// String returns str()-style text for this value.
	String() string
}

// NoneValue is Python's None. There is exactly one meaningful instance;
// None is exported as a ready-made singleton.
type NoneValue struct{}

func (NoneValue) Type() string   { return "NoneType" }
func (NoneValue) String() string { return "None" }

// None is the canonical None value.
var None Value = NoneValue{}

// BoolValue is True/False. It is distinct from IntegerValue for printing
// but compares numerically (spec.md §3.1: "True/False are distinct from
// integers for printing but compare numerically").
type BoolValue struct {
	Value bool
}

func (BoolValue) Type() string { return "bool" }

func (b BoolValue) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// AsInt64 reports the 0/1 numeric value of a bool when it participates in
// arithmetic (spec.md §4.1: "True/False act as 0/1 only when combined
// with numerics and never replace them in output").
func (b BoolValue) AsInt64() int64 {
	if b.Value {
		return 1
	}
	return 0
}

// True and False are the canonical boolean values.
var (
	True  Value = BoolValue{Value: true}
	False Value = BoolValue{Value: false}
)

// Bool returns the canonical True/False value for v.
func Bool(v bool) Value {
	if v {
		return True
	}
	return False
}

// Truthy implements Python's truthiness test, used by if/while/and/or and
// the built-in bool().
func Truthy(v Value) bool {
	switch t := v.(type) {
	case NoneValue:
		return false
	case BoolValue:
		return t.Value
	case *IntegerValue:
		return t.Num.Int64 != 0
	case *FloatValue:
		return t.Num.Float64 != 0
	case *StringValue:
		return len(t.Value) != 0
	case *ListValue:
		return len(t.Elements) != 0
	case *TupleValue:
		return len(t.Elements) != 0
	case *SetValue:
		return t.Len() != 0
	case *DictValue:
		return t.Len() != 0
	default:
		return true
	}
}

// Lengthable is implemented by container values supporting __len__.
type Lengthable interface {
	Value
	Len() int
}

// ItemGetter is implemented by container values supporting __getitem__.
type ItemGetter interface {
	Value
	GetItem(index Value) (Value, error)
}

// ItemSetter is implemented by container values supporting __setitem__.
type ItemSetter interface {
	Value
	SetItem(index, val Value) error
}

// ItemDeleter is implemented by container values supporting __delitem__.
type ItemDeleter interface {
	Value
	DelItem(index Value) error
}

// ItemContainer is implemented by container values supporting __contains__.
type ItemContainer interface {
	Value
	Contains(item Value) (bool, error)
}

// Iterable produces a single-pass Iterator for for-loops and comprehensions.
type Iterable interface {
	Value
	Iterate() Iterator
}

// Iterator is the runtime-level hasNext/next pair the compiler's
// iterable_iterator/iterator_has_next/iterator_next instructions drive
// (spec.md §4.3 "for" pattern).
type Iterator interface {
	HasNext() bool
	Next() (Value, error)
}
