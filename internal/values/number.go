package values

import (
	"strconv"

	"github.com/maxuser0/pyjinn-sub000/internal/numeric"
)

// IntegerValue wraps a numeric.Number at one of the integral kinds (byte,
// short, int, long). Concrete width is preserved so host overload
// resolution can pick the exact-width signature (spec.md §3.1).
type IntegerValue struct {
	Num numeric.Number
}

func (i *IntegerValue) Type() string { return "int" }

func (i *IntegerValue) String() string {
	return strconv.FormatInt(i.Num.Int64, 10)
}

// NewInt builds an IntegerValue from a literal, applying the 32-bit
// collapse rule (spec.md §3.1).
func NewInt(v int64) *IntegerValue {
	return &IntegerValue{Num: numeric.FromInt64Literal(v)}
}

// NewIntKind builds an IntegerValue at an explicit width, used when host
// interop needs an exact-width argument (e.g. a byte-typed field).
func NewIntKind(v int64, k numeric.Kind) *IntegerValue {
	return &IntegerValue{Num: numeric.Number{Kind: k, Int64: v}}
}

// FloatValue wraps a numeric.Number at one of the floating kinds (float,
// double). Floating-point literals are always 64-bit (spec.md §3.1).
type FloatValue struct {
	Num numeric.Number
}

func (f *FloatValue) Type() string { return "float" }

func (f *FloatValue) String() string {
	return strconv.FormatFloat(f.Num.Float64, 'g', -1, 64)
}

// NewFloat builds a FloatValue at double width.
func NewFloat(v float64) *FloatValue {
	return &FloatValue{Num: numeric.FromFloat64Literal(v)}
}

// AsNumber extracts the numeric.Number behind any numeric-ish value
// (IntegerValue, FloatValue, or BoolValue coerced to 0/1), returning ok=false
// for anything else.
func AsNumber(v Value) (numeric.Number, bool) {
	switch t := v.(type) {
	case *IntegerValue:
		return t.Num, true
	case *FloatValue:
		return t.Num, true
	case BoolValue:
		return numeric.Number{Kind: numeric.Int, Int64: t.AsInt64()}, true
	default:
		return numeric.Number{}, false
	}
}

// FromNumber wraps a numeric.Number back into the matching Value variant.
func FromNumber(n numeric.Number) Value {
	if n.Kind.IsFloating() {
		return &FloatValue{Num: n}
	}
	return &IntegerValue{Num: n}
}
