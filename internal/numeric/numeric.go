// Package numeric implements Pyjinn's numeric tower: arithmetic,
// comparison, negation, and the floor/true/mod division variants over the
// concrete width-tagged numeric kinds host interop needs for overload
// resolution.
//
// There is no third-party library for this: Python's floor-division and
// modulo sign conventions, combined with the host's exact-width overload
// resolution needs (byte/short/int/long/float/double), are specific enough
// that no general-purpose arbitrary-precision or decimal package in the
// ecosystem models them directly — see DESIGN.md.
package numeric

import (
	"fmt"
	"math"
)

// Kind tags the concrete width of a Number. Order matters: Kind values are
// compared to find the wider of two operands per spec.md §4.1.
type Kind int

const (
	Byte Kind = iota
	Short
	Int
	Long
	Float
	Double
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// IsFloating reports whether k is Float or Double.
func (k Kind) IsFloating() bool {
	return k == Float || k == Double
}

// Number is a concrete numeric value: an integer held in Int64 for the
// integral kinds, or a floating value held in Float64 for Float/Double.
type Number struct {
	Kind    Kind
	Int64   int64
	Float64 float64
}

// Int32Fits reports whether an int64 literal collapses to a 32-bit Int
// per spec.md §3.1 ("Integer literals collapse to 32-bit when they fit,
// else 64-bit").
func Int32Fits(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// FromInt64Literal builds the Number an integer literal evaluates to,
// following the 32-bit-collapse rule.
func FromInt64Literal(v int64) Number {
	if Int32Fits(v) {
		return Number{Kind: Int, Int64: v}
	}
	return Number{Kind: Long, Int64: v}
}

// FromFloat64Literal builds the Number a floating literal evaluates to.
// Floating-point literals are always 64-bit (spec.md §3.1).
func FromFloat64Literal(v float64) Number {
	return Number{Kind: Double, Float64: v}
}

// AsFloat64 returns n's value widened to float64 regardless of kind.
func (n Number) AsFloat64() float64 {
	if n.Kind.IsFloating() {
		return n.Float64
	}
	return float64(n.Int64)
}

// AsInt64 returns n's value narrowed/truncated to int64 regardless of
// kind (float truncation toward zero, matching Go's int64() conversion).
func (n Number) AsInt64() int64 {
	if n.Kind.IsFloating() {
		return int64(n.Float64)
	}
	return n.Int64
}

// Widen returns the wider of two kinds by the ordering
// byte < short < int < long < float < double (spec.md §4.1).
func Widen(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

// widenPair converts a and b to a common Kind, the wider of the two, and
// returns both operands expressed at that width.
func widenPair(a, b Number) (Kind, Number, Number) {
	k := Widen(a.Kind, b.Kind)
	wa, wb := a, b
	wa.Kind, wb.Kind = k, k
	if k.IsFloating() {
		wa.Float64, wb.Float64 = a.AsFloat64(), b.AsFloat64()
	}
	return k, wa, wb
}

// DivideByZero is returned by division-family operations when the
// divisor is (numerically) zero. Callers translate it into a script-level
// ZeroDivisionError.
type DivideByZero struct {
	Op string
}

func (e *DivideByZero) Error() string {
	return fmt.Sprintf("division by zero in %s", e.Op)
}

// Add implements a + b, evaluated at the wider operand's width.
func Add(a, b Number) Number {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		return Number{Kind: k, Float64: wa.Float64 + wb.Float64}
	}
	return Number{Kind: k, Int64: wa.Int64 + wb.Int64}
}

// Sub implements a - b.
func Sub(a, b Number) Number {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		return Number{Kind: k, Float64: wa.Float64 - wb.Float64}
	}
	return Number{Kind: k, Int64: wa.Int64 - wb.Int64}
}

// Mul implements a * b.
func Mul(a, b Number) Number {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		return Number{Kind: k, Float64: wa.Float64 * wb.Float64}
	}
	return Number{Kind: k, Int64: wa.Int64 * wb.Int64}
}

// TrueDiv implements Python's `/`: always produces a double.
func TrueDiv(a, b Number) (Number, error) {
	bf := b.AsFloat64()
	if bf == 0 {
		return Number{}, &DivideByZero{Op: "/"}
	}
	return Number{Kind: Double, Float64: a.AsFloat64() / bf}, nil
}

// FloorDiv implements Python's `//`. On integers it produces an integer
// with floor semantics (rounding toward -infinity); on floats it returns
// floor(a/b) as a float, at the wider width.
func FloorDiv(a, b Number) (Number, error) {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		if wb.Float64 == 0 {
			return Number{}, &DivideByZero{Op: "//"}
		}
		return Number{Kind: k, Float64: math.Floor(wa.Float64 / wb.Float64)}, nil
	}
	if wb.Int64 == 0 {
		return Number{}, &DivideByZero{Op: "//"}
	}
	q := wa.Int64 / wb.Int64
	r := wa.Int64 % wb.Int64
	if r != 0 && ((r < 0) != (wb.Int64 < 0)) {
		q--
	}
	return Number{Kind: k, Int64: q}, nil
}

// Mod implements Python-style modulo: the result has the sign of the
// divisor. See ModHostStyle for the host-style (sign-of-dividend) variant.
func Mod(a, b Number) (Number, error) {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		if wb.Float64 == 0 {
			return Number{}, &DivideByZero{Op: "%"}
		}
		r := math.Mod(wa.Float64, wb.Float64)
		if r != 0 && ((r < 0) != (wb.Float64 < 0)) {
			r += wb.Float64
		}
		return Number{Kind: k, Float64: r}, nil
	}
	if wb.Int64 == 0 {
		return Number{}, &DivideByZero{Op: "%"}
	}
	r := wa.Int64 % wb.Int64
	if r != 0 && ((r < 0) != (wb.Int64 < 0)) {
		r += wb.Int64
	}
	return Number{Kind: k, Int64: r}, nil
}

// ModHostStyle implements the host-language ("truncating") modulo, whose
// result takes the sign of the dividend, for code explicitly requesting
// host semantics (spec.md §4.1).
func ModHostStyle(a, b Number) (Number, error) {
	k, wa, wb := widenPair(a, b)
	if k.IsFloating() {
		if wb.Float64 == 0 {
			return Number{}, &DivideByZero{Op: "host %"}
		}
		return Number{Kind: k, Float64: math.Mod(wa.Float64, wb.Float64)}, nil
	}
	if wb.Int64 == 0 {
		return Number{}, &DivideByZero{Op: "host %"}
	}
	return Number{Kind: k, Int64: wa.Int64 % wb.Int64}, nil
}

// Neg implements unary negation, preserving the operand's kind.
func Neg(a Number) Number {
	if a.Kind.IsFloating() {
		return Number{Kind: a.Kind, Float64: -a.Float64}
	}
	return Number{Kind: a.Kind, Int64: -a.Int64}
}

// Pow implements a ** b. True division-style widening: an integer base
// with a non-negative integer exponent stays integral; anything else
// widens to double, matching CPython's behavior for `**` outside the
// explicit integer/integer non-negative case.
func Pow(a, b Number) Number {
	if !a.Kind.IsFloating() && !b.Kind.IsFloating() && b.Int64 >= 0 {
		k := Widen(a.Kind, b.Kind)
		result := int64(1)
		base := a.Int64
		for exp := b.Int64; exp > 0; exp-- {
			result *= base
		}
		return Number{Kind: k, Int64: result}
	}
	return Number{Kind: Double, Float64: math.Pow(a.AsFloat64(), b.AsFloat64())}
}

// Compare returns -1, 0, or 1 for a<b, a==b, a>b. Comparisons are total
// for same-kind pairs; cross-kind numeric compare widens to the wider
// variant (spec.md §4.1).
func Compare(a, b Number) int {
	_, wa, wb := widenPair(a, b)
	if wa.Kind.IsFloating() {
		switch {
		case wa.Float64 < wb.Float64:
			return -1
		case wa.Float64 > wb.Float64:
			return 1
		default:
			return 0
		}
	}
	switch {
	case wa.Int64 < wb.Int64:
		return -1
	case wa.Int64 > wb.Int64:
		return 1
	default:
		return 0
	}
}

// ShiftLeft implements `<<`. Per spec.md §8 boundary behavior, a result
// that no longer fits 32 bits widens the result kind from Int to Long.
func ShiftLeft(a, shift Number) Number {
	v := a.Int64 << uint(shift.Int64)
	k := a.Kind
	if k == Int && !Int32Fits(v) {
		k = Long
	}
	return Number{Kind: k, Int64: v}
}

// ShiftRight implements `>>` (arithmetic shift).
func ShiftRight(a, shift Number) Number {
	return Number{Kind: a.Kind, Int64: a.Int64 >> uint(shift.Int64)}
}
