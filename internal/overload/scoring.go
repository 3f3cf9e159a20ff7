package overload

import (
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/numeric"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// paramScore is the per-parameter score from spec.md §4.6's table. A
// disqualifying parameter makes the whole candidate disqualify(score 0).
type paramScore struct {
	score        int
	disqualified bool
	reason       string // populated only when disqualified, for diagnostics
}

func isScriptCallable(v values.Value) bool {
	switch v.(type) {
	case *values.BoundFunction, *values.LambdaValue, *values.BoundMethodValue:
		return true
	}
	return false
}

// numericKindOfGo maps a Go reflect numeric Kind to the numeric tower's
// Kind ordering (spec.md §4.1's byte<short<int<long<float<double).
func numericKindOfGo(k reflect.Kind) (numeric.Kind, bool) {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return numeric.Byte, true
	case reflect.Int16, reflect.Uint16:
		return numeric.Short, true
	case reflect.Int32, reflect.Uint32:
		return numeric.Int, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return numeric.Long, true
	case reflect.Float32:
		return numeric.Float, true
	case reflect.Float64:
		return numeric.Double, true
	default:
		return 0, false
	}
}

func actualNumericKind(v values.Value) (numeric.Kind, bool) {
	switch t := v.(type) {
	case *values.IntegerValue:
		return t.Num.Kind, true
	case *values.FloatValue:
		return t.Num.Kind, true
	case values.BoolValue:
		return numeric.Byte, true
	default:
		return 0, false
	}
}

// valueGoType reports the Go type an actual value would naturally convert
// to, for an exact-match comparison against a formal parameter type.
func valueGoType(v values.Value) (reflect.Type, bool) {
	switch t := v.(type) {
	case *values.StringValue:
		return reflect.TypeOf(""), true
	case values.BoolValue:
		return reflect.TypeOf(false), true
	case *values.IntegerValue:
		return reflect.TypeOf(int64(0)), true
	case *values.FloatValue:
		return reflect.TypeOf(float64(0)), true
	case *values.HostObjectValue:
		if t.Obj.IsValid() {
			return t.Obj.Type(), true
		}
		return t.Class.GoType, true
	default:
		return nil, false
	}
}

// scoreParam implements the spec.md §4.6 scoring table for one
// (formal type, actual value) pair.
func scoreParam(formal reflect.Type, actual values.Value) paramScore {
	if wrapper, ok := actual.(*values.JavaWrapperValue); ok && wrapper.Kind == "String" && formal.Kind() == reflect.String {
		return paramScore{score: 3}
	}

	if _, isNone := actual.(values.NoneValue); isNone {
		switch formal.Kind() {
		case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return paramScore{disqualified: true, reason: "null cannot convert to a primitive parameter"}
		case reflect.Array:
			return paramScore{score: 2}
		default:
			return paramScore{score: 3}
		}
	}

	if isScriptCallable(actual) && formal.Kind() == reflect.Interface {
		return paramScore{score: 0}
	}

	if actualType, ok := valueGoType(actual); ok {
		if actualType == formal {
			return paramScore{score: 3}
		}
		if fk, fok := numericKindOfGo(formal.Kind()); fok {
			if ak, aok := actualNumericKind(actual); aok {
				switch {
				case ak == fk:
					return paramScore{score: 3}
				case widens(ak, fk):
					return paramScore{score: 2}
				case narrows(ak, fk):
					return paramScore{score: 1}
				default:
					return paramScore{disqualified: true, reason: "incompatible numeric kinds"}
				}
			}
		}
		if actualType.AssignableTo(formal) {
			return paramScore{score: 0}
		}
		if formal.Kind() == reflect.Interface && actualType.Implements(formal) {
			return paramScore{score: 0}
		}
	}

	if actual.Type() == "NoneType" {
		return paramScore{disqualified: true, reason: "null cannot convert to this parameter"}
	}

	return paramScore{disqualified: true, reason: "no viable conversion"}
}

// widens reports whether converting a value of kind a to formal kind b is
// a numeric widening (spec.md §4.1 ordering; "int/long -> float/double"
// included, "byte/short -> int/long" included). Kind's own iota ordering
// already matches that byte<short<int<long<float<double progression.
func widens(a, b numeric.Kind) bool {
	return a < b
}

// narrows is widens' inverse, e.g. double -> float (spec.md §4.6:
// "numeric narrowing (double->float)").
func narrows(a, b numeric.Kind) bool {
	return a > b
}
