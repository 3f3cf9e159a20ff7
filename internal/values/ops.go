package values

import (
	"fmt"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/numeric"
)

// DunderHook lets the evaluator/vm package (which implements calling back
// into script methods) participate in equality/ordering/len/contains for
// ScriptInstance values without values importing evaluator/vm — the same
// inversion the teacher uses for ExceptionValue.GetInstance() returning
// interface{} to dodge an import cycle (internal/interp/runtime/exception.go).
//
// SetDunderHook is called once during interpreter construction.
var dunderHook DunderHook

// DunderHook is implemented by the evaluator/vm layer.
type DunderHook interface {
	// TryEq calls __eq__ if inst defines it. ok is false if no override
	// exists. `!=` is the negation of Equal, so it also goes through
	// TryEq; __lt__, __le__, __gt__, __ge__ go through TryCompare.
	TryEq(inst *ScriptInstance, other Value) (result bool, ok bool, err error)
	// TryCompare calls the dunder matching op ("__lt__", "__le__", ...).
	TryCompare(inst *ScriptInstance, op string, other Value) (result bool, ok bool, err error)
	// TryLen calls __len__ if defined.
	TryLen(inst *ScriptInstance) (n int, ok bool, err error)
	// TryContains calls __contains__ if defined.
	TryContains(inst *ScriptInstance, item Value) (result bool, ok bool, err error)
	// TryStr calls __str__ if defined.
	TryStr(inst *ScriptInstance) (s string, ok bool)
	// TryHash calls __hash__ if defined.
	TryHash(inst *ScriptInstance) (h int64, ok bool, err error)
}

// SetDunderHook installs the evaluator/vm's dunder dispatcher. Called once
// during interpreter construction (see internal/evaluator and internal/vm
// init wiring in pkg/pyjinn).
func SetDunderHook(h DunderHook) { dunderHook = h }

// Equal implements script-level `==`, first trying a script instance's
// __eq__ override before falling back to built-in equality (spec.md §6.4).
func Equal(a, b Value) (bool, error) {
	if inst, ok := a.(*ScriptInstance); ok && dunderHook != nil {
		if result, handled, err := dunderHook.TryEq(inst, b); handled {
			return result, err
		}
	}
	na, aok := AsNumber(a)
	nb, bok := AsNumber(b)
	if aok && bok {
		return numeric.Compare(na, nb) == 0, nil
	}
	switch x := a.(type) {
	case NoneValue:
		_, isNone := b.(NoneValue)
		return isNone, nil
	case *StringValue:
		y, ok := b.(*StringValue)
		return ok && x.Value == y.Value, nil
	case *TupleValue:
		y, ok := b.(*TupleValue)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false, nil
		}
		for i := range x.Elements {
			eq, err := Equal(x.Elements[i], y.Elements[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *ListValue:
		y, ok := b.(*ListValue)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false, nil
		}
		for i := range x.Elements {
			eq, err := Equal(x.Elements[i], y.Elements[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *SetValue:
		y, ok := b.(*SetValue)
		if !ok || x.Len() != y.Len() {
			return false, nil
		}
		return x.IsSubset(y), nil
	default:
		return a == b, nil
	}
}

// CompareValues implements `<`/`<=`/`>`/`>=` support for built-in ordered
// types, returning -1/0/1. Script instances should be compared via the
// dunder hook at the call site (the evaluator/vm own the op name, e.g.
// "__lt__", so they call dunderHook.TryCompare directly rather than
// through this function).
func CompareValues(a, b Value) (int, error) {
	na, aok := AsNumber(a)
	nb, bok := AsNumber(b)
	if aok && bok {
		return numeric.Compare(na, nb), nil
	}
	if x, ok := a.(*StringValue); ok {
		if y, ok := b.(*StringValue); ok {
			switch {
			case x.Value < y.Value:
				return -1, nil
			case x.Value > y.Value:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if x, ok := a.(*TupleValue); ok {
		if y, ok := b.(*TupleValue); ok {
			return x.Compare(y)
		}
	}
	return 0, &TypeError{Message: fmt.Sprintf("'<' not supported between instances of '%s' and '%s'", a.Type(), b.Type())}
}

// ReprString renders a value the way it would appear nested inside a
// container's str() (quoted strings, recursive containers), distinct from
// the value's own bare String().
func ReprString(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return quoteString(s.Value)
	}
	if s, ok := v.(*FormattedStringValue); ok {
		return quoteString(s.Value)
	}
	return v.String()
}

// quoteString reproduces Python's str.__repr__ quote choice: single quotes
// unless the string contains one and no double quote, in which case double
// quotes avoid escaping.
func quoteString(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
