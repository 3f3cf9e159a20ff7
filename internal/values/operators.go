package values

import (
	"fmt"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/numeric"
)

// ApplyUnary and ApplyBinary implement the operator semantics both
// internal/compiler's Unary/Binary instructions and internal/evaluator's
// direct AST walk dispatch to, so a script observes the identical result
// whichever execution path ran it (spec.md §8 VM/evaluator parity).
func ApplyUnary(op string, v Value) (Value, error) {
	switch op {
	case "-":
		n, ok := AsNumber(v)
		if !ok {
			return nil, &TypeError{Message: fmt.Sprintf("bad operand type for unary -: '%s'", v.Type())}
		}
		return FromNumber(numeric.Neg(n)), nil
	case "+":
		if _, ok := AsNumber(v); !ok {
			return nil, &TypeError{Message: fmt.Sprintf("bad operand type for unary +: '%s'", v.Type())}
		}
		return v, nil
	case "not":
		return Bool(!Truthy(v)), nil
	case "~":
		n, ok := AsNumber(v)
		if !ok || n.Kind.IsFloating() {
			return nil, &TypeError{Message: fmt.Sprintf("bad operand type for unary ~: '%s'", v.Type())}
		}
		return FromNumber(numeric.Number{Kind: n.Kind, Int64: ^n.Int64}), nil
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unsupported unary operator %q", op)}
	}
}

// ApplyBinary implements arithmetic, bitwise, string/sequence `+`/`*`, and
// set algebra operators. Comparison operators (spec.md's Compare node) go
// through ApplyCompare instead, since they may chain and need their own
// short-circuit handling at the call site.
func ApplyBinary(op string, l, r Value) (Value, error) {
	if ln, lok := AsNumber(l); lok {
		if rn, rok := AsNumber(r); rok {
			return numericBinary(op, ln, rn)
		}
	}
	switch op {
	case "+":
		return addValues(l, r)
	case "*":
		return repeatValues(l, r)
	case "|":
		return setBinary(op, l, r, (*SetValue).Union)
	case "&":
		return setBinary(op, l, r, (*SetValue).Intersection)
	case "-":
		return setBinary(op, l, r, (*SetValue).Difference)
	case "^":
		return setBinary(op, l, r, (*SetValue).SymmetricDifference)
	}
	return nil, &TypeError{Message: fmt.Sprintf("unsupported operand type(s) for %s: '%s' and '%s'", op, l.Type(), r.Type())}
}

func numericBinary(op string, l, r numeric.Number) (Value, error) {
	switch op {
	case "+":
		return FromNumber(numeric.Add(l, r)), nil
	case "-":
		return FromNumber(numeric.Sub(l, r)), nil
	case "*":
		return FromNumber(numeric.Mul(l, r)), nil
	case "/":
		n, err := numeric.TrueDiv(l, r)
		return wrapDivErr(FromNumber(n), err, "/")
	case "//":
		n, err := numeric.FloorDiv(l, r)
		return wrapDivErr(FromNumber(n), err, "//")
	case "%":
		n, err := numeric.Mod(l, r)
		return wrapDivErr(FromNumber(n), err, "%")
	case "**":
		return FromNumber(numeric.Pow(l, r)), nil
	case "<<":
		return FromNumber(numeric.ShiftLeft(l, r)), nil
	case ">>":
		return FromNumber(numeric.ShiftRight(l, r)), nil
	case "&":
		return FromNumber(numeric.Number{Kind: numeric.Widen(l.Kind, r.Kind), Int64: l.Int64 & r.Int64}), nil
	case "|":
		return FromNumber(numeric.Number{Kind: numeric.Widen(l.Kind, r.Kind), Int64: l.Int64 | r.Int64}), nil
	case "^":
		return FromNumber(numeric.Number{Kind: numeric.Widen(l.Kind, r.Kind), Int64: l.Int64 ^ r.Int64}), nil
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unsupported numeric operator %q", op)}
	}
}

func wrapDivErr(v Value, err error, op string) (Value, error) {
	if err != nil {
		if dz, ok := err.(*numeric.DivideByZero); ok {
			return nil, &ZeroDivisionError{Op: dz.Op}
		}
		return nil, err
	}
	return v, nil
}

func addValues(l, r Value) (Value, error) {
	switch x := l.(type) {
	case *StringValue:
		y, ok := r.(*StringValue)
		if !ok {
			return nil, concatTypeError(l, r)
		}
		return NewString(x.Value + y.Value), nil
	case *ListValue:
		y, ok := r.(*ListValue)
		if !ok {
			return nil, concatTypeError(l, r)
		}
		return x.Add(y), nil
	case *TupleValue:
		y, ok := r.(*TupleValue)
		if !ok {
			return nil, concatTypeError(l, r)
		}
		out := make([]Value, 0, len(x.Elements)+len(y.Elements))
		out = append(out, x.Elements...)
		out = append(out, y.Elements...)
		return &TupleValue{Elements: out}, nil
	default:
		return nil, concatTypeError(l, r)
	}
}

func concatTypeError(l, r Value) error {
	return &TypeError{Message: fmt.Sprintf("unsupported operand type(s) for +: '%s' and '%s'", l.Type(), r.Type())}
}

func repeatValues(l, r Value) (Value, error) {
	seq, n, err := sequenceAndRepeatCount(l, r)
	if err != nil {
		return nil, err
	}
	switch s := seq.(type) {
	case *StringValue:
		if n <= 0 {
			return NewString(""), nil
		}
		return NewString(strings.Repeat(s.Value, int(n))), nil
	case *ListValue:
		if n <= 0 {
			return &ListValue{}, nil
		}
		out := make([]Value, 0, len(s.Elements)*int(n))
		for i := int64(0); i < n; i++ {
			out = append(out, s.Elements...)
		}
		return &ListValue{Elements: out}, nil
	case *TupleValue:
		if n <= 0 {
			return &TupleValue{}, nil
		}
		out := make([]Value, 0, len(s.Elements)*int(n))
		for i := int64(0); i < n; i++ {
			out = append(out, s.Elements...)
		}
		return &TupleValue{Elements: out}, nil
	default:
		return nil, &TypeError{Message: fmt.Sprintf("can't multiply sequence by non-int of type '%s'", r.Type())}
	}
}

func sequenceAndRepeatCount(l, r Value) (Value, int64, error) {
	if n, ok := AsNumber(r); ok && !n.Kind.IsFloating() {
		return l, n.Int64, nil
	}
	if n, ok := AsNumber(l); ok && !n.Kind.IsFloating() {
		return r, n.Int64, nil
	}
	return nil, 0, &TypeError{Message: fmt.Sprintf("can't multiply '%s' and '%s'", l.Type(), r.Type())}
}

func setBinary(op string, l, r Value, fn func(*SetValue, *SetValue) *SetValue) (Value, error) {
	x, xok := l.(*SetValue)
	y, yok := r.(*SetValue)
	if !xok || !yok {
		return nil, &TypeError{Message: fmt.Sprintf("unsupported operand type(s) for %s: '%s' and '%s'", op, l.Type(), r.Type())}
	}
	return fn(x, y), nil
}

// ApplyCompare implements one non-chained comparison op (spec.md §4.1/§4.2
// Compare handling for the two-operand case the compiler lowers directly;
// chained comparisons are handled by the evaluator/escape path).
func ApplyCompare(op string, l, r Value) (Value, error) {
	switch op {
	case "==":
		eq, err := Equal(l, r)
		return Bool(eq), err
	case "!=":
		eq, err := Equal(l, r)
		return Bool(!eq), err
	case "is":
		return Bool(sameIdentity(l, r)), nil
	case "is not":
		return Bool(!sameIdentity(l, r)), nil
	case "in":
		ok, err := containsValue(r, l)
		return Bool(ok), err
	case "not in":
		ok, err := containsValue(r, l)
		return Bool(!ok), err
	case "<", "<=", ">", ">=":
		if inst, ok := l.(*ScriptInstance); ok && dunderHook != nil {
			dunderOp := map[string]string{"<": "__lt__", "<=": "__le__", ">": "__gt__", ">=": "__ge__"}[op]
			if result, handled, err := dunderHook.TryCompare(inst, dunderOp, r); handled {
				return Bool(result), err
			}
		}
		c, err := CompareValues(l, r)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return Bool(c < 0), nil
		case "<=":
			return Bool(c <= 0), nil
		case ">":
			return Bool(c > 0), nil
		default:
			return Bool(c >= 0), nil
		}
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unsupported comparison operator %q", op)}
	}
}

func sameIdentity(l, r Value) bool {
	if _, ok := l.(NoneValue); ok {
		_, ok2 := r.(NoneValue)
		return ok2
	}
	switch x := l.(type) {
	case BoolValue:
		y, ok := r.(BoolValue)
		return ok && x.Value == y.Value
	default:
		return l == r
	}
}

func containsValue(container, item Value) (bool, error) {
	if inst, ok := container.(*ScriptInstance); ok && dunderHook != nil {
		if result, handled, err := dunderHook.TryContains(inst, item); handled {
			return result, err
		}
	}
	c, ok := container.(ItemContainer)
	if !ok {
		return false, &TypeError{Message: fmt.Sprintf("argument of type '%s' is not iterable", container.Type())}
	}
	return c.Contains(item)
}
