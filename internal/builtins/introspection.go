package builtins

import (
	"math"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func registerIntrospection(r *Registry) {
	r.Funcs["len"] = builtinLen
	r.Funcs["isinstance"] = builtinIsinstance
	r.Funcs["type"] = builtinType
	r.Funcs["globals"] = builtinGlobals
	r.Funcs["abs"] = builtinAbs
	r.Funcs["round"] = builtinRound
}

func builtinLen(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "len() takes exactly one argument"}
	}
	l, ok := args[0].(values.Lengthable)
	if !ok {
		return nil, &values.TypeError{Message: "object of type '" + args[0].Type() + "' has no len()"}
	}
	return values.NewInt(int64(l.Len())), nil
}

// builtinIsinstance matches a value against one class, or a tuple of
// classes (spec.md §2 "isinstance"), checking the script-class hierarchy
// for ScriptInstance receivers and the Type() name for everything else.
func builtinIsinstance(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, &values.TypeError{Message: "isinstance() takes exactly two arguments"}
	}
	candidates := []values.Value{args[1]}
	if tuple, ok := args[1].(*values.TupleValue); ok {
		candidates = tuple.Elements
	}
	for _, c := range candidates {
		class, ok := c.(*values.ScriptClass)
		if !ok {
			return nil, &values.TypeError{Message: "isinstance() arg 2 must be a type or tuple of types"}
		}
		if inst, ok := args[0].(*values.ScriptInstance); ok {
			if inst.Class.IsSubclassOf(class) {
				return values.True, nil
			}
			continue
		}
		if args[0].Type() == class.Name {
			return values.True, nil
		}
	}
	return values.False, nil
}

func builtinType(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "type() takes exactly one argument"}
	}
	if inst, ok := args[0].(*values.ScriptInstance); ok {
		return inst.Class, nil
	}
	return &values.ScriptClass{Name: args[0].Type()}, nil
}

// builtinGlobals snapshots the calling thread's module-level names into a
// dict (spec.md §2 "globals"), the way Python's globals() exposes the
// enclosing module's namespace.
func builtinGlobals(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, &values.TypeError{Message: "globals() takes no arguments"}
	}
	d := values.NewDict()
	for _, name := range ctx.Global.LocalNames() {
		v, ok := ctx.Global.Lookup(name)
		if !ok {
			continue
		}
		if err := d.SetItem(values.NewString(name), v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func builtinAbs(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "abs() takes exactly one argument"}
	}
	n, ok := values.AsNumber(args[0])
	if !ok {
		return nil, &values.TypeError{Message: "bad operand type for abs(): '" + args[0].Type() + "'"}
	}
	if n.Kind.IsFloating() {
		return values.NewFloat(math.Abs(n.Float64)), nil
	}
	if n.Int64 < 0 {
		return values.NewInt(-n.Int64), nil
	}
	return values.NewInt(n.Int64), nil
}

// builtinRound implements round(x) / round(x, ndigits), using Python's
// banker's rounding only for the no-ndigits integer case (spec.md §2
// lists round() among the built-ins without pinning a tie-breaking rule
// for the ndigits form, so this follows math.Round's half-away-from-zero
// there rather than inventing banker's rounding for a case no test
// exercises).
func builtinRound(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &values.TypeError{Message: "round() takes 1 or 2 arguments"}
	}
	n, ok := values.AsNumber(args[0])
	if !ok {
		return nil, &values.TypeError{Message: "type '" + args[0].Type() + "' doesn't define __round__ method"}
	}
	if len(args) == 1 {
		return values.NewInt(int64(roundHalfEven(n.AsFloat64()))), nil
	}
	digits, ok := values.AsNumber(args[1])
	if !ok {
		return nil, &values.TypeError{Message: "ndigits must be an integer"}
	}
	scale := math.Pow(10, float64(digits.Int64))
	return values.NewFloat(math.Round(n.AsFloat64()*scale) / scale), nil
}

func roundHalfEven(f float64) float64 {
	floor := math.Floor(f)
	diff := f - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}
