package builtins

import (
	"github.com/maxuser0/pyjinn-sub000/internal/numeric"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func registerIteration(r *Registry) {
	r.Funcs["range"] = builtinRange
	r.Funcs["enumerate"] = builtinEnumerate
	r.Funcs["min"] = builtinMin
	r.Funcs["max"] = builtinMax
	r.Funcs["sum"] = builtinSum
}

func builtinRange(ctx *values.Context, args []values.Value) (values.Value, error) {
	var start, stop, step int64
	switch len(args) {
	case 1:
		n, ok := values.AsNumber(args[0])
		if !ok {
			return nil, &values.TypeError{Message: "'" + args[0].Type() + "' object cannot be interpreted as an integer"}
		}
		start, stop, step = 0, n.Int64, 1
	case 2:
		a, ok1 := values.AsNumber(args[0])
		b, ok2 := values.AsNumber(args[1])
		if !ok1 || !ok2 {
			return nil, &values.TypeError{Message: "range() arguments must be integers"}
		}
		start, stop, step = a.Int64, b.Int64, 1
	case 3:
		a, ok1 := values.AsNumber(args[0])
		b, ok2 := values.AsNumber(args[1])
		c, ok3 := values.AsNumber(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, &values.TypeError{Message: "range() arguments must be integers"}
		}
		start, stop, step = a.Int64, b.Int64, c.Int64
		if step == 0 {
			return nil, &values.ValueError{Message: "range() arg 3 must not be zero"}
		}
	default:
		return nil, &values.TypeError{Message: "range expected 1 to 3 arguments"}
	}
	return values.NewRangeIter(start, stop, step), nil
}

func builtinEnumerate(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &values.TypeError{Message: "enumerate() takes 1 or 2 arguments"}
	}
	start := int64(0)
	if len(args) == 2 {
		n, ok := values.AsNumber(args[1])
		if !ok {
			return nil, &values.TypeError{Message: "enumerate() second argument must be an integer"}
		}
		start = n.Int64
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	out := make([]values.Value, len(elems))
	for i, e := range elems {
		out[i] = &values.TupleValue{Elements: []values.Value{values.NewInt(start + int64(i)), e}}
	}
	return values.NewList(out), nil
}

func builtinMin(ctx *values.Context, args []values.Value) (values.Value, error) {
	return minMax(args, -1)
}

func builtinMax(ctx *values.Context, args []values.Value) (values.Value, error) {
	return minMax(args, 1)
}

// minMax implements min()/max() over either several positional arguments
// or a single iterable argument, per Python's dual calling convention.
// want is -1 for min (keep the smaller), +1 for max (keep the larger).
func minMax(args []values.Value, want int) (values.Value, error) {
	elems := args
	name := "max"
	if want < 0 {
		name = "min"
	}
	if len(args) == 1 {
		it, err := iterateAll(args[0])
		if err != nil {
			return nil, err
		}
		elems = it
	}
	if len(elems) == 0 {
		return nil, &values.ValueError{Message: name + "() arg is an empty sequence"}
	}
	best := elems[0]
	for _, e := range elems[1:] {
		c, err := values.CompareValues(e, best)
		if err != nil {
			return nil, err
		}
		if (want < 0 && c < 0) || (want > 0 && c > 0) {
			best = e
		}
	}
	return best, nil
}

func builtinSum(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &values.TypeError{Message: "sum() takes 1 or 2 arguments"}
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	total := numeric.FromInt64Literal(0)
	if len(args) == 2 {
		n, ok := values.AsNumber(args[1])
		if !ok {
			return nil, &values.TypeError{Message: "sum() start value must be numeric"}
		}
		total = n
	}
	for _, e := range elems {
		n, ok := values.AsNumber(e)
		if !ok {
			return nil, &values.TypeError{Message: "unsupported operand type(s) for +: '" + e.Type() + "'"}
		}
		total = numeric.Add(total, n)
	}
	return values.FromNumber(total), nil
}
