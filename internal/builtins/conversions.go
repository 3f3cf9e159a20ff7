package builtins

import (
	"strconv"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func registerConversions(r *Registry) {
	r.Funcs["int"] = builtinInt
	r.Funcs["float"] = builtinFloat
	r.Funcs["str"] = builtinStr
	r.Funcs["bool"] = builtinBool
	r.Funcs["tuple"] = builtinTuple
	r.Funcs["list"] = builtinList
	r.Funcs["set"] = builtinSet
	r.Funcs["dict"] = builtinDict
	r.Funcs["ord"] = builtinOrd
	r.Funcs["chr"] = builtinChr
	r.Funcs["hex"] = builtinHex
}

func builtinInt(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.NewInt(0), nil
	}
	switch v := args[0].(type) {
	case *values.IntegerValue:
		return v, nil
	case *values.FloatValue:
		return values.NewInt(int64(v.Num.Float64)), nil
	case values.BoolValue:
		return values.NewInt(v.AsInt64()), nil
	case *values.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, &values.ValueError{Message: "invalid literal for int() with base 10: " + values.ReprString(v)}
		}
		return values.NewInt(n), nil
	default:
		return nil, &values.TypeError{Message: "int() argument must be a string or a number, not '" + v.Type() + "'"}
	}
}

func builtinFloat(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.NewFloat(0), nil
	}
	switch v := args[0].(type) {
	case *values.FloatValue:
		return v, nil
	case *values.IntegerValue:
		return values.NewFloat(float64(v.Num.Int64)), nil
	case values.BoolValue:
		return values.NewFloat(float64(v.AsInt64())), nil
	case *values.StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, &values.ValueError{Message: "could not convert string to float: " + values.ReprString(v)}
		}
		return values.NewFloat(f), nil
	default:
		return nil, &values.TypeError{Message: "float() argument must be a string or a number, not '" + v.Type() + "'"}
	}
}

func builtinStr(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.NewString(""), nil
	}
	return values.NewString(args[0].String()), nil
}

func builtinBool(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.False, nil
	}
	return values.Bool(values.Truthy(args[0])), nil
}

func iterateAll(v values.Value) ([]values.Value, error) {
	iterable, ok := v.(values.Iterable)
	if !ok {
		return nil, &values.TypeError{Message: "'" + v.Type() + "' object is not iterable"}
	}
	it := iterable.Iterate()
	var out []values.Value
	for it.HasNext() {
		elem, err := it.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

func builtinTuple(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return &values.TupleValue{}, nil
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	return &values.TupleValue{Elements: elems}, nil
}

func builtinList(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.NewList(nil), nil
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	return values.NewList(elems), nil
}

func builtinSet(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.NewSet(nil), nil
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	return values.NewSet(elems), nil
}

func builtinDict(ctx *values.Context, args []values.Value) (values.Value, error) {
	d := values.NewDict()
	if len(args) == 0 {
		return d, nil
	}
	pairs, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		tuple, ok := p.(*values.TupleValue)
		if !ok || len(tuple.Elements) != 2 {
			return nil, &values.TypeError{Message: "dict() argument must be an iterable of key/value pairs"}
		}
		if err := d.SetItem(tuple.Elements[0], tuple.Elements[1]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func builtinOrd(ctx *values.Context, args []values.Value) (values.Value, error) {
	s, ok := soleString(args)
	if !ok {
		return nil, &values.TypeError{Message: "ord() expected a single-character string"}
	}
	runes := []rune(s.Value)
	if len(runes) != 1 {
		return nil, &values.TypeError{Message: "ord() expected a character, but string of length " + strconv.Itoa(len(runes)) + " found"}
	}
	return values.NewInt(int64(runes[0])), nil
}

func builtinChr(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "chr() takes exactly one argument"}
	}
	n, ok := values.AsNumber(args[0])
	if !ok {
		return nil, &values.TypeError{Message: "an integer is required"}
	}
	return values.NewString(string(rune(n.Int64))), nil
}

func builtinHex(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "hex() takes exactly one argument"}
	}
	n, ok := values.AsNumber(args[0])
	if !ok {
		return nil, &values.TypeError{Message: "'" + args[0].Type() + "' object cannot be interpreted as an integer"}
	}
	if n.Int64 < 0 {
		return values.NewString("-0x" + strconv.FormatInt(-n.Int64, 16)), nil
	}
	return values.NewString("0x" + strconv.FormatInt(n.Int64, 16)), nil
}

func soleString(args []values.Value) (*values.StringValue, bool) {
	if len(args) != 1 {
		return nil, false
	}
	s, ok := args[0].(*values.StringValue)
	return s, ok
}
