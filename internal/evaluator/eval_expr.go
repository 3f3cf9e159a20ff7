package evaluator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/builtins"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// EvalExpr is compiler.EvalExprHook: evaluates one expression the
// compiler escaped to the tree-walking evaluator (dict literals, sequence
// literals with a starred element, lambdas, comprehensions, f-strings, the walrus operator, chained
// comparisons, any Call carrying keyword/starred arguments — see
// internal/compiler/doc.go) and, when a whole body is tree-walked rather
// than compiled, every other expression kind too.
func (e *Evaluator) EvalExpr(ctx *values.Context, expr pyast.Expr) (values.Value, error) {
	switch n := expr.(type) {
	case *pyast.Constant:
		return constantValue(n), nil

	case *pyast.Name:
		v, ok := ctx.Lookup(n.Id)
		if !ok {
			return nil, &values.NameError{Name: n.Id, Position: values.Position{Filename: ctx.Global.Filename, Line: n.LineNo()}}
		}
		return v, nil

	case *pyast.UnaryOp:
		v, err := e.EvalExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
		return values.ApplyUnary(n.Op, v)

	case *pyast.BinOp:
		l, err := e.EvalExpr(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := e.EvalExpr(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return values.ApplyBinary(n.Op, l, r)

	case *pyast.Compare:
		return e.evalCompare(ctx, n)

	case *pyast.BoolOp:
		return e.evalBoolOp(ctx, n)

	case *pyast.Starred:
		return nil, &values.TypeError{Message: "can't use starred expression here"}

	case *pyast.Call:
		return e.evalCall(ctx, n)

	case *pyast.Attribute:
		obj, err := e.EvalExpr(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		return e.GetAttr(obj, n.Attr)

	case *pyast.Subscript:
		obj, err := e.EvalExpr(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		idx, err := e.evalIndex(ctx, n.Index)
		if err != nil {
			return nil, err
		}
		getter, ok := obj.(values.ItemGetter)
		if !ok {
			return nil, &values.TypeError{Message: fmt.Sprintf("'%s' object is not subscriptable", obj.Type())}
		}
		return getter.GetItem(idx)

	case *pyast.Slice:
		return e.evalSlice(ctx, n)

	case *pyast.IfExp:
		t, err := e.EvalExpr(ctx, n.Test)
		if err != nil {
			return nil, err
		}
		if values.Truthy(t) {
			return e.EvalExpr(ctx, n.Body)
		}
		return e.EvalExpr(ctx, n.Orelse)

	case *pyast.ListComp:
		return e.evalListComp(ctx, n)

	case *pyast.TupleExpr:
		elems, err := e.flattenExprList(ctx, n.Elements)
		if err != nil {
			return nil, err
		}
		return &values.TupleValue{Elements: elems}, nil

	case *pyast.ListExpr:
		elems, err := e.flattenExprList(ctx, n.Elements)
		if err != nil {
			return nil, err
		}
		return values.NewList(elems), nil

	case *pyast.SetExpr:
		elems, err := e.flattenExprList(ctx, n.Elements)
		if err != nil {
			return nil, err
		}
		return values.NewSet(elems), nil

	case *pyast.DictExpr:
		return e.evalDictExpr(ctx, n)

	case *pyast.Lambda:
		return &values.LambdaValue{Def: n, Closure: ctx, Zombie: ctx.Global.Zombie}, nil

	case *pyast.JoinedStr:
		var sb strings.Builder
		for _, part := range n.Values {
			v, err := e.EvalExpr(ctx, part)
			if err != nil {
				return nil, err
			}
			sb.WriteString(v.String())
		}
		return values.NewString(sb.String()), nil

	case *pyast.FormattedValue:
		return e.evalFormattedValue(ctx, n)

	case *pyast.NamedExpr:
		v, err := e.EvalExpr(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		if err := e.assignTarget(ctx, n.Target, v); err != nil {
			return nil, err
		}
		return v, nil

	case *pyast.JavaClassRef:
		return e.evalJavaClassRef(n)

	default:
		return nil, &values.TypeError{Message: fmt.Sprintf("unsupported expression %T", expr)}
	}
}

func constantValue(c *pyast.Constant) values.Value {
	switch c.Typename {
	case "bool":
		b, _ := c.Raw.(bool)
		return values.Bool(b)
	case "int":
		i, _ := c.Raw.(int64)
		return values.NewInt(i)
	case "float":
		f, _ := c.Raw.(float64)
		return values.NewFloat(f)
	case "str":
		s, _ := c.Raw.(string)
		return values.NewString(s)
	default:
		return values.None
	}
}

func (e *Evaluator) evalCompare(ctx *values.Context, n *pyast.Compare) (values.Value, error) {
	left, err := e.EvalExpr(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		right, err := e.EvalExpr(ctx, n.Comparators[i])
		if err != nil {
			return nil, err
		}
		result, err := values.ApplyCompare(op, left, right)
		if err != nil {
			return nil, err
		}
		if !values.Truthy(result) {
			return values.False, nil
		}
		left = right
	}
	return values.True, nil
}

func (e *Evaluator) evalBoolOp(ctx *values.Context, n *pyast.BoolOp) (values.Value, error) {
	var result values.Value = values.None
	for _, operand := range n.Values {
		v, err := e.EvalExpr(ctx, operand)
		if err != nil {
			return nil, err
		}
		result = v
		truthy := values.Truthy(v)
		if n.Op == "and" && !truthy {
			return v, nil
		}
		if n.Op == "or" && truthy {
			return v, nil
		}
	}
	return result, nil
}

func (e *Evaluator) evalCall(ctx *values.Context, call *pyast.Call) (values.Value, error) {
	callee, err := e.evalCallee(ctx, call.Func)
	if err != nil {
		return nil, err
	}
	args, err := e.flattenExprList(ctx, call.Args)
	if err != nil {
		return nil, err
	}
	var kwargs map[string]values.Value
	if len(call.Keywords) > 0 {
		kwargs = make(map[string]values.Value, len(call.Keywords))
		for _, kw := range call.Keywords {
			v, err := e.EvalExpr(ctx, kw.Value)
			if err != nil {
				return nil, err
			}
			if kw.Name == "" {
				mapping, ok := v.(*values.DictValue)
				if !ok {
					return nil, &values.TypeError{Message: "argument after ** must be a mapping"}
				}
				for _, k := range mapping.Keys() {
					sk, ok := k.(*values.StringValue)
					if !ok {
						return nil, &values.TypeError{Message: "keywords must be strings"}
					}
					val, _ := mapping.GetItem(k)
					kwargs[sk.Value] = val
				}
				continue
			}
			kwargs[kw.Name] = v
		}
	}
	return e.invokeCore(ctx, callee, args, kwargs, ctx.Global.Filename, call.LineNo())
}

// evalCallee evaluates the callable in a Call's Func position, resolving
// `obj.method(...)` to a bound method the same way internal/vm does for
// an Attribute with WasCallerFunc set (spec.md §4.2).
func (e *Evaluator) evalCallee(ctx *values.Context, fn pyast.Expr) (values.Value, error) {
	if attr, ok := fn.(*pyast.Attribute); ok && attr.WasCallerFunc {
		obj, err := e.EvalExpr(ctx, attr.Value)
		if err != nil {
			return nil, err
		}
		return e.BoundMethod(obj, attr.Attr)
	}
	return e.EvalExpr(ctx, fn)
}

// flattenExprList evaluates a comma-separated expression list (call
// positional args, tuple/list/set literal elements), splicing a Starred
// element's iterable contents in place (spec.md §4.3).
func (e *Evaluator) flattenExprList(ctx *values.Context, exprs []pyast.Expr) ([]values.Value, error) {
	out := make([]values.Value, 0, len(exprs))
	for _, expr := range exprs {
		if st, ok := expr.(*pyast.Starred); ok {
			v, err := e.EvalExpr(ctx, st.Value)
			if err != nil {
				return nil, err
			}
			items, err := e.materialize(v)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
			continue
		}
		v, err := e.EvalExpr(ctx, expr)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) evalDictExpr(ctx *values.Context, n *pyast.DictExpr) (values.Value, error) {
	d := values.NewDict()
	for i, k := range n.Keys {
		if k == nil {
			v, err := e.EvalExpr(ctx, n.Values[i])
			if err != nil {
				return nil, err
			}
			mapping, ok := v.(*values.DictValue)
			if !ok {
				return nil, &values.TypeError{Message: fmt.Sprintf("argument of type '%s' is not a mapping", v.Type())}
			}
			for _, mk := range mapping.Keys() {
				mv, _ := mapping.GetItem(mk)
				if err := d.SetItem(mk, mv); err != nil {
					return nil, err
				}
			}
			continue
		}
		kv, err := e.EvalExpr(ctx, k)
		if err != nil {
			return nil, err
		}
		vv, err := e.EvalExpr(ctx, n.Values[i])
		if err != nil {
			return nil, err
		}
		if err := d.SetItem(kv, vv); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// evalListComp runs every generator clause in its own enclosed scope,
// matching Python's comprehension-has-its-own-scope rule (spec.md §4.3).
func (e *Evaluator) evalListComp(ctx *values.Context, lc *pyast.ListComp) (values.Value, error) {
	compCtx := ctx.NewEnclosed()
	var out []values.Value
	var walk func(i int) error
	walk = func(i int) error {
		if i == len(lc.Generators) {
			v, err := e.EvalExpr(compCtx, lc.Elt)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		}
		gen := lc.Generators[i]
		iterVal, err := e.EvalExpr(compCtx, gen.Iter)
		if err != nil {
			return err
		}
		iterable, ok := iterVal.(values.Iterable)
		if !ok {
			return &values.TypeError{Message: fmt.Sprintf("'%s' object is not iterable", iterVal.Type())}
		}
		it := iterable.Iterate()
		for it.HasNext() {
			item, err := it.Next()
			if err != nil {
				return err
			}
			if err := e.assignTarget(compCtx, gen.Target, item); err != nil {
				return err
			}
			keep := true
			for _, cond := range gen.Ifs {
				cv, err := e.EvalExpr(compCtx, cond)
				if err != nil {
					return err
				}
				if !values.Truthy(cv) {
					keep = false
					break
				}
			}
			if !keep {
				continue
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, err
	}
	return values.NewList(out), nil
}

func (e *Evaluator) evalJavaClassRef(n *pyast.JavaClassRef) (values.Value, error) {
	if e.Loader == nil {
		return nil, &values.TypeError{Message: "no host class loader configured"}
	}
	if n.Literal != "" {
		return e.Loader.ResolveClass(n.Literal)
	}
	loader := e.Loader
	return &builtins.NativeFunction{
		Name: "JavaClass",
		Call: func(_ *values.Context, args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, &values.TypeError{Message: "JavaClass() takes exactly one argument"}
			}
			name, ok := args[0].(*values.StringValue)
			if !ok {
				return nil, &values.TypeError{Message: "JavaClass() argument must be a string"}
			}
			return loader.ResolveClass(name.Value)
		},
	}, nil
}

func (e *Evaluator) evalFormattedValue(ctx *values.Context, n *pyast.FormattedValue) (values.Value, error) {
	v, err := e.EvalExpr(ctx, n.Value)
	if err != nil {
		return nil, err
	}
	text := formatConversion(v, n.Conversion)
	if n.FormatSpec == nil {
		return values.NewString(text), nil
	}
	specVal, err := e.EvalExpr(ctx, n.FormatSpec)
	if err != nil {
		return nil, err
	}
	spec := specVal.String()
	formatted, err := applyFormatSpec(text, v, spec)
	if err != nil {
		return nil, err
	}
	return values.NewString(formatted), nil
}

func formatConversion(v values.Value, conv rune) string {
	switch conv {
	case 'r', 'a':
		return values.ReprString(v)
	default:
		return v.String()
	}
}

// formatSpecPattern covers the common subset of Python's format mini
// language: [[fill]align][sign][#][0][width][,][.precision][type].
var formatSpecPattern = regexp.MustCompile(`^(?:(.)?([<>^=]))?([+\- ])?(#)?(0)?(\d+)?(,)?(?:\.(\d+))?([bcdeEfFgGnosxX%])?$`)

// applyFormatSpec renders v according to spec, the text after a `:` in an
// f-string segment (spec.md §4.4). Falls back to defaultText for a spec
// this subset doesn't recognize rather than failing the whole f-string.
func applyFormatSpec(defaultText string, v values.Value, spec string) (string, error) {
	if spec == "" {
		return defaultText, nil
	}
	m := formatSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		return defaultText, nil
	}
	fill, align, sign, zero, widthStr, precisionStr, typ := m[1], m[2], m[3], m[5], m[6], m[8], m[9]

	precision := -1
	if precisionStr != "" {
		precision, _ = strconv.Atoi(precisionStr)
	}

	text := defaultText
	switch typ {
	case "f", "F":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		p := precision
		if p < 0 {
			p = 6
		}
		text = strconv.FormatFloat(n.AsFloat64(), 'f', p, 64)
	case "e", "E":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		p := precision
		if p < 0 {
			p = 6
		}
		text = strconv.FormatFloat(n.AsFloat64(), byte(typ[0]), p, 64)
	case "%":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		p := precision
		if p < 0 {
			p = 6
		}
		text = strconv.FormatFloat(n.AsFloat64()*100, 'f', p, 64) + "%"
	case "d":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		text = strconv.FormatInt(n.AsInt64(), 10)
	case "x":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		text = strconv.FormatInt(n.AsInt64(), 16)
	case "X":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		text = strings.ToUpper(strconv.FormatInt(n.AsInt64(), 16))
	case "o":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		text = strconv.FormatInt(n.AsInt64(), 8)
	case "b":
		n, ok := values.AsNumber(v)
		if !ok {
			return "", &values.TypeError{Message: "unsupported format string passed to non-numeric value"}
		}
		text = strconv.FormatInt(n.AsInt64(), 2)
	case "s", "":
		if precision >= 0 && precision < len(text) {
			text = text[:precision]
		}
	}

	if sign == "+" && len(text) > 0 && text[0] != '-' {
		text = "+" + text
	}

	if widthStr != "" {
		width, _ := strconv.Atoi(widthStr)
		padChar := byte(' ')
		if fill != "" {
			padChar = fill[0]
		} else if zero == "0" {
			padChar = '0'
		}
		if len(text) < width {
			padLen := width - len(text)
			switch align {
			case "<":
				text = text + strings.Repeat(string(padChar), padLen)
			case "^":
				left := padLen / 2
				right := padLen - left
				text = strings.Repeat(string(padChar), left) + text + strings.Repeat(string(padChar), right)
			default:
				text = strings.Repeat(string(padChar), padLen) + text
			}
		}
	}
	return text, nil
}
