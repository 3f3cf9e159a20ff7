package astloader

import (
	"github.com/tidwall/gjson"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

// loadExpr translates one expression node. callerCtx is true exactly when
// node is the `func` of a Call — used to resolve Attribute into a
// bound-method expression instead of a plain field access (spec.md §4.2).
func (l *Loader) loadExpr(node gjson.Result, callerCtx bool) (pyast.Expr, error) {
	pos := l.pos(node)
	switch node.Get("type").String() {
	case "UnaryOp":
		opNode := node.Get("op").Get("type").String()
		op, ok := unaryOpSymbols[opNode]
		if !ok {
			return nil, l.errf(pos, "unsupported unary operator %q", opNode)
		}
		operand, err := l.loadExpr(node.Get("operand"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.UnaryOp{Pos: pos, Op: op, Operand: operand}, nil

	case "BinOp":
		opNode := node.Get("op").Get("type").String()
		op, ok := binOpSymbols[opNode]
		if !ok {
			return nil, l.errf(pos, "unsupported binary operator %q", opNode)
		}
		left, err := l.loadExpr(node.Get("left"), false)
		if err != nil {
			return nil, err
		}
		right, err := l.loadExpr(node.Get("right"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.BinOp{Pos: pos, Left: left, Op: op, Right: right}, nil

	case "Compare":
		left, err := l.loadExpr(node.Get("left"), false)
		if err != nil {
			return nil, err
		}
		opsRaw := node.Get("ops").Array()
		ops := make([]string, len(opsRaw))
		for i, o := range opsRaw {
			sym, ok := compareOpSymbols[o.Get("type").String()]
			if !ok {
				return nil, l.errf(pos, "unsupported comparison operator %q", o.Get("type").String())
			}
			ops[i] = sym
		}
		comparators, err := l.loadExprList(node.Get("comparators"))
		if err != nil {
			return nil, err
		}
		return &pyast.Compare{Pos: pos, Left: left, Ops: ops, Comparators: comparators}, nil

	case "BoolOp":
		opNode := node.Get("op").Get("type").String()
		op, ok := boolOpSymbols[opNode]
		if !ok {
			return nil, l.errf(pos, "unsupported boolean operator %q", opNode)
		}
		values, err := l.loadExprList(node.Get("values"))
		if err != nil {
			return nil, err
		}
		return &pyast.BoolOp{Pos: pos, Op: op, Values: values}, nil

	case "Name":
		id := node.Get("id").String()
		if id == "JavaClass" {
			return &pyast.JavaClassRef{Pos: pos, Literal: ""}, nil
		}
		return &pyast.Name{Pos: pos, Id: id}, nil

	case "Starred":
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.Starred{Pos: pos, Value: value}, nil

	case "Constant":
		return l.loadConstant(node, pos)

	case "Call":
		return l.loadCall(node, pos)

	case "Attribute":
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.Attribute{
			Pos:           pos,
			Value:         value,
			Attr:          node.Get("attr").String(),
			WasCallerFunc: callerCtx,
		}, nil

	case "Subscript":
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		index, err := l.loadExpr(node.Get("slice"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.Subscript{Pos: pos, Value: value, Index: index}, nil

	case "Slice":
		lower, err := l.loadOptExpr(node.Get("lower"))
		if err != nil {
			return nil, err
		}
		upper, err := l.loadOptExpr(node.Get("upper"))
		if err != nil {
			return nil, err
		}
		step, err := l.loadOptExpr(node.Get("step"))
		if err != nil {
			return nil, err
		}
		return &pyast.Slice{Pos: pos, Lower: lower, Upper: upper, Step: step}, nil

	case "IfExp":
		test, err := l.loadExpr(node.Get("test"), false)
		if err != nil {
			return nil, err
		}
		body, err := l.loadExpr(node.Get("body"), false)
		if err != nil {
			return nil, err
		}
		orelse, err := l.loadExpr(node.Get("orelse"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.IfExp{Pos: pos, Test: test, Body: body, Orelse: orelse}, nil

	case "ListComp":
		elt, err := l.loadExpr(node.Get("elt"), false)
		if err != nil {
			return nil, err
		}
		gens, err := l.loadComprehensions(node.Get("generators"))
		if err != nil {
			return nil, err
		}
		return &pyast.ListComp{Pos: pos, Elt: elt, Generators: gens}, nil

	case "Tuple":
		elems, err := l.loadExprList(node.Get("elts"))
		if err != nil {
			return nil, err
		}
		return &pyast.TupleExpr{Pos: pos, Elements: elems}, nil

	case "List":
		elems, err := l.loadExprList(node.Get("elts"))
		if err != nil {
			return nil, err
		}
		return &pyast.ListExpr{Pos: pos, Elements: elems}, nil

	case "Set":
		elems, err := l.loadExprList(node.Get("elts"))
		if err != nil {
			return nil, err
		}
		return &pyast.SetExpr{Pos: pos, Elements: elems}, nil

	case "Dict":
		keysRaw := node.Get("keys").Array()
		keys := make([]pyast.Expr, len(keysRaw))
		for i, k := range keysRaw {
			if k.Type == gjson.Null {
				keys[i] = nil // `**mapping` spread
				continue
			}
			e, err := l.loadExpr(k, false)
			if err != nil {
				return nil, err
			}
			keys[i] = e
		}
		values, err := l.loadExprList(node.Get("values"))
		if err != nil {
			return nil, err
		}
		return &pyast.DictExpr{Pos: pos, Keys: keys, Values: values}, nil

	case "Lambda":
		args, err := l.loadArguments(node.Get("args"))
		if err != nil {
			return nil, err
		}
		body, err := l.loadExpr(node.Get("body"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.Lambda{Pos: pos, Args: args, Body: body}, nil

	case "JoinedStr":
		values, err := l.loadExprList(node.Get("values"))
		if err != nil {
			return nil, err
		}
		return &pyast.JoinedStr{Pos: pos, Values: values}, nil

	case "FormattedValue":
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		var formatSpec pyast.Expr
		if spec := node.Get("format_spec"); spec.Exists() && spec.Type != gjson.Null {
			formatSpec, err = l.loadExpr(spec, false)
			if err != nil {
				return nil, err
			}
		}
		conv := rune(0)
		if c := node.Get("conversion"); c.Exists() && c.Int() > 0 {
			conv = rune(c.Int())
		}
		return &pyast.FormattedValue{Pos: pos, Value: value, Conversion: conv, FormatSpec: formatSpec}, nil

	case "NamedExpr":
		target, err := l.loadExpr(node.Get("target"), false)
		if err != nil {
			return nil, err
		}
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.NamedExpr{Pos: pos, Target: target, Value: value}, nil

	default:
		return nil, l.errf(pos, "unsupported expression node %q", node.Get("type").String())
	}
}

func (l *Loader) loadConstant(node gjson.Result, pos pyast.Pos) (pyast.Expr, error) {
	typename := node.Get("typename").String()
	valueNode := node.Get("value")
	var raw any
	switch typename {
	case "NoneType":
		raw = nil
	case "bool":
		raw = valueNode.Bool()
	case "int":
		raw = valueNode.Int()
	case "float":
		raw = valueNode.Float()
	case "str":
		raw = valueNode.String()
	default:
		return nil, l.errf(pos, "unsupported constant typename %q", typename)
	}
	return &pyast.Constant{Pos: pos, Typename: typename, Raw: raw}, nil
}

func (l *Loader) loadCall(node gjson.Result, pos pyast.Pos) (pyast.Expr, error) {
	funcNode := node.Get("func")
	callee, err := l.loadExpr(funcNode, true)
	if err != nil {
		return nil, err
	}
	args, err := l.loadExprList(node.Get("args"))
	if err != nil {
		return nil, err
	}
	keywords, err := l.loadKeywords(node.Get("keywords"))
	if err != nil {
		return nil, err
	}

	// `Call(JavaClass, "literal")` resolves through the Host Class Loader
	// at evaluation time (spec.md §4.2).
	if ref, ok := callee.(*pyast.JavaClassRef); ok && ref.Literal == "" {
		if len(args) == 1 {
			if c, ok := args[0].(*pyast.Constant); ok && c.Typename == "str" {
				if lit, ok := c.Raw.(string); ok {
					return &pyast.JavaClassRef{Pos: pos, Literal: lit}, nil
				}
			}
		}
	}

	return &pyast.Call{Pos: pos, Func: callee, Args: args, Keywords: keywords}, nil
}

func (l *Loader) loadComprehensions(arr gjson.Result) ([]pyast.Comprehension, error) {
	items := arr.Array()
	out := make([]pyast.Comprehension, 0, len(items))
	for _, item := range items {
		target, err := l.loadExpr(item.Get("target"), false)
		if err != nil {
			return nil, err
		}
		iter, err := l.loadExpr(item.Get("iter"), false)
		if err != nil {
			return nil, err
		}
		ifs, err := l.loadExprList(item.Get("ifs"))
		if err != nil {
			return nil, err
		}
		out = append(out, pyast.Comprehension{Target: target, Iter: iter, Ifs: ifs})
	}
	return out, nil
}
