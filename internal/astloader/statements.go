package astloader

import (
	"github.com/tidwall/gjson"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

func (l *Loader) loadStmt(node gjson.Result) (pyast.Stmt, error) {
	pos := l.pos(node)
	switch node.Get("type").String() {
	case "FunctionDef", "AsyncFunctionDef":
		return l.loadFunctionDef(node, pos)
	case "ClassDef":
		return l.loadClassDef(node, pos)
	case "Import":
		names := l.loadAliases(node.Get("names"))
		if l.Observer != nil {
			for _, a := range names {
				l.Observer(a.Name, []pyast.Alias{a}, 0, pos.Line)
			}
		}
		return &pyast.Import{Pos: pos, Names: names}, nil
	case "ImportFrom":
		module := node.Get("module").String()
		names := l.loadAliases(node.Get("names"))
		level := int(node.Get("level").Int())
		if l.Observer != nil {
			l.Observer(module, names, level, pos.Line)
		}
		return &pyast.ImportFrom{Pos: pos, Module: module, Names: names, Level: level}, nil
	case "AnnAssign":
		target, err := l.loadExpr(node.Get("target"), false)
		if err != nil {
			return nil, err
		}
		annotation, err := l.loadExpr(node.Get("annotation"), false)
		if err != nil {
			return nil, err
		}
		value, err := l.loadOptExpr(node.Get("value"))
		if err != nil {
			return nil, err
		}
		return &pyast.AnnAssign{Pos: pos, Target: target, Annotation: annotation, Value: value}, nil
	case "Assign":
		targets, err := l.loadExprList(node.Get("targets"))
		if err != nil {
			return nil, err
		}
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.Assign{Pos: pos, Targets: targets, Value: value}, nil
	case "AugAssign":
		target, err := l.loadExpr(node.Get("target"), false)
		if err != nil {
			return nil, err
		}
		opNode := node.Get("op").Get("type").String()
		op, ok := binOpSymbols[opNode]
		if !ok {
			return nil, l.errf(pos, "unsupported augmented-assignment operator %q", opNode)
		}
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.AugAssign{Pos: pos, Target: target, Op: op, Value: value}, nil
	case "Delete":
		targets, err := l.loadExprList(node.Get("targets"))
		if err != nil {
			return nil, err
		}
		return &pyast.Delete{Pos: pos, Targets: targets}, nil
	case "Global":
		return &pyast.Global{Pos: pos, Names: stringArray(node.Get("names"))}, nil
	case "Nonlocal":
		return &pyast.Nonlocal{Pos: pos, Names: stringArray(node.Get("names"))}, nil
	case "Expr":
		value, err := l.loadExpr(node.Get("value"), false)
		if err != nil {
			return nil, err
		}
		return &pyast.ExprStmt{Pos: pos, Value: value}, nil
	case "If":
		return l.loadIf(node, pos)
	case "For":
		return l.loadFor(node, pos)
	case "While":
		test, err := l.loadExpr(node.Get("test"), false)
		if err != nil {
			return nil, err
		}
		body, err := l.loadStmtList(node.Get("body"))
		if err != nil {
			return nil, err
		}
		orelse, err := l.loadStmtList(node.Get("orelse"))
		if err != nil {
			return nil, err
		}
		return &pyast.While{Pos: pos, Test: test, Body: body, Orelse: orelse}, nil
	case "Pass":
		return &pyast.Pass{Pos: pos}, nil
	case "Break":
		return &pyast.Break{Pos: pos}, nil
	case "Continue":
		return &pyast.Continue{Pos: pos}, nil
	case "Try":
		return l.loadTry(node, pos)
	case "Raise":
		exc, err := l.loadOptExpr(node.Get("exc"))
		if err != nil {
			return nil, err
		}
		cause, err := l.loadOptExpr(node.Get("cause"))
		if err != nil {
			return nil, err
		}
		return &pyast.Raise{Pos: pos, Exc: exc, Cause: cause}, nil
	case "Return":
		value, err := l.loadOptExpr(node.Get("value"))
		if err != nil {
			return nil, err
		}
		return &pyast.Return{Pos: pos, Value: value}, nil
	default:
		return nil, l.errf(pos, "unsupported statement node %q", node.Get("type").String())
	}
}

func (l *Loader) loadFunctionDef(node gjson.Result, pos pyast.Pos) (pyast.Stmt, error) {
	args, err := l.loadArguments(node.Get("args"))
	if err != nil {
		return nil, err
	}
	body, err := l.loadStmtList(node.Get("body"))
	if err != nil {
		return nil, err
	}
	decorators, err := l.loadDecorators(node.Get("decorator_list"))
	if err != nil {
		return nil, err
	}
	return &pyast.FunctionDef{
		Pos:        pos,
		Name:       node.Get("name").String(),
		Args:       args,
		Body:       body,
		Decorators: decorators,
	}, nil
}

func (l *Loader) loadClassDef(node gjson.Result, pos pyast.Pos) (pyast.Stmt, error) {
	bases, err := l.loadExprList(node.Get("bases"))
	if err != nil {
		return nil, err
	}
	keywords, err := l.loadKeywords(node.Get("keywords"))
	if err != nil {
		return nil, err
	}
	body, err := l.loadStmtList(node.Get("body"))
	if err != nil {
		return nil, err
	}
	decorators, err := l.loadDecorators(node.Get("decorator_list"))
	if err != nil {
		return nil, err
	}
	return &pyast.ClassDef{
		Pos:        pos,
		Name:       node.Get("name").String(),
		Bases:      bases,
		Keywords:   keywords,
		Body:       body,
		Decorators: decorators,
	}, nil
}

func (l *Loader) loadIf(node gjson.Result, pos pyast.Pos) (pyast.Stmt, error) {
	test, err := l.loadExpr(node.Get("test"), false)
	if err != nil {
		return nil, err
	}
	body, err := l.loadStmtList(node.Get("body"))
	if err != nil {
		return nil, err
	}
	orelse, err := l.loadStmtList(node.Get("orelse"))
	if err != nil {
		return nil, err
	}
	return &pyast.If{Pos: pos, Test: test, Body: body, Orelse: orelse}, nil
}

func (l *Loader) loadFor(node gjson.Result, pos pyast.Pos) (pyast.Stmt, error) {
	target, err := l.loadExpr(node.Get("target"), false)
	if err != nil {
		return nil, err
	}
	iter, err := l.loadExpr(node.Get("iter"), false)
	if err != nil {
		return nil, err
	}
	body, err := l.loadStmtList(node.Get("body"))
	if err != nil {
		return nil, err
	}
	orelse, err := l.loadStmtList(node.Get("orelse"))
	if err != nil {
		return nil, err
	}
	return &pyast.For{Pos: pos, Target: target, Iter: iter, Body: body, Orelse: orelse}, nil
}

func (l *Loader) loadTry(node gjson.Result, pos pyast.Pos) (pyast.Stmt, error) {
	body, err := l.loadStmtList(node.Get("body"))
	if err != nil {
		return nil, err
	}
	handlerNodes := node.Get("handlers").Array()
	handlers := make([]pyast.ExceptHandler, 0, len(handlerNodes))
	for _, h := range handlerNodes {
		hpos := l.pos(h)
		typ, err := l.loadOptExpr(h.Get("type"))
		if err != nil {
			return nil, err
		}
		hbody, err := l.loadStmtList(h.Get("body"))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, pyast.ExceptHandler{
			Pos:  hpos,
			Type: typ,
			Name: h.Get("name").String(),
			Body: hbody,
		})
	}
	orelse, err := l.loadStmtList(node.Get("orelse"))
	if err != nil {
		return nil, err
	}
	finalbody, err := l.loadStmtList(node.Get("finalbody"))
	if err != nil {
		return nil, err
	}
	return &pyast.Try{Pos: pos, Body: body, Handlers: handlers, Orelse: orelse, Finalbody: finalbody}, nil
}

func stringArray(arr gjson.Result) []string {
	items := arr.Array()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}
