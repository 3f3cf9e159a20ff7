package astloader

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// ImportObserver is notified as import-like statements are loaded, before
// any module resolution happens: once per imported module name for
// `import` (so `import a, b` notifies twice, each with a one-alias names
// slice), once per statement for `from import`. names holds the raw
// aliases exactly as declared; level is the relative-import dot count
// (0 for `import`/absolute `from import`).
type ImportObserver func(module string, names []pyast.Alias, level int, line int)

// Loader translates one source file's JSON AST into a *pyast.Module.
// A Loader carries no per-node state beyond the filename/observer, so
// loading another file only needs a new Loader (or a changed Filename).
type Loader struct {
	Filename string
	Observer ImportObserver // may be nil
}

// New returns a Loader that reports errors against filename and invokes
// observer (if non-nil) for every import statement it encounters.
func New(filename string, observer ImportObserver) *Loader {
	return &Loader{Filename: filename, Observer: observer}
}

// LoadModule parses jsonSource as a single `Module` node and returns the
// translated AST, or a *values.ParseError if the tree contains a node type
// the loader does not recognize.
func (l *Loader) LoadModule(jsonSource []byte) (*pyast.Module, error) {
	if !gjson.ValidBytes(jsonSource) {
		return nil, l.errf(pyast.Pos{Line: 0}, "malformed JSON AST")
	}
	root := gjson.ParseBytes(jsonSource)
	if root.Get("type").String() != "Module" {
		return nil, l.errf(l.pos(root), "expected a top-level Module node, got %q", root.Get("type").String())
	}
	body, err := l.loadStmtList(root.Get("body"))
	if err != nil {
		return nil, err
	}
	return &pyast.Module{Pos: l.pos(root), Body: body}, nil
}

func (l *Loader) pos(node gjson.Result) pyast.Pos {
	return pyast.Pos{Line: int(node.Get("lineno").Int())}
}

func (l *Loader) errf(pos pyast.Pos, format string, args ...any) error {
	return &values.ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: values.Position{Filename: l.Filename, Line: pos.Line},
	}
}

func (l *Loader) loadStmtList(arr gjson.Result) ([]pyast.Stmt, error) {
	items := arr.Array()
	out := make([]pyast.Stmt, 0, len(items))
	for _, item := range items {
		s, err := l.loadStmt(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (l *Loader) loadExprList(arr gjson.Result) ([]pyast.Expr, error) {
	items := arr.Array()
	out := make([]pyast.Expr, 0, len(items))
	for _, item := range items {
		e, err := l.loadExpr(item, false)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (l *Loader) loadOptExpr(node gjson.Result) (pyast.Expr, error) {
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}
	return l.loadExpr(node, false)
}

func (l *Loader) loadAliases(arr gjson.Result) []pyast.Alias {
	items := arr.Array()
	out := make([]pyast.Alias, 0, len(items))
	for _, item := range items {
		out = append(out, pyast.Alias{
			Name:   item.Get("name").String(),
			AsName: item.Get("asname").String(),
		})
	}
	return out
}

func (l *Loader) loadArguments(node gjson.Result) (*pyast.Arguments, error) {
	if !node.Exists() {
		return &pyast.Arguments{}, nil
	}
	var names []string
	for _, a := range node.Get("args").Array() {
		names = append(names, a.Get("arg").String())
	}
	defaults, err := l.loadExprList(node.Get("defaults"))
	if err != nil {
		return nil, err
	}
	vararg := ""
	if v := node.Get("vararg"); v.Exists() && v.Type != gjson.Null {
		vararg = v.Get("arg").String()
	}
	var kwOnly []string
	for _, a := range node.Get("kwonlyargs").Array() {
		kwOnly = append(kwOnly, a.Get("arg").String())
	}
	kwDefaultsRaw := node.Get("kw_defaults").Array()
	kwDefaults := make([]pyast.Expr, len(kwDefaultsRaw))
	for i, d := range kwDefaultsRaw {
		if d.Type == gjson.Null {
			kwDefaults[i] = nil
			continue
		}
		e, err := l.loadExpr(d, false)
		if err != nil {
			return nil, err
		}
		kwDefaults[i] = e
	}
	kwarg := ""
	if v := node.Get("kwarg"); v.Exists() && v.Type != gjson.Null {
		kwarg = v.Get("arg").String()
	}
	return &pyast.Arguments{
		Args:           names,
		Defaults:       defaults,
		Vararg:         vararg,
		KwOnlyArgs:     kwOnly,
		KwOnlyDefaults: kwDefaults,
		Kwarg:          kwarg,
	}, nil
}

func (l *Loader) loadKeywords(arr gjson.Result) ([]pyast.Keyword, error) {
	items := arr.Array()
	out := make([]pyast.Keyword, 0, len(items))
	for _, item := range items {
		val, err := l.loadExpr(item.Get("value"), false)
		if err != nil {
			return nil, err
		}
		out = append(out, pyast.Keyword{Name: item.Get("arg").String(), Value: val})
	}
	return out, nil
}

// loadDecorators recognizes @dataclass(...), @classmethod, @staticmethod
// structurally (spec.md §4.2); anything else is preserved as Raw with an
// empty Kind so execution ignores it.
func (l *Loader) loadDecorators(arr gjson.Result) ([]pyast.Decorator, error) {
	items := arr.Array()
	out := make([]pyast.Decorator, 0, len(items))
	for _, item := range items {
		raw, err := l.loadExpr(item, false)
		if err != nil {
			return nil, err
		}
		dec := pyast.Decorator{Kind: "", Raw: raw}
		switch d := raw.(type) {
		case *pyast.Name:
			switch d.Id {
			case "dataclass":
				dec.Kind = "dataclass"
			case "classmethod":
				dec.Kind = "classmethod"
			case "staticmethod":
				dec.Kind = "staticmethod"
			}
		case *pyast.Call:
			if name, ok := d.Func.(*pyast.Name); ok && name.Id == "dataclass" {
				dec.Kind = "dataclass"
				for _, kw := range d.Keywords {
					if kw.Name == "frozen" {
						if c, ok := kw.Value.(*pyast.Constant); ok {
							if b, ok := c.Raw.(bool); ok {
								dec.Frozen = b
							}
						}
					}
				}
			}
		}
		out = append(out, dec)
	}
	return out, nil
}
