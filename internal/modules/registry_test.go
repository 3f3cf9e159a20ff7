package modules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// fakeHost resolves dotted names against an in-memory table of statement
// lists, keyed by the dotted name itself (canonical == dotted for these
// tests, which is sufficient for the behaviors under test).
type fakeHost struct {
	modules map[string][]pyast.Stmt
	loads   int
}

func (h *fakeHost) Resolve(dotted string) (string, []pyast.Stmt, error) {
	stmts, ok := h.modules[dotted]
	if !ok {
		return "", nil, fmt.Errorf("no such module %q", dotted)
	}
	h.loads++
	return dotted, stmts, nil
}

// fakeExecutor runs a module body against a plain values.Context, with no
// built-ins installed (these tests only exercise assignment/lookup).
type fakeExecutor struct{}

func (fakeExecutor) NewModuleContext(filename string) *values.Context {
	return values.NewGlobalContextNamed(filename)
}

func (fakeExecutor) ExecModule(ctx *values.Context, stmts []pyast.Stmt) error {
	for _, stmt := range stmts {
		assign, ok := stmt.(*pyast.Assign)
		if !ok {
			continue
		}
		name, ok := assign.Targets[0].(*pyast.Name)
		if !ok {
			continue
		}
		c, ok := assign.Value.(*pyast.Constant)
		if !ok {
			continue
		}
		switch c.Typename {
		case "int":
			ctx.DefineLocal(name.Id, values.NewInt(c.Raw.(int64)))
		case "str":
			ctx.DefineLocal(name.Id, values.NewString(c.Raw.(string)))
		}
	}
	return nil
}

func constAssign(target, typename string, raw any) *pyast.Assign {
	return &pyast.Assign{
		Targets: []pyast.Expr{&pyast.Name{Id: target}},
		Value:   &pyast.Constant{Typename: typename, Raw: raw},
	}
}

func TestLoadCachesByCanonicalName(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{
		"greet": {constAssign("message", "str", "hello")},
	}}
	reg := New(host, fakeExecutor{})

	m1, err := reg.Load("greet")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	m2, err := reg.Load("greet")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if m1 != m2 {
		t.Fatal("expected the same *values.ModuleValue instance across loads")
	}
	if host.loads != 2 {
		t.Fatalf("host.Resolve called %d times, want 2 (every Load resolves to find the canonical name; m1 == m2 shows the body ran once)", host.loads)
	}
}

func TestLoadRejectsCircularDependency(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{"a": {}}}
	reg := New(host, fakeExecutor{})
	reg.loading["a"] = true

	_, err := reg.Load("a")
	if err == nil {
		t.Fatal("expected a circular dependency error")
	}
	if !strings.Contains(err.Error(), "circular dependency") {
		t.Fatalf("error = %v, want it to mention circular dependency", err)
	}
}

func TestImportBindsDottedNamespaceChain(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{
		"a.b.c": {constAssign("x", "int", int64(42))},
	}}
	reg := New(host, fakeExecutor{})
	ctx := values.NewGlobalContext()

	if err := reg.execImport(ctx, []pyast.Alias{{Name: "a.b.c"}}); err != nil {
		t.Fatalf("execImport: %v", err)
	}

	aVal, ok := ctx.Lookup("a")
	if !ok {
		t.Fatal("expected 'a' to be bound")
	}
	bVal, ok := aVal.(*values.NamespaceValue).GetAttr("b")
	if !ok {
		t.Fatal("expected 'a.b' to be bound")
	}
	cVal, ok := bVal.(*values.NamespaceValue).GetAttr("c")
	if !ok {
		t.Fatal("expected 'a.b.c' to be bound")
	}
	mod, ok := cVal.(*values.ModuleValue)
	if !ok {
		t.Fatalf("a.b.c = %#v, want *values.ModuleValue", cVal)
	}
	xVal, ok := mod.GetAttr("x")
	if !ok {
		t.Fatal("expected a.b.c.x to resolve")
	}
	n, _ := values.AsNumber(xVal)
	if n.Int64 != 42 {
		t.Fatalf("a.b.c.x = %d, want 42", n.Int64)
	}
}

func TestImportAsAliasBindsDirectly(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{
		"a.b.c": {constAssign("x", "int", int64(7))},
	}}
	reg := New(host, fakeExecutor{})
	ctx := values.NewGlobalContext()

	if err := reg.execImport(ctx, []pyast.Alias{{Name: "a.b.c", AsName: "abc"}}); err != nil {
		t.Fatalf("execImport: %v", err)
	}
	v, ok := ctx.Lookup("abc")
	if !ok {
		t.Fatal("expected 'abc' to be bound")
	}
	if _, ok := v.(*values.ModuleValue); !ok {
		t.Fatalf("abc = %#v, want *values.ModuleValue directly (no namespace chain for aliased import)", v)
	}
}

func TestImportFromStar(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{
		"m": {
			constAssign("a", "int", int64(1)),
			constAssign("b", "int", int64(2)),
			constAssign("__private", "int", int64(99)),
		},
	}}
	reg := New(host, fakeExecutor{})
	ctx := values.NewGlobalContext()

	if err := reg.execImportFrom(ctx, "m", []pyast.Alias{{Name: "*"}}, 0); err != nil {
		t.Fatalf("execImportFrom: %v", err)
	}
	if _, ok := ctx.Lookup("a"); !ok {
		t.Fatal("expected 'a' imported")
	}
	if _, ok := ctx.Lookup("b"); !ok {
		t.Fatal("expected 'b' imported")
	}
	if _, ok := ctx.Lookup("__private"); ok {
		t.Fatal("expected dunder-prefixed name NOT imported by import *")
	}
}

func TestImportFromSpecificNamesWithAlias(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{
		"m": {constAssign("value", "int", int64(5))},
	}}
	reg := New(host, fakeExecutor{})
	ctx := values.NewGlobalContext()

	err := reg.execImportFrom(ctx, "m", []pyast.Alias{{Name: "value", AsName: "v"}}, 0)
	if err != nil {
		t.Fatalf("execImportFrom: %v", err)
	}
	if _, ok := ctx.Lookup("value"); ok {
		t.Fatal("did not expect unaliased name 'value' to be bound")
	}
	got, ok := ctx.Lookup("v")
	if !ok {
		t.Fatal("expected alias 'v' to be bound")
	}
	n, _ := values.AsNumber(got)
	if n.Int64 != 5 {
		t.Fatalf("v = %d, want 5", n.Int64)
	}
}

func TestImportFromRelativeLevelRejected(t *testing.T) {
	host := &fakeHost{modules: map[string][]pyast.Stmt{"m": {}}}
	reg := New(host, fakeExecutor{})
	ctx := values.NewGlobalContext()

	err := reg.execImportFrom(ctx, "m", []pyast.Alias{{Name: "x"}}, 1)
	if err == nil {
		t.Fatal("expected relative imports (level > 0) to be rejected")
	}
}
