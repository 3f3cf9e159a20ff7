package evaluator

import (
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/builtins"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func newTestEvaluator() *Evaluator {
	e := New(builtins.New(), nil, nil, nil)
	e.Install()
	return e
}

func name(id string) *pyast.Name { return &pyast.Name{Id: id} }

func constInt(v int64) *pyast.Constant { return &pyast.Constant{Typename: "int", Raw: v} }

func constStr(v string) *pyast.Constant { return &pyast.Constant{Typename: "str", Raw: v} }

func assign(target string, value pyast.Expr) *pyast.Assign {
	return &pyast.Assign{Targets: []pyast.Expr{name(target)}, Value: value}
}

func runBody(t *testing.T, e *Evaluator, body ...pyast.Stmt) *values.Context {
	t.Helper()
	ctx := e.NewModuleContext("t.py")
	if err := e.execBlock(ctx, body); err != nil {
		t.Fatalf("run: %v", err)
	}
	return ctx
}

func lookupInt(t *testing.T, ctx *values.Context, id string) int64 {
	t.Helper()
	v, ok := ctx.Lookup(id)
	if !ok {
		t.Fatalf("%s not defined", id)
	}
	n, ok := values.AsNumber(v)
	if !ok {
		t.Fatalf("%s is not numeric: %#v", id, v)
	}
	return n.Int64
}

func lookupStr(t *testing.T, ctx *values.Context, id string) string {
	t.Helper()
	v, ok := ctx.Lookup(id)
	if !ok {
		t.Fatalf("%s not defined", id)
	}
	return v.String()
}

func TestClosureCapturesEnclosingBinding(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		&pyast.FunctionDef{
			Name: "make_counter",
			Args: &pyast.Arguments{},
			Body: []pyast.Stmt{
				assign("count", constInt(0)),
				&pyast.FunctionDef{
					Name: "increment",
					Args: &pyast.Arguments{},
					Body: []pyast.Stmt{
						&pyast.Nonlocal{Names: []string{"count"}},
						&pyast.AugAssign{Target: name("count"), Op: "+", Value: constInt(1)},
						&pyast.Return{Value: name("count")},
					},
				},
				&pyast.Return{Value: name("increment")},
			},
		},
		assign("inc", &pyast.Call{Func: name("make_counter")}),
		assign("r1", &pyast.Call{Func: name("inc")}),
		assign("r2", &pyast.Call{Func: name("inc")}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupInt(t, ctx, "r1"); got != 1 {
		t.Fatalf("r1 = %d, want 1", got)
	}
	if got := lookupInt(t, ctx, "r2"); got != 2 {
		t.Fatalf("r2 = %d, want 2 (closure should retain state across calls)", got)
	}
}

func TestDataclassFrozenEqualityAndHash(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		&pyast.ClassDef{
			Name:       "Point",
			Decorators: []pyast.Decorator{{Kind: "dataclass", Frozen: true}},
			Body: []pyast.Stmt{
				&pyast.AnnAssign{Target: name("x"), Annotation: name("int")},
				&pyast.AnnAssign{Target: name("y"), Annotation: name("int")},
			},
		},
		assign("a", &pyast.Call{Func: name("Point"), Args: []pyast.Expr{constInt(1), constInt(2)}}),
		assign("b", &pyast.Call{Func: name("Point"), Args: []pyast.Expr{constInt(1), constInt(2)}}),
		assign("eq", &pyast.Compare{Left: name("a"), Ops: []string{"=="}, Comparators: []pyast.Expr{name("b")}}),
	}
	ctx := runBody(t, e, tree...)
	eqVal, ok := ctx.Lookup("eq")
	if !ok {
		t.Fatal("eq not defined")
	}
	if !values.Truthy(eqVal) {
		t.Fatalf("expected two frozen dataclass instances with equal fields to compare equal")
	}

	a, _ := ctx.Lookup("a")
	b, _ := ctx.Lookup("b")
	ai := a.(*values.ScriptInstance)
	bi := b.(*values.ScriptInstance)
	if values.DataclassHash(ai) != values.DataclassHash(bi) {
		t.Fatalf("expected equal frozen dataclass instances to hash the same")
	}

	// Mutating a frozen instance must fail.
	if err := ai.SetAttr("x", values.NewInt(99)); err == nil {
		t.Fatal("expected SetAttr on a frozen instance to fail")
	}
}

func TestTryExceptFinallyOrdering(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("order", &pyast.ListExpr{}),
		&pyast.Try{
			Body: []pyast.Stmt{
				&pyast.ExprStmt{Value: &pyast.Call{
					Func: &pyast.Attribute{Value: name("order"), Attr: "append", WasCallerFunc: true},
					Args: []pyast.Expr{constStr("try")},
				}},
				assign("x", name("undefined_name")),
			},
			Handlers: []pyast.ExceptHandler{{
				Type: name("NameError"),
				Body: []pyast.Stmt{
					&pyast.ExprStmt{Value: &pyast.Call{
						Func: &pyast.Attribute{Value: name("order"), Attr: "append", WasCallerFunc: true},
						Args: []pyast.Expr{constStr("except")},
					}},
				},
			}},
			Finalbody: []pyast.Stmt{
				&pyast.ExprStmt{Value: &pyast.Call{
					Func: &pyast.Attribute{Value: name("order"), Attr: "append", WasCallerFunc: true},
					Args: []pyast.Expr{constStr("finally")},
				}},
			},
		},
	}
	ctx := runBody(t, e, tree...)
	orderVal, _ := ctx.Lookup("order")
	list := orderVal.(*values.ListValue)
	if len(list.Elements) != 3 {
		t.Fatalf("order = %v, want 3 entries", list.Elements)
	}
	want := []string{"try", "except", "finally"}
	for i, w := range want {
		if got := list.Elements[i].String(); got != w {
			t.Fatalf("order[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestForLoopTupleUnpackAndBreak(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("pairs", &pyast.ListExpr{Elements: []pyast.Expr{
			&pyast.TupleExpr{Elements: []pyast.Expr{constInt(1), constInt(10)}},
			&pyast.TupleExpr{Elements: []pyast.Expr{constInt(2), constInt(20)}},
			&pyast.TupleExpr{Elements: []pyast.Expr{constInt(3), constInt(30)}},
		}}),
		assign("total", constInt(0)),
		&pyast.For{
			Target: &pyast.TupleExpr{Elements: []pyast.Expr{name("k"), name("v")}},
			Iter:   name("pairs"),
			Body: []pyast.Stmt{
				&pyast.If{
					Test: &pyast.Compare{Left: name("k"), Ops: []string{"=="}, Comparators: []pyast.Expr{constInt(3)}},
					Body: []pyast.Stmt{&pyast.Break{}},
				},
				&pyast.AugAssign{Target: name("total"), Op: "+", Value: name("v")},
			},
		},
	}
	ctx := runBody(t, e, tree...)
	if got := lookupInt(t, ctx, "total"); got != 30 {
		t.Fatalf("total = %d, want 30 (10+20, stopped before k==3)", got)
	}
}

func TestListComprehensionWithFilter(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("xs", &pyast.ListExpr{Elements: []pyast.Expr{
			constInt(1), constInt(2), constInt(3), constInt(4), constInt(5),
		}}),
		assign("evens", &pyast.ListComp{
			Elt: &pyast.BinOp{Left: name("x"), Op: "*", Right: constInt(2)},
			Generators: []pyast.Comprehension{{
				Target: name("x"),
				Iter:   name("xs"),
				Ifs: []pyast.Expr{
					&pyast.Compare{
						Left:        &pyast.BinOp{Left: name("x"), Op: "%", Right: constInt(2)},
						Ops:         []string{"=="},
						Comparators: []pyast.Expr{constInt(0)},
					},
				},
			}},
		}),
	}
	ctx := runBody(t, e, tree...)
	evensVal, _ := ctx.Lookup("evens")
	list := evensVal.(*values.ListValue)
	want := []int64{4, 8}
	if len(list.Elements) != len(want) {
		t.Fatalf("evens = %v, want %v", list.Elements, want)
	}
	for i, w := range want {
		n, _ := values.AsNumber(list.Elements[i])
		if n.Int64 != w {
			t.Fatalf("evens[%d] = %d, want %d", i, n.Int64, w)
		}
	}
}

func TestFStringFormatting(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("n", &pyast.Constant{Typename: "float", Raw: 3.14159}),
		assign("s", &pyast.JoinedStr{Values: []pyast.Expr{
			&pyast.Constant{Typename: "str", Raw: "pi="},
			&pyast.FormattedValue{Value: name("n"), FormatSpec: &pyast.JoinedStr{Values: []pyast.Expr{constStr(".2f")}}},
		}}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupStr(t, ctx, "s"); got != "pi=3.14" {
		t.Fatalf("s = %q, want %q", got, "pi=3.14")
	}
}

func TestLambdaClosesOverEnclosingScope(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("factor", constInt(3)),
		assign("triple", &pyast.Lambda{
			Args: &pyast.Arguments{Args: []string{"x"}},
			Body: &pyast.BinOp{Left: name("x"), Op: "*", Right: name("factor")},
		}),
		assign("r", &pyast.Call{Func: name("triple"), Args: []pyast.Expr{constInt(7)}}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupInt(t, ctx, "r"); got != 21 {
		t.Fatalf("r = %d, want 21", got)
	}
}

func TestDictAndSetLiterals(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("d", &pyast.DictExpr{
			Keys:   []pyast.Expr{constStr("a"), constStr("b")},
			Values: []pyast.Expr{constInt(1), constInt(2)},
		}),
		assign("s", &pyast.SetExpr{Elements: []pyast.Expr{constInt(1), constInt(2), constInt(2), constInt(3)}}),
	}
	ctx := runBody(t, e, tree...)
	dVal, _ := ctx.Lookup("d")
	d := dVal.(*values.DictValue)
	if d.Len() != 2 {
		t.Fatalf("len(d) = %d, want 2", d.Len())
	}
	sVal, _ := ctx.Lookup("s")
	s := sVal.(*values.SetValue)
	if s.Len() != 3 {
		t.Fatalf("len(s) = %d, want 3 (duplicates collapse)", s.Len())
	}
}

func TestChainedComparison(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("r1", &pyast.Compare{
			Left:        constInt(1),
			Ops:         []string{"<", "<"},
			Comparators: []pyast.Expr{constInt(2), constInt(3)},
		}),
		assign("r2", &pyast.Compare{
			Left:        constInt(1),
			Ops:         []string{"<", "<"},
			Comparators: []pyast.Expr{constInt(5), constInt(3)},
		}),
	}
	ctx := runBody(t, e, tree...)
	r1, _ := ctx.Lookup("r1")
	if !values.Truthy(r1) {
		t.Fatal("1 < 2 < 3 should be True")
	}
	r2, _ := ctx.Lookup("r2")
	if values.Truthy(r2) {
		t.Fatal("1 < 5 < 3 should be False")
	}
}

func TestBoolOpReturnsLastEvaluatedOperand(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		assign("r1", &pyast.BoolOp{Op: "or", Values: []pyast.Expr{constInt(0), constStr("fallback")}}),
		assign("r2", &pyast.BoolOp{Op: "and", Values: []pyast.Expr{constInt(5), constStr("last")}}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupStr(t, ctx, "r1"); got != "fallback" {
		t.Fatalf("r1 = %q, want %q", got, "fallback")
	}
	if got := lookupStr(t, ctx, "r2"); got != "last" {
		t.Fatalf("r2 = %q, want %q", got, "last")
	}
}

func TestArgumentBindingDefaultsVarargsKwargs(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		&pyast.FunctionDef{
			Name: "f",
			Args: &pyast.Arguments{
				Args:     []string{"a", "b"},
				Defaults: []pyast.Expr{constInt(2)},
				Vararg:   "rest",
				Kwarg:    "extra",
			},
			Body: []pyast.Stmt{
				assign("total", &pyast.BinOp{Left: name("a"), Op: "+", Right: name("b")}),
				&pyast.For{
					Target: name("r"),
					Iter:   name("rest"),
					Body:   []pyast.Stmt{&pyast.AugAssign{Target: name("total"), Op: "+", Value: name("r")}},
				},
				&pyast.Return{Value: name("total")},
			},
		},
		assign("r1", &pyast.Call{Func: name("f"), Args: []pyast.Expr{constInt(1)}}),
		assign("r2", &pyast.Call{Func: name("f"), Args: []pyast.Expr{constInt(1), constInt(10), constInt(100)}}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupInt(t, ctx, "r1"); got != 3 {
		t.Fatalf("r1 = %d, want 3 (a=1, b defaults to 2)", got)
	}
	if got := lookupInt(t, ctx, "r2"); got != 111 {
		t.Fatalf("r2 = %d, want 111 (1+10+100 via *rest)", got)
	}
}

func TestClassInstanceAndClassMethod(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		&pyast.ClassDef{
			Name: "Counter",
			Body: []pyast.Stmt{
				&pyast.FunctionDef{
					Name: "__init__",
					Args: &pyast.Arguments{Args: []string{"self", "start"}},
					Body: []pyast.Stmt{
						&pyast.Assign{Targets: []pyast.Expr{&pyast.Attribute{Value: name("self"), Attr: "value"}}, Value: name("start")},
					},
				},
				&pyast.FunctionDef{
					Name: "bump",
					Args: &pyast.Arguments{Args: []string{"self"}},
					Body: []pyast.Stmt{
						&pyast.AugAssign{Target: &pyast.Attribute{Value: name("self"), Attr: "value"}, Op: "+", Value: constInt(1)},
						&pyast.Return{Value: &pyast.Attribute{Value: name("self"), Attr: "value"}},
					},
				},
				&pyast.FunctionDef{
					Name:       "zero",
					Decorators: []pyast.Decorator{{Kind: "classmethod"}},
					Args:       &pyast.Arguments{Args: []string{"cls"}},
					Body: []pyast.Stmt{
						&pyast.Return{Value: &pyast.Call{Func: name("cls"), Args: []pyast.Expr{constInt(0)}}},
					},
				},
			},
		},
		assign("c", &pyast.Call{Func: name("Counter"), Args: []pyast.Expr{constInt(5)}}),
		assign("r1", &pyast.Call{Func: &pyast.Attribute{Value: name("c"), Attr: "bump", WasCallerFunc: true}}),
		assign("z", &pyast.Call{Func: &pyast.Attribute{Value: name("Counter"), Attr: "zero", WasCallerFunc: true}}),
		assign("r2", &pyast.Call{Func: &pyast.Attribute{Value: name("z"), Attr: "bump", WasCallerFunc: true}}),
	}
	ctx := runBody(t, e, tree...)
	if got := lookupInt(t, ctx, "r1"); got != 6 {
		t.Fatalf("r1 = %d, want 6", got)
	}
	if got := lookupInt(t, ctx, "r2"); got != 1 {
		t.Fatalf("r2 = %d, want 1 (classmethod zero() constructs Counter(0))", got)
	}
}

// TestExitHaltsEveryModuleThisEvaluatorBuilt guards against exit() only
// flipping the halted flag of the module that called it: a program built
// from more than one module (the root module plus anything loaded via
// import) must see every one of them halted, since they all share one
// Evaluator and one cooperative-cancellation contract.
func TestExitHaltsEveryModuleThisEvaluatorBuilt(t *testing.T) {
	e := newTestEvaluator()
	main := e.NewModuleContext("<main>")
	imported := e.NewModuleContext("helper")

	if *main.Halted || *imported.Halted {
		t.Fatal("modules should not start out halted")
	}

	if _, err := e.Builtins.Funcs["exit"](main, nil); err != nil {
		t.Fatalf("exit() error: %v", err)
	}

	if !*main.Halted {
		t.Fatal("expected the exiting module's halted flag to be set")
	}
	if !*imported.Halted {
		t.Fatal("expected every other module this Evaluator built to be halted too")
	}
	if !imported.Zombie.Exited {
		t.Fatal("expected every other module's Zombie state to be marked exited")
	}
}

func TestAttributeErrorOnUnknownField(t *testing.T) {
	e := newTestEvaluator()
	tree := []pyast.Stmt{
		&pyast.ClassDef{Name: "Empty", Body: []pyast.Stmt{&pyast.Pass{}}},
		assign("obj", &pyast.Call{Func: name("Empty")}),
	}
	ctx := e.NewModuleContext("t.py")
	if err := e.execBlock(ctx, tree); err != nil {
		t.Fatalf("setup: %v", err)
	}
	objVal, _ := ctx.Lookup("obj")
	_, err := e.GetAttr(objVal, "missing")
	if err == nil {
		t.Fatal("expected AttributeError for undefined field")
	}
	if _, ok := err.(*values.AttributeError); !ok {
		t.Fatalf("expected *values.AttributeError, got %T", err)
	}
}
