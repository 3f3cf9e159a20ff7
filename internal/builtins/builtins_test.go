package builtins

import (
	"strings"
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi/reflecttest"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func newCtx() *values.Context { return values.NewGlobalContext() }

func mustCall(t *testing.T, r *Registry, name string, args ...values.Value) values.Value {
	t.Helper()
	fn, ok := r.Funcs[name]
	if !ok {
		t.Fatalf("no builtin named %q", name)
	}
	v, err := fn(newCtx(), args)
	if err != nil {
		t.Fatalf("%s(...) returned error: %v", name, err)
	}
	return v
}

func TestIntFloatStrBoolConversions(t *testing.T) {
	r := New()
	if got := mustCall(t, r, "int", values.NewString(" 42 ")).String(); got != "42" {
		t.Fatalf("int(' 42 ') = %s, want 42", got)
	}
	if got := mustCall(t, r, "float", values.NewString("3.5")).String(); got != "3.5" {
		t.Fatalf("float('3.5') = %s, want 3.5", got)
	}
	if got := mustCall(t, r, "str", values.NewInt(7)).String(); got != "7" {
		t.Fatalf("str(7) = %s, want 7", got)
	}
	if got := mustCall(t, r, "bool", values.NewInt(0)); got != values.False {
		t.Fatalf("bool(0) = %v, want False", got)
	}
	if got := mustCall(t, r, "bool", values.NewString("x")); got != values.True {
		t.Fatalf("bool('x') = %v, want True", got)
	}
}

func TestIntOnBadStringRaisesValueError(t *testing.T) {
	r := New()
	_, err := r.Funcs["int"](newCtx(), []values.Value{values.NewString("nope")})
	if _, ok := err.(*values.ValueError); !ok {
		t.Fatalf("expected *values.ValueError, got %T: %v", err, err)
	}
}

func TestListSetDictFromIterable(t *testing.T) {
	r := New()
	src := values.NewList([]values.Value{values.NewInt(1), values.NewInt(2), values.NewInt(2)})
	lst := mustCall(t, r, "list", src).(*values.ListValue)
	if len(lst.Elements) != 3 {
		t.Fatalf("list(...) length = %d, want 3", len(lst.Elements))
	}
	set := mustCall(t, r, "set", src).(*values.SetValue)
	if set.Len() != 2 {
		t.Fatalf("set(...) length = %d, want 2 (dedup)", set.Len())
	}
	pairs := values.NewList([]values.Value{
		&values.TupleValue{Elements: []values.Value{values.NewString("a"), values.NewInt(1)}},
	})
	d := mustCall(t, r, "dict", pairs).(*values.DictValue)
	if d.Len() != 1 {
		t.Fatalf("dict(...) length = %d, want 1", d.Len())
	}
}

func TestRangeIteration(t *testing.T) {
	r := New()
	it := mustCall(t, r, "range", values.NewInt(3)).(values.Iterator)
	var got []int64
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("range iteration error: %v", err)
		}
		n, _ := values.AsNumber(v)
		got = append(got, n.Int64)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("range(3) produced %v, want [0 1 2]", got)
	}
}

func TestEnumerate(t *testing.T) {
	r := New()
	src := values.NewList([]values.Value{values.NewString("a"), values.NewString("b")})
	result := mustCall(t, r, "enumerate", src).(*values.ListValue)
	if len(result.Elements) != 2 {
		t.Fatalf("enumerate produced %d pairs, want 2", len(result.Elements))
	}
	first := result.Elements[0].(*values.TupleValue)
	idx, _ := values.AsNumber(first.Elements[0])
	if idx.Int64 != 0 || first.Elements[1].String() != "a" {
		t.Fatalf("enumerate first pair = %v, want (0, 'a')", first)
	}
}

func TestMinMaxSum(t *testing.T) {
	r := New()
	xs := values.NewList([]values.Value{values.NewInt(3), values.NewInt(1), values.NewInt(2)})
	if got := mustCall(t, r, "min", xs).String(); got != "1" {
		t.Fatalf("min = %s, want 1", got)
	}
	if got := mustCall(t, r, "max", xs).String(); got != "3" {
		t.Fatalf("max = %s, want 3", got)
	}
	if got := mustCall(t, r, "sum", xs).String(); got != "6" {
		t.Fatalf("sum = %s, want 6", got)
	}
	if got := mustCall(t, r, "min", values.NewInt(5), values.NewInt(2), values.NewInt(9)).String(); got != "2" {
		t.Fatalf("min(5,2,9) = %s, want 2", got)
	}
}

func TestLenAndIsinstance(t *testing.T) {
	r := New()
	xs := values.NewList([]values.Value{values.NewInt(1), values.NewInt(2)})
	if got := mustCall(t, r, "len", xs).String(); got != "2" {
		t.Fatalf("len(...) = %s, want 2", got)
	}

	exc := r.NewException("ValueError", "bad")
	if got := mustCall(t, r, "isinstance", exc, r.Classes["Exception"]); got != values.True {
		t.Fatalf("isinstance(ValueError(...), Exception) = %v, want True", got)
	}
	if got := mustCall(t, r, "isinstance", exc, r.Classes["TypeError"]); got != values.False {
		t.Fatalf("isinstance(ValueError(...), TypeError) = %v, want False", got)
	}
}

func TestAbsAndRound(t *testing.T) {
	r := New()
	if got := mustCall(t, r, "abs", values.NewInt(-5)).String(); got != "5" {
		t.Fatalf("abs(-5) = %s, want 5", got)
	}
	if got := mustCall(t, r, "round", values.NewFloat(2.4)).String(); got != "2" {
		t.Fatalf("round(2.4) = %s, want 2", got)
	}
}

func TestGlobalsReflectsModuleScope(t *testing.T) {
	r := New()
	ctx := values.NewGlobalContext()
	ctx.DefineLocal("x", values.NewInt(10))
	v, err := r.Funcs["globals"](ctx, nil)
	if err != nil {
		t.Fatalf("globals() error: %v", err)
	}
	d := v.(*values.DictValue)
	got, err := d.GetItem(values.NewString("x"))
	if err != nil {
		t.Fatalf("globals()['x'] missing: %v", err)
	}
	if got.String() != "10" {
		t.Fatalf("globals()['x'] = %s, want 10", got.String())
	}
}

func TestExceptionHierarchyAndStr(t *testing.T) {
	r := New()
	zde := r.Classes["ZeroDivisionError"]
	if !zde.IsSubclassOf(r.Classes["ArithmeticError"]) {
		t.Fatal("ZeroDivisionError should be a subclass of ArithmeticError")
	}
	if !zde.IsSubclassOf(r.Classes["Exception"]) {
		t.Fatal("ZeroDivisionError should be a subclass of Exception")
	}

	inst := r.NewException("ValueError", "boom")
	if got := inst.String(); got != "boom" {
		t.Fatalf("str(ValueError('boom')) = %q, want %q", got, "boom")
	}

	empty, _ := newExceptionInstance(r.Classes["RuntimeError"], nil)
	if got := empty.String(); got != "" {
		t.Fatalf("str(RuntimeError()) = %q, want empty", got)
	}

	multi, _ := newExceptionInstance(r.Classes["KeyError"], []values.Value{values.NewInt(1), values.NewInt(2)})
	if got := multi.String(); got != "(1, 2)" {
		t.Fatalf("str(KeyError(1, 2)) = %q, want (1, 2)", got)
	}
}

func TestPrintWritesToIOHost(t *testing.T) {
	io, out, _ := reflecttest.NewBufferedIO()
	SetIOHost(io)
	defer SetIOHost(nil)

	r := New()
	_, err := r.Funcs["print"](newCtx(), []values.Value{values.NewString("a"), values.NewInt(1)})
	if err != nil {
		t.Fatalf("print(...) error: %v", err)
	}
	if got := out.String(); got != "a 1\n" {
		t.Fatalf("print output = %q, want %q", got, "a 1\n")
	}
}

func TestPrintHonorsSepAndEndKwargs(t *testing.T) {
	io, out, _ := reflecttest.NewBufferedIO()
	SetIOHost(io)
	defer SetIOHost(nil)

	r := New()
	bag := values.NewKwArgsBag()
	bag.Set("sep", values.NewString("-"))
	bag.Set("end", values.NewString("!"))
	_, err := r.Funcs["print"](newCtx(), []values.Value{values.NewString("a"), values.NewString("b"), bag})
	if err != nil {
		t.Fatalf("print(...) error: %v", err)
	}
	if got := out.String(); got != "a-b!" {
		t.Fatalf("print output = %q, want %q", got, "a-b!")
	}
}

func TestExitRunsAtexitCallbacksInReverseAndHalts(t *testing.T) {
	r := New()
	ctx := values.NewGlobalContext()

	var order []string
	SetInvokeHook(func(ctx *values.Context, callee values.Value, args []values.Value) (values.Value, error) {
		name := callee.(*values.StringValue).Value
		order = append(order, name)
		return values.None, nil
	})
	defer SetInvokeHook(nil)

	if _, err := r.Funcs["__atexit_register__"](ctx, []values.Value{values.NewString("first")}); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if _, err := r.Funcs["__atexit_register__"](ctx, []values.Value{values.NewString("second")}); err != nil {
		t.Fatalf("register second: %v", err)
	}
	if _, err := r.Funcs["exit"](ctx, nil); err != nil {
		t.Fatalf("exit() error: %v", err)
	}

	if strings.Join(order, ",") != "second,first" {
		t.Fatalf("atexit callbacks ran in order %v, want [second first]", order)
	}
	if !*ctx.Halted {
		t.Fatal("exit() should set the module's halted flag")
	}
}

func TestJavaWrappersTagInnerValue(t *testing.T) {
	r := New()
	v := mustCall(t, r, "JavaString", values.NewString("hi"))
	wrapper, ok := v.(*values.JavaWrapperValue)
	if !ok {
		t.Fatalf("JavaString(...) returned %T, want *values.JavaWrapperValue", v)
	}
	if wrapper.Kind != "String" || wrapper.Inner.String() != "hi" {
		t.Fatalf("JavaString wrapper = %+v, want Kind=String Inner=hi", wrapper)
	}
}
