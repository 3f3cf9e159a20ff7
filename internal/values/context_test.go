package values

import "testing"

func TestContextGlobalNonlocal(t *testing.T) {
	g := NewGlobalContext()
	g.DefineLocal("x", NewInt(1))

	outer := g.NewEnclosed()
	outer.DefineLocal("y", NewInt(2))

	inner := outer.NewEnclosed()
	inner.DeclareNonlocal("y")
	inner.Assign("y", NewInt(99))

	v, ok := outer.Lookup("y")
	if !ok {
		t.Fatal("expected y to be found in outer scope")
	}
	if iv := v.(*IntegerValue); iv.Num.Int64 != 99 {
		t.Errorf("y = %d, want 99 after nonlocal assignment", iv.Num.Int64)
	}

	inner.DeclareGlobal("x")
	inner.Assign("x", NewInt(42))
	gv, _ := g.Lookup("x")
	if iv := gv.(*IntegerValue); iv.Num.Int64 != 42 {
		t.Errorf("x = %d, want 42 after global assignment", iv.Num.Int64)
	}
}

func TestContextLookupChain(t *testing.T) {
	g := NewGlobalContext()
	g.DefineLocal("a", NewInt(1))
	fn := g.NewEnclosed()
	call := NewCall(fn, nil)
	call.DefineLocal("b", NewInt(2))

	if _, ok := call.Lookup("a"); !ok {
		t.Error("expected to find global 'a' via enclosing chain")
	}
	if _, ok := call.Lookup("b"); !ok {
		t.Error("expected to find local 'b'")
	}
	if _, ok := call.Lookup("nope"); ok {
		t.Error("expected lookup of undefined name to fail")
	}
}

func TestClosuresIncrementExample(t *testing.T) {
	// Mirrors spec.md §8 scenario 1: closures and nonlocal.
	g := NewGlobalContext()
	mkCtx := g.NewEnclosed()
	mkCtx.DefineLocal("x", NewInt(0))

	incClosure := mkCtx // inc's defining context

	call := func() int64 {
		frame := NewCall(incClosure, nil)
		frame.DeclareNonlocal("x")
		cur, _ := frame.Lookup("x")
		next := NewInt(cur.(*IntegerValue).Num.Int64 + 1)
		frame.Assign("x", next)
		return next.Num.Int64
	}

	if got := call(); got != 1 {
		t.Fatalf("first call = %d, want 1", got)
	}
	if got := call(); got != 2 {
		t.Fatalf("second call = %d, want 2", got)
	}
	if got := call(); got != 3 {
		t.Fatalf("third call = %d, want 3", got)
	}
}
