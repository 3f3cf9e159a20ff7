package builtins

import (
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func mustCallMethod(t *testing.T, receiver values.Value, name string, args ...values.Value) values.Value {
	t.Helper()
	v, ok, err := CallMethod(newCtx(), receiver, name, args)
	if !ok {
		t.Fatalf("no built-in method %q on %T", name, receiver)
	}
	if err != nil {
		t.Fatalf("%s(...) returned error: %v", name, err)
	}
	return v
}

func TestStringUpperLowerCasefold(t *testing.T) {
	s := values.NewString("Straße")
	if got := mustCallMethod(t, s, "upper").String(); got != "STRASSE" {
		t.Fatalf("upper() = %q, want %q", got, "STRASSE")
	}
	if got := mustCallMethod(t, values.NewString("ABC"), "lower").String(); got != "abc" {
		t.Fatalf("lower() = %q, want abc", got)
	}
	if got := mustCallMethod(t, s, "casefold").String(); got != "strasse" {
		t.Fatalf("casefold() = %q, want strasse", got)
	}
}

func TestStringStripVariants(t *testing.T) {
	s := values.NewString("  hi  ")
	if got := mustCallMethod(t, s, "strip").String(); got != "hi" {
		t.Fatalf("strip() = %q, want %q", got, "hi")
	}
	if got := mustCallMethod(t, s, "lstrip").String(); got != "hi  " {
		t.Fatalf("lstrip() = %q, want %q", got, "hi  ")
	}
	if got := mustCallMethod(t, s, "rstrip").String(); got != "  hi" {
		t.Fatalf("rstrip() = %q, want %q", got, "  hi")
	}
	trimmed := mustCallMethod(t, values.NewString("xxhixx"), "strip", values.NewString("x")).String()
	if trimmed != "hi" {
		t.Fatalf("strip('x') = %q, want hi", trimmed)
	}
}

func TestStringFindReplaceStartEndswith(t *testing.T) {
	s := values.NewString("hello world")
	if got := mustCallMethod(t, s, "find", values.NewString("world")).String(); got != "6" {
		t.Fatalf("find = %s, want 6", got)
	}
	if got := mustCallMethod(t, s, "find", values.NewString("zz")).String(); got != "-1" {
		t.Fatalf("find(missing) = %s, want -1", got)
	}
	if got := mustCallMethod(t, s, "replace", values.NewString("l"), values.NewString("L")).String(); got != "heLLo worLd" {
		t.Fatalf("replace = %q", got)
	}
	if got := mustCallMethod(t, s, "replace", values.NewString("l"), values.NewString("L"), values.NewInt(1)).String(); got != "heLlo world" {
		t.Fatalf("replace(count=1) = %q", got)
	}
	if mustCallMethod(t, s, "startswith", values.NewString("hello")) != values.True {
		t.Fatal("startswith should be True")
	}
	if mustCallMethod(t, s, "endswith", values.NewString("world")) != values.True {
		t.Fatal("endswith should be True")
	}
}

func TestStringJoinAndSplit(t *testing.T) {
	joined := mustCallMethod(t, values.NewString("-"), "join", values.NewList([]values.Value{
		values.NewString("a"), values.NewString("b"), values.NewString("c"),
	}))
	if joined.String() != "a-b-c" {
		t.Fatalf("join = %q, want a-b-c", joined.String())
	}

	whitespaceSplit := mustCallMethod(t, values.NewString("  a  b c "), "split").(*values.ListValue)
	if len(whitespaceSplit.Elements) != 3 {
		t.Fatalf("split() on whitespace produced %d parts, want 3", len(whitespaceSplit.Elements))
	}

	sepSplit := mustCallMethod(t, values.NewString("a,b,,c"), "split", values.NewString(",")).(*values.ListValue)
	if len(sepSplit.Elements) != 4 {
		t.Fatalf("split(',') produced %d parts, want 4", len(sepSplit.Elements))
	}

	_, _, err := CallMethod(newCtx(), values.NewString("abc"), "split", []values.Value{values.NewString("")})
	if err == nil {
		t.Fatal("split('') should be an error")
	}
	if _, ok := err.(*values.ValueError); !ok {
		t.Fatalf("split('') error type = %T, want *values.ValueError", err)
	}
}

func TestStringCenterLjustRjust(t *testing.T) {
	if got := mustCallMethod(t, values.NewString("hi"), "center", values.NewInt(6)).String(); got != "  hi  " {
		t.Fatalf("center(6) = %q, want %q", got, "  hi  ")
	}
	if got := mustCallMethod(t, values.NewString("hi"), "ljust", values.NewInt(5), values.NewString("*")).String(); got != "hi***" {
		t.Fatalf("ljust(5,'*') = %q, want hi***", got)
	}
	if got := mustCallMethod(t, values.NewString("hi"), "rjust", values.NewInt(5), values.NewString("*")).String(); got != "***hi" {
		t.Fatalf("rjust(5,'*') = %q, want ***hi", got)
	}
}

func TestListSortReverseCopy(t *testing.T) {
	l := values.NewList([]values.Value{values.NewInt(3), values.NewInt(1), values.NewInt(2)})
	if _, err := listSort(newCtx(), l, nil); err != nil {
		t.Fatalf("sort() error: %v", err)
	}
	if l.String() != "[1, 2, 3]" {
		t.Fatalf("after sort = %s, want [1, 2, 3]", l.String())
	}

	cp := mustCallMethod(t, l, "copy").(*values.ListValue)
	cp.Elements[0] = values.NewInt(99)
	if l.Elements[0].String() != "1" {
		t.Fatal("copy() should not alias the original backing array")
	}

	if _, err := listReverse(newCtx(), l, nil); err != nil {
		t.Fatalf("reverse() error: %v", err)
	}
	if l.String() != "[3, 2, 1]" {
		t.Fatalf("after reverse = %s, want [3, 2, 1]", l.String())
	}
}

func TestListSortWithReverseKwarg(t *testing.T) {
	l := values.NewList([]values.Value{values.NewInt(1), values.NewInt(3), values.NewInt(2)})
	bag := values.NewKwArgsBag()
	bag.Set("reverse", values.True)
	if _, err := listSort(newCtx(), l, []values.Value{bag}); err != nil {
		t.Fatalf("sort(reverse=True) error: %v", err)
	}
	if l.String() != "[3, 2, 1]" {
		t.Fatalf("after sort(reverse=True) = %s, want [3, 2, 1]", l.String())
	}
}

func TestListAppendExtendPopIndexCountInsertRemove(t *testing.T) {
	l := values.NewList([]values.Value{values.NewInt(1), values.NewInt(2)})
	mustCallMethod(t, l, "append", values.NewInt(3))
	if l.String() != "[1, 2, 3]" {
		t.Fatalf("after append = %s", l.String())
	}
	mustCallMethod(t, l, "extend", values.NewList([]values.Value{values.NewInt(4), values.NewInt(5)}))
	if l.String() != "[1, 2, 3, 4, 5]" {
		t.Fatalf("after extend = %s", l.String())
	}
	popped := mustCallMethod(t, l, "pop")
	if popped.String() != "5" {
		t.Fatalf("pop() = %s, want 5", popped.String())
	}
	idx := mustCallMethod(t, l, "index", values.NewInt(3))
	if idx.String() != "2" {
		t.Fatalf("index(3) = %s, want 2", idx.String())
	}
	mustCallMethod(t, l, "insert", values.NewInt(0), values.NewInt(0))
	if l.String() != "[0, 1, 2, 3, 4]" {
		t.Fatalf("after insert(0,0) = %s", l.String())
	}
	mustCallMethod(t, l, "remove", values.NewInt(0))
	if l.String() != "[1, 2, 3, 4]" {
		t.Fatalf("after remove(0) = %s", l.String())
	}
	count := mustCallMethod(t, values.NewList([]values.Value{values.NewInt(1), values.NewInt(1)}), "count", values.NewInt(1))
	if count.String() != "2" {
		t.Fatalf("count(1) = %s, want 2", count.String())
	}
}

func TestDictKeysValuesItemsGetPopUpdate(t *testing.T) {
	d := values.NewDict()
	d.SetItem(values.NewString("a"), values.NewInt(1))
	d.SetItem(values.NewString("b"), values.NewInt(2))

	keys := mustCallMethod(t, d, "keys").(*values.ListValue)
	if len(keys.Elements) != 2 {
		t.Fatalf("keys() length = %d, want 2", len(keys.Elements))
	}
	items := mustCallMethod(t, d, "items").(*values.ListValue)
	if len(items.Elements) != 2 {
		t.Fatalf("items() length = %d, want 2", len(items.Elements))
	}

	got := mustCallMethod(t, d, "get", values.NewString("a"))
	if got.String() != "1" {
		t.Fatalf("get('a') = %s, want 1", got.String())
	}
	missing := mustCallMethod(t, d, "get", values.NewString("z"), values.NewInt(-1))
	if missing.String() != "-1" {
		t.Fatalf("get('z', -1) = %s, want -1", missing.String())
	}

	popped := mustCallMethod(t, d, "pop", values.NewString("a"))
	if popped.String() != "1" {
		t.Fatalf("pop('a') = %s, want 1", popped.String())
	}
	if d.Len() != 1 {
		t.Fatalf("dict length after pop = %d, want 1", d.Len())
	}

	other := values.NewDict()
	other.SetItem(values.NewString("c"), values.NewInt(3))
	mustCallMethod(t, d, "update", other)
	if d.Len() != 2 {
		t.Fatalf("dict length after update = %d, want 2", d.Len())
	}
}

func TestSetMethods(t *testing.T) {
	s := values.NewSet([]values.Value{values.NewInt(1), values.NewInt(2)})
	mustCallMethod(t, s, "add", values.NewInt(3))
	if s.Len() != 3 {
		t.Fatalf("set length after add = %d, want 3", s.Len())
	}
	mustCallMethod(t, s, "discard", values.NewInt(3))
	if s.Len() != 2 {
		t.Fatalf("set length after discard = %d, want 2", s.Len())
	}

	other := values.NewSet([]values.Value{values.NewInt(2), values.NewInt(5)})
	union := mustCallMethod(t, s, "union", other).(*values.SetValue)
	if union.Len() != 3 {
		t.Fatalf("union length = %d, want 3", union.Len())
	}
	inter := mustCallMethod(t, s, "intersection", other).(*values.SetValue)
	if inter.Len() != 1 {
		t.Fatalf("intersection length = %d, want 1", inter.Len())
	}
	if mustCallMethod(t, s, "isdisjoint", values.NewSet([]values.Value{values.NewInt(99)})) != values.True {
		t.Fatal("isdisjoint should be True for disjoint sets")
	}
}

func TestCallMethodFallsThroughForUnknownReceiverOrName(t *testing.T) {
	_, ok, err := CallMethod(newCtx(), values.NewInt(5), "upper", nil)
	if ok || err != nil {
		t.Fatalf("CallMethod on int receiver: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
	_, ok, err = CallMethod(newCtx(), values.NewString("x"), "not_a_method", nil)
	if ok || err != nil {
		t.Fatalf("CallMethod unknown method: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}
