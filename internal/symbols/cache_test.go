package symbols

import (
	"reflect"
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func TestGetOrResolveMethodCachesInvoker(t *testing.T) {
	c := New()
	class := values.InternHostClass(reflect.TypeOf(0), "int")
	argTypes := []reflect.Type{reflect.TypeOf("")}

	calls := 0
	resolve := func() (ResolvedCall, error) {
		calls++
		return ResolvedCall{Invoke: func(reflect.Value, []reflect.Value) ([]reflect.Value, error) { return nil, nil }}, nil
	}

	inv1, err := c.GetOrResolveMethod(class, false, "foo", argTypes, resolve)
	if err != nil {
		t.Fatal(err)
	}
	inv2, err := c.GetOrResolveMethod(class, false, "foo", argTypes, resolve)
	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Errorf("resolve called %d times, want 1 (compute-if-absent)", calls)
	}
	if reflect.ValueOf(inv1.Invoke).Pointer() != reflect.ValueOf(inv2.Invoke).Pointer() {
		t.Error("expected the same invoker instance on a repeated resolution")
	}
}

func TestGetOrResolveMethodDistinctArgTypesDoNotCollide(t *testing.T) {
	c := New()
	class := values.InternHostClass(reflect.TypeOf(0), "int")

	calls := 0
	resolve := func() (ResolvedCall, error) {
		calls++
		return ResolvedCall{Invoke: func(reflect.Value, []reflect.Value) ([]reflect.Value, error) { return nil, nil }}, nil
	}

	if _, err := c.GetOrResolveMethod(class, false, "foo", []reflect.Type{reflect.TypeOf("")}, resolve); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrResolveMethod(class, false, "foo", []reflect.Type{reflect.TypeOf(0)}, resolve); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("resolve called %d times, want 2 for distinct arg-type tuples", calls)
	}
}

func TestArgTypesKeyStable(t *testing.T) {
	a := ArgTypesKey([]reflect.Type{reflect.TypeOf(0), reflect.TypeOf("")})
	b := ArgTypesKey([]reflect.Type{reflect.TypeOf(0), reflect.TypeOf("")})
	if a != b {
		t.Errorf("ArgTypesKey not stable: %q != %q", a, b)
	}
}
