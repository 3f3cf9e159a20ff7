package values

import "testing"

func TestListTupleRoundTrip(t *testing.T) {
	xs := NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})
	tup := &TupleValue{Elements: append([]Value{}, xs.Elements...)}
	back := NewList(append([]Value{}, tup.Elements...))

	if len(back.Elements) != len(xs.Elements) {
		t.Fatalf("list(tuple(xs)) length = %d, want %d", len(back.Elements), len(xs.Elements))
	}
	for i := range xs.Elements {
		eq, err := Equal(xs.Elements[i], back.Elements[i])
		if err != nil || !eq {
			t.Fatalf("list(tuple(xs))[%d] != xs[%d]", i, i)
		}
	}
}

func TestDictItemsRoundTrip(t *testing.T) {
	d := NewDict()
	_ = d.SetItem(NewString("a"), NewInt(1))
	_ = d.SetItem(NewString("b"), NewInt(2))

	d2 := NewDict()
	for _, item := range d.Items() {
		_ = d2.SetItem(item.Elements[0], item.Elements[1])
	}

	if d2.Len() != d.Len() {
		t.Fatalf("dict(d.items()) length = %d, want %d", d2.Len(), d.Len())
	}
	v, err := d2.GetItem(NewString("a"))
	if err != nil {
		t.Fatal(err)
	}
	if iv := v.(*IntegerValue); iv.Num.Int64 != 1 {
		t.Errorf("d2['a'] = %d, want 1", iv.Num.Int64)
	}
}

func TestNegativeIndexing(t *testing.T) {
	xs := NewList([]Value{NewInt(10), NewInt(20), NewInt(30)})
	v, err := xs.GetItem(NewInt(-1))
	if err != nil {
		t.Fatal(err)
	}
	if iv := v.(*IntegerValue); iv.Num.Int64 != 30 {
		t.Errorf("xs[-1] = %d, want 30", iv.Num.Int64)
	}
	if _, err := xs.GetItem(NewInt(5)); err == nil {
		t.Error("expected out-of-range index to fail")
	}
}

func TestSliceStepNotOneFailsExplicitly(t *testing.T) {
	step := int64(2)
	s := &SliceValue{Step: &step}
	if _, _, err := s.Resolve(10); err == nil {
		t.Error("expected slice step != 1 to fail explicitly")
	}
}

func TestEmptyListIteratorHasNoElements(t *testing.T) {
	empty := NewList(nil)
	it := empty.Iterate()
	if it.HasNext() {
		t.Error("expected empty list iterator to have no elements")
	}
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet([]Value{NewInt(1), NewInt(2), NewInt(3)})
	b := NewSet([]Value{NewInt(2), NewInt(3), NewInt(4)})

	if got := a.Union(b).Len(); got != 4 {
		t.Errorf("union len = %d, want 4", got)
	}
	if got := a.Intersection(b).Len(); got != 2 {
		t.Errorf("intersection len = %d, want 2", got)
	}
	if got := a.Difference(b).Len(); got != 1 {
		t.Errorf("difference len = %d, want 1", got)
	}
	if a.IsDisjoint(b) {
		t.Error("expected a, b not disjoint")
	}
}

func TestSetRemoveMissingFails(t *testing.T) {
	s := NewSet([]Value{NewInt(1)})
	if err := s.Remove(NewInt(2)); err == nil {
		t.Error("expected set.remove on missing element to fail")
	}
	s.Discard(NewInt(2)) // must not panic/error
}
