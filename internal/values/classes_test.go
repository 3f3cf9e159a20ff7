package values

import "testing"

func newDataclass(name string, frozen bool, fields ...string) *ScriptClass {
	c := &ScriptClass{
		Name:            name,
		Frozen:          frozen,
		IsDataclass:     true,
		InstanceMethods: map[string]*BoundFunction{},
		ClassMethods:    map[string]ClassLevelMethod{},
		ClassVars:       map[string]Value{},
	}
	for _, f := range fields {
		c.DataclassFields = append(c.DataclassFields, DataclassField{Name: f})
	}
	return c
}

func TestDataclassFrozenEquality(t *testing.T) {
	// Mirrors spec.md §8 scenario 2.
	class := newDataclass("P", true, "x", "y")

	p1 := NewScriptInstance(class)
	p1.Dict["x"] = NewInt(1)
	p1.Dict["y"] = NewInt(2)

	p2 := NewScriptInstance(class)
	p2.Dict["x"] = NewInt(1)
	p2.Dict["y"] = NewInt(2)

	p3 := NewScriptInstance(class)
	p3.Dict["x"] = NewInt(1)
	p3.Dict["y"] = NewInt(3)

	if !DataclassEqual(p1, p2) {
		t.Error("P(1,2) == P(1,2) should be True")
	}
	if DataclassEqual(p1, p3) {
		t.Error("P(1,2) == P(1,3) should be False")
	}
}

func TestDataclassStr(t *testing.T) {
	class := newDataclass("P", false, "x", "y")
	p := NewScriptInstance(class)
	p.Dict["x"] = NewInt(1)
	p.Dict["y"] = NewInt(2)

	want := "P(x=1, y=2)"
	if got := p.String(); got != want {
		t.Errorf("str(p) = %q, want %q", got, want)
	}
}

func TestFrozenInstanceAssignFails(t *testing.T) {
	class := newDataclass("P", true, "x")
	p := NewScriptInstance(class)
	p.Dict["x"] = NewInt(1)

	if err := p.SetAttr("x", NewInt(2)); err == nil {
		t.Error("expected assignment to a frozen instance to fail")
	}
}

func TestSubclassOf(t *testing.T) {
	base := &ScriptClass{Name: "Base"}
	derived := &ScriptClass{Name: "Derived", Bases: []*ScriptClass{base}}

	if !derived.IsSubclassOf(base) {
		t.Error("Derived should be a subclass of Base")
	}
	if base.IsSubclassOf(derived) {
		t.Error("Base should not be a subclass of Derived")
	}
}

func TestInstanceMethodInheritance(t *testing.T) {
	method := &BoundFunction{Name: "greet"}
	base := &ScriptClass{Name: "Base", InstanceMethods: map[string]*BoundFunction{"greet": method}}
	derived := &ScriptClass{Name: "Derived", Bases: []*ScriptClass{base}, InstanceMethods: map[string]*BoundFunction{}}

	found, owner, ok := derived.FindInstanceMethod("greet")
	if !ok || found != method || owner != base {
		t.Error("expected Derived to inherit greet from Base")
	}
}
