package reflecttest

import (
	"reflect"
	"testing"
)

type Point struct {
	X int
	Y int
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func TestRegistryResolveClass(t *testing.T) {
	r := New()
	handle := r.RegisterType("test.Point", reflect.TypeOf(Point{}))

	got, err := r.ResolveClass("test.Point")
	if err != nil {
		t.Fatal(err)
	}
	if got != handle {
		t.Error("expected ResolveClass to return the same interned handle")
	}

	if _, err := r.ResolveClass("test.Missing"); err == nil {
		t.Error("expected an error resolving an unregistered class")
	}
}

func TestRegistryFieldsAndMethods(t *testing.T) {
	r := New()
	handle := r.RegisterType("test.Point", reflect.TypeOf(Point{}))

	fields := r.Fields(handle)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	methods := r.Methods(handle)
	found := false
	for _, m := range methods {
		if m.Name == "Add" {
			found = true
			if len(m.Params) != 1 {
				t.Errorf("Add should take 1 param, got %d", len(m.Params))
			}
		}
	}
	if !found {
		t.Error("expected to find method Add")
	}
}

func TestRegistryConstructorInvoke(t *testing.T) {
	r := New()
	handle := r.RegisterType("test.Point", reflect.TypeOf(Point{}))
	r.RegisterConstructor(reflect.TypeOf(Point{}), NewPoint)

	ctors := r.Constructors(handle)
	if len(ctors) != 1 {
		t.Fatalf("expected 1 constructor, got %d", len(ctors))
	}
	results, err := ctors[0].Invoke(reflect.Value{}, []reflect.Value{reflect.ValueOf(3), reflect.ValueOf(4)})
	if err != nil {
		t.Fatal(err)
	}
	p := results[0].Interface().(Point)
	if p.X != 3 || p.Y != 4 {
		t.Errorf("constructed Point = %+v, want {3 4}", p)
	}
}

func TestRegistryAlias(t *testing.T) {
	r := New()
	handle := r.RegisterType("test.Point", reflect.TypeOf(Point{}))
	r.RegisterAlias(reflect.TypeOf(Point{}), "plus", "Add")

	names := r.ResolveMethodNames(handle, "plus")
	if len(names) != 1 || names[0] != "Add" {
		t.Errorf("expected alias plus -> Add, got %v", names)
	}
}
