package values

import (
	"fmt"
	"reflect"
	"sync"
)

// hostClassInterning is the process-wide host-type -> handle table
// (spec.md §3.1 "Interning is process-wide", §5 "the host-class
// interning table ... shared across all script instances in the same
// process; entries are immutable once created (compute-if-absent)").
var hostClassInterning = struct {
	mu sync.RWMutex
	m  map[reflect.Type]*HostClassHandle
}{m: make(map[reflect.Type]*HostClassHandle)}

// HostClassHandle is a globally interned wrapper around one host type
// (spec.md §3.1). Equality is identity of the wrapped type, enforced by
// always handing out the same *HostClassHandle for a given reflect.Type.
type HostClassHandle struct {
	GoType      reflect.Type
	DisplayName string // the pretty (possibly obfuscation-mapped) name
}

func (h *HostClassHandle) Type() string { return "host_class" }

func (h *HostClassHandle) String() string {
	return fmt.Sprintf("<host class '%s'>", h.DisplayName)
}

// InternHostClass returns the process-wide handle for t, creating it on
// first use (compute-if-absent) and reusing it on every later call so
// `JavaClass("pkg.Foo") is JavaClass("pkg.Foo")` holds.
func InternHostClass(t reflect.Type, displayName string) *HostClassHandle {
	hostClassInterning.mu.RLock()
	if h, ok := hostClassInterning.m[t]; ok {
		hostClassInterning.mu.RUnlock()
		return h
	}
	hostClassInterning.mu.RUnlock()

	hostClassInterning.mu.Lock()
	defer hostClassInterning.mu.Unlock()
	if h, ok := hostClassInterning.m[t]; ok {
		return h
	}
	h := &HostClassHandle{GoType: t, DisplayName: displayName}
	hostClassInterning.m[t] = h
	return h
}

// HostObjectValue wraps a live host object (a constructed instance of a
// host type, or a value returned from a host call) so script code can
// call its methods/fields through the Symbol Cache and Overload Resolver.
type HostObjectValue struct {
	Class *HostClassHandle
	Obj   reflect.Value // the underlying host object
}

func NewHostObject(class *HostClassHandle, obj reflect.Value) *HostObjectValue {
	return &HostObjectValue{Class: class, Obj: obj}
}

func (h *HostObjectValue) Type() string { return h.Class.DisplayName }

func (h *HostObjectValue) String() string {
	if h.Obj.IsValid() && h.Obj.CanInterface() {
		return fmt.Sprintf("%v", h.Obj.Interface())
	}
	return fmt.Sprintf("<%s instance>", h.Class.DisplayName)
}

// JavaWrapperValue is what the `JavaString`/`JavaInt`/`JavaFloat`/
// `JavaList`/`JavaSet`/`JavaMap`/`JavaArray` builtins produce: a script
// value explicitly tagged to cross into host calls as a specific host
// representation, rather than the interpreter's usual internal one
// (spec.md §2 built-ins list). The overload resolver gives an exact-kind
// match here its own scoring rule (spec.md §4.6: "actual is JavaString,
// formal accepts String").
type JavaWrapperValue struct {
	Kind  string // "String", "Int", "Float", "List", "Set", "Map", "Array"
	Inner Value
}

func (w *JavaWrapperValue) Type() string   { return "Java" + w.Kind }
func (w *JavaWrapperValue) String() string { return w.Inner.String() }

// FromGo converts a live Go/host value into the nearest script Value,
// used when a host call returns a value or a host-called proxy method's
// arguments need to reach script code (internal/proxy). Values with no
// natural scalar/container mapping become a HostObjectValue.
func FromGo(rv reflect.Value) Value {
	if !rv.IsValid() {
		return None
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return NewString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewInt(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewFloat(rv.Float())
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return None
		}
		return NewHostObject(InternHostClass(rv.Type(), rv.Type().String()), rv)
	default:
		return NewHostObject(InternHostClass(rv.Type(), rv.Type().String()), rv)
	}
}

// ToGo converts a script Value into a reflect.Value assignable to target,
// applying the same scalar conversions the overload resolver's scoring
// implies (JavaWrapperValue unwrap, numeric narrowing via Convert).
func ToGo(v Value, target reflect.Type) (reflect.Value, error) {
	if wrapper, ok := v.(*JavaWrapperValue); ok {
		return ToGo(wrapper.Inner, target)
	}
	switch t := v.(type) {
	case NoneValue:
		return reflect.Zero(target), nil
	case BoolValue:
		return reflect.ValueOf(t.Value).Convert(target), nil
	case *IntegerValue:
		return reflect.ValueOf(t.Num.Int64).Convert(target), nil
	case *FloatValue:
		return reflect.ValueOf(t.Num.Float64).Convert(target), nil
	case *StringValue:
		return reflect.ValueOf(t.Value).Convert(target), nil
	case *HostObjectValue:
		if t.Obj.IsValid() && t.Obj.Type().AssignableTo(target) {
			return t.Obj, nil
		}
		return reflect.Value{}, fmt.Errorf("values: cannot convert host object of type %s to %s", t.Class.DisplayName, target)
	default:
		return reflect.Value{}, fmt.Errorf("values: no conversion from %s to %s", v.Type(), target)
	}
}
