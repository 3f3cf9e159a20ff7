package reflecttest

import (
	"fmt"
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func (r *Registry) Constructors(class *values.HostClassHandle) []hostapi.Executable {
	r.mu.RLock()
	entries := append([]ctorEntry(nil), r.ctors[class.GoType]...)
	r.mu.RUnlock()

	out := make([]hostapi.Executable, 0, len(entries))
	for _, e := range entries {
		out = append(out, hostapi.Executable{
			Params: paramsOf(e.fn.Type(), 0),
			Invoke: func(_ reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
				return callChecked(e.fn, args)
			},
		})
	}
	return out
}

func (r *Registry) Methods(class *values.HostClassHandle) []hostapi.Executable {
	t := class.GoType
	// An interface type's Method.Type already excludes the receiver (there
	// is none to include); only a concrete receiver type's Method.Type
	// carries it as parameter 0.
	skip := 1
	if t.Kind() == reflect.Interface {
		skip = 0
	}
	out := make([]hostapi.Executable, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		out = append(out, hostapi.Executable{
			Name:   m.Name,
			Params: paramsOf(m.Type, skip),
			Static: false,
			Invoke: func(receiver reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
				method := receiver.MethodByName(m.Name)
				return callChecked(method, args)
			},
		})
	}
	return out
}

func (r *Registry) Fields(class *values.HostClassHandle) []hostapi.Field {
	t := underlying(class.GoType)
	if t.Kind() != reflect.Struct {
		return nil
	}
	out := make([]hostapi.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		out = append(out, hostapi.Field{Name: f.Name, Type: f.Type})
	}
	return out
}

func (r *Registry) NestedTypes(class *values.HostClassHandle) []*values.HostClassHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix := ""
	for pretty, t := range r.byPretty {
		if t == class.GoType {
			prefix = pretty + "."
			break
		}
	}
	if prefix == "" {
		return nil
	}
	var out []*values.HostClassHandle
	for pretty, t := range r.byPretty {
		if len(pretty) > len(prefix) && pretty[:len(prefix)] == prefix {
			out = append(out, values.InternHostClass(t, pretty))
		}
	}
	return out
}

// Interfaces reports the Go interface types this registry has separately
// registered that class.GoType implements. Plain reflect.Type has no
// "implements" enumeration in the other direction, so this scans the
// registry rather than the type itself.
func (r *Registry) Interfaces(class *values.HostClassHandle) []*values.HostClassHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*values.HostClassHandle
	for pretty, t := range r.byPretty {
		if t.Kind() == reflect.Interface && class.GoType.Implements(t) {
			out = append(out, values.InternHostClass(t, pretty))
		}
	}
	return out
}

func (r *Registry) Superclass(class *values.HostClassHandle) (*values.HostClassHandle, bool) {
	// Go has no class inheritance; embedding is the closest analogue and
	// is resolved structurally by the caller via the embedded field's own
	// registered type, not reported here.
	return nil, false
}

func paramsOf(fnType reflect.Type, skip int) []hostapi.ParamInfo {
	n := fnType.NumIn()
	out := make([]hostapi.ParamInfo, 0, n-skip)
	for i := skip; i < n; i++ {
		out = append(out, hostapi.ParamInfo{Type: fnType.In(i)})
	}
	return out
}

func callChecked(fn reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	if fn.Type().NumIn() != len(args) {
		return nil, fmt.Errorf("reflecttest: arity mismatch calling %s: want %d args, got %d",
			fn.Type(), fn.Type().NumIn(), len(args))
	}
	results := fn.Call(args)
	if n := len(results); n > 0 {
		last := results[n-1]
		if last.Type().Implements(errorType) && !last.IsNil() {
			return results[:n-1], last.Interface().(error)
		}
	}
	return results, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var _ hostapi.ReflectionProvider = (*Registry)(nil)
