package proxy

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// CallHook invokes a script callable (a BoundFunction, LambdaValue, or
// BoundMethodValue) with args and returns its result. Set once at startup
// via SetCallHook by whichever package actually runs script code
// (internal/evaluator or internal/vm), avoiding an import cycle the same
// way internal/values.DunderHook does.
type CallHook func(callable values.Value, args []values.Value) (values.Value, error)

var (
	hookMu sync.RWMutex
	hook   CallHook
)

// SetCallHook installs h as the process-wide script-callable invoker.
func SetCallHook(h CallHook) {
	hookMu.Lock()
	defer hookMu.Unlock()
	hook = h
}

func callScript(callable values.Value, args []values.Value) (values.Value, error) {
	hookMu.RLock()
	h := hook
	hookMu.RUnlock()
	if h == nil {
		return nil, fmt.Errorf("proxy: no call hook installed")
	}
	return h(callable, args)
}

// Factory builds a concrete value implementing one interface type, given
// an invoke function that turns a host-side call into a script call.
// invoke's method parameter is "" for single-abstract-method interfaces
// (the call always means "the one method"); for multi-method interfaces it
// carries the method name so the factory's adapter (or the script
// callable itself, for the multi-method case) can dispatch.
type Factory func(invoke func(method string, args []reflect.Value) ([]reflect.Value, error)) reflect.Value

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]Factory{}
)

// RegisterFactory registers how to adapt ifaceType to a proxy. An embedder
// calls this once per host interface it wants script callables to satisfy.
func RegisterFactory(ifaceType reflect.Type, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[ifaceType] = factory
}

// Wrap promotes callable to a value implementing ifaceType (spec.md §4.7:
// "A 'cast'-style call SomeInterface(fn) promotes fn to a proxy for that
// interface"). The environment is implicitly captured because callable
// already closes over it (BoundFunction.Closure / LambdaValue.Closure);
// there is nothing extra to snapshot here.
func Wrap(ifaceType reflect.Type, callable values.Value) (reflect.Value, error) {
	registryMu.RLock()
	factory, ok := registry[ifaceType]
	registryMu.RUnlock()
	if !ok {
		return reflect.Value{}, fmt.Errorf("proxy: no factory registered for interface %s; call proxy.RegisterFactory at startup", ifaceType)
	}

	multiMethod := ifaceType.Kind() == reflect.Interface && ifaceType.NumMethod() > 1

	invoke := func(method string, args []reflect.Value) ([]reflect.Value, error) {
		scriptArgs := make([]values.Value, 0, len(args)+1)
		if multiMethod {
			scriptArgs = append(scriptArgs, values.NewString(method))
		}
		for _, a := range args {
			scriptArgs = append(scriptArgs, values.FromGo(a))
		}
		result, err := callScript(callable, scriptArgs)
		if err != nil {
			return nil, err
		}
		if result == nil || result.Type() == "NoneType" {
			return nil, nil
		}
		return []reflect.Value{result2reflect(result)}, nil
	}

	return factory(invoke), nil
}

// result2reflect unwraps a script return value into a reflect.Value
// holding its natural Go representation; callers needing a specific
// target type should convert via values.ToGo instead.
func result2reflect(v values.Value) reflect.Value {
	if ho, ok := v.(*values.HostObjectValue); ok && ho.Obj.IsValid() {
		return ho.Obj
	}
	return reflect.ValueOf(v)
}
