package proxy

import (
	"reflect"
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Runnable mirrors java.lang.Runnable: one abstract method, no args, no
// return value — the spec.md §8 scenario 5 "host interop/proxy promotion
// via Runnable" case.
type Runnable interface {
	Run()
}

type runnableAdapter struct {
	invoke func(method string, args []reflect.Value) ([]reflect.Value, error)
}

func (r *runnableAdapter) Run() {
	_, _ = r.invoke("", nil)
}

func init() {
	RegisterFactory(reflect.TypeOf((*Runnable)(nil)).Elem(), func(invoke func(string, []reflect.Value) ([]reflect.Value, error)) reflect.Value {
		return reflect.ValueOf(&runnableAdapter{invoke: invoke})
	})
}

func TestWrapPromotesScriptCallableToRunnable(t *testing.T) {
	ran := false
	SetCallHook(func(callable values.Value, args []values.Value) (values.Value, error) {
		ran = true
		return values.None, nil
	})
	defer SetCallHook(nil)

	fn := &values.LambdaValue{}
	rv, err := Wrap(reflect.TypeOf((*Runnable)(nil)).Elem(), fn)
	if err != nil {
		t.Fatal(err)
	}
	runnable, ok := rv.Interface().(Runnable)
	if !ok {
		t.Fatal("expected wrapped value to implement Runnable")
	}
	runnable.Run()

	if !ran {
		t.Error("expected the script callable to have been invoked")
	}
}

func TestWrapUnregisteredInterfaceFails(t *testing.T) {
	type Unregistered interface{ Foo() }
	_, err := Wrap(reflect.TypeOf((*Unregistered)(nil)).Elem(), &values.LambdaValue{})
	if err == nil {
		t.Error("expected an error for an interface with no registered factory")
	}
}
