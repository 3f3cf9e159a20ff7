package builtins

import "github.com/maxuser0/pyjinn-sub000/internal/values"

// Func is the shape of every built-in callable: it receives the calling
// context (for globals()/exit()-style introspection and mutation) and the
// already-evaluated positional argument list.
type Func func(ctx *values.Context, args []values.Value) (values.Value, error)

// Registry is the name -> built-in table installed into a fresh module's
// global scope at startup.
type Registry struct {
	Funcs   map[string]Func
	Classes map[string]*values.ScriptClass
}

// New builds the complete built-in registry (spec.md §2 Built-ins, §4.12,
// plus the exception-class hierarchy of §7/§6.4).
func New() *Registry {
	r := &Registry{
		Funcs:   make(map[string]Func),
		Classes: make(map[string]*values.ScriptClass),
	}
	registerIO(r)
	registerConversions(r)
	registerIteration(r)
	registerIntrospection(r)
	registerLifecycle(r)
	registerHostInterop(r)
	registerExceptionClasses(r)
	return r
}

// Install copies every built-in name into ctx's local scope, the shape a
// fresh module-level Context starts execution with.
func (r *Registry) Install(ctx *values.Context) {
	for name, fn := range r.Funcs {
		ctx.DefineLocal(name, &NativeFunction{Name: name, Call: fn})
	}
	for name, class := range r.Classes {
		ctx.DefineLocal(name, class)
	}
}

// NativeFunction is a built-in callable value: it satisfies values.Value so
// it can sit in a Context/data stack/container exactly like a script
// function, dispatched by internal/evaluator's InvokeHook.
type NativeFunction struct {
	Name string
	Call Func
}

func (f *NativeFunction) Type() string   { return "builtin_function_or_method" }
func (f *NativeFunction) String() string { return "<built-in function " + f.Name + ">" }
