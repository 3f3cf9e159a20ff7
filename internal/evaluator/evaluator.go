package evaluator

import (
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/builtins"
	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/overload"
	"github.com/maxuser0/pyjinn-sub000/internal/proxy"
	"github.com/maxuser0/pyjinn-sub000/internal/symbols"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
	"github.com/maxuser0/pyjinn-sub000/internal/vm"
)

// ZombieHandler is run whenever a script calls into a BoundFunction or
// LambdaValue whose owning module already exited (spec.md §4.12): it
// receives the module's filename, a human-readable description of the
// callable, and the 1-based count of zombie calls against that module so
// far. Left nil, a zombie call is silently swallowed (returns None).
type ZombieHandler func(filename, description string, callCount int)

// Evaluator is the tree-walking interpreter and the single place every
// cross-package hook (internal/compiler, internal/vm, internal/builtins,
// internal/proxy, internal/values) is wired to. One Evaluator is enough
// for a whole process — host interop config (Provider/Loader/Mapper) is
// supplied once at construction, the same way the teacher's New(output)
// builds one Interpreter per run but registers its built-ins once.
type Evaluator struct {
	Builtins *builtins.Registry

	// Cache, Provider, Loader, Mapper, Resolver support host interop
	// (spec.md §4.6, §6.2); all may be nil, in which case any attempt to
	// touch a host object fails with a plain TypeError rather than a nil
	// pointer panic.
	Cache    *symbols.Cache
	Provider hostapi.ReflectionProvider
	Loader   hostapi.ClassLoader
	Mapper   hostapi.MemberMapper
	Resolver *overload.Resolver

	ZombieHandler ZombieHandler

	// modulesMu guards modules, the set of every module-level Context this
	// Evaluator has built via NewModuleContext (the root module and every
	// module internal/modules.Registry has loaded via import), so exit()
	// can halt all of them (spec.md §4.12/§5: "each module"'s halted
	// flag) rather than only the one it was called from.
	modulesMu sync.Mutex
	modules   []*values.Context
}

// New builds an Evaluator. provider/loader/mapper may be nil for a module
// that never touches host objects (in particular, every package's own
// unit tests construct an Evaluator this way).
func New(reg *builtins.Registry, provider hostapi.ReflectionProvider, loader hostapi.ClassLoader, mapper hostapi.MemberMapper) *Evaluator {
	cache := symbols.New()
	e := &Evaluator{
		Builtins: reg,
		Cache:    cache,
		Provider: provider,
		Loader:   loader,
		Mapper:   mapper,
	}
	if provider != nil {
		e.Resolver = overload.New(cache, provider)
	}
	return e
}

// Install wires every dependency-injection hook the rest of the
// interpreter calls through (internal/compiler.EvalStmtHook/EvalExprHook,
// internal/vm.InvokeHook/GetAttrHook/SetAttrHook/DelAttrHook/
// BoundMethodHook, internal/builtins.InvokeHook, internal/proxy.CallHook,
// internal/values.DunderHook) to this Evaluator. Call once per process
// before running any script (spec.md §5: "interpreter construction").
func (e *Evaluator) Install() {
	compiler.EvalStmtHook = e.EvalStmt
	compiler.EvalExprHook = e.EvalExpr

	vm.InvokeHook = e.Invoke
	vm.GetAttrHook = e.GetAttr
	vm.SetAttrHook = e.SetAttr
	vm.DelAttrHook = e.DelAttr
	vm.BoundMethodHook = e.BoundMethod

	builtins.SetInvokeHook(e.invokeFromBuiltins)
	builtins.SetHaltAllHook(e.HaltAllModules)
	proxy.SetCallHook(e.invokeFromHost)

	values.SetDunderHook(e)
}

// NewModuleContext builds a fresh module-level Context with this
// Evaluator's built-ins already installed (spec.md §2 Built-ins: every
// module's global scope starts with the full built-in table).
func (e *Evaluator) NewModuleContext(filename string) *values.Context {
	ctx := values.NewGlobalContextNamed(filename)
	if e.Builtins != nil {
		e.Builtins.Install(ctx)
	}
	e.modulesMu.Lock()
	e.modules = append(e.modules, ctx)
	e.modulesMu.Unlock()
	return ctx
}

// HaltAllModules flips the halted flag and marks the Zombie state exited
// for every module this Evaluator has built (spec.md §4.12/§5: exit()
// "sets each module's halted flag"), covering both the root module and
// every module loaded by internal/modules.Registry via import, so that a
// bound function or lambda captured from any of them turns into a zombie
// call rather than keeps running.
func (e *Evaluator) HaltAllModules() {
	e.modulesMu.Lock()
	mods := append([]*values.Context{}, e.modules...)
	e.modulesMu.Unlock()

	for _, mod := range mods {
		if mod.Halted != nil {
			*mod.Halted = true
		}
		if mod.Zombie != nil {
			mod.Zombie.Exited = true
		}
	}
}
