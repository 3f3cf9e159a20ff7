package builtins

import (
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func registerLifecycle(r *Registry) {
	r.Funcs["exit"] = builtinExit
	r.Funcs["__atexit_register__"] = builtinAtexitRegister
	r.Funcs["__atexit_unregister__"] = builtinAtexitUnregister
	r.Funcs["__traceback_format_stack__"] = builtinFormatStack
}

// atexitCallbacks tracks script-registered exit callbacks per module
// (keyed by that module's global Context), in registration order; exit()
// runs them in reverse (spec.md §4.12).
var atexitCallbacks = struct {
	mu    sync.Mutex
	byMod map[*values.Context][]values.Value
}{byMod: make(map[*values.Context][]values.Value)}

// hostExitListeners are run, in reverse registration order, after a
// script's own atexit callbacks have run (spec.md §4.12: "then runs
// host-registered exit listeners in reverse order"). Registered by the
// embedding package (pkg/pyjinn), not from script code.
var hostExitListeners struct {
	mu        sync.Mutex
	listeners []func()
}

// RegisterHostExitListener adds a host-side callback run on every
// module's exit(), most-recently-registered first.
func RegisterHostExitListener(fn func()) {
	hostExitListeners.mu.Lock()
	defer hostExitListeners.mu.Unlock()
	hostExitListeners.listeners = append(hostExitListeners.listeners, fn)
}

func builtinAtexitRegister(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "__atexit_register__() takes exactly one argument"}
	}
	atexitCallbacks.mu.Lock()
	defer atexitCallbacks.mu.Unlock()
	mod := ctx.Global
	atexitCallbacks.byMod[mod] = append(atexitCallbacks.byMod[mod], args[0])
	return values.None, nil
}

func builtinAtexitUnregister(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "__atexit_unregister__() takes exactly one argument"}
	}
	atexitCallbacks.mu.Lock()
	defer atexitCallbacks.mu.Unlock()
	mod := ctx.Global
	cbs := atexitCallbacks.byMod[mod]
	for i, cb := range cbs {
		if cb == args[0] {
			atexitCallbacks.byMod[mod] = append(cbs[:i], cbs[i+1:]...)
			break
		}
	}
	return values.None, nil
}

// builtinExit implements exit(status=0): run script-registered exit
// callbacks in reverse registration order, flip every loaded module's
// halted flag, then run host-registered exit listeners in reverse order
// (spec.md §4.12). Any subsequent call into a bound function/lambda of
// any of those modules invokes the Zombie Callback Handler instead of
// running.
func builtinExit(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) > 1 {
		return nil, &values.TypeError{Message: "exit() takes at most 1 argument"}
	}

	mod := ctx.Global
	atexitCallbacks.mu.Lock()
	cbs := atexitCallbacks.byMod[mod]
	delete(atexitCallbacks.byMod, mod)
	atexitCallbacks.mu.Unlock()

	for i := len(cbs) - 1; i >= 0; i-- {
		if InvokeHook == nil {
			break
		}
		if _, err := InvokeHook(ctx, cbs[i], nil); err != nil {
			return nil, err
		}
	}

	if mod.Halted != nil {
		*mod.Halted = true
	}
	if mod.Zombie != nil {
		mod.Zombie.Exited = true
	}
	// exit() halts every module this interpreter has loaded, not just the
	// one it was called from (spec.md §4.12/§5: "each module"'s halted
	// flag) — an imported module's bound functions must stop running too.
	if HaltAllHook != nil {
		HaltAllHook()
	}

	hostExitListeners.mu.Lock()
	listeners := append([]func(){}, hostExitListeners.listeners...)
	hostExitListeners.mu.Unlock()
	for i := len(listeners) - 1; i >= 0; i-- {
		listeners[i]()
	}

	return values.None, nil
}

// builtinFormatStack renders the calling thread's current call stack as a
// list of strings, one frame per entry, most-recent-last — the same
// shape Python's traceback.format_stack() returns (spec.md §4.8's
// CallStack, surfaced to script code for custom error reporting).
func builtinFormatStack(ctx *values.Context, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, &values.TypeError{Message: "__traceback_format_stack__() takes no arguments"}
	}
	frames := ctx.CallStack.Snapshot()
	out := make([]values.Value, len(frames))
	for i, f := range frames {
		out[i] = values.NewString(f.String())
	}
	return values.NewList(out), nil
}
