package builtins

import "github.com/maxuser0/pyjinn-sub000/internal/values"

// InvokeHook calls a script callable (a BoundFunction, LambdaValue, or
// BoundMethodValue) from within a built-in, for the handful of built-ins
// that themselves invoke script code (list.sort()'s key function,
// __atexit_register__'s callbacks at exit time). Set once at startup by internal/evaluator,
// the same dependency-injection trick as vm.InvokeHook/compiler.EvalExprHook
// — this package can't import internal/vm or internal/evaluator directly
// without an import cycle, since both of those import internal/builtins.
var InvokeHook func(ctx *values.Context, callee values.Value, args []values.Value) (values.Value, error)

// SetInvokeHook installs the script-call dispatcher.
func SetInvokeHook(h func(ctx *values.Context, callee values.Value, args []values.Value) (values.Value, error)) {
	InvokeHook = h
}

// HaltAllHook halts every module context this interpreter has created, not
// just the one exit() was called from (spec.md §4.12: "sets each module's
// halted flag"). Set once at startup by internal/evaluator, which is the
// one object that sees every module built over the life of a Script (both
// the root module and every module internal/modules.Registry loads via
// import) — this package can't track that set itself without an import
// cycle back through evaluator/modules.
var HaltAllHook func()

// SetHaltAllHook installs the all-modules halt dispatcher.
func SetHaltAllHook(h func()) {
	HaltAllHook = h
}
