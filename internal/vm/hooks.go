package vm

import (
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// InvokeHook calls a callable the VM doesn't know how to run directly
// (anything other than a *values.BoundFunction carrying compiled
// *compiler.Code): a LambdaValue, a BoundMethodValue, a ScriptClass
// constructor call, or a host callable. Set once at startup by
// internal/evaluator, the same dependency-injection trick as
// compiler.EvalStmtHook.
var InvokeHook func(ctx *values.Context, callee values.Value, args []values.Value, filename string, line int) (values.Value, error)

// GetAttrHook/SetAttrHook/DelAttrHook resolve attribute access on a
// receiver the VM doesn't special-case directly (anything other than a
// *values.ScriptInstance): a HostObjectValue, a module object, a
// ScriptClass (for classmethod/staticmethod/classvar access).
var (
	GetAttrHook func(obj values.Value, name string) (values.Value, error)
	SetAttrHook func(obj values.Value, name string, val values.Value) error
	DelAttrHook func(obj values.Value, name string) error
)

// BoundMethodHook resolves `obj.method` used in caller position (an
// Attribute node compiled with WasCallerFunc) for a receiver other than
// a ScriptInstance, producing a callable value for the following Call
// instruction to invoke.
var BoundMethodHook func(obj values.Value, name string) (values.Value, error)

// ImportHook and ImportFromHook execute `import`/`from ... import`
// against the Module Host (spec.md §6), set by internal/modules.
var (
	ImportHook     func(ctx *values.Context, aliases []pyast.Alias) error
	ImportFromHook func(ctx *values.Context, module string, aliases []pyast.Alias, level int) error
)
