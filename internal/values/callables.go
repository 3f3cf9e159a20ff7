package values

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

// ZombieState is shared by every BoundFunction/Lambda defined within one
// top-level script run. Once the script exits (spec.md §4.12), Exited
// flips true and CallCount increments on every subsequent invocation
// attempt, driving the Zombie Callback Handler (spec.md §3.1, §4.12).
type ZombieState struct {
	Exited    bool
	CallCount int
}

// BoundFunction is a script function value: it captures its defining
// context for closures, the function's AST definition, optional compiled
// Code (set by the compiler/vm layer — kept as `any` here the same way
// the teacher's ExceptionValue.GetInstance() returns interface{} to avoid
// values importing the compiler package), and the zombie-callback state
// of its owning script (spec.md §3.1).
type BoundFunction struct {
	Name string
	Def  *pyast.FunctionDef

	// Closure is the Context the def ran in: the module's global Context
	// for a module-level function, the enclosing frame for a nested one.
	Closure *Context

	// CompiledCode holds a *compiler.Code once the defining module has
	// been compiled; nil means "run via the tree-walking evaluator".
	CompiledCode any

	Zombie *ZombieState
}

func (f *BoundFunction) Type() string { return "function" }

func (f *BoundFunction) String() string {
	return fmt.Sprintf("<function %s>", f.Name)
}

// LambdaValue is an anonymous script function: same capture shape as
// BoundFunction but with a single expression body rather than a
// statement list (spec.md §2 value list: "lambdas").
type LambdaValue struct {
	Def     *pyast.Lambda
	Closure *Context
	Zombie  *ZombieState
}

func (l *LambdaValue) Type() string   { return "function" }
func (l *LambdaValue) String() string { return "<lambda>" }

// BoundMethodValue is a receiver + method-name pair, resolved lazily
// against the receiver's type at call time (spec.md §3.1). The receiver
// may be a ScriptInstance (resolved via ScriptClass.FindInstanceMethod)
// or a HostObjectValue (resolved via the Symbol Cache / Overload
// Resolver).
type BoundMethodValue struct {
	Receiver   Value
	MethodName string
}

func (m *BoundMethodValue) Type() string { return "method" }

func (m *BoundMethodValue) String() string {
	return fmt.Sprintf("<bound method %s of %s>", m.MethodName, m.Receiver.String())
}
