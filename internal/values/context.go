package values

import "fmt"

// CallSite is one call-stack frame, pushed at call entry and popped at
// call exit (spec.md §4.8): "(enclosing type, method name, filename,
// lineno)".
type CallSite struct {
	EnclosingType string
	MethodName    string
	Filename      string
	Line          int
}

func (c CallSite) String() string {
	if c.EnclosingType != "" {
		return fmt.Sprintf(`File "%s", line %d, in %s.%s`, c.Filename, c.Line, c.EnclosingType, c.MethodName)
	}
	return fmt.Sprintf(`File "%s", line %d, in %s`, c.Filename, c.Line, c.MethodName)
}

// CallStack is the per-thread call-site stack used for diagnostics
// (spec.md §4.8, §5: "per-thread state ... is thread-local"). One
// CallStack is created per script execution thread; Pyjinn does not run
// script code across goroutines concurrently within one module, so this
// type carries no internal locking — see spec.md §5.
type CallStack struct {
	frames []CallSite
}

func NewCallStack() *CallStack { return &CallStack{} }

func (s *CallStack) Push(site CallSite) { s.frames = append(s.frames, site) }

func (s *CallStack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Snapshot returns the current frames, most-recent-last, safe to retain
// after further Push/Pop calls (used when materializing a stack trace at
// the moment an exception is raised, spec.md §4.8).
func (s *CallStack) Snapshot() []CallSite {
	out := make([]CallSite, len(s.frames))
	copy(out, s.frames)
	return out
}

// ExceptionValue is a raised exception in flight: either a script
// instance (a user class, or a built-in exception class represented as a
// ScriptInstance) or a host error that escaped a host call and has not
// yet been wrapped by the script (spec.md §7 "Host exception").
type ExceptionValue struct {
	Instance  *ScriptInstance
	HostErr   error
	Message   string
	Position  Position
	CallStack []CallSite
}

// ClassName returns the exception's type name for except-clause matching.
// A host error is named after whichever of this package's own error types
// it is (TypeError, NameError, ...), so `except TypeError:` matches a
// host-raised *TypeError even before a scripted exception-class hierarchy
// exists; anything else falls back to the Python base name "Exception".
func (e *ExceptionValue) ClassName() string {
	if e.Instance != nil {
		return e.Instance.Class.Name
	}
	switch e.HostErr.(type) {
	case *TypeError:
		return "TypeError"
	case *ValueError:
		return "ValueError"
	case *NameError:
		return "NameError"
	case *AttributeError:
		return "AttributeError"
	case *LookupErr:
		return "LookupError"
	case *ZeroDivisionError:
		return "ZeroDivisionError"
	case *FrozenInstanceError:
		return "FrozenInstanceError"
	case StopIteration, *StopIteration:
		return "StopIteration"
	default:
		return "Exception"
	}
}

func (e *ExceptionValue) Error() string {
	return fmt.Sprintf("%s: %s", e.ClassName(), e.Message)
}

// Context is the execution frame shared by the evaluator and the VM
// (spec.md §3.3). It holds a scope chain (locals / enclosing / global),
// the global/nonlocal declaration sets, a return-value/has-returned pair,
// loop-control flags, and — only when executing compiled Code — a data
// stack and instruction pointer.
//
// Grounded on the teacher's internal/interp/runtime.Environment (the
// scope-chain Get/Set/Define trio) generalized with the control-flow
// signalling the teacher instead threads through Go's native return
// values/panics in internal/interp/interpreter.go.
type Context struct {
	Global    *Context // the module-level context; Global.Global == Global
	Calling   *Context // the VM/evaluator frame that invoked this one, nil at the top
	Enclosing *Context // the lexically enclosing context, nil for module-level

	locals map[string]Value

	globalNames   map[string]bool
	nonlocalNames map[string]bool

	ReturnValue  Value
	HasReturned  bool
	BreakSignal  bool
	ContinueSignal bool
	LoopDepth    int

	// DataStack and IP are only meaningful while executing compiled Code
	// (internal/vm).
	DataStack []Value
	IP        int

	// ActiveException is the per-frame "active exception slot" consulted
	// between an except match and a finally's end (spec.md §3.3, §4.5).
	ActiveException *ExceptionValue

	CallStack *CallStack // shared across one script execution thread

	// Halted points at the owning module's halt flag (spec.md §4.12,
	// §5); a pointer so every Context sharing one module observes the
	// same flip.
	Halted *bool

	// Zombie is the shared ZombieState every function/lambda defined
	// within this module's top-level run is stamped with at bind time
	// (spec.md §4.12). Like Halted, it's a shared pointer so the flip to
	// "exited" is visible from every closure captured before exit.
	Zombie *ZombieState

	// Filename names the module this context (and every frame enclosed
	// by it) belongs to, surfaced to the Zombie Callback Handler
	// (spec.md §4.12: "(script filename, callable description, call
	// count)") and available for diagnostics.
	Filename string
}

// NewGlobalContext creates a fresh module-level context.
func NewGlobalContext() *Context {
	c := &Context{
		locals:        make(map[string]Value),
		globalNames:   make(map[string]bool),
		nonlocalNames: make(map[string]bool),
		CallStack:     NewCallStack(),
		Halted:        new(bool),
		Zombie:        &ZombieState{},
	}
	c.Global = c
	return c
}

// NewGlobalContextNamed is NewGlobalContext plus a Filename, used when the
// caller (pkg/pyjinn) knows which source file the module being executed
// came from (spec.md §4.12's Zombie Callback Handler diagnostic tuple).
func NewGlobalContextNamed(filename string) *Context {
	c := NewGlobalContext()
	c.Filename = filename
	return c
}

// NewEnclosed creates a Context lexically enclosed by c (a function body
// nested in another function), sharing c's global context and halt flag.
func (c *Context) NewEnclosed() *Context {
	return &Context{
		Global:        c.Global,
		Enclosing:     c,
		locals:        make(map[string]Value),
		globalNames:   make(map[string]bool),
		nonlocalNames: make(map[string]bool),
		CallStack:     c.CallStack,
		Halted:        c.Global.Halted,
		Zombie:        c.Global.Zombie,
		Filename:      c.Global.Filename,
	}
}

// NewCall creates a fresh call frame for invoking closure (the function's
// captured Context) from caller — closure becomes the new frame's
// Enclosing context (lexical scope), caller becomes its Calling context
// (dynamic call chain, used only for diagnostics).
func NewCall(closure, caller *Context) *Context {
	global := closure.Global
	halted := global.Halted
	callStack := global.CallStack
	if caller != nil {
		callStack = caller.CallStack
	}
	return &Context{
		Global:        global,
		Calling:       caller,
		Enclosing:     closure,
		locals:        make(map[string]Value),
		globalNames:   make(map[string]bool),
		nonlocalNames: make(map[string]bool),
		CallStack:     callStack,
		Halted:        halted,
		Zombie:        global.Zombie,
		Filename:      global.Filename,
	}
}

// DeclareGlobal records that name is declared `global` in this frame
// (spec.md §4.8). Must happen before any use, per spec.md §4.8 — the AST
// Loader preserves source order so this is naturally satisfied by
// executing statements in order.
func (c *Context) DeclareGlobal(name string) { c.globalNames[name] = true }

// DeclareNonlocal records that name is declared `nonlocal` in this frame.
func (c *Context) DeclareNonlocal(name string) { c.nonlocalNames[name] = true }

// Lookup resolves name for a read, per spec.md §4.8: local -> enclosing
// chain -> global, except names declared `global` short-circuit to the
// global context and names declared `nonlocal` read the nearest enclosing
// non-global context.
func (c *Context) Lookup(name string) (Value, bool) {
	if c.globalNames[name] {
		return c.Global.localLookup(name)
	}
	if c.nonlocalNames[name] {
		if enc := c.nearestNonGlobalEnclosing(); enc != nil {
			return enc.Lookup(name)
		}
		return nil, false
	}
	if v, ok := c.locals[name]; ok {
		return v, true
	}
	if c.Enclosing != nil {
		return c.Enclosing.Lookup(name)
	}
	if c != c.Global {
		return c.Global.localLookup(name)
	}
	return nil, false
}

func (c *Context) localLookup(name string) (Value, bool) {
	v, ok := c.locals[name]
	return v, ok
}

func (c *Context) nearestNonGlobalEnclosing() *Context {
	cur := c.Enclosing
	for cur != nil && cur == cur.Global {
		cur = cur.Enclosing
	}
	return cur
}

// Assign writes name, following the same global/nonlocal routing as
// Lookup, and otherwise defining the name in the current local scope
// (Python's implicit-local-on-assignment rule, unless declared
// global/nonlocal).
func (c *Context) Assign(name string, v Value) {
	if c.globalNames[name] {
		c.Global.locals[name] = v
		return
	}
	if c.nonlocalNames[name] {
		if enc := c.nearestNonGlobalEnclosing(); enc != nil {
			enc.Assign(name, v)
			return
		}
	}
	c.locals[name] = v
}

// Delete removes name, respecting global/nonlocal routing (spec.md §4.8).
func (c *Context) Delete(name string) bool {
	if c.globalNames[name] {
		if _, ok := c.Global.locals[name]; ok {
			delete(c.Global.locals, name)
			return true
		}
		return false
	}
	if c.nonlocalNames[name] {
		if enc := c.nearestNonGlobalEnclosing(); enc != nil {
			return enc.Delete(name)
		}
		return false
	}
	if _, ok := c.locals[name]; ok {
		delete(c.locals, name)
		return true
	}
	return false
}

// DefineLocal directly introduces name into the current scope's locals,
// bypassing global/nonlocal routing — used for parameter binding at call
// entry and for loop/comprehension targets.
func (c *Context) DefineLocal(name string, v Value) { c.locals[name] = v }

// LocalNames returns the names bound directly in this frame (not
// including enclosing/global scopes), primarily for the `globals()`
// built-in and debugging.
func (c *Context) LocalNames() []string {
	out := make([]string, 0, len(c.locals))
	for k := range c.locals {
		out = append(out, k)
	}
	return out
}

// IsHalted reports whether the owning module has been halted by exit()
// (spec.md §4.12, §5).
func (c *Context) IsHalted() bool { return c.Halted != nil && *c.Halted }
