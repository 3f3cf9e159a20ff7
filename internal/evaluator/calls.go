package evaluator

import (
	"fmt"
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/builtins"
	"github.com/maxuser0/pyjinn-sub000/internal/overload"
	"github.com/maxuser0/pyjinn-sub000/internal/proxy"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/symbols"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Invoke is the vm.InvokeHook: it carries a filename/line for the call
// stack and has no keyword arguments (the compiler never compiles a Call
// carrying Keywords/Starred — those escape to EvalExpr, which calls
// invokeCore directly with kwargs in hand).
func (e *Evaluator) Invoke(ctx *values.Context, callee values.Value, args []values.Value, filename string, line int) (values.Value, error) {
	return e.invokeCore(ctx, callee, args, nil, filename, line)
}

// invokeFromBuiltins is builtins.InvokeHook, used by built-ins that call
// back into script code (list.sort()'s key, atexit callbacks).
func (e *Evaluator) invokeFromBuiltins(ctx *values.Context, callee values.Value, args []values.Value) (values.Value, error) {
	return e.invokeCore(ctx, callee, args, nil, ctx.Global.Filename, 0)
}

// invokeFromHost is proxy.CallHook: a host thread calling into a script
// callable through a promoted functional-interface proxy. There is no
// calling Context, so a root Context is built from the callable's own
// closure (its defining module), matching spec.md §4.7's proxy semantics.
func (e *Evaluator) invokeFromHost(callable values.Value, args []values.Value) (values.Value, error) {
	root := rootContextFor(callable)
	if root == nil {
		return nil, &values.TypeError{Message: fmt.Sprintf("'%s' object is not callable", callable.Type())}
	}
	return e.invokeCore(root, callable, args, nil, root.Filename, 0)
}

func rootContextFor(callable values.Value) *values.Context {
	switch c := callable.(type) {
	case *values.BoundFunction:
		if c.Closure != nil {
			return c.Closure.Global
		}
	case *values.LambdaValue:
		if c.Closure != nil {
			return c.Closure.Global
		}
	case *values.BoundMethodValue:
		return rootContextFor(c.Receiver)
	}
	return nil
}

// invokeCore is the one dispatch point every call path (the VM's compiled
// Call instruction, this package's own Call-expression evaluation, a
// built-in calling back into script code, and a host thread calling a
// proxied script callable) funnels through.
func (e *Evaluator) invokeCore(ctx *values.Context, callee values.Value, args []values.Value, kwargs map[string]values.Value, filename string, line int) (values.Value, error) {
	switch c := callee.(type) {
	case *builtins.NativeFunction:
		return c.Call(ctx, appendKwBag(args, kwargs))

	case *values.BoundFunction:
		return e.invokeBoundFunction(ctx, c, args, kwargs, filename, line)

	case *values.LambdaValue:
		return e.invokeLambda(ctx, c, args, kwargs, filename, line)

	case *values.BoundMethodValue:
		return e.invokeBoundMethod(ctx, c, args, kwargs, filename, line)

	case *values.ScriptClass:
		return e.instantiate(ctx, c, args, kwargs, filename, line)

	case *values.HostClassHandle:
		return e.invokeHostConstructor(c, args)

	default:
		return nil, &values.TypeError{Message: fmt.Sprintf("'%s' object is not callable", callee.Type())}
	}
}

// appendKwBag appends a KwArgsBag built from kwargs as the trailing
// positional element, the convention every built-in Func/methodFn that
// accepts keyword arguments (print's sep/end, list.sort's reverse) reads
// from.
func appendKwBag(args []values.Value, kwargs map[string]values.Value) []values.Value {
	if len(kwargs) == 0 {
		return args
	}
	bag := values.NewKwArgsBag()
	for name, v := range kwargs {
		bag.Set(name, v)
	}
	return append(append([]values.Value{}, args...), bag)
}

func (e *Evaluator) invokeBoundFunction(ctx *values.Context, bf *values.BoundFunction, args []values.Value, kwargs map[string]values.Value, filename string, line int) (values.Value, error) {
	if halted, desc := e.zombieCheck(bf.Zombie, bf.Closure, describeCallable(bf)); halted {
		e.reportZombie(bf.Closure, desc)
		return values.None, nil
	}

	callCtx := values.NewCall(bf.Closure, ctx)
	if err := e.bindArgsFull(callCtx, bf.Def.Args, bf.Name, bf.Closure, args, kwargs); err != nil {
		return nil, err
	}

	ctx.CallStack.Push(values.CallSite{MethodName: bf.Name, Filename: filename, Line: line})
	defer ctx.CallStack.Pop()

	if err := e.execBlock(callCtx, bf.Def.Body); err != nil {
		return nil, err
	}
	if callCtx.HasReturned {
		return callCtx.ReturnValue, nil
	}
	return values.None, nil
}

func (e *Evaluator) invokeLambda(ctx *values.Context, lv *values.LambdaValue, args []values.Value, kwargs map[string]values.Value, filename string, line int) (values.Value, error) {
	if halted, desc := e.zombieCheck(lv.Zombie, lv.Closure, "<lambda>"); halted {
		e.reportZombie(lv.Closure, desc)
		return values.None, nil
	}

	callCtx := values.NewCall(lv.Closure, ctx)
	if err := e.bindArgsFull(callCtx, lv.Def.Args, "<lambda>", lv.Closure, args, kwargs); err != nil {
		return nil, err
	}

	ctx.CallStack.Push(values.CallSite{MethodName: "<lambda>", Filename: filename, Line: line})
	defer ctx.CallStack.Pop()

	return e.EvalExpr(callCtx, lv.Def.Body)
}

func describeCallable(bf *values.BoundFunction) string { return bf.Name }

// zombieCheck reports whether callable invocation should be silently
// swallowed because the owning module has already exited (spec.md §4.12).
func (e *Evaluator) zombieCheck(z *values.ZombieState, closure *values.Context, desc string) (halted bool, description string) {
	if closure == nil || !closure.Global.IsHalted() {
		return false, ""
	}
	if z != nil {
		z.CallCount++
	}
	return true, desc
}

func (e *Evaluator) reportZombie(closure *values.Context, desc string) {
	if e.ZombieHandler == nil || closure == nil {
		return
	}
	count := 0
	if closure.Global.Zombie != nil {
		count = closure.Global.Zombie.CallCount
	}
	e.ZombieHandler(closure.Global.Filename, desc, count)
}

// invokeBoundMethod dispatches a BoundMethodValue by its receiver's
// concrete type (spec.md §3.1): a built-in container goes through
// builtins.CallMethod, a host object through the overload resolver, a
// ScriptInstance/ScriptClass through the class's own method tables.
func (e *Evaluator) invokeBoundMethod(ctx *values.Context, bm *values.BoundMethodValue, args []values.Value, kwargs map[string]values.Value, filename string, line int) (values.Value, error) {
	switch recv := bm.Receiver.(type) {
	case *values.StringValue, *values.ListValue, *values.DictValue, *values.SetValue:
		result, ok, err := builtins.CallMethod(ctx, bm.Receiver, bm.MethodName, appendKwBag(args, kwargs))
		if !ok {
			return nil, &values.AttributeError{TypeName: bm.Receiver.Type(), Attr: bm.MethodName}
		}
		return result, err

	case *values.HostObjectValue:
		return e.invokeHostMethod(recv, bm.MethodName, args)

	case *values.ScriptInstance:
		bf, _, ok := recv.Class.FindInstanceMethod(bm.MethodName)
		if !ok {
			return nil, &values.AttributeError{TypeName: recv.Class.Name, Attr: bm.MethodName}
		}
		return e.invokeBoundFunction(ctx, bf, prepend(recv, args), kwargs, filename, line)

	case *values.ScriptClass:
		if clm, ok := recv.FindClassMethod(bm.MethodName); ok {
			if clm.IsClassMethod {
				return e.invokeBoundFunction(ctx, clm.Callable, prepend(recv, args), kwargs, filename, line)
			}
			return e.invokeBoundFunction(ctx, clm.Callable, args, kwargs, filename, line)
		}
		return nil, &values.AttributeError{TypeName: "type", Attr: bm.MethodName}

	default:
		return nil, &values.AttributeError{TypeName: bm.Receiver.Type(), Attr: bm.MethodName}
	}
}

func prepend(v values.Value, args []values.Value) []values.Value {
	out := make([]values.Value, 0, len(args)+1)
	out = append(out, v)
	out = append(out, args...)
	return out
}

// invokeHostMethod resolves and calls a method on a host object through
// the Member Mapper / Overload Resolver / Symbol Cache chain (spec.md
// §4.6, §6.2): each candidate runtime name the mapper reports is tried in
// turn, since a pretty method name can map to more than one overloaded
// runtime identifier.
func (e *Evaluator) invokeHostMethod(recv *values.HostObjectValue, prettyName string, args []values.Value) (values.Value, error) {
	if e.Resolver == nil {
		return nil, &values.TypeError{Message: "no host reflection provider configured"}
	}
	names := []string{prettyName}
	if e.Mapper != nil {
		if mapped := e.Mapper.ResolveMethodNames(recv.Class, prettyName); len(mapped) > 0 {
			names = mapped
		}
	}
	var lastErr error
	for _, name := range names {
		call, err := e.Resolver.ResolveMethod(recv.Class, name, args)
		if err != nil {
			lastErr = err
			continue
		}
		return e.callInvoker(call, recv.Obj, args)
	}
	return nil, lastErr
}

func (e *Evaluator) callInvoker(call symbols.ResolvedCall, receiver reflect.Value, args []values.Value) (values.Value, error) {
	rawArgs, err := coerceArgsByReflection(call.Params, args)
	if err != nil {
		return nil, err
	}
	results, err := call.Invoke(receiver, rawArgs)
	if err != nil {
		return nil, &values.HostException{Cause: err}
	}
	if len(results) == 0 {
		return values.None, nil
	}
	return values.FromGo(results[0]), nil
}

// coerceArgsByReflection converts each actual argument to the resolved
// candidate's exact formal parameter type via overload.CoerceArg, since
// reflect.Value.Call requires an assignable type per argument (a bare
// int64 is not assignable to a plain int, int32, or float32 parameter,
// so any width other than the resolver's own scored winner panics at
// call time if left unconverted).
func coerceArgsByReflection(params []reflect.Type, args []values.Value) ([]reflect.Value, error) {
	if len(params) != len(args) {
		return nil, fmt.Errorf("evaluator: arity mismatch coercing arguments: want %d, got %d", len(params), len(args))
	}
	out := make([]reflect.Value, len(args))
	for i, a := range args {
		rv, err := overload.CoerceArg(params[i], a)
		if err != nil {
			return nil, err
		}
		out[i] = rv
	}
	return out, nil
}

// invokeHostConstructor implements both a normal host-class constructor
// call and spec.md §4.7's "cast"-style promotion: SomeInterface(fn) wraps
// a script callable fn as a proxy implementing SomeInterface, routed
// through internal/proxy rather than ResolveConstructor since an
// interface has no constructor to resolve.
func (e *Evaluator) invokeHostConstructor(class *values.HostClassHandle, args []values.Value) (values.Value, error) {
	if class.GoType.Kind() == reflect.Interface {
		if len(args) != 1 {
			return nil, &values.TypeError{Message: fmt.Sprintf("%s(...) expects exactly one callable argument", class.DisplayName)}
		}
		obj, err := proxy.Wrap(class.GoType, args[0])
		if err != nil {
			return nil, err
		}
		return values.NewHostObject(class, obj), nil
	}

	if e.Resolver == nil {
		return nil, &values.TypeError{Message: "no host reflection provider configured"}
	}
	call, err := e.Resolver.ResolveConstructor(class, args)
	if err != nil {
		return nil, err
	}
	rawArgs, err := coerceArgsByReflection(call.Params, args)
	if err != nil {
		return nil, err
	}
	results, err := call.Invoke(reflect.Value{}, rawArgs)
	if err != nil {
		return nil, &values.HostException{Cause: err}
	}
	if len(results) == 0 {
		return values.None, nil
	}
	return values.NewHostObject(class, results[0]), nil
}

// instantiate constructs a ScriptClass instance (spec.md §3.1): a native
// constructor (built-in exception classes), an explicit __init__, or a
// synthesized dataclass initializer assigning each declared field in
// order from positional/keyword arguments and defaults.
func (e *Evaluator) instantiate(ctx *values.Context, class *values.ScriptClass, args []values.Value, kwargs map[string]values.Value, filename string, line int) (values.Value, error) {
	if class.NativeNew != nil {
		return class.NativeNew(class, appendKwBag(args, kwargs))
	}

	inst := values.NewScriptInstance(class)
	if class.Constructor != nil {
		if _, err := e.invokeBoundFunction(ctx, class.Constructor, prepend(inst, args), kwargs, filename, line); err != nil {
			return nil, err
		}
		return inst, nil
	}

	if class.IsDataclass {
		if err := e.initDataclassFields(ctx, inst, class, args, kwargs); err != nil {
			return nil, err
		}
		return inst, nil
	}

	if len(args) > 0 || len(kwargs) > 0 {
		return nil, &values.TypeError{Message: fmt.Sprintf("%s() takes no arguments", class.Name)}
	}
	return inst, nil
}

func (e *Evaluator) initDataclassFields(ctx *values.Context, inst *values.ScriptInstance, class *values.ScriptClass, args []values.Value, kwargs map[string]values.Value) error {
	fields := class.DataclassFields
	for i, f := range fields {
		switch {
		case i < len(args):
			inst.Dict[f.Name] = args[i]
		case kwargs != nil && kwargs[f.Name] != nil:
			inst.Dict[f.Name] = kwargs[f.Name]
		case f.Default != nil:
			inst.Dict[f.Name] = f.Default
		default:
			return &values.TypeError{Message: fmt.Sprintf("%s() missing required argument: '%s'", class.Name, f.Name)}
		}
	}
	return nil
}

// bindArgsFull binds a call's positional/keyword arguments against
// params, the full Python argument-binding algorithm (positional,
// defaults re-evaluated against closure, *args, keyword-only with
// defaults, **kwargs) that vm/call.go's bindArgs deliberately only covers
// the pure-positional subset of (any Call carrying Keywords/Starred
// escapes to this package entirely).
func (e *Evaluator) bindArgsFull(callCtx *values.Context, params *pyast.Arguments, fnName string, closure *values.Context, positional []values.Value, kwargs map[string]values.Value) error {
	nPos := len(params.Args)
	nDefaults := len(params.Defaults)
	required := nPos - nDefaults

	remaining := make(map[string]values.Value, len(kwargs))
	for k, v := range kwargs {
		remaining[k] = v
	}

	if params.Vararg == "" && len(positional) > nPos {
		return &values.TypeError{Message: fmt.Sprintf("%s() takes %d positional argument(s) but %d were given", fnName, nPos, len(positional))}
	}

	for i := 0; i < nPos; i++ {
		name := params.Args[i]
		switch {
		case i < len(positional):
			callCtx.DefineLocal(name, positional[i])
		case remaining[name] != nil:
			callCtx.DefineLocal(name, remaining[name])
			delete(remaining, name)
		case i >= required:
			defExpr := params.Defaults[i-required]
			v, err := e.EvalExpr(closure, defExpr)
			if err != nil {
				return err
			}
			callCtx.DefineLocal(name, v)
		default:
			return &values.TypeError{Message: fmt.Sprintf("%s() missing required positional argument: '%s'", fnName, name)}
		}
	}

	if params.Vararg != "" {
		var rest []values.Value
		if len(positional) > nPos {
			rest = append(rest, positional[nPos:]...)
		}
		callCtx.DefineLocal(params.Vararg, &values.TupleValue{Elements: rest})
	}

	for i, name := range params.KwOnlyArgs {
		if v, ok := remaining[name]; ok {
			callCtx.DefineLocal(name, v)
			delete(remaining, name)
			continue
		}
		var def pyast.Expr
		if i < len(params.KwOnlyDefaults) {
			def = params.KwOnlyDefaults[i]
		}
		if def == nil {
			return &values.TypeError{Message: fmt.Sprintf("%s() missing required keyword-only argument: '%s'", fnName, name)}
		}
		v, err := e.EvalExpr(closure, def)
		if err != nil {
			return err
		}
		callCtx.DefineLocal(name, v)
	}

	if params.Kwarg != "" {
		bag := values.NewDict()
		for k, v := range remaining {
			bag.SetItem(values.NewString(k), v)
		}
		callCtx.DefineLocal(params.Kwarg, bag)
		return nil
	}

	if len(remaining) > 0 {
		return &values.TypeError{Message: fmt.Sprintf("%s() got an unexpected keyword argument", fnName)}
	}
	return nil
}
