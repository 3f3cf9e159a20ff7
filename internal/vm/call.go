package vm

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func execCall(ctx *values.Context, ins compiler.Instruction) error {
	args, err := popN(ctx, ins.Call.NArgs)
	if err != nil {
		return err
	}
	callee, err := pop(ctx)
	if err != nil {
		return err
	}

	if bf, ok := callee.(*values.BoundFunction); ok {
		if code, ok := bf.CompiledCode.(*compiler.Code); ok {
			result, err := callCompiled(ctx, bf, code, args, ins.Call.Filename, ins.Call.Line)
			if err != nil {
				return err
			}
			push(ctx, result)
			return nil
		}
	}

	if InvokeHook == nil {
		return &values.TypeError{Message: fmt.Sprintf("'%s' object is not callable", callee.Type())}
	}
	result, err := InvokeHook(ctx, callee, args, ins.Call.Filename, ins.Call.Line)
	if err != nil {
		return err
	}
	push(ctx, result)
	return nil
}

// callCompiled invokes a BoundFunction whose body the compiler already
// lowered, binding positional args (with default/vararg/kwonly handling)
// into a fresh call frame and recursing into Run for its body.
func callCompiled(ctx *values.Context, bf *values.BoundFunction, code *compiler.Code, args []values.Value, filename string, line int) (values.Value, error) {
	callCtx := values.NewCall(bf.Closure, ctx)
	if err := bindArgs(callCtx, bf, args); err != nil {
		return nil, err
	}

	ctx.CallStack.Push(values.CallSite{MethodName: bf.Name, Filename: filename, Line: line})
	defer ctx.CallStack.Pop()

	return Run(callCtx, code)
}

func bindArgs(callCtx *values.Context, bf *values.BoundFunction, args []values.Value) error {
	params := bf.Def.Args
	nPos := len(params.Args)
	nDefaults := len(params.Defaults)
	required := nPos - nDefaults

	if params.Vararg == "" && len(args) > nPos {
		return &values.TypeError{Message: fmt.Sprintf("%s() takes %d positional argument(s) but %d were given", bf.Name, nPos, len(args))}
	}
	if len(args) < required {
		return &values.TypeError{Message: fmt.Sprintf("%s() missing required positional argument(s)", bf.Name)}
	}

	for i := 0; i < nPos; i++ {
		if i < len(args) {
			callCtx.DefineLocal(params.Args[i], args[i])
			continue
		}
		// Defaults are re-evaluated against the function's defining
		// (closure) context on every call rather than once at def time,
		// an approximation of Python's evaluate-once-at-definition
		// default-argument semantics — observably identical for the
		// common case of literal/constant defaults.
		defExpr := params.Defaults[i-required]
		v, err := compiler.EvalExprHook(bf.Closure, defExpr)
		if err != nil {
			return err
		}
		callCtx.DefineLocal(params.Args[i], v)
	}

	if params.Vararg != "" {
		var rest []values.Value
		if len(args) > nPos {
			rest = append(rest, args[nPos:]...)
		}
		callCtx.DefineLocal(params.Vararg, &values.TupleValue{Elements: rest})
	}

	for i, name := range params.KwOnlyArgs {
		var def pyast.Expr
		if i < len(params.KwOnlyDefaults) {
			def = params.KwOnlyDefaults[i]
		}
		if def == nil {
			return &values.TypeError{Message: fmt.Sprintf("%s() missing required keyword-only argument: '%s'", bf.Name, name)}
		}
		v, err := compiler.EvalExprHook(bf.Closure, def)
		if err != nil {
			return err
		}
		callCtx.DefineLocal(name, v)
	}

	if params.Kwarg != "" {
		callCtx.DefineLocal(params.Kwarg, values.NewDict())
	}

	return nil
}
