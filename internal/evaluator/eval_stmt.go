package evaluator

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
	"github.com/maxuser0/pyjinn-sub000/internal/vm"
)

// EvalStmt is compiler.EvalStmtHook: executes one statement the compiler
// escaped to the tree-walking evaluator, and is also this package's own
// entry point for every statement in a body the evaluator runs directly
// (a ClassDef body, a BoundFunction/LambdaValue whose module was never
// compiled).
func (e *Evaluator) EvalStmt(ctx *values.Context, stmt pyast.Stmt) error {
	switch s := stmt.(type) {
	case *pyast.Pass:
		return nil

	case *pyast.ExprStmt:
		_, err := e.EvalExpr(ctx, s.Value)
		return err

	case *pyast.Assign:
		val, err := e.EvalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		for _, target := range s.Targets {
			if err := e.assignTarget(ctx, target, val); err != nil {
				return err
			}
		}
		return nil

	case *pyast.AugAssign:
		cur, err := e.evalTargetValue(ctx, s.Target)
		if err != nil {
			return err
		}
		rhs, err := e.EvalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		next, err := values.ApplyBinary(s.Op, cur, rhs)
		if err != nil {
			return err
		}
		return e.assignTarget(ctx, s.Target, next)

	case *pyast.AnnAssign:
		if s.Value == nil {
			return nil
		}
		val, err := e.EvalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		return e.assignTarget(ctx, s.Target, val)

	case *pyast.Delete:
		for _, target := range s.Targets {
			if err := e.deleteTarget(ctx, target); err != nil {
				return err
			}
		}
		return nil

	case *pyast.Global:
		for _, name := range s.Names {
			ctx.DeclareGlobal(name)
		}
		return nil

	case *pyast.Nonlocal:
		for _, name := range s.Names {
			ctx.DeclareNonlocal(name)
		}
		return nil

	case *pyast.If:
		test, err := e.EvalExpr(ctx, s.Test)
		if err != nil {
			return err
		}
		if values.Truthy(test) {
			return e.execBlock(ctx, s.Body)
		}
		return e.execBlock(ctx, s.Orelse)

	case *pyast.While:
		return e.execWhile(ctx, s)

	case *pyast.For:
		return e.execFor(ctx, s)

	case *pyast.Break:
		ctx.BreakSignal = true
		return nil

	case *pyast.Continue:
		ctx.ContinueSignal = true
		return nil

	case *pyast.Return:
		if s.Value == nil {
			ctx.ReturnValue = values.None
		} else {
			v, err := e.EvalExpr(ctx, s.Value)
			if err != nil {
				return err
			}
			ctx.ReturnValue = v
		}
		ctx.HasReturned = true
		return nil

	case *pyast.Raise:
		return e.execRaise(ctx, s)

	case *pyast.Try:
		return e.execTry(ctx, s)

	case *pyast.FunctionDef:
		return e.defineFunction(ctx, s)

	case *pyast.ClassDef:
		return e.defineClass(ctx, s)

	case *pyast.Import:
		return e.execImport(ctx, s)

	case *pyast.ImportFrom:
		return e.execImportFrom(ctx, s)

	default:
		return &values.TypeError{Message: fmt.Sprintf("unsupported statement %T", stmt)}
	}
}

// ExecModule runs a module's top-level statement list in ctx. Exported so
// internal/modules can execute a freshly loaded module body exactly once
// without this package needing to know anything about module caching.
func (e *Evaluator) ExecModule(ctx *values.Context, stmts []pyast.Stmt) error {
	return e.execBlock(ctx, stmts)
}

// execBlock runs stmts in order, stopping early on return/break/continue
// or a halted module (spec.md §4.12) — the same short-circuit the VM's
// bytecode loop gets from its Jump/Return instructions.
func (e *Evaluator) execBlock(ctx *values.Context, stmts []pyast.Stmt) error {
	for _, stmt := range stmts {
		if err := e.EvalStmt(ctx, stmt); err != nil {
			return err
		}
		if ctx.HasReturned || ctx.BreakSignal || ctx.ContinueSignal || ctx.IsHalted() {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) execWhile(ctx *values.Context, s *pyast.While) error {
	ctx.LoopDepth++
	defer func() { ctx.LoopDepth-- }()
	broke := false
	for {
		test, err := e.EvalExpr(ctx, s.Test)
		if err != nil {
			return err
		}
		if !values.Truthy(test) {
			break
		}
		if err := e.execBlock(ctx, s.Body); err != nil {
			return err
		}
		if ctx.HasReturned || ctx.IsHalted() {
			return nil
		}
		if ctx.BreakSignal {
			ctx.BreakSignal = false
			broke = true
			break
		}
		if ctx.ContinueSignal {
			ctx.ContinueSignal = false
		}
	}
	if !broke {
		return e.execBlock(ctx, s.Orelse)
	}
	return nil
}

func (e *Evaluator) execFor(ctx *values.Context, s *pyast.For) error {
	iterVal, err := e.EvalExpr(ctx, s.Iter)
	if err != nil {
		return err
	}
	iterable, ok := iterVal.(values.Iterable)
	if !ok {
		return &values.TypeError{Message: fmt.Sprintf("'%s' object is not iterable", iterVal.Type())}
	}
	it := iterable.Iterate()
	ctx.LoopDepth++
	defer func() { ctx.LoopDepth-- }()
	broke := false
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}
		if err := e.assignTarget(ctx, s.Target, item); err != nil {
			return err
		}
		if err := e.execBlock(ctx, s.Body); err != nil {
			return err
		}
		if ctx.HasReturned || ctx.IsHalted() {
			return nil
		}
		if ctx.BreakSignal {
			ctx.BreakSignal = false
			broke = true
			break
		}
		if ctx.ContinueSignal {
			ctx.ContinueSignal = false
		}
	}
	if !broke {
		return e.execBlock(ctx, s.Orelse)
	}
	return nil
}

func (e *Evaluator) execRaise(ctx *values.Context, s *pyast.Raise) error {
	if s.Exc == nil {
		if ctx.ActiveException != nil {
			return ctx.ActiveException
		}
		return &values.TypeError{Message: "no active exception to re-raise"}
	}
	v, err := e.EvalExpr(ctx, s.Exc)
	if err != nil {
		return err
	}
	inst, ok := v.(*values.ScriptInstance)
	if !ok {
		return &values.TypeError{Message: fmt.Sprintf("exceptions must derive from BaseException, not '%s'", v.Type())}
	}
	return &values.ExceptionValue{
		Instance:  inst,
		Message:   inst.String(),
		Position:  values.Position{Filename: ctx.Global.Filename, Line: s.LineNo()},
		CallStack: ctx.CallStack.Snapshot(),
	}
}

// execTry is a tree-walked try/except/else/finally, grounded on the same
// ordering internal/vm/exceptions.go's catch/matchesHandler/classMatches
// implement for the compiled path (spec.md §8 VM/evaluator parity):
// sibling except clauses tried in source order against the try body's
// exception only, else runs only when the body raised nothing, finally
// always runs last and its own control flow (return/break/continue/raise)
// supersedes whatever the try/except/else produced.
func (e *Evaluator) execTry(ctx *values.Context, s *pyast.Try) error {
	bodyErr := e.execBlock(ctx, s.Body)
	if bodyErr == nil {
		if len(s.Orelse) > 0 {
			bodyErr = e.execBlock(ctx, s.Orelse)
		}
		return e.runFinally(ctx, s.Finalbody, bodyErr)
	}
	if ctx.HasReturned || ctx.BreakSignal || ctx.ContinueSignal {
		return e.runFinally(ctx, s.Finalbody, bodyErr)
	}

	exc := e.toExceptionValue(ctx, bodyErr, s.LineNo())
	for _, h := range s.Handlers {
		matched, herr := e.matchesHandler(ctx, h.Type, exc)
		if herr != nil {
			return e.runFinally(ctx, s.Finalbody, herr)
		}
		if !matched {
			continue
		}
		prevActive := ctx.ActiveException
		ctx.ActiveException = exc
		if h.Name != "" {
			ctx.Assign(h.Name, handlerValue(exc))
		}
		herr = e.execBlock(ctx, h.Body)
		ctx.ActiveException = prevActive
		if h.Name != "" {
			ctx.Delete(h.Name)
		}
		return e.runFinally(ctx, s.Finalbody, herr)
	}
	return e.runFinally(ctx, s.Finalbody, bodyErr)
}

// runFinally always executes finalbody. A control-flow signal or error it
// raises itself wins; otherwise pending (the try/except/else outcome) is
// returned once finalbody finishes.
func (e *Evaluator) runFinally(ctx *values.Context, finalbody []pyast.Stmt, pending error) error {
	if len(finalbody) == 0 {
		return pending
	}
	savedReturnValue, savedHasReturned := ctx.ReturnValue, ctx.HasReturned
	savedBreak, savedContinue := ctx.BreakSignal, ctx.ContinueSignal
	ctx.HasReturned, ctx.BreakSignal, ctx.ContinueSignal = false, false, false

	if ferr := e.execBlock(ctx, finalbody); ferr != nil {
		return ferr
	}
	if ctx.HasReturned || ctx.BreakSignal || ctx.ContinueSignal {
		return nil
	}
	ctx.ReturnValue, ctx.HasReturned = savedReturnValue, savedHasReturned
	ctx.BreakSignal, ctx.ContinueSignal = savedBreak, savedContinue
	return pending
}

func (e *Evaluator) toExceptionValue(ctx *values.Context, err error, line int) *values.ExceptionValue {
	if ev, ok := err.(*values.ExceptionValue); ok {
		return ev
	}
	return &values.ExceptionValue{
		HostErr:   err,
		Message:   err.Error(),
		Position:  values.Position{Filename: ctx.Global.Filename, Line: line},
		CallStack: ctx.CallStack.Snapshot(),
	}
}

func (e *Evaluator) matchesHandler(ctx *values.Context, handlerType pyast.Expr, exc *values.ExceptionValue) (bool, error) {
	if handlerType == nil {
		return true, nil
	}
	handlerVal, err := e.EvalExpr(ctx, handlerType)
	if err != nil {
		return false, err
	}
	candidates := []values.Value{handlerVal}
	if tuple, ok := handlerVal.(*values.TupleValue); ok {
		candidates = tuple.Elements
	}
	for _, c := range candidates {
		if classMatches(c, exc) {
			return true, nil
		}
	}
	return false, nil
}

func classMatches(candidate values.Value, exc *values.ExceptionValue) bool {
	class, ok := candidate.(*values.ScriptClass)
	if !ok {
		return true
	}
	if exc.Instance != nil {
		return exc.Instance.Class.IsSubclassOf(class)
	}
	return class.Name == exc.ClassName() || class.Name == "Exception" || class.Name == "BaseException"
}

func handlerValue(exc *values.ExceptionValue) values.Value {
	if exc.Instance != nil {
		return exc.Instance
	}
	return values.NewString(exc.Message)
}

// --- assignment targets ---

func (e *Evaluator) assignTarget(ctx *values.Context, target pyast.Expr, val values.Value) error {
	switch t := target.(type) {
	case *pyast.Name:
		ctx.Assign(t.Id, val)
		return nil

	case *pyast.Attribute:
		obj, err := e.EvalExpr(ctx, t.Value)
		if err != nil {
			return err
		}
		return e.SetAttr(obj, t.Attr, val)

	case *pyast.Subscript:
		obj, err := e.EvalExpr(ctx, t.Value)
		if err != nil {
			return err
		}
		idx, err := e.evalIndex(ctx, t.Index)
		if err != nil {
			return err
		}
		setter, ok := obj.(values.ItemSetter)
		if !ok {
			return &values.TypeError{Message: fmt.Sprintf("'%s' object does not support item assignment", obj.Type())}
		}
		return setter.SetItem(idx, val)

	case *pyast.TupleExpr:
		return e.unpackTargets(ctx, t.Elements, val)

	case *pyast.ListExpr:
		return e.unpackTargets(ctx, t.Elements, val)

	case *pyast.Starred:
		return e.assignTarget(ctx, t.Value, val)

	default:
		return &values.TypeError{Message: fmt.Sprintf("cannot assign to %T", target)}
	}
}

func (e *Evaluator) unpackTargets(ctx *values.Context, targets []pyast.Expr, val values.Value) error {
	items, err := e.materialize(val)
	if err != nil {
		return err
	}
	starIdx := -1
	for i, t := range targets {
		if _, ok := t.(*pyast.Starred); ok {
			starIdx = i
			break
		}
	}
	if starIdx < 0 {
		if len(items) != len(targets) {
			return &values.ValueError{Message: fmt.Sprintf("expected %d values to unpack, got %d", len(targets), len(items))}
		}
		for i, t := range targets {
			if err := e.assignTarget(ctx, t, items[i]); err != nil {
				return err
			}
		}
		return nil
	}
	before := starIdx
	after := len(targets) - starIdx - 1
	if len(items) < before+after {
		return &values.ValueError{Message: "not enough values to unpack"}
	}
	for i := 0; i < before; i++ {
		if err := e.assignTarget(ctx, targets[i], items[i]); err != nil {
			return err
		}
	}
	mid := append([]values.Value{}, items[before:len(items)-after]...)
	if err := e.assignTarget(ctx, targets[starIdx], values.NewList(mid)); err != nil {
		return err
	}
	for i := 0; i < after; i++ {
		if err := e.assignTarget(ctx, targets[starIdx+1+i], items[len(items)-after+i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) materialize(val values.Value) ([]values.Value, error) {
	switch v := val.(type) {
	case *values.TupleValue:
		return v.Elements, nil
	case *values.ListValue:
		return v.Elements, nil
	case values.Iterable:
		it := v.Iterate()
		var out []values.Value
		for it.HasNext() {
			item, err := it.Next()
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, &values.TypeError{Message: fmt.Sprintf("cannot unpack non-iterable %s object", val.Type())}
	}
}

func (e *Evaluator) deleteTarget(ctx *values.Context, target pyast.Expr) error {
	switch t := target.(type) {
	case *pyast.Name:
		if !ctx.Delete(t.Id) {
			return &values.NameError{Name: t.Id}
		}
		return nil
	case *pyast.Attribute:
		obj, err := e.EvalExpr(ctx, t.Value)
		if err != nil {
			return err
		}
		return e.DelAttr(obj, t.Attr)
	case *pyast.Subscript:
		obj, err := e.EvalExpr(ctx, t.Value)
		if err != nil {
			return err
		}
		idx, err := e.evalIndex(ctx, t.Index)
		if err != nil {
			return err
		}
		deleter, ok := obj.(values.ItemDeleter)
		if !ok {
			return &values.TypeError{Message: fmt.Sprintf("'%s' object doesn't support item deletion", obj.Type())}
		}
		return deleter.DelItem(idx)
	default:
		return &values.TypeError{Message: fmt.Sprintf("cannot delete %T", target)}
	}
}

// evalTargetValue reads an assignment target's current value, used by
// AugAssign to compute `target op= value` as `target = target op value`.
func (e *Evaluator) evalTargetValue(ctx *values.Context, target pyast.Expr) (values.Value, error) {
	return e.EvalExpr(ctx, target)
}

func (e *Evaluator) evalIndex(ctx *values.Context, idx pyast.Expr) (values.Value, error) {
	if sl, ok := idx.(*pyast.Slice); ok {
		return e.evalSlice(ctx, sl)
	}
	return e.EvalExpr(ctx, idx)
}

func (e *Evaluator) evalSlice(ctx *values.Context, sl *pyast.Slice) (values.Value, error) {
	toInt := func(expr pyast.Expr) (*int64, error) {
		if expr == nil {
			return nil, nil
		}
		v, err := e.EvalExpr(ctx, expr)
		if err != nil {
			return nil, err
		}
		n, ok := values.AsNumber(v)
		if !ok {
			return nil, &values.TypeError{Message: "slice indices must be integers"}
		}
		x := n.Int64
		return &x, nil
	}
	lower, err := toInt(sl.Lower)
	if err != nil {
		return nil, err
	}
	upper, err := toInt(sl.Upper)
	if err != nil {
		return nil, err
	}
	step, err := toInt(sl.Step)
	if err != nil {
		return nil, err
	}
	return &values.SliceValue{Lower: lower, Upper: upper, Step: step}, nil
}

// defineFunction handles a bare `def` statement (module- or
// function-level). A `def` nested inside a class body is instead handled
// directly by classes.go's class-body walk, which classifies
// @classmethod/@staticmethod rather than producing a plain BoundFunction.
func (e *Evaluator) defineFunction(ctx *values.Context, s *pyast.FunctionDef) error {
	bf := &values.BoundFunction{
		Name:    s.Name,
		Def:     s,
		Closure: ctx,
		Zombie:  ctx.Global.Zombie,
	}
	ctx.Assign(s.Name, bf)
	return nil
}

// --- imports ---
//
// Import/ImportFrom are compiled straight to compiler.ImportOp/ImportFromOp by
// internal/compiler (they never escape to this package, see
// internal/compiler/compiler.go) and run through vm.ImportHook/
// ImportFromHook, wired by internal/modules. A tree-walked body (a class
// body, a function never compiled) reaches the same two statement kinds
// here, so this package calls the identical hooks rather than duplicating
// module-loading logic, preserving spec.md §8 VM/evaluator parity.

func (e *Evaluator) execImport(ctx *values.Context, s *pyast.Import) error {
	if vm.ImportHook == nil {
		return fmt.Errorf("evaluator: no module loader configured")
	}
	return vm.ImportHook(ctx, s.Names)
}

func (e *Evaluator) execImportFrom(ctx *values.Context, s *pyast.ImportFrom) error {
	if vm.ImportFromHook == nil {
		return fmt.Errorf("evaluator: no module loader configured")
	}
	return vm.ImportFromHook(ctx, s.Module, s.Names, s.Level)
}
