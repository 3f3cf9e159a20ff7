package vm

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Run executes code against ctx from ctx.IP = 0 until the instruction
// stream ends or a FunctionReturn fires, returning the result (values.None
// for a module body or a bare `return`). Every error an instruction
// returns (a `raise` statement's *values.ExceptionValue, or a runtime
// error such as *values.NameError) is first offered to code's exception
// table; an uncaught one comes back unchanged.
func Run(ctx *values.Context, code *compiler.Code) (values.Value, error) {
	ctx.IP = 0
	for ctx.IP < len(code.Instructions) {
		if ctx.IsHalted() {
			return values.None, nil
		}
		ins := code.Instructions[ctx.IP]
		jumped, err := exec(ctx, code, ins)
		if err != nil {
			caught, cerr := catch(ctx, code, err)
			if cerr != nil {
				return nil, cerr
			}
			if !caught {
				return nil, err
			}
			continue
		}
		if ctx.HasReturned {
			return ctx.ReturnValue, nil
		}
		if !jumped {
			ctx.IP++
		}
	}
	return values.None, nil
}

func push(ctx *values.Context, v values.Value) {
	ctx.DataStack = append(ctx.DataStack, v)
}

func pop(ctx *values.Context) (values.Value, error) {
	n := len(ctx.DataStack)
	if n == 0 {
		return nil, fmt.Errorf("vm: pop from empty stack")
	}
	v := ctx.DataStack[n-1]
	ctx.DataStack = ctx.DataStack[:n-1]
	return v, nil
}

func peek(ctx *values.Context) (values.Value, error) {
	n := len(ctx.DataStack)
	if n == 0 {
		return nil, fmt.Errorf("vm: peek on empty stack")
	}
	return ctx.DataStack[n-1], nil
}

// iterBox wraps a values.Iterator so it can ride the data stack, which
// only carries values.Value (plain Iterator implementations like
// sliceIterator don't otherwise need to be Values).
type iterBox struct {
	it values.Iterator
}

func (b *iterBox) Type() string   { return "iterator" }
func (b *iterBox) String() string { return "<iterator>" }

// exec runs one instruction. jumped reports whether ctx.IP was already
// repositioned (a taken jump), so Run shouldn't also advance it by one.
func exec(ctx *values.Context, code *compiler.Code, ins compiler.Instruction) (jumped bool, err error) {
	switch ins.Op {
	case compiler.Pass:
		return false, nil

	case compiler.Push, compiler.Constant:
		push(ctx, ins.Value)
		return false, nil

	case compiler.Pop:
		_, err := pop(ctx)
		return false, err

	case compiler.LoadIdentifier:
		v, ok := ctx.Lookup(ins.Str)
		if !ok {
			return false, &values.NameError{Name: ins.Str, Position: values.Position{Line: ins.Line}}
		}
		push(ctx, v)
		return false, nil

	case compiler.AssignVariable:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		ctx.Assign(ins.Str, v)
		return false, nil

	case compiler.AssignTuple:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		return false, assignTuple(ctx, ins.Strs, v)

	case compiler.DeleteVariable:
		if !ctx.Delete(ins.Str) {
			return false, &values.NameError{Name: ins.Str}
		}
		return false, nil

	case compiler.IterableIterator:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		iterable, ok := v.(values.Iterable)
		if !ok {
			return false, &values.TypeError{Message: fmt.Sprintf("'%s' object is not iterable", v.Type())}
		}
		push(ctx, &iterBox{it: iterable.Iterate()})
		return false, nil

	case compiler.IteratorHasNext:
		v, err := peek(ctx)
		if err != nil {
			return false, err
		}
		box, ok := v.(*iterBox)
		if !ok {
			return false, fmt.Errorf("vm: iterator_has_next on non-iterator %T", v)
		}
		push(ctx, values.Bool(box.it.HasNext()))
		return false, nil

	case compiler.IteratorNext:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		box, ok := v.(*iterBox)
		if !ok {
			return false, fmt.Errorf("vm: iterator_next on non-iterator %T", v)
		}
		next, err := box.it.Next()
		if err != nil {
			return false, err
		}
		push(ctx, box)
		push(ctx, next)
		return false, nil

	case compiler.Jump:
		ctx.IP = ins.Int
		return true, nil

	case compiler.PopJumpIfFalse:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		if !values.Truthy(v) {
			ctx.IP = ins.Int
			return true, nil
		}
		return false, nil

	case compiler.PopJumpIfTrue:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		if values.Truthy(v) {
			ctx.IP = ins.Int
			return true, nil
		}
		return false, nil

	case compiler.JumpIfFalseOrPop:
		v, err := peek(ctx)
		if err != nil {
			return false, err
		}
		if !values.Truthy(v) {
			ctx.IP = ins.Int
			return true, nil
		}
		_, _ = pop(ctx)
		return false, nil

	case compiler.JumpIfTrueOrPop:
		v, err := peek(ctx)
		if err != nil {
			return false, err
		}
		if values.Truthy(v) {
			ctx.IP = ins.Int
			return true, nil
		}
		_, _ = pop(ctx)
		return false, nil

	case compiler.Unary:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		result, err := values.ApplyUnary(ins.Str, v)
		if err != nil {
			return false, err
		}
		push(ctx, result)
		return false, nil

	case compiler.Binary:
		r, err := pop(ctx)
		if err != nil {
			return false, err
		}
		l, err := pop(ctx)
		if err != nil {
			return false, err
		}
		result, err := values.ApplyBinary(ins.Str, l, r)
		if err != nil {
			return false, err
		}
		push(ctx, result)
		return false, nil

	case compiler.Compare:
		r, err := pop(ctx)
		if err != nil {
			return false, err
		}
		l, err := pop(ctx)
		if err != nil {
			return false, err
		}
		result, err := values.ApplyCompare(ins.Str, l, r)
		if err != nil {
			return false, err
		}
		push(ctx, result)
		return false, nil

	case compiler.LoadTuple:
		elems, err := popN(ctx, ins.Int)
		if err != nil {
			return false, err
		}
		push(ctx, &values.TupleValue{Elements: elems})
		return false, nil

	case compiler.LoadList:
		elems, err := popN(ctx, ins.Int)
		if err != nil {
			return false, err
		}
		push(ctx, values.NewList(elems))
		return false, nil

	case compiler.LoadSet:
		elems, err := popN(ctx, ins.Int)
		if err != nil {
			return false, err
		}
		push(ctx, values.NewSet(elems))
		return false, nil

	case compiler.BuildSlice:
		stepV, err := pop(ctx)
		if err != nil {
			return false, err
		}
		upperV, err := pop(ctx)
		if err != nil {
			return false, err
		}
		lowerV, err := pop(ctx)
		if err != nil {
			return false, err
		}
		lower, err := sliceBound(lowerV)
		if err != nil {
			return false, err
		}
		upper, err := sliceBound(upperV)
		if err != nil {
			return false, err
		}
		step, err := sliceBound(stepV)
		if err != nil {
			return false, err
		}
		push(ctx, &values.SliceValue{Lower: lower, Upper: upper, Step: step})
		return false, nil

	case compiler.LoadAttr:
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		v, err := loadAttr(obj, ins.Str)
		if err != nil {
			return false, err
		}
		push(ctx, v)
		return false, nil

	case compiler.BoundMethod:
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		v, err := boundMethod(obj, ins.Str)
		if err != nil {
			return false, err
		}
		push(ctx, v)
		return false, nil

	case compiler.StoreAttr:
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		val, err := pop(ctx)
		if err != nil {
			return false, err
		}
		return false, storeAttr(obj, ins.Str, val)

	case compiler.DeleteAttr:
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		return false, delAttr(obj, ins.Str)

	case compiler.LoadSubscript:
		index, err := pop(ctx)
		if err != nil {
			return false, err
		}
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		getter, ok := obj.(values.ItemGetter)
		if !ok {
			return false, &values.TypeError{Message: fmt.Sprintf("'%s' object is not subscriptable", obj.Type())}
		}
		v, err := getter.GetItem(index)
		if err != nil {
			return false, err
		}
		push(ctx, v)
		return false, nil

	case compiler.StoreSubscript:
		val, err := pop(ctx)
		if err != nil {
			return false, err
		}
		index, err := pop(ctx)
		if err != nil {
			return false, err
		}
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		setter, ok := obj.(values.ItemSetter)
		if !ok {
			return false, &values.TypeError{Message: fmt.Sprintf("'%s' object does not support item assignment", obj.Type())}
		}
		return false, setter.SetItem(index, val)

	case compiler.DeleteSubscript:
		index, err := pop(ctx)
		if err != nil {
			return false, err
		}
		obj, err := pop(ctx)
		if err != nil {
			return false, err
		}
		deleter, ok := obj.(values.ItemDeleter)
		if !ok {
			return false, &values.TypeError{Message: fmt.Sprintf("'%s' object does not support item deletion", obj.Type())}
		}
		return false, deleter.DelItem(index)

	case compiler.Call:
		return false, execCall(ctx, ins)

	case compiler.BindFunction:
		fn := &values.BoundFunction{
			Name:         ins.Str,
			Def:          ins.Def,
			Closure:      ctx,
			CompiledCode: ins.Code,
			Zombie:       ctx.Global.Zombie,
		}
		ctx.Assign(ins.Str, fn)
		return false, nil

	case compiler.FunctionReturn:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		ctx.ReturnValue = v
		ctx.HasReturned = true
		ctx.ActiveException = nil // a return inside finally wins over any pending re-raise
		return false, nil

	case compiler.SwallowException:
		ctx.ActiveException = nil
		return false, nil

	case compiler.RethrowException:
		if ctx.ActiveException != nil {
			exc := ctx.ActiveException
			ctx.ActiveException = nil
			return false, exc
		}
		return false, nil

	case compiler.RaiseException:
		v, err := pop(ctx)
		if err != nil {
			return false, err
		}
		return false, raise(ctx, v, ins.Line, code)

	case compiler.DeclareGlobalOp:
		ctx.DeclareGlobal(ins.Str)
		return false, nil

	case compiler.DeclareNonlocalOp:
		ctx.DeclareNonlocal(ins.Str)
		return false, nil

	case compiler.ImportOp:
		if ImportHook == nil {
			return false, fmt.Errorf("vm: no module host configured for import")
		}
		return false, ImportHook(ctx, ins.Aliases)

	case compiler.ImportFromOp:
		if ImportFromHook == nil {
			return false, fmt.Errorf("vm: no module host configured for import")
		}
		return false, ImportFromHook(ctx, ins.Str, ins.Aliases, ins.Int)

	case compiler.EvalStmt:
		if compiler.EvalStmtHook == nil {
			return false, fmt.Errorf("vm: no evaluator configured for EvalStmt")
		}
		return false, compiler.EvalStmtHook(ctx, ins.Stmt)

	case compiler.EvalExpr:
		if compiler.EvalExprHook == nil {
			return false, fmt.Errorf("vm: no evaluator configured for EvalExpr")
		}
		v, err := compiler.EvalExprHook(ctx, ins.Expr)
		if err != nil {
			return false, err
		}
		push(ctx, v)
		return false, nil

	default:
		return false, fmt.Errorf("vm: unhandled opcode %d", ins.Op)
	}
}

func popN(ctx *values.Context, n int) ([]values.Value, error) {
	out := make([]values.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := pop(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func sliceBound(v values.Value) (*int64, error) {
	if _, ok := v.(values.NoneValue); ok {
		return nil, nil
	}
	n, ok := values.AsNumber(v)
	if !ok {
		return nil, &values.TypeError{Message: "slice indices must be integers or None"}
	}
	i := n.Int64
	return &i, nil
}

func assignTuple(ctx *values.Context, names []string, v values.Value) error {
	iterable, ok := v.(values.Iterable)
	if !ok {
		return &values.TypeError{Message: fmt.Sprintf("cannot unpack non-iterable '%s' object", v.Type())}
	}
	it := iterable.Iterate()
	vals := make([]values.Value, 0, len(names))
	for it.HasNext() {
		elem, err := it.Next()
		if err != nil {
			return err
		}
		vals = append(vals, elem)
	}
	if len(vals) != len(names) {
		return &values.TypeError{Message: fmt.Sprintf("expected %d values to unpack, got %d", len(names), len(vals))}
	}
	for i, name := range names {
		ctx.Assign(name, vals[i])
	}
	return nil
}

func loadAttr(obj values.Value, name string) (values.Value, error) {
	if inst, ok := obj.(*values.ScriptInstance); ok {
		if v, ok := inst.GetAttr(name); ok {
			return v, nil
		}
		if m, _, ok := inst.Class.FindInstanceMethod(name); ok {
			return &values.BoundMethodValue{Receiver: inst, MethodName: m.Name}, nil
		}
		return nil, &values.AttributeError{TypeName: inst.Class.Name, Attr: name}
	}
	if GetAttrHook == nil {
		return nil, &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
	return GetAttrHook(obj, name)
}

func boundMethod(obj values.Value, name string) (values.Value, error) {
	if inst, ok := obj.(*values.ScriptInstance); ok {
		if _, _, ok := inst.Class.FindInstanceMethod(name); ok {
			return &values.BoundMethodValue{Receiver: inst, MethodName: name}, nil
		}
		if v, ok := inst.GetAttr(name); ok {
			return v, nil
		}
		return nil, &values.AttributeError{TypeName: inst.Class.Name, Attr: name}
	}
	if BoundMethodHook == nil {
		return nil, &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
	return BoundMethodHook(obj, name)
}

func storeAttr(obj values.Value, name string, val values.Value) error {
	if inst, ok := obj.(*values.ScriptInstance); ok {
		return inst.SetAttr(name, val)
	}
	if SetAttrHook == nil {
		return &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
	return SetAttrHook(obj, name, val)
}

func delAttr(obj values.Value, name string) error {
	if inst, ok := obj.(*values.ScriptInstance); ok {
		if _, ok := inst.Dict[name]; !ok {
			return &values.AttributeError{TypeName: inst.Class.Name, Attr: name}
		}
		delete(inst.Dict, name)
		return nil
	}
	if DelAttrHook == nil {
		return &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
	return DelAttrHook(obj, name)
}
