package compiler

import (
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// constantValue converts a loaded AST literal into the Value it evaluates
// to, independent of surrounding context.
func constantValue(c *pyast.Constant) values.Value {
	switch c.Typename {
	case "NoneType":
		return values.None
	case "bool":
		if c.Raw.(bool) {
			return values.True
		}
		return values.False
	case "int":
		return values.NewInt(c.Raw.(int64))
	case "float":
		return values.NewFloat(c.Raw.(float64))
	case "str":
		return values.NewString(c.Raw.(string))
	default:
		return values.None
	}
}

// compileExpr lowers an expression to instructions that leave its value on
// top of the stack. Node kinds doc.go calls out as not generalized to
// bytecode (dict/lambda literals, comprehensions, f-strings, the walrus
// operator, multi-comparator chains, keyword/spread calls) are handed to
// the evaluator via escapeExpr instead.
func (fc *funcCompiler) compileExpr(expr pyast.Expr) error {
	line := expr.LineNo()
	switch e := expr.(type) {
	case *pyast.Constant:
		fc.emit(Instruction{Op: Constant, Value: constantValue(e), Line: line})
		return nil

	case *pyast.Name:
		fc.emit(Instruction{Op: LoadIdentifier, Str: e.Id, Line: line})
		return nil

	case *pyast.UnaryOp:
		if err := fc.compileExpr(e.Operand); err != nil {
			return err
		}
		fc.emit(Instruction{Op: Unary, Str: e.Op, Line: line})
		return nil

	case *pyast.BinOp:
		if err := fc.compileExpr(e.Left); err != nil {
			return err
		}
		if err := fc.compileExpr(e.Right); err != nil {
			return err
		}
		fc.emit(Instruction{Op: Binary, Str: e.Op, Line: line})
		return nil

	case *pyast.Compare:
		if len(e.Ops) != 1 {
			return fc.escapeExpr(expr)
		}
		if err := fc.compileExpr(e.Left); err != nil {
			return err
		}
		if err := fc.compileExpr(e.Comparators[0]); err != nil {
			return err
		}
		fc.emit(Instruction{Op: Compare, Str: e.Ops[0], Line: line})
		return nil

	case *pyast.BoolOp:
		return fc.compileBoolOp(e)

	case *pyast.IfExp:
		return fc.compileIfExp(e)

	case *pyast.Call:
		return fc.compileCall(e)

	case *pyast.Attribute:
		if err := fc.compileExpr(e.Value); err != nil {
			return err
		}
		if e.WasCallerFunc {
			fc.emit(Instruction{Op: BoundMethod, Str: e.Attr, Line: line})
		} else {
			fc.emit(Instruction{Op: LoadAttr, Str: e.Attr, Line: line})
		}
		return nil

	case *pyast.Subscript:
		if err := fc.compileExpr(e.Value); err != nil {
			return err
		}
		if err := fc.compileExpr(e.Index); err != nil {
			return err
		}
		fc.emit(Instruction{Op: LoadSubscript, Line: line})
		return nil

	case *pyast.Slice:
		if err := fc.compileSliceOperand(e.Lower); err != nil {
			return err
		}
		if err := fc.compileSliceOperand(e.Upper); err != nil {
			return err
		}
		if err := fc.compileSliceOperand(e.Step); err != nil {
			return err
		}
		fc.emit(Instruction{Op: BuildSlice, Line: line})
		return nil

	case *pyast.TupleExpr:
		return fc.compileSequence(e.Elements, LoadTuple, line, expr)

	case *pyast.ListExpr:
		return fc.compileSequence(e.Elements, LoadList, line, expr)

	case *pyast.SetExpr:
		return fc.compileSequence(e.Elements, LoadSet, line, expr)

	case *pyast.Starred:
		// A bare Starred only compiles inside a call/sequence context that
		// handles it explicitly; reaching here means an unsupported spot.
		return fc.escapeExpr(expr)

	case *pyast.DictExpr, *pyast.Lambda, *pyast.ListComp, *pyast.JoinedStr,
		*pyast.FormattedValue, *pyast.NamedExpr, *pyast.JavaClassRef:
		return fc.escapeExpr(expr)

	default:
		return fc.escapeExpr(expr)
	}
}

// escapeExpr hands an expression the compiler doesn't lower to the
// tree-walking evaluator via a single EvalExpr instruction (see escape.go).
func (fc *funcCompiler) escapeExpr(expr pyast.Expr) error {
	fc.emit(Instruction{Op: EvalExpr, Expr: expr, Line: expr.LineNo()})
	return nil
}

func (fc *funcCompiler) compileSliceOperand(e pyast.Expr) error {
	if e == nil {
		fc.emit(Instruction{Op: Push, Value: values.None})
		return nil
	}
	return fc.compileExpr(e)
}

func (fc *funcCompiler) compileSequence(elements []pyast.Expr, op Op, line int, whole pyast.Expr) error {
	for _, el := range elements {
		if _, starred := el.(*pyast.Starred); starred {
			return fc.escapeExpr(whole)
		}
	}
	for _, el := range elements {
		if err := fc.compileExpr(el); err != nil {
			return err
		}
	}
	fc.emit(Instruction{Op: op, Int: len(elements), Line: line})
	return nil
}

func (fc *funcCompiler) compileBoolOp(b *pyast.BoolOp) error {
	if err := fc.compileExpr(b.Values[0]); err != nil {
		return err
	}
	op := JumpIfFalseOrPop
	if b.Op == "or" {
		op = JumpIfTrueOrPop
	}
	var slots []int
	for _, v := range b.Values[1:] {
		slot := fc.emitPlaceholder(op, b.Line)
		slots = append(slots, slot)
		if err := fc.compileExpr(v); err != nil {
			return err
		}
	}
	end := fc.here()
	for _, slot := range slots {
		fc.patch(slot, end)
	}
	return nil
}

func (fc *funcCompiler) compileIfExp(e *pyast.IfExp) error {
	if err := fc.compileExpr(e.Test); err != nil {
		return err
	}
	elseSlot := fc.emitPlaceholder(PopJumpIfFalse, e.Line)
	if err := fc.compileExpr(e.Body); err != nil {
		return err
	}
	endSlot := fc.emitPlaceholder(Jump, e.Line)
	fc.patch(elseSlot, fc.here())
	if err := fc.compileExpr(e.Orelse); err != nil {
		return err
	}
	fc.patch(endSlot, fc.here())
	return nil
}

func (fc *funcCompiler) compileCall(c *pyast.Call) error {
	if len(c.Keywords) > 0 {
		return fc.escapeExpr(c)
	}
	for _, a := range c.Args {
		if _, starred := a.(*pyast.Starred); starred {
			return fc.escapeExpr(c)
		}
	}
	if err := fc.compileExpr(c.Func); err != nil {
		return err
	}
	for _, a := range c.Args {
		if err := fc.compileExpr(a); err != nil {
			return err
		}
	}
	fc.emit(Instruction{
		Op:   Call,
		Line: c.Line,
		Call: CallInfo{NArgs: len(c.Args), Filename: fc.filename, Line: c.Line},
	})
	return nil
}
