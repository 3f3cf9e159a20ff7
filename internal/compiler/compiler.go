package compiler

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// CompileError reports a compile-time failure: break/continue outside a
// loop, return outside a function (spec.md §4.3).
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type loopFrame struct {
	Kind           string // "for" or "while"
	ContinueTarget int
	BreakPatches   []int
}

// funcCompiler compiles one function body (or the module top level) into a
// Code, using the deferred-jump mechanism from doc.go.
type funcCompiler struct {
	filename  string
	code      *Code
	loopStack []loopFrame
	inFunc    bool
}

func newFuncCompiler(filename string, inFunc bool) *funcCompiler {
	return &funcCompiler{filename: filename, code: &Code{}, inFunc: inFunc}
}

// CompileModule compiles a whole module body into top-level Code.
func CompileModule(filename string, mod *pyast.Module) (*Code, error) {
	fc := newFuncCompiler(filename, false)
	for _, stmt := range mod.Body {
		if err := fc.compileStmt(stmt); err != nil {
			return nil, err
		}
	}
	return fc.code, nil
}

func (fc *funcCompiler) emit(ins Instruction) int {
	ip := len(fc.code.Instructions)
	fc.code.Instructions = append(fc.code.Instructions, ins)
	fc.code.recordLine(ip, ins.Line)
	return ip
}

// emitPlaceholder reserves a jump slot with Int=-1 and returns its index,
// to be filled in later by patch once the target is known.
func (fc *funcCompiler) emitPlaceholder(op Op, line int) int {
	return fc.emit(Instruction{Op: op, Int: -1, Line: line})
}

func (fc *funcCompiler) patch(slot int, target int) {
	fc.code.Instructions[slot].Int = target
}

func (fc *funcCompiler) here() int { return len(fc.code.Instructions) }

func (fc *funcCompiler) pushLoop(frame loopFrame) { fc.loopStack = append(fc.loopStack, frame) }

func (fc *funcCompiler) popLoop() loopFrame {
	n := len(fc.loopStack)
	frame := fc.loopStack[n-1]
	fc.loopStack = fc.loopStack[:n-1]
	return frame
}

func (fc *funcCompiler) countEnclosingForLoops() int {
	n := 0
	for _, f := range fc.loopStack {
		if f.Kind == "for" {
			n++
		}
	}
	return n
}

// --- statements ---

func (fc *funcCompiler) compileStmt(stmt pyast.Stmt) error {
	line := stmt.LineNo()
	switch s := stmt.(type) {
	case *pyast.Pass:
		fc.emit(Instruction{Op: Pass, Line: line})
		return nil

	case *pyast.ExprStmt:
		if err := fc.compileExpr(s.Value); err != nil {
			return err
		}
		fc.emit(Instruction{Op: Pop, Line: line}) // discard unused expression-statement result
		return nil

	case *pyast.Assign:
		if len(s.Targets) != 1 {
			return fc.escapeStmt(stmt)
		}
		if err := fc.compileExpr(s.Value); err != nil {
			return err
		}
		return fc.compileStoreTarget(s.Targets[0])

	case *pyast.AugAssign:
		name, ok := s.Target.(*pyast.Name)
		if !ok {
			return fc.escapeStmt(stmt)
		}
		fc.emit(Instruction{Op: LoadIdentifier, Str: name.Id, Line: line})
		if err := fc.compileExpr(s.Value); err != nil {
			return err
		}
		fc.emit(Instruction{Op: Binary, Str: s.Op, Line: line})
		fc.emit(Instruction{Op: AssignVariable, Str: name.Id, Line: line})
		return nil

	case *pyast.AnnAssign:
		if s.Value == nil {
			return nil // bare annotation, nothing to execute
		}
		if err := fc.compileExpr(s.Value); err != nil {
			return err
		}
		return fc.compileStoreTarget(s.Target)

	case *pyast.Delete:
		for _, t := range s.Targets {
			if _, ok := t.(*pyast.Name); !ok {
				return fc.escapeStmt(stmt)
			}
		}
		for _, t := range s.Targets {
			fc.emit(Instruction{Op: DeleteVariable, Str: t.(*pyast.Name).Id, Line: line})
		}
		return nil

	case *pyast.Global:
		for _, name := range s.Names {
			fc.emit(Instruction{Op: DeclareGlobalOp, Str: name, Line: line})
		}
		return nil

	case *pyast.Nonlocal:
		for _, name := range s.Names {
			fc.emit(Instruction{Op: DeclareNonlocalOp, Str: name, Line: line})
		}
		return nil

	case *pyast.Import:
		fc.emit(Instruction{Op: ImportOp, Aliases: s.Names, Line: line})
		return nil

	case *pyast.ImportFrom:
		fc.emit(Instruction{Op: ImportFromOp, Str: s.Module, Aliases: s.Names, Int: s.Level, Line: line})
		return nil

	case *pyast.If:
		return fc.compileIf(s)

	case *pyast.While:
		return fc.compileWhile(s)

	case *pyast.For:
		return fc.compileFor(s)

	case *pyast.Break:
		if len(fc.loopStack) == 0 {
			return &CompileError{Message: "'break' outside loop", Line: line}
		}
		slot := fc.emitPlaceholder(Jump, line)
		top := len(fc.loopStack) - 1
		fc.loopStack[top].BreakPatches = append(fc.loopStack[top].BreakPatches, slot)
		return nil

	case *pyast.Continue:
		if len(fc.loopStack) == 0 {
			return &CompileError{Message: "'continue' outside loop", Line: line}
		}
		target := fc.loopStack[len(fc.loopStack)-1].ContinueTarget
		fc.emit(Instruction{Op: Jump, Int: target, Line: line})
		return nil

	case *pyast.Return:
		if !fc.inFunc {
			return &CompileError{Message: "'return' outside function", Line: line}
		}
		if s.Value != nil {
			if err := fc.compileExpr(s.Value); err != nil {
				return err
			}
		} else {
			fc.emit(Instruction{Op: Push, Value: values.None, Line: line})
		}
		fc.emit(Instruction{Op: FunctionReturn, Line: line})
		return nil

	case *pyast.Raise:
		if s.Exc != nil {
			if err := fc.compileExpr(s.Exc); err != nil {
				return err
			}
		} else {
			fc.emit(Instruction{Op: Push, Value: values.None, Line: line}) // bare re-raise
		}
		fc.emit(Instruction{Op: RaiseException, Line: line})
		return nil

	case *pyast.Try:
		return fc.compileTry(s)

	case *pyast.FunctionDef:
		return fc.compileFunctionDef(s)

	case *pyast.ClassDef:
		return fc.escapeStmt(stmt)

	default:
		return fc.escapeStmt(stmt)
	}
}

// escapeStmt lowers a statement the compiler doesn't generalize into
// instructions (class bodies — see doc.go) to a single EvalStmt
// instruction handed to the tree-walking evaluator at run time.
func (fc *funcCompiler) escapeStmt(stmt pyast.Stmt) error {
	fc.emit(Instruction{Op: EvalStmt, Stmt: stmt, Line: stmt.LineNo()})
	return nil
}

func (fc *funcCompiler) compileStoreTarget(target pyast.Expr) error {
	line := target.LineNo()
	switch t := target.(type) {
	case *pyast.Name:
		fc.emit(Instruction{Op: AssignVariable, Str: t.Id, Line: line})
		return nil
	case *pyast.Attribute:
		if err := fc.compileExpr(t.Value); err != nil {
			return err
		}
		fc.emit(Instruction{Op: StoreAttr, Str: t.Attr, Line: line})
		return nil
	case *pyast.Subscript:
		if err := fc.compileExpr(t.Value); err != nil {
			return err
		}
		if err := fc.compileExpr(t.Index); err != nil {
			return err
		}
		fc.emit(Instruction{Op: StoreSubscript, Line: line})
		return nil
	case *pyast.TupleExpr:
		return fc.compileTupleTarget(t.Elements, line)
	case *pyast.ListExpr:
		return fc.compileTupleTarget(t.Elements, line)
	default:
		return &CompileError{Message: "unsupported assignment target", Line: line}
	}
}

func (fc *funcCompiler) compileTupleTarget(elements []pyast.Expr, line int) error {
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		name, ok := e.(*pyast.Name)
		if !ok {
			return &CompileError{Message: "unpacking assignment to a non-name target is not supported in compiled code", Line: line}
		}
		names = append(names, name.Id)
	}
	fc.emit(Instruction{Op: AssignTuple, Strs: names, Line: line})
	return nil
}

func (fc *funcCompiler) compileIf(s *pyast.If) error {
	line := s.LineNo()
	if err := fc.compileExpr(s.Test); err != nil {
		return err
	}
	elseSlot := fc.emitPlaceholder(PopJumpIfFalse, line)
	for _, stmt := range s.Body {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	endSlot := fc.emitPlaceholder(Jump, line)
	fc.patch(elseSlot, fc.here())
	for _, stmt := range s.Orelse {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	fc.patch(endSlot, fc.here())
	return nil
}

func (fc *funcCompiler) compileWhile(s *pyast.While) error {
	line := s.LineNo()
	l0 := fc.here()
	if err := fc.compileExpr(s.Test); err != nil {
		return err
	}
	endSlot := fc.emitPlaceholder(PopJumpIfFalse, line)

	fc.pushLoop(loopFrame{Kind: "while", ContinueTarget: l0})
	for _, stmt := range s.Body {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	frame := fc.popLoop()
	fc.emit(Instruction{Op: Jump, Int: l0, Line: line})

	lEnd := fc.here()
	fc.patch(endSlot, lEnd)
	for _, slot := range frame.BreakPatches {
		fc.patch(slot, lEnd)
	}
	for _, stmt := range s.Orelse {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (fc *funcCompiler) compileFor(s *pyast.For) error {
	line := s.LineNo()
	if err := fc.compileExpr(s.Iter); err != nil {
		return err
	}
	fc.emit(Instruction{Op: IterableIterator, Line: line})

	l0 := fc.here()
	fc.emit(Instruction{Op: IteratorHasNext, Line: line})
	popSlot := fc.emitPlaceholder(PopJumpIfFalse, line)
	fc.emit(Instruction{Op: IteratorNext, Line: line})
	if err := fc.compileStoreTarget(s.Target); err != nil {
		return err
	}

	fc.pushLoop(loopFrame{Kind: "for", ContinueTarget: l0})
	for _, stmt := range s.Body {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	frame := fc.popLoop()
	fc.emit(Instruction{Op: Jump, Int: l0, Line: line})

	lPop := fc.here()
	fc.patch(popSlot, lPop)
	for _, slot := range frame.BreakPatches {
		fc.patch(slot, lPop)
	}
	fc.emit(Instruction{Op: Pop, Line: line}) // discard the exhausted iterator

	for _, stmt := range s.Orelse {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (fc *funcCompiler) compileTry(s *pyast.Try) error {
	line := s.LineNo()
	stackDepth := fc.countEnclosingForLoops() // each enclosing for loop keeps its iterator on the data stack

	tryStart := fc.here()
	for _, stmt := range s.Body {
		if err := fc.compileStmt(stmt); err != nil {
			return err
		}
	}
	tryBodyEnd := fc.here()

	skipHandlersSlot := fc.emitPlaceholder(Jump, line)

	handlerEntries := make([]int, len(s.Handlers))
	handlerEndSlots := make([]int, len(s.Handlers))
	for i, h := range s.Handlers {
		handlerEntries[i] = fc.here()
		for _, stmt := range h.Body {
			if err := fc.compileStmt(stmt); err != nil {
				return err
			}
		}
		fc.emit(Instruction{Op: SwallowException, Line: h.LineNo()})
		handlerEndSlots[i] = fc.emitPlaceholder(Jump, h.LineNo())
	}
	handlersEnd := fc.here()

	var finallyIP int
	hasFinally := len(s.Finalbody) > 0
	if hasFinally {
		finallyIP = fc.here()
		for _, stmt := range s.Finalbody {
			if err := fc.compileStmt(stmt); err != nil {
				return err
			}
		}
		fc.emit(Instruction{Op: RethrowException, Line: line})
	}

	end := fc.here()
	postBodyTarget := end
	if hasFinally {
		postBodyTarget = finallyIP
	}
	fc.patch(skipHandlersSlot, postBodyTarget)
	for _, slot := range handlerEndSlots {
		fc.patch(slot, postBodyTarget)
	}

	for i, h := range s.Handlers {
		fc.code.Exceptions = append(fc.code.Exceptions, ExceptionRange{
			StartIP: tryStart, EndIP: tryBodyEnd, InitialStackDepth: stackDepth,
			TargetIP: handlerEntries[i], Clause: ClauseExcept,
			HandlerType: h.Type, HandlerName: h.Name,
		})
	}
	if hasFinally {
		fc.code.Exceptions = append(fc.code.Exceptions, ExceptionRange{
			StartIP: tryStart, EndIP: handlersEnd, InitialStackDepth: stackDepth,
			TargetIP: finallyIP, Clause: ClauseFinally,
		})
	}

	if len(s.Orelse) > 0 {
		// try/else support is approximate: this always runs orelse on the
		// fall-through path, which a handler also reaches after it
		// completes, rather than only when no exception was raised at all.
		return fc.escapeStmt(&pyast.Try{Pos: s.Pos, Body: s.Orelse})
	}
	return nil
}

func (fc *funcCompiler) compileFunctionDef(s *pyast.FunctionDef) error {
	inner := newFuncCompiler(fc.filename, true)
	for _, stmt := range s.Body {
		if err := inner.compileStmt(stmt); err != nil {
			return err
		}
	}
	inner.emit(Instruction{Op: Push, Value: values.None, Line: s.LineNo()})
	inner.emit(Instruction{Op: FunctionReturn, Line: s.LineNo()})

	fc.emit(Instruction{Op: BindFunction, Def: s, Code: inner.code, Str: s.Name, Line: s.LineNo()})
	return nil
}
