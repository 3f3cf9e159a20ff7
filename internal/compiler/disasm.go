package compiler

import (
	"fmt"
	"io"
	"strings"
)

// String names an Op for disassembly and diagnostics.
func (op Op) String() string {
	switch op {
	case Push:
		return "Push"
	case Pop:
		return "Pop"
	case Star:
		return "Star"
	case LoadIdentifier:
		return "LoadIdentifier"
	case AssignVariable:
		return "AssignVariable"
	case AssignTuple:
		return "AssignTuple"
	case DeleteVariable:
		return "DeleteVariable"
	case IterableIterator:
		return "IterableIterator"
	case IteratorHasNext:
		return "IteratorHasNext"
	case IteratorNext:
		return "IteratorNext"
	case Jump:
		return "Jump"
	case PopJumpIfFalse:
		return "PopJumpIfFalse"
	case PopJumpIfTrue:
		return "PopJumpIfTrue"
	case JumpIfFalseOrPop:
		return "JumpIfFalseOrPop"
	case JumpIfTrueOrPop:
		return "JumpIfTrueOrPop"
	case Unary:
		return "Unary"
	case Binary:
		return "Binary"
	case Compare:
		return "Compare"
	case LoadTuple:
		return "LoadTuple"
	case LoadList:
		return "LoadList"
	case LoadSet:
		return "LoadSet"
	case BuildDict:
		return "BuildDict"
	case BuildSlice:
		return "BuildSlice"
	case LoadAttr:
		return "LoadAttr"
	case StoreAttr:
		return "StoreAttr"
	case DeleteAttr:
		return "DeleteAttr"
	case LoadSubscript:
		return "LoadSubscript"
	case StoreSubscript:
		return "StoreSubscript"
	case DeleteSubscript:
		return "DeleteSubscript"
	case Call:
		return "Call"
	case BoundMethod:
		return "BoundMethod"
	case BindFunction:
		return "BindFunction"
	case FunctionReturn:
		return "FunctionReturn"
	case SwallowException:
		return "SwallowException"
	case RethrowException:
		return "RethrowException"
	case RaiseException:
		return "RaiseException"
	case Constant:
		return "Constant"
	case DeclareGlobalOp:
		return "DeclareGlobal"
	case DeclareNonlocalOp:
		return "DeclareNonlocal"
	case ImportOp:
		return "Import"
	case ImportFromOp:
		return "ImportFrom"
	case EvalStmt:
		return "EvalStmt"
	case EvalExpr:
		return "EvalExpr"
	case Pass:
		return "Pass"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Disassembler renders a Code's instruction list as human-readable text,
// one line per instruction, the same offset/line/mnemonic/operand shape
// as a traditional bytecode disassembler.
type Disassembler struct {
	w    io.Writer
	code *Code
}

// NewDisassembler builds a Disassembler that writes to w.
func NewDisassembler(code *Code, w io.Writer) *Disassembler {
	return &Disassembler{w: w, code: code}
}

// Disassemble prints every instruction in the Code, including its nested
// BindFunction bodies (each under its own "== ... ==" header).
func (d *Disassembler) Disassemble() {
	fmt.Fprintf(d.w, "== %d instruction(s) ==\n", len(d.code.Instructions))
	for ip := range d.code.Instructions {
		d.DisassembleInstruction(ip)
	}
	for _, inst := range d.code.Instructions {
		if inst.Op == BindFunction && inst.Code != nil {
			fmt.Fprintf(d.w, "\n== %s ==\n", inst.Def.Name)
			NewDisassembler(inst.Code, d.w).Disassemble()
		}
	}
}

// DisassembleInstruction prints the instruction at ip.
func (d *Disassembler) DisassembleInstruction(ip int) {
	if ip < 0 || ip >= len(d.code.Instructions) {
		fmt.Fprintf(d.w, "%04d invalid offset\n", ip)
		return
	}
	inst := d.code.Instructions[ip]
	fmt.Fprintf(d.w, "%04d %4d %-20s", ip, inst.Line, inst.Op.String())

	switch inst.Op {
	case Jump, PopJumpIfFalse, PopJumpIfTrue, JumpIfFalseOrPop, JumpIfTrueOrPop:
		fmt.Fprintf(d.w, " -> %04d", inst.Int)
	case LoadIdentifier, AssignVariable, DeleteVariable, DeclareGlobalOp, DeclareNonlocalOp,
		Unary, Binary, Compare, LoadAttr, StoreAttr, DeleteAttr:
		fmt.Fprintf(d.w, " %s", inst.Str)
	case AssignTuple:
		fmt.Fprintf(d.w, " (%s)", strings.Join(inst.Strs, ", "))
	case Constant:
		if inst.Value != nil {
			fmt.Fprintf(d.w, " %s", inst.Value.String())
		}
	case LoadTuple, LoadList, LoadSet, BuildDict:
		fmt.Fprintf(d.w, " count=%d", inst.Int)
	case Call:
		fmt.Fprintf(d.w, " nargs=%d %s:%d", inst.Call.NArgs, inst.Call.Filename, inst.Call.Line)
	case BindFunction:
		if inst.Def != nil {
			fmt.Fprintf(d.w, " %s", inst.Def.Name)
		}
	case ImportOp, ImportFromOp:
		names := make([]string, len(inst.Aliases))
		for i, a := range inst.Aliases {
			names[i] = a.Name
		}
		fmt.Fprintf(d.w, " %s (%s)", inst.Str, strings.Join(names, ", "))
	}
	fmt.Fprintln(d.w)
}

// DisassembleToString renders code's full disassembly as a string,
// including any nested function bodies.
func DisassembleToString(code *Code) string {
	var sb strings.Builder
	NewDisassembler(code, &sb).Disassemble()
	return sb.String()
}
