package compiler

import (
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Op identifies one instruction kind. Names mirror spec.md §4.4 verbatim
// where the minimum set defines one; a handful of additional opcodes
// (DeleteVariable, BuildDict, DeclareGlobalOp, DeclareNonlocalOp, EvalStmt,
// EvalExpr, LoadAttr/StoreAttr/DeleteAttr,
// LoadSubscript/StoreSubscript/DeleteSubscript, BuildSlice, RaiseException,
// ImportOp/ImportFromOp) exist because the minimum set
// names only the contract-relevant instructions for the patterns in
// §4.3, not a complete opcode list for every statement kind.
type Op int

const (
	Push Op = iota
	Pop
	Star
	LoadIdentifier
	AssignVariable
	AssignTuple
	DeleteVariable
	IterableIterator
	IteratorHasNext
	IteratorNext
	Jump
	PopJumpIfFalse
	PopJumpIfTrue
	JumpIfFalseOrPop
	JumpIfTrueOrPop
	Unary
	Binary
	Compare
	LoadTuple
	LoadList
	LoadSet
	BuildDict
	BuildSlice
	LoadAttr
	StoreAttr
	DeleteAttr
	LoadSubscript
	StoreSubscript
	DeleteSubscript
	Call
	BoundMethod
	BindFunction
	FunctionReturn
	SwallowException
	RethrowException
	RaiseException
	Constant
	DeclareGlobalOp
	DeclareNonlocalOp
	ImportOp
	ImportFromOp
	EvalStmt
	EvalExpr
	Pass
)

// CallInfo is the payload of a Call instruction (spec.md §4.3: "emit
// call(nargs, filename, lineno)").
type CallInfo struct {
	NArgs    int
	Filename string
	Line     int
}

// Instruction is one step of a Code's linear program. Only the fields a
// given Op needs are populated; others are zero.
type Instruction struct {
	Op   Op
	Line int

	Str   string   // LoadIdentifier/AssignVariable/Unary/Binary/Compare/attr names/import module
	Strs  []string // AssignTuple names
	Int   int      // jump target ip, LoadTuple/LoadList/LoadSet/BuildDict count, import level
	Value values.Value
	Call  CallInfo

	Def  *pyast.FunctionDef // BindFunction
	Code *Code              // BindFunction's nested compiled body

	Stmt pyast.Stmt // EvalStmt escape
	Expr pyast.Expr // EvalExpr escape

	Aliases []pyast.Alias // ImportOp/ImportFromOp
}

// ExceptionClause distinguishes an except-range entry from a finally-range
// entry in Code's exception table (spec.md §3.2).
type ExceptionClause int

const (
	ClauseExcept ExceptionClause = iota
	ClauseFinally
)

// ExceptionRange is one entry of Code's exception jump table (spec.md
// §3.2: "(start_ip, end_ip, initial_stack_depth, target_ip, clause)").
type ExceptionRange struct {
	StartIP           int
	EndIP             int
	InitialStackDepth int
	TargetIP          int
	Clause            ExceptionClause
	HandlerType       pyast.Expr // the except clause's Type expr, nil for finally/bare-except
	HandlerName       string     // the `as name` binding, "" if absent
}

// lineEntry is one run of instructions sharing a source line, merged
// adjacent-equal the way spec.md §3.2 describes.
type lineEntry struct {
	StartIP int
	EndIP   int
	Line    int
}

// Code is one function/module body's compiled form.
type Code struct {
	Instructions []Instruction
	Exceptions   []ExceptionRange
	lines        []lineEntry
}

// LineForIP returns the source line the instruction at ip belongs to, or 0
// if ip falls outside every recorded range.
func (c *Code) LineForIP(ip int) int {
	for _, e := range c.lines {
		if ip >= e.StartIP && ip < e.EndIP {
			return e.Line
		}
	}
	return 0
}

func (c *Code) recordLine(ip int, line int) {
	if n := len(c.lines); n > 0 && c.lines[n-1].Line == line && c.lines[n-1].EndIP == ip {
		c.lines[n-1].EndIP = ip + 1
		return
	}
	c.lines = append(c.lines, lineEntry{StartIP: ip, EndIP: ip + 1, Line: line})
}
