package compiler

import (
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

func mod(body ...pyast.Stmt) *pyast.Module {
	return &pyast.Module{Body: body}
}

func name(id string) *pyast.Name { return &pyast.Name{Id: id} }

func constInt(v int64) *pyast.Constant { return &pyast.Constant{Typename: "int", Raw: v} }

func TestCompileIfElseProducesBalancedJumps(t *testing.T) {
	tree := mod(&pyast.If{
		Test:   name("cond"),
		Body:   []pyast.Stmt{&pyast.ExprStmt{Value: constInt(1)}},
		Orelse: []pyast.Stmt{&pyast.ExprStmt{Value: constInt(2)}},
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var sawElseJump, sawEndJump bool
	for _, ins := range code.Instructions {
		switch ins.Op {
		case PopJumpIfFalse:
			sawElseJump = true
			if ins.Int < 0 || ins.Int > len(code.Instructions) {
				t.Fatalf("PopJumpIfFalse target out of range: %d", ins.Int)
			}
		case Jump:
			sawEndJump = true
			if ins.Int < 0 || ins.Int > len(code.Instructions) {
				t.Fatalf("Jump target out of range: %d", ins.Int)
			}
		}
	}
	if !sawElseJump || !sawEndJump {
		t.Fatalf("expected both a conditional and unconditional jump, got %+v", code.Instructions)
	}
}

func TestCompileWhileBreakContinueTargets(t *testing.T) {
	tree := mod(&pyast.While{
		Test: name("cond"),
		Body: []pyast.Stmt{
			&pyast.If{
				Test: name("skip"),
				Body: []pyast.Stmt{&pyast.Continue{}},
			},
			&pyast.If{
				Test: name("stop"),
				Body: []pyast.Stmt{&pyast.Break{}},
			},
		},
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// Both break and continue should have been patched to valid targets
	// rather than left at the -1 placeholder.
	for _, ins := range code.Instructions {
		if (ins.Op == Jump || ins.Op == PopJumpIfFalse) && ins.Int == -1 {
			t.Fatalf("unpatched jump left in compiled code: %+v", ins)
		}
	}
}

func TestCompileForPopsIteratorOnExit(t *testing.T) {
	tree := mod(&pyast.For{
		Target: name("x"),
		Iter:   name("xs"),
		Body:   []pyast.Stmt{&pyast.ExprStmt{Value: name("x")}},
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var sawIterator, sawHasNext, sawNext, sawPop bool
	for _, ins := range code.Instructions {
		switch ins.Op {
		case IterableIterator:
			sawIterator = true
		case IteratorHasNext:
			sawHasNext = true
		case IteratorNext:
			sawNext = true
		case Pop:
			sawPop = true
		}
	}
	if !sawIterator || !sawHasNext || !sawNext || !sawPop {
		t.Fatalf("expected full for-loop iterator protocol, got %+v", code.Instructions)
	}
}

func TestCompileBreakOutsideLoopFails(t *testing.T) {
	tree := mod(&pyast.Break{})
	if _, err := CompileModule("t.py", tree); err == nil {
		t.Fatal("expected compile error for break outside loop")
	}
}

func TestCompileContinueOutsideLoopFails(t *testing.T) {
	tree := mod(&pyast.Continue{})
	if _, err := CompileModule("t.py", tree); err == nil {
		t.Fatal("expected compile error for continue outside loop")
	}
}

func TestCompileReturnOutsideFunctionFails(t *testing.T) {
	tree := mod(&pyast.Return{Value: constInt(1)})
	if _, err := CompileModule("t.py", tree); err == nil {
		t.Fatal("expected compile error for return outside function")
	}
}

func TestCompileReturnInsideFunctionSucceeds(t *testing.T) {
	tree := mod(&pyast.FunctionDef{
		Name: "f",
		Args: &pyast.Arguments{},
		Body: []pyast.Stmt{&pyast.Return{Value: constInt(1)}},
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var found *Code
	for _, ins := range code.Instructions {
		if ins.Op == BindFunction {
			found = ins.Code
		}
	}
	if found == nil {
		t.Fatal("expected a BindFunction instruction carrying the nested Code")
	}
	var sawReturn bool
	for _, ins := range found.Instructions {
		if ins.Op == FunctionReturn {
			sawReturn = true
		}
	}
	if !sawReturn {
		t.Fatal("nested function body missing FunctionReturn")
	}
}

func TestCompileTryExceptFinallyBuildsExceptionTable(t *testing.T) {
	tree := mod(&pyast.Try{
		Body:      []pyast.Stmt{&pyast.ExprStmt{Value: constInt(1)}},
		Handlers:  []pyast.ExceptHandler{{Type: name("ValueError"), Name: "e", Body: []pyast.Stmt{&pyast.ExprStmt{Value: constInt(2)}}}},
		Finalbody: []pyast.Stmt{&pyast.ExprStmt{Value: constInt(3)}},
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var exceptRanges, finallyRanges int
	for _, r := range code.Exceptions {
		switch r.Clause {
		case ClauseExcept:
			exceptRanges++
			if r.HandlerName != "e" {
				t.Fatalf("expected handler name 'e', got %q", r.HandlerName)
			}
		case ClauseFinally:
			finallyRanges++
		}
	}
	if exceptRanges != 1 {
		t.Fatalf("expected 1 except range, got %d", exceptRanges)
	}
	if finallyRanges != 1 {
		t.Fatalf("expected 1 finally range, got %d", finallyRanges)
	}
}

func TestCompileSameASTTwiceYieldsIdenticalInstructions(t *testing.T) {
	build := func() *pyast.Module {
		return mod(&pyast.While{
			Test: name("cond"),
			Body: []pyast.Stmt{&pyast.ExprStmt{Value: constInt(1)}},
		})
	}
	c1, err := CompileModule("t.py", build())
	if err != nil {
		t.Fatalf("compile 1: %v", err)
	}
	c2, err := CompileModule("t.py", build())
	if err != nil {
		t.Fatalf("compile 2: %v", err)
	}
	if len(c1.Instructions) != len(c2.Instructions) {
		t.Fatalf("instruction count differs: %d vs %d", len(c1.Instructions), len(c2.Instructions))
	}
	for i := range c1.Instructions {
		a, b := c1.Instructions[i], c2.Instructions[i]
		if a.Op != b.Op || a.Int != b.Int || a.Str != b.Str {
			t.Fatalf("instruction %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestCompileUnsupportedMultiAssignEscapesToEvaluator(t *testing.T) {
	tree := mod(&pyast.Assign{
		Targets: []pyast.Expr{name("a"), name("b")},
		Value:   constInt(1),
	})
	code, err := CompileModule("t.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(code.Instructions) != 1 || code.Instructions[0].Op != EvalStmt {
		t.Fatalf("expected a single EvalStmt escape instruction, got %+v", code.Instructions)
	}
}
