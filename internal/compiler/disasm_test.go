package compiler

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

// TestDisassembleToStringSnapshot pins the disassembler's text rendering
// for a small function-returning-a-function program, the same
// golden-output approach the teacher uses for its own fixture/snapshot
// suite (internal/interp/fixture_test.go's snaps.MatchSnapshot calls).
func TestDisassembleToStringSnapshot(t *testing.T) {
	tree := mod(
		&pyast.FunctionDef{
			Name: "mk",
			Args: &pyast.Arguments{},
			Body: []pyast.Stmt{
				&pyast.Assign{Targets: []pyast.Expr{name("x")}, Value: constInt(0)},
				&pyast.FunctionDef{
					Name: "inc",
					Args: &pyast.Arguments{},
					Body: []pyast.Stmt{
						&pyast.Nonlocal{Names: []string{"x"}},
						&pyast.AugAssign{Target: name("x"), Op: "+", Value: constInt(1)},
						&pyast.Return{Value: name("x")},
					},
				},
				&pyast.Return{Value: name("inc")},
			},
		},
		&pyast.Assign{
			Targets: []pyast.Expr{name("f")},
			Value:   &pyast.Call{Func: name("mk")},
		},
	)

	code, err := CompileModule("disasm_test.py", tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	snaps.MatchSnapshot(t, "disassembly", DisassembleToString(code))
}
