package compiler

import (
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// EvalStmtHook and EvalExprHook let the VM hand a single statement or
// expression to the tree-walking evaluator mid-program, for the
// constructs the compiler deliberately doesn't lower (class bodies, dict
// literals, lambdas, comprehensions — see doc.go). Set once at startup by
// internal/evaluator, the same dependency-injection trick as
// internal/values.DunderHook, so internal/compiler and internal/vm never
// need to import internal/evaluator directly.
var (
	EvalStmtHook func(ctx *values.Context, stmt pyast.Stmt) error
	EvalExprHook func(ctx *values.Context, expr pyast.Expr) (values.Value, error)
)
