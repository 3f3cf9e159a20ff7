// Package evaluator is the tree-walking interpreter that the compiler and
// VM escape to for the constructs they deliberately don't lower to
// bytecode (class bodies, dict literals, starred sequence literals,
// lambdas, comprehensions,
// f-strings, the walrus operator, chained comparisons, and any call
// carrying keyword or starred arguments — see internal/compiler/doc.go),
// and the dispatcher behind every cross-package hook the rest of the
// interpreter depends on but can't import directly without a cycle:
// compiler.EvalStmtHook/EvalExprHook, vm.InvokeHook/GetAttrHook/
// SetAttrHook/DelAttrHook/BoundMethodHook, builtins.InvokeHook,
// proxy.CallHook, and values.DunderHook.
//
// Grounded on the teacher's internal/interp/interpreter.go (the
// tree-walking half of the teacher's own split dispatch-table/direct-walk
// design) generalized from Go's native control flow (panic/recover for
// break/continue/return) to the Context-carried signal flags spec.md §3.3
// settled on, so the same signals drive both this package's block
// executor and internal/vm's bytecode loop identically (spec.md §8 VM/
// evaluator parity).
package evaluator
