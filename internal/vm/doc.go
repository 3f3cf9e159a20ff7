// Package vm executes internal/compiler's linear instruction lists
// directly against a *values.Context's data stack and instruction
// pointer (spec.md §4.5), the stack-based counterpart to
// internal/evaluator's tree walk. Both must agree on every observable
// result (spec.md §8 parity); they share one set of operator semantics
// (internal/values' ApplyBinary/ApplyUnary/ApplyCompare) and one calling
// convention for user-defined classes/exceptions.
//
// Grounded on the teacher's internal/bytecode/vm.go: a dispatch loop over
// an opcode enum, push/pop/peek stack helpers, and an exception-handler
// search that unwinds to the nearest enclosing handler. The teacher keeps
// a separate exceptionHandlers/finallyStack pushed and popped by
// dedicated TRY/END_TRY opcodes; this module's compiler instead records
// static (start_ip, end_ip, target_ip) ranges once per Code (see
// compiler.ExceptionRange), so the VM searches that table by instruction
// pointer on every raise rather than maintaining a handler stack at run
// time — the same information, computed once at compile time instead of
// incrementally at execution time.
//
// Constructs the compiler deliberately doesn't lower (class bodies,
// dict/lambda literals, comprehensions, f-strings, the walrus operator —
// see internal/compiler/doc.go) reach the VM as single EvalStmt/EvalExpr
// instructions, dispatched through compiler.EvalStmtHook/EvalExprHook.
// Calling anything other than a plain compiled function (a lambda, a
// bound method, a class constructor, a host callable) goes through
// InvokeHook for the same reason: the VM doesn't duplicate the
// evaluator's call-dispatch rules, it delegates to whichever package
// actually knows how to run that kind of callable.
//
// Two simplifications in except-clause handling:
//   - a handler type that isn't a *values.ScriptClass matches any
//     exception, like a bare `except:`. A ScriptClass handler matches a
//     raised ScriptInstance by subclass check, and matches a host
//     exception (one with no ScriptInstance) when the class is named
//     Exception, BaseException, or the host error's ClassName().
//   - an "as name" binding for a host exception binds name to a
//     *values.StringValue of its message rather than an exception
//     instance.
package vm
