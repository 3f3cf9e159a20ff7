// Package compiler lowers a pyast.FunctionDef/Module body into a linear
// Code: an Instruction list, an exception jump table, and a line table
// (spec.md §3.2, §4.3, §4.4).
//
// Grounded on the teacher's internal/bytecode compiler (compiler_statements.go,
// compiler_expressions.go): the deferred-jump-fixup pattern (EmitJump
// reserves a placeholder slot and returns a patch token; PatchJump fills it
// once the target is known) and the try/except/finally jump-table shape
// (start_ip, end_ip, initial_stack_depth, target_ip, clause) are carried
// over directly, generalized from the teacher's fixed 32-bit
// [opcode][A][B] encoding to a variable-shape Instruction struct — the
// encoding itself isn't reusable since this instruction set's payloads
// (a *pyast.FunctionDef and its nested Code for bind_function, a
// filename+lineno pair for call) don't fit in two operand slots.
//
// Per spec.md §2 ("Tree-walking Evaluator ... used for classes/modules
// that have not been compiled, and for expressions where compilation is
// not yet wired (e.g. list comprehensions)"), the compiler does not lower
// class bodies, dict/lambda literals, or comprehensions to instructions;
// it hands those off to the evaluator via an escape instruction (see
// escape.go) rather than reimplementing their scoping rules twice.
package compiler
