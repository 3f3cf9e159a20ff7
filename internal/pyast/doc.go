// Package pyast is Pyjinn's internal AST representation: typed
// statement/expression variants built by internal/astloader from the
// Parser's JSON output (spec.md §3, §6.1).
//
// Grounded on the teacher's internal/ast package, which splits node kinds
// across files by concern (classes.go, control_flow.go, declarations.go,
// functions.go, interfaces.go, records.go) rather than one monolithic
// ast.go; this package follows the same split, substituting DWScript's
// Pascal-flavored node set for Python's.
package pyast
