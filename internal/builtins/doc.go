// Package builtins supplies the free functions and exception-class
// hierarchy available in every module's global scope (spec.md §2 Built-ins,
// §4.12 exit lifecycle), split by concern the way the teacher splits
// internal/bytecode/vm_builtins*.go: one register function per file
// (conversions.go, iteration.go, introspection.go, io.go, lifecycle.go,
// hostinterop.go, exceptions.go), collected by New into a single Registry
// an embedder's module globals are Install-ed from.
//
// Grounded on the teacher's vm_builtins.go/vm_builtins_misc.go/
// vm_builtins_conversion.go/vm_builtins_math.go/vm_builtins_string.go
// split, adapted from the teacher's map[string]func(*VM, []Value) pattern
// (methods bound to the VM) to plain functions over *values.Context, since
// this module's built-ins run identically from the VM and the evaluator.
package builtins
