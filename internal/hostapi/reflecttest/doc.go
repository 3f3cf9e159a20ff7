// Package reflecttest is a reflect-backed reference implementation of the
// internal/hostapi interfaces, used by this module's own tests and
// available to an embedder as a starting point (SPEC_FULL.md §4.0).
//
// It keeps things deliberately simple: pretty member names match Go
// names case-insensitively unless overridden via RegisterAlias, constructors are plain
// functions registered with Registry.RegisterConstructor (Go has no
// reflection over a type's own constructors, unlike a JVM class), and
// nested types are whatever was registered under a dotted pretty name
// sharing the parent's prefix.
package reflecttest
