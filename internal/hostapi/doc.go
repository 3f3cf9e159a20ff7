// Package hostapi declares the contracts an embedder implements to expose
// host types and I/O to script code (spec.md §6.2). These are interfaces
// only — Pyjinn's core never assumes a particular reflection strategy, the
// way the teacher's `internal/interp` never assumes which Go runtime type
// backs a given DWScript external-function registration
// (internal/interp/external_functions.go).
//
// A reference implementation lives in the sibling reflecttest package,
// backed by Go's own reflect package; it exists so this module's own
// tests (and an embedder getting started) have something concrete to run
// against without pulling in a real JVM or native bridge.
package hostapi
