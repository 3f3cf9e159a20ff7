// Package values implements Pyjinn's runtime value universe and the
// Context (scope chain / control-flow signalling) that both the
// tree-walking evaluator and the bytecode VM share.
//
// Grounded on the teacher's internal/interp/value.go (tagged Value
// interface: Type()/String() on every variant, one concrete struct per
// kind) and internal/interp/runtime/environment.go (case-insensitive
// Environment chain, generalized here to Python's exact-case identifiers).
// Value Model and Context are kept in one package, mirroring how the
// teacher's own internal/interp/runtime package hosts both concerns
// together — a bound function must reference the Context it closes over,
// and a Context stores Values, so splitting them across packages would
// only introduce an import cycle without separating any real concern.
package values
