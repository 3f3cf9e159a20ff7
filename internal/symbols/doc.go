// Package symbols implements the Symbol & Reflection Cache (spec.md §3.4):
// a process-wide, compute-if-absent cache of resolved "invokers" keyed by
// (class, is_static, method_name, actual-arg-type-tuple) for methods,
// (class, actual-arg-type-tuple) for constructors, and (is_class_side,
// class, member_name) for fields and nested classes.
//
// Resolution itself (scoring candidates, picking a winner) lives in
// internal/overload; this package only owns the cache shape and the
// compute-if-absent contract that guarantees "a repeated resolution
// returns the same invoker instance" (spec.md §8).
//
// Grounded on the teacher's internal/interp/runtime method-registry
// pattern — cache lookups keyed by a signature string built from the
// receiver type and argument types, generalized here to cover
// constructors and fields as well as methods.
package symbols
