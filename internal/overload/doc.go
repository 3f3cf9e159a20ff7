// Package overload implements the Overload Resolver (spec.md §4.6): given a
// host type, a member name, and the actual argument values of a call, it
// scores every candidate executable and returns an invoker for the winner,
// or a diagnostics report explaining why nothing qualified.
//
// Grounded on the teacher's internal/interp/marshal.go coercion table
// (MarshalToGo/MarshalToDWS), generalized from "convert for this one
// external-function signature" into "enumerate N candidates, score each
// parameter, pick a winner" — the per-parameter coercions themselves
// (JavaString unwrap, numeric narrowing) are the same family of
// conversions the teacher's marshal table performs.
package overload
