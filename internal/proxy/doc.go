// Package proxy implements the Interface Proxy (spec.md §4.7): wrapping a
// script callable so it can stand in wherever a host interface is
// expected. When the interface has exactly one abstract method, calls
// forward the call's arguments directly to the script callable; with
// multiple abstract methods, the method identity is forwarded as the
// first argument so the callable can dispatch on it.
//
// Go has no runtime facility to synthesize an arbitrary interface
// implementation the way a JVM dynamic proxy can — reflect.MakeFunc only
// manufactures func values, not new named types satisfying an arbitrary
// interface. So instead of a Java-style universal proxy, an embedder
// registers a small adapter factory per interface type it wants to expose
// this way (RegisterFactory); this mirrors the teacher's
// internal/interp/ffi_callback.go direction (a Go function wrapping a
// script callback) but inverted — here a host *interface* wraps a script
// callable, rather than a Go func wrapping one.
package proxy
