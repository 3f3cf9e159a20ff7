package hostapi

import (
	"io"
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// ClassLoader resolves a script-visible "pretty" class name (e.g. the
// dotted literal passed to `JavaClass("java.util.ArrayList")`) to an
// interned host type handle.
type ClassLoader interface {
	ResolveClass(prettyName string) (*values.HostClassHandle, error)
}

// MemberMapper translates between the names script code spells and the
// runtime names the host actually exposes (spec.md §6.2: "Map pretty
// member name -> set of runtime method names", "Map pretty field name ->
// runtime field name"). A pretty method name can map to more than one
// runtime name when overloads are exposed under distinct host-side
// identifiers.
type MemberMapper interface {
	ResolveMethodNames(class *values.HostClassHandle, prettyName string) []string
	ResolveFieldName(class *values.HostClassHandle, prettyName string) (runtimeName string, ok bool)
}

// ParamInfo describes one formal parameter of an Executable.
type ParamInfo struct {
	Type reflect.Type
}

// Executable is one constructor or method candidate, as enumerated by
// ReflectionProvider and scored by internal/overload.
type Executable struct {
	Name     string // runtime method name; "" for constructors
	Params   []ParamInfo
	Static   bool
	Abstract bool
	Invoke   func(receiver reflect.Value, args []reflect.Value) ([]reflect.Value, error)
}

// Field describes one host-type field.
type Field struct {
	Name   string
	Type   reflect.Type
	Static bool
}

// ReflectionProvider enumerates a host type's members (spec.md §6.2:
// "Enumerate constructors, methods, fields, nested types of a host type"
// and "Report parameter types and modifiers ... for an executable" — the
// latter is carried on Executable/ParamInfo themselves rather than a
// separate method, since every Executable this interface returns already
// carries that information).
type ReflectionProvider interface {
	Constructors(class *values.HostClassHandle) []Executable
	Methods(class *values.HostClassHandle) []Executable
	Fields(class *values.HostClassHandle) []Field
	NestedTypes(class *values.HostClassHandle) []*values.HostClassHandle

	// Interfaces and Superclass support the overload resolver's
	// "implemented interfaces and the superclass chain" traversal
	// (spec.md §4.6, methods only — not used for constructor resolution).
	Interfaces(class *values.HostClassHandle) []*values.HostClassHandle
	Superclass(class *values.HostClassHandle) (*values.HostClassHandle, bool)
}

// IOHost supplies the streams script `print`/stdin reads go through
// (spec.md §6.3: "redirect stdout/stderr consumers").
type IOHost interface {
	Stdout() io.Writer
	Stderr() io.Writer
	Stdin() io.Reader
}

// ModuleHost resolves a dotted module name (`import foo.bar.baz`'s
// "foo.bar.baz") to a canonical cache key and the module's parsed
// statement tree (spec.md §4.9). Canonical should be stable across every
// dotted spelling that reaches the same underlying source (e.g. an
// absolute file path) so internal/modules loads and executes it exactly
// once no matter how many times it's imported.
type ModuleHost interface {
	Resolve(dotted string) (canonical string, stmts []pyast.Stmt, err error)
}
