package values

import "fmt"

// ModuleValue wraps a loaded module's global Context (spec.md §4.9): once
// `import foo.bar.baz` has run the module's top-level statements, `.x`
// access on the resulting value reads straight out of that Context's
// globals, the same way a script reads any other name.
type ModuleValue struct {
	Name    string // canonical dotted name, e.g. "foo.bar.baz"
	Globals *Context
}

func (m *ModuleValue) Type() string   { return "module" }
func (m *ModuleValue) String() string { return fmt.Sprintf("<module '%s'>", m.Name) }

// GetAttr reads a top-level name out of the module's globals.
func (m *ModuleValue) GetAttr(name string) (Value, bool) {
	return m.Globals.Lookup(name)
}

// NamespaceValue is a synthetic intermediate package node for a dotted
// import chain (spec.md §4.9): `import foo.bar.baz` binds `foo` to a
// NamespaceValue whose attribute `bar` is another NamespaceValue, whose
// attribute `baz` is the actual loaded ModuleValue. Unlike ModuleValue it
// carries no executable globals of its own.
type NamespaceValue struct {
	Name     string
	Children map[string]Value
}

func (n *NamespaceValue) Type() string   { return "module" }
func (n *NamespaceValue) String() string { return fmt.Sprintf("<module '%s' (namespace)>", n.Name) }

func (n *NamespaceValue) GetAttr(name string) (Value, bool) {
	v, ok := n.Children[name]
	return v, ok
}
