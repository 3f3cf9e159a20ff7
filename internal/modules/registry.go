// Package modules implements the module system (spec.md §4.9): resolving
// `import`/`from ... import` against an embedder-supplied Module Host,
// executing each module's top-level statements exactly once (cached by
// canonical name), and wiring the result into vm.ImportHook/ImportFromHook
// the same dependency-injection way internal/evaluator wires the VM's
// other hooks.
package modules

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
	"github.com/maxuser0/pyjinn-sub000/internal/vm"
)

// Executor runs a freshly loaded module's statement tree. *evaluator.Evaluator
// satisfies this via its NewModuleContext/ExecModule methods; defined here
// rather than imported from internal/evaluator so this package never has
// to depend on it (internal/evaluator already depends on internal/vm,
// which this package also sets hooks on).
type Executor interface {
	NewModuleContext(filename string) *values.Context
	ExecModule(ctx *values.Context, stmts []pyast.Stmt) error
}

// Registry caches loaded modules by canonical name and detects circular
// imports, the same shape as the teacher's unit registry (units map +
// loading-in-progress map) adapted from DWScript's `uses`-clause units to
// Python-style dotted modules resolved by a ModuleHost instead of a
// search-path file scan.
type Registry struct {
	host hostapi.ModuleHost
	exec Executor

	mu      sync.Mutex
	loaded  map[string]*values.ModuleValue
	loading map[string]bool
}

// New builds a Registry. host resolves dotted import names to canonical
// keys and statement trees; exec runs a module body once per canonical key.
func New(host hostapi.ModuleHost, exec Executor) *Registry {
	return &Registry{
		host:    host,
		exec:    exec,
		loaded:  make(map[string]*values.ModuleValue),
		loading: make(map[string]bool),
	}
}

// Install wires this Registry's Import/ImportFrom handling into
// vm.ImportHook/ImportFromHook. Call once per process, alongside
// (*evaluator.Evaluator).Install.
func (r *Registry) Install() {
	vm.ImportHook = r.execImport
	vm.ImportFromHook = r.execImportFrom
}

// ListLoaded returns the canonical names of every module loaded so far.
func (r *Registry) ListLoaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.loaded))
	for name := range r.loaded {
		out = append(out, name)
	}
	return out
}

// Load resolves dotted (e.g. "foo.bar.baz") through the module host on
// every call and executes the module it names exactly once, returning the
// cached ModuleValue on any later call for the same canonical name,
// however it was spelled.
func (r *Registry) Load(dotted string) (*values.ModuleValue, error) {
	if r.host == nil {
		return nil, fmt.Errorf("modules: no module host configured")
	}
	canonical, stmts, err := r.host.Resolve(dotted)
	if err != nil {
		return nil, fmt.Errorf("modules: resolving %q: %w", dotted, err)
	}

	r.mu.Lock()
	if m, ok := r.loaded[canonical]; ok {
		r.mu.Unlock()
		return m, nil
	}
	if r.loading[canonical] {
		r.mu.Unlock()
		return nil, fmt.Errorf("modules: circular dependency loading %q", dotted)
	}
	r.loading[canonical] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.loading, canonical)
		r.mu.Unlock()
	}()

	ctx := r.exec.NewModuleContext(canonical)
	if err := r.exec.ExecModule(ctx, stmts); err != nil {
		return nil, fmt.Errorf("modules: executing %q: %w", dotted, err)
	}

	m := &values.ModuleValue{Name: canonical, Globals: ctx}
	r.mu.Lock()
	r.loaded[canonical] = m
	r.mu.Unlock()
	return m, nil
}

// execImport is vm.ImportHook: `import a`, `import a.b.c`, `import a as x`,
// `import a.b.c as x`.
func (r *Registry) execImport(ctx *values.Context, aliases []pyast.Alias) error {
	for _, alias := range aliases {
		mod, err := r.Load(alias.Name)
		if err != nil {
			return err
		}
		if alias.AsName != "" {
			ctx.Assign(alias.AsName, mod)
			continue
		}
		// No alias: bind the first path segment to a (possibly shared,
		// possibly brand new) chain of synthetic namespace objects ending
		// in the loaded module, so `a.b.c.x` traverses attribute lookups
		// (spec.md §4.9) while `import a.b.d` run later extends the same
		// chain rather than clobbering it.
		segments := strings.Split(alias.Name, ".")
		root := segments[0]
		existing, _ := ctx.Lookup(root)
		top := bindNamespaceChain(existing, segments, mod)
		ctx.Assign(root, top)
	}
	return nil
}

// bindNamespaceChain walks segments[1:] below segments[0]'s existing value
// (if it's already a NamespaceValue from an earlier `import a.other`),
// creating NamespaceValue nodes as needed, and attaches leaf at the end.
func bindNamespaceChain(existing values.Value, segments []string, leaf *values.ModuleValue) values.Value {
	if len(segments) == 1 {
		return leaf
	}
	ns, ok := existing.(*values.NamespaceValue)
	if !ok {
		ns = &values.NamespaceValue{Name: segments[0], Children: map[string]values.Value{}}
	}
	child := ns.Children[segments[1]]
	ns.Children[segments[1]] = bindNamespaceChain(child, segments[1:], leaf)
	return ns
}

// execImportFrom is vm.ImportFromHook: `from m import a, b as c` and
// `from m import *`.
func (r *Registry) execImportFrom(ctx *values.Context, module string, aliases []pyast.Alias, level int) error {
	if level != 0 {
		return fmt.Errorf("modules: relative imports are not supported (level=%d for %q)", level, module)
	}
	mod, err := r.Load(module)
	if err != nil {
		return err
	}
	for _, alias := range aliases {
		if alias.Name == "*" {
			for _, name := range mod.Globals.LocalNames() {
				if strings.HasPrefix(name, "__") {
					continue
				}
				if v, ok := mod.Globals.Lookup(name); ok {
					ctx.Assign(name, v)
				}
			}
			continue
		}
		v, ok := mod.GetAttr(alias.Name)
		if !ok {
			return &values.AttributeError{TypeName: "module", Attr: alias.Name}
		}
		target := alias.AsName
		if target == "" {
			target = alias.Name
		}
		ctx.Assign(target, v)
	}
	return nil
}
