// Package pyjinn is the embedding surface for the interpreter (spec.md
// §6.3): construct a Script, feed it parsed or compiled module source,
// run it, and reach into or call back out to its globals.
package pyjinn

import (
	"errors"
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/astloader"
	"github.com/maxuser0/pyjinn-sub000/internal/builtins"
	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/internal/evaluator"
	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/modules"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
	"github.com/maxuser0/pyjinn-sub000/internal/vm"
)

// Program is a main module compiled ahead of time by CompileMain, for
// running the same bytecode against a fresh global scope repeatedly.
type Program struct {
	code *compiler.Code
}

// Code exposes the compiled form, for tooling (cmd/pyjinn's compile/disasm
// subcommands) that needs to inspect instructions/exception ranges
// directly rather than just running the Program.
func (p *Program) Code() *compiler.Code {
	return p.code
}

// errNoMainParsed is returned by CompileMain when called before ParseMain.
var errNoMainParsed = errors.New("pyjinn: no main module parsed; call ParseMain first")

// Script is one interpreter instance: a single Evaluator (spec.md §5's
// "interpreter construction" happens once, in New) plus the persistent
// global Context that Eval, Global/SetGlobal, and BoundFunction all read
// and write against (RunProgram runs each Program against a fresh one).
type Script struct {
	eval     *evaluator.Evaluator
	registry *modules.Registry
	builtins *builtins.Registry
	main     *values.Context
	mainAST  *pyast.Module

	ioHost        hostapi.IOHost
	provider      hostapi.ReflectionProvider
	loader        hostapi.ClassLoader
	mapper        hostapi.MemberMapper
	moduleHost    hostapi.ModuleHost
	zombieHandler func(filename, description string, callCount int)
	renames       *RenameMap

	moduleSearchPaths []string
}

// New builds a Script and applies opts in order. With no WithIOHost
// option, stdout/stderr are captured into in-memory buffers so Eval's
// Result.Output works with no further setup.
func New(opts ...Option) (*Script, error) {
	s := &Script{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.ioHost == nil {
		s.ioHost = newBufferedIOHost()
	}
	builtins.SetIOHost(s.ioHost)

	s.builtins = builtins.New()
	s.eval = evaluator.New(s.builtins, s.provider, s.loader, s.mapper)
	s.eval.ZombieHandler = evaluator.ZombieHandler(s.zombieHandler)
	s.eval.Install()

	if s.moduleHost == nil && len(s.moduleSearchPaths) > 0 {
		s.moduleHost = NewFileModuleHost(s.moduleSearchPaths)
	}
	s.registry = modules.New(s.moduleHost, s.eval)
	s.registry.Install()

	s.main = s.eval.NewModuleContext("<main>")
	return s, nil
}

// ParseModule parses a JSON AST document (spec.md §6.1) into a
// *pyast.Module without running it. observer, if non-nil, is notified as
// the loader walks the tree: once per module an `import` statement names,
// and once per `from ... import` statement.
func (s *Script) ParseModule(filename string, jsonAST []byte, observer astloader.ImportObserver) (*pyast.Module, error) {
	return astloader.New(filename, observer).LoadModule(jsonAST)
}

// ParseMain parses jsonAST as the main module's AST and records it as the
// module CompileMain/Eval operate against. It does not execute anything.
func (s *Script) ParseMain(jsonAST []byte) (*pyast.Module, error) {
	mod, err := s.ParseModule("<main>", jsonAST, nil)
	if err != nil {
		return nil, err
	}
	s.mainAST = mod
	return mod, nil
}

// CompileMain compiles the module previously parsed by ParseMain into a
// reusable Program. Call RunProgram as many times as needed; each run
// starts from a fresh global scope with this Script's built-ins
// installed, the same way NewModuleContext does for Eval.
func (s *Script) CompileMain() (*Program, error) {
	if s.mainAST == nil {
		return nil, errNoMainParsed
	}
	code, err := compiler.CompileModule("<main>", s.mainAST)
	if err != nil {
		return nil, err
	}
	return &Program{code: code}, nil
}

// RunProgram executes a compiled Program against a fresh module-global
// Context and captures whatever it wrote to stdout during the run.
func (s *Script) RunProgram(p *Program) (*Result, error) {
	ctx := s.eval.NewModuleContext("<main>")
	return s.run(func() (values.Value, error) {
		return vm.Run(ctx, p.code)
	})
}

// Eval parses jsonAST as the main module and runs it once against this
// Script's persistent global scope (so a later Eval call or Call can see
// names the first one defined), capturing whatever it wrote to stdout.
func (s *Script) Eval(jsonAST []byte) (*Result, error) {
	mod, err := s.ParseModule("<main>", jsonAST, nil)
	if err != nil {
		return nil, err
	}
	return s.run(func() (values.Value, error) {
		return nil, s.eval.ExecModule(s.main, mod.Body)
	})
}

func (s *Script) run(exec func() (values.Value, error)) (*Result, error) {
	buf, captured := s.ioHost.(*bufferedIOHost)
	var before int
	if captured {
		before = buf.stdout.Len()
	}
	_, err := exec()
	result := &Result{Success: err == nil}
	if captured {
		result.Output = buf.sinceLen(before)
	}
	return result, err
}

// Global reads a name out of the main module's global scope.
func (s *Script) Global(name string) (values.Value, bool) {
	return s.main.Lookup(name)
}

// SetGlobal binds name to v in the main module's global scope, creating
// or overwriting it.
func (s *Script) SetGlobal(name string, v values.Value) {
	s.main.Assign(name, v)
}

// DeleteGlobal removes name from the main module's global scope,
// reporting whether it had been bound.
func (s *Script) DeleteGlobal(name string) bool {
	return s.main.Delete(name)
}

// BoundFunction returns the callable value bound to name in the main
// module's global scope: a user-defined function, a lambda, a class
// (calling it constructs an instance), or a bound method value.
func (s *Script) BoundFunction(name string) (values.Value, bool) {
	v, ok := s.main.Lookup(name)
	if !ok {
		return nil, false
	}
	return v, true
}

// Call looks up name as a callable in the main module's global scope and
// invokes it with args.
func (s *Script) Call(name string, args ...values.Value) (values.Value, error) {
	fn, ok := s.BoundFunction(name)
	if !ok {
		return nil, &values.NameError{Name: name}
	}
	return s.eval.Invoke(s.main, fn, args, "<main>", 0)
}

// RegisterHostClass interns (or returns the already-interned) handle for
// t, the process-wide identity InternHostClass guarantees and
// specializes the construction of host-backed wrapper values (spec.md
// §6.3's "install process-wide custom host-class handles").
func (s *Script) RegisterHostClass(t reflect.Type, displayName string) *values.HostClassHandle {
	if s.renames != nil {
		if renamed, ok := s.renames.Resolve(displayName); ok {
			displayName = renamed
		}
	}
	return values.InternHostClass(t, displayName)
}

// RegisterExitListener registers fn to run when a script exits (spec.md
// §4.12), via builtins.RegisterHostExitListener.
func (s *Script) RegisterExitListener(fn func()) {
	builtins.RegisterHostExitListener(fn)
}

// SetZombieHandler installs (or replaces) the callback run for calls
// against an already-exited module's functions.
func (s *Script) SetZombieHandler(fn func(filename, description string, callCount int)) {
	s.zombieHandler = fn
	s.eval.ZombieHandler = evaluator.ZombieHandler(fn)
}
