package pyjinn

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
)

// Option configures a Script at construction time.
type Option func(*Script) error

// WithIOHost redirects the stdout/stderr/stdin a running script sees.
// Without this option, Script installs an in-memory buffering host so
// Eval's Result.Output works out of the box.
func WithIOHost(host hostapi.IOHost) Option {
	return func(s *Script) error {
		s.ioHost = host
		return nil
	}
}

// WithReflection wires host-object interop (spec.md §6.2): provider
// enumerates a host type's constructors/methods/fields, loader resolves a
// script-visible class name to a host type handle, and mapper translates
// between pretty and runtime member names. All three are required
// together; a Script with none configured simply can't construct or
// touch host objects.
func WithReflection(provider hostapi.ReflectionProvider, loader hostapi.ClassLoader, mapper hostapi.MemberMapper) Option {
	return func(s *Script) error {
		s.provider = provider
		s.loader = loader
		s.mapper = mapper
		return nil
	}
}

// WithModuleSearchPaths installs a FileModuleHost that resolves
// `import`/`from ... import` statements against JSON AST documents on
// disk under dirs (checked in order). Ignored if WithModuleHost also
// appears, since an explicit host always wins.
func WithModuleSearchPaths(dirs ...string) Option {
	return func(s *Script) error {
		s.moduleSearchPaths = dirs
		return nil
	}
}

// WithModuleHost supplies the resolver `import`/`from ... import`
// statements use to turn a dotted module name into source (spec.md §4.9).
// Without this option, a FileModuleHost is used when module search paths
// were given (WithModuleSearchPaths, WithConfigFile); with neither, any
// import statement fails.
func WithModuleHost(host hostapi.ModuleHost) Option {
	return func(s *Script) error {
		s.moduleHost = host
		return nil
	}
}

// WithZombieHandler installs the callback run whenever a script invokes a
// function or lambda whose owning module has already exited (spec.md
// §4.12). Left unset, a zombie call is silently swallowed.
func WithZombieHandler(fn func(filename, description string, callCount int)) Option {
	return func(s *Script) error {
		s.zombieHandler = fn
		return nil
	}
}

// WithRenameMap installs a table of pretty-name rewrites for host classes
// and members, applied on top of whatever ClassLoader/MemberMapper
// WithReflection supplied. Wildcard patterns ("myapp.internal.*") are
// supported; see RenameMap.
func WithRenameMap(entries map[string]string) Option {
	return func(s *Script) error {
		s.renames = NewRenameMap(entries)
		return nil
	}
}

// configFile is the shape of the YAML document WithConfigFile loads.
// Only the subset of Script configuration expressible declaratively
// (renaming, module search) lives here; reflection/module hosts and
// handlers are Go values and must come in through their own Option.
type configFile struct {
	Renames      map[string]string `yaml:"renames"`
	ModuleSearch []string          `yaml:"module_search_paths"`
}

// WithConfigFile loads a YAML manifest from path and applies the rename
// table and module search path list it describes. A manifest entry never
// overrides an Option supplied later in the New(...) call, since options
// apply in the order given.
func WithConfigFile(path string) Option {
	return func(s *Script) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("pyjinn: reading config %q: %w", path, err)
		}
		var cfg configFile
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("pyjinn: parsing config %q: %w", path, err)
		}
		if len(cfg.Renames) > 0 {
			s.renames = NewRenameMap(cfg.Renames)
		}
		if len(cfg.ModuleSearch) > 0 {
			s.moduleSearchPaths = cfg.ModuleSearch
		}
		return nil
	}
}
