package reflecttest

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Registry is a small in-process catalog of Go types exposed to scripts
// under a pretty (dotted) name. It implements hostapi.ClassLoader,
// hostapi.MemberMapper, and hostapi.ReflectionProvider over those types
// via reflect.
type Registry struct {
	mu sync.RWMutex

	byPretty map[string]reflect.Type
	ctors    map[reflect.Type][]ctorEntry
	aliases  map[aliasKey]string // (type, pretty member name) -> runtime name
}

type ctorEntry struct {
	fn reflect.Value
}

type aliasKey struct {
	t      reflect.Type
	pretty string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		byPretty: make(map[string]reflect.Type),
		ctors:    make(map[reflect.Type][]ctorEntry),
		aliases:  make(map[aliasKey]string),
	}
}

// RegisterType exposes t under prettyName (e.g. "java.util.ArrayList").
func (r *Registry) RegisterType(prettyName string, t reflect.Type) *values.HostClassHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPretty[prettyName] = t
	return values.InternHostClass(t, prettyName)
}

// RegisterConstructor registers fn (a Go function returning a T or *T,
// optionally with a trailing error) as a constructor candidate for t.
func (r *Registry) RegisterConstructor(t reflect.Type, fn any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[t] = append(r.ctors[t], ctorEntry{fn: reflect.ValueOf(fn)})
}

// RegisterAlias maps a script-visible member name to a different runtime
// method/field name on t (spec.md §6.2 "pretty -> runtime" mapping).
func (r *Registry) RegisterAlias(t reflect.Type, prettyMember, runtimeMember string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[aliasKey{t: t, pretty: prettyMember}] = runtimeMember
}

func (r *Registry) ResolveClass(prettyName string) (*values.HostClassHandle, error) {
	r.mu.RLock()
	t, ok := r.byPretty[prettyName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("reflecttest: no host type registered under %q", prettyName)
	}
	return values.InternHostClass(t, prettyName), nil
}

func (r *Registry) ResolveMethodNames(class *values.HostClassHandle, prettyName string) []string {
	r.mu.RLock()
	if runtime, ok := r.aliases[aliasKey{t: class.GoType, pretty: prettyName}]; ok {
		r.mu.RUnlock()
		return []string{runtime}
	}
	r.mu.RUnlock()

	t := class.GoType
	var out []string
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if strings.EqualFold(m.Name, prettyName) {
			out = append(out, m.Name)
		}
	}
	return out
}

func (r *Registry) ResolveFieldName(class *values.HostClassHandle, prettyName string) (string, bool) {
	r.mu.RLock()
	if runtime, ok := r.aliases[aliasKey{t: class.GoType, pretty: prettyName}]; ok {
		r.mu.RUnlock()
		return runtime, true
	}
	r.mu.RUnlock()

	t := underlying(class.GoType)
	if t.Kind() != reflect.Struct {
		return "", false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.EqualFold(f.Name, prettyName) {
			return f.Name, true
		}
	}
	return "", false
}

func underlying(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

var _ hostapi.ClassLoader = (*Registry)(nil)
var _ hostapi.MemberMapper = (*Registry)(nil)
