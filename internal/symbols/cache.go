package symbols

import (
	"reflect"
	"strings"
	"sync"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Invoker is the winning candidate's raw callable: it expects rawArgs to
// already carry the exact Go types its formal parameters declare (spec.md
// §4.6). Coercing each actual argument to those formal types is the
// caller's job, guided by the ResolvedCall.Params this Invoker is cached
// alongside.
type Invoker func(receiver reflect.Value, args []reflect.Value) ([]reflect.Value, error)

// ResolvedCall pairs an Invoker with the formal parameter types the
// winning candidate declared, so a caller can coerce each actual argument
// (values.ToGo/overload.CoerceArg) to the exact width/kind the candidate
// expects before calling Invoke — reflect.Value.Call panics on anything
// less exact than an assignable type.
type ResolvedCall struct {
	Invoke Invoker
	Params []reflect.Type
}

type methodKey struct {
	class    *values.HostClassHandle
	static   bool
	name     string
	argTypes string
}

type ctorKey struct {
	class    *values.HostClassHandle
	argTypes string
}

type memberKey struct {
	classSide bool
	class     *values.HostClassHandle
	name      string
}

// Cache is the process-wide Symbol & Reflection Cache. The zero value is
// not usable; construct with New. A *Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	methods map[methodKey]ResolvedCall
	ctors   map[ctorKey]ResolvedCall
	members map[memberKey]hostapi.Field
	nested  map[memberKey]*values.HostClassHandle
}

func New() *Cache {
	return &Cache{
		methods: make(map[methodKey]ResolvedCall),
		ctors:   make(map[ctorKey]ResolvedCall),
		members: make(map[memberKey]hostapi.Field),
		nested:  make(map[memberKey]*values.HostClassHandle),
	}
}

// ArgTypesKey renders an argument-type tuple into the string component of
// a cache key. Two tuples with the same types in the same order always
// render identically, and reflect.Type values are themselves interned by
// the runtime, so this is stable across calls.
func ArgTypesKey(argTypes []reflect.Type) string {
	var b strings.Builder
	for i, t := range argTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		if t == nil {
			b.WriteString("<nil>")
		} else {
			b.WriteString(t.String())
		}
	}
	return b.String()
}

// GetOrResolveMethod returns the cached invoker for (class, static, name,
// argTypes), calling resolve once per distinct key and caching the
// ResolvedCall it returns. A failure is not cached: when resolve returns
// an error, the next lookup of the same key calls resolve again.
func (c *Cache) GetOrResolveMethod(class *values.HostClassHandle, static bool, name string, argTypes []reflect.Type, resolve func() (ResolvedCall, error)) (ResolvedCall, error) {
	key := methodKey{class: class, static: static, name: name, argTypes: ArgTypesKey(argTypes)}

	c.mu.RLock()
	if inv, ok := c.methods[key]; ok {
		c.mu.RUnlock()
		return inv, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if inv, ok := c.methods[key]; ok {
		return inv, nil
	}
	inv, err := resolve()
	if err != nil {
		return ResolvedCall{}, err
	}
	c.methods[key] = inv
	return inv, nil
}

// GetOrResolveConstructor is GetOrResolveMethod's constructor-side
// counterpart; constructor resolution never traverses interfaces or the
// superclass chain (spec.md §4.6), so the key has no "static" component.
func (c *Cache) GetOrResolveConstructor(class *values.HostClassHandle, argTypes []reflect.Type, resolve func() (ResolvedCall, error)) (ResolvedCall, error) {
	key := ctorKey{class: class, argTypes: ArgTypesKey(argTypes)}

	c.mu.RLock()
	if inv, ok := c.ctors[key]; ok {
		c.mu.RUnlock()
		return inv, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if inv, ok := c.ctors[key]; ok {
		return inv, nil
	}
	inv, err := resolve()
	if err != nil {
		return ResolvedCall{}, err
	}
	c.ctors[key] = inv
	return inv, nil
}

// GetOrResolveField resolves a field member (spec.md §3.4: "(is_class_side,
// class, member_name)").
func (c *Cache) GetOrResolveField(classSide bool, class *values.HostClassHandle, name string, resolve func() (hostapi.Field, error)) (hostapi.Field, error) {
	key := memberKey{classSide: classSide, class: class, name: name}

	c.mu.RLock()
	if f, ok := c.members[key]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.members[key]; ok {
		return f, nil
	}
	f, err := resolve()
	if err != nil {
		return hostapi.Field{}, err
	}
	c.members[key] = f
	return f, nil
}

// GetOrResolveNestedType resolves a nested-class member under the same
// (is_class_side, class, member_name) key shape as fields.
func (c *Cache) GetOrResolveNestedType(classSide bool, class *values.HostClassHandle, name string, resolve func() (*values.HostClassHandle, error)) (*values.HostClassHandle, error) {
	key := memberKey{classSide: classSide, class: class, name: name}

	c.mu.RLock()
	if h, ok := c.nested[key]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.nested[key]; ok {
		return h, nil
	}
	h, err := resolve()
	if err != nil {
		return nil, err
	}
	c.nested[key] = h
	return h, nil
}
