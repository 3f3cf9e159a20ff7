package overload

import (
	"fmt"
	"reflect"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/proxy"
	"github.com/maxuser0/pyjinn-sub000/internal/symbols"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// Resolver enumerates and scores candidates over a hostapi.ReflectionProvider,
// caching the winner in a symbols.Cache.
type Resolver struct {
	Cache    *symbols.Cache
	Provider hostapi.ReflectionProvider
}

func New(cache *symbols.Cache, provider hostapi.ReflectionProvider) *Resolver {
	return &Resolver{Cache: cache, Provider: provider}
}

type scored struct {
	exec  hostapi.Executable
	score int
}

// ResolveMethod picks the best-scoring method named name on class (and, per
// spec.md §4.6, its implemented interfaces and superclass chain), given the
// actual argument values. On success, the invoker is cached under
// (class, static, name, argTypes) so a repeated call is instant and returns
// the same instance (spec.md §8).
func (r *Resolver) ResolveMethod(class *values.HostClassHandle, name string, args []values.Value) (symbols.ResolvedCall, error) {
	argTypes := argTypesOf(args)
	return r.Cache.GetOrResolveMethod(class, false, name, argTypes, func() (symbols.ResolvedCall, error) {
		return r.resolveMethodUncached(class, name, args)
	})
}

func (r *Resolver) resolveMethodUncached(class *values.HostClassHandle, name string, args []values.Value) (symbols.ResolvedCall, error) {
	candidates := r.collectMethodCandidates(class, name, map[*values.HostClassHandle]bool{})

	best, diag := pickBest(name, candidates, args)
	if best == nil {
		return symbols.ResolvedCall{}, &ResolutionError{Diagnostics: diag}
	}
	return symbols.ResolvedCall{Invoke: makeInvoker(*best), Params: paramTypesOf(*best)}, nil
}

// collectMethodCandidates gathers candidates from class itself, its
// implemented interfaces, and its superclass chain (spec.md §4.6: "for
// methods only"). visited guards against revisiting an interface reachable
// through more than one path.
func (r *Resolver) collectMethodCandidates(class *values.HostClassHandle, name string, visited map[*values.HostClassHandle]bool) []hostapi.Executable {
	if class == nil || visited[class] {
		return nil
	}
	visited[class] = true

	var out []hostapi.Executable
	for _, m := range r.Provider.Methods(class) {
		if m.Name == name {
			out = append(out, m)
		}
	}
	for _, iface := range r.Provider.Interfaces(class) {
		out = append(out, r.collectMethodCandidates(iface, name, visited)...)
	}
	if super, ok := r.Provider.Superclass(class); ok {
		out = append(out, r.collectMethodCandidates(super, name, visited)...)
	}
	return out
}

// ResolveConstructor picks the best-scoring constructor for class. Unlike
// methods, interface/superclass traversal is not performed (spec.md §4.6).
func (r *Resolver) ResolveConstructor(class *values.HostClassHandle, args []values.Value) (symbols.ResolvedCall, error) {
	argTypes := argTypesOf(args)
	return r.Cache.GetOrResolveConstructor(class, argTypes, func() (symbols.ResolvedCall, error) {
		candidates := r.Provider.Constructors(class)
		best, diag := pickBest("<constructor>", candidates, args)
		if best == nil {
			return symbols.ResolvedCall{}, &ResolutionError{Diagnostics: diag}
		}
		return symbols.ResolvedCall{Invoke: makeInvoker(*best), Params: paramTypesOf(*best)}, nil
	})
}

func pickBest(name string, candidates []hostapi.Executable, args []values.Value) (*hostapi.Executable, *Diagnostics) {
	diag := &Diagnostics{MemberName: name}
	var best *scored

	for _, cand := range candidates {
		sig := signatureOf(name, cand)
		if len(cand.Params) != len(args) {
			diag.Candidates = append(diag.Candidates, CandidateReport{
				Signature: sig, Disqualified: true,
				DisqualifyReason: fmt.Sprintf("arity mismatch: wants %d args, got %d", len(cand.Params), len(args)),
			})
			continue
		}
		total := 0
		disqualified := false
		reason := ""
		for i, p := range cand.Params {
			ps := scoreParam(p.Type, args[i])
			if ps.disqualified {
				disqualified = true
				reason = ps.reason
				break
			}
			total += ps.score
		}
		if disqualified {
			diag.Candidates = append(diag.Candidates, CandidateReport{
				Signature: sig, Disqualified: true, DisqualifyReason: reason,
			})
			continue
		}
		diag.Candidates = append(diag.Candidates, CandidateReport{Signature: sig, Score: total})
		if best == nil || total > best.score {
			best = &scored{exec: cand, score: total}
		}
	}

	if best == nil {
		return nil, diag
	}
	return &best.exec, diag
}

func signatureOf(name string, e hostapi.Executable) string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		if p.Type != nil {
			parts[i] = p.Type.String()
		} else {
			parts[i] = "?"
		}
	}
	s := name
	if e.Name != "" {
		s = e.Name
	}
	return fmt.Sprintf("%s(%v)", s, parts)
}

func argTypesOf(args []values.Value) []reflect.Type {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		t, ok := valueGoType(a)
		if !ok {
			out[i] = nil
			continue
		}
		out[i] = t
	}
	return out
}

// ResolutionError is returned when no candidate qualifies (spec.md §7's
// "overload resolution error ... carries a rendered candidate report").
type ResolutionError struct {
	Diagnostics *Diagnostics
}

func (e *ResolutionError) Error() string { return e.Diagnostics.ShortMessage() }

// makeInvoker adapts exec.Invoke to the symbols.Invoker shape. Argument
// coercion (JavaString unwrap, numeric narrowing, script-callable ->
// functional-interface promotion via internal/proxy, spec.md §4.6) is the
// caller's job, guided by the ResolvedCall.Params returned alongside this
// Invoker — CoerceArg/values.ToGo do not run inside the Invoker itself
// since Invoker's own signature already expects exact-typed rawArgs.
func makeInvoker(exec hostapi.Executable) symbols.Invoker {
	return func(receiver reflect.Value, rawArgs []reflect.Value) ([]reflect.Value, error) {
		return exec.Invoke(receiver, rawArgs)
	}
}

// paramTypesOf extracts the winning candidate's formal parameter types,
// carried alongside its Invoker so a caller can coerce each actual
// argument to the exact type before invoking (see ResolvedCall).
func paramTypesOf(exec hostapi.Executable) []reflect.Type {
	out := make([]reflect.Type, len(exec.Params))
	for i, p := range exec.Params {
		out[i] = p.Type
	}
	return out
}

// CoerceArg converts one actual script value into the reflect.Value an
// executable's formal parameter expects, applying the unwrap/narrow/
// promote rules the winning score implied: script-callable ->
// functional-interface promotion goes through internal/proxy; everything
// else is the scalar conversion values.ToGo performs.
func CoerceArg(formal reflect.Type, actual values.Value) (reflect.Value, error) {
	if formal.Kind() == reflect.Interface && isScriptCallable(actual) {
		return proxy.Wrap(formal, actual)
	}
	return values.ToGo(actual, formal)
}
