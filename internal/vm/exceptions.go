package vm

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// raise turns a RaiseException instruction's operand into an
// *values.ExceptionValue error. v is values.None for a bare `raise`
// (re-raise the frame's currently active exception).
func raise(ctx *values.Context, v values.Value, line int, code *compiler.Code) error {
	if _, isNone := v.(values.NoneValue); isNone {
		if ctx.ActiveException != nil {
			exc := ctx.ActiveException
			ctx.ActiveException = nil
			return exc
		}
		return fmt.Errorf("vm: no active exception to re-raise")
	}
	inst, ok := v.(*values.ScriptInstance)
	if !ok {
		return &values.TypeError{Message: fmt.Sprintf("exceptions must derive from BaseException, not '%s'", v.Type())}
	}
	return &values.ExceptionValue{
		Instance:  inst,
		Message:   inst.String(),
		Position:  values.Position{Line: line},
		CallStack: ctx.CallStack.Snapshot(),
	}
}

// toExceptionValue normalizes any error raised by exec into the
// *values.ExceptionValue the exception table matches against. Errors
// already in that shape pass through; anything else (a values package
// error type like *TypeError, or an escaped host error) is wrapped so it
// can still be caught by a generic `except:`/`except Exception:`.
func toExceptionValue(ctx *values.Context, err error, line int) *values.ExceptionValue {
	if ev, ok := err.(*values.ExceptionValue); ok {
		return ev
	}
	return &values.ExceptionValue{
		HostErr:   err,
		Message:   err.Error(),
		Position:  values.Position{Line: line},
		CallStack: ctx.CallStack.Snapshot(),
	}
}

// catch searches code's static exception table for a range enclosing the
// instruction that just raised err, honoring Python's ordering: sibling
// except clauses share the same (start, end) = the try body's range and
// are tried in source order (the order compileTry appended them); a
// finally range is wider (it also spans the handler bodies) and is used
// only when no except clause in the narrower range matches.
func catch(ctx *values.Context, code *compiler.Code, err error) (bool, error) {
	ip := ctx.IP
	exc := toExceptionValue(ctx, err, code.LineForIP(ip))

	var finallyRange *compiler.ExceptionRange
	for i := range code.Exceptions {
		r := &code.Exceptions[i]
		if ip < r.StartIP || ip >= r.EndIP {
			continue
		}
		if r.Clause == compiler.ClauseFinally {
			finallyRange = r
			continue
		}
		matched, merr := matchesHandler(ctx, r, exc)
		if merr != nil {
			return false, merr
		}
		if !matched {
			continue
		}
		if len(ctx.DataStack) > r.InitialStackDepth {
			ctx.DataStack = ctx.DataStack[:r.InitialStackDepth]
		}
		if r.HandlerName != "" {
			ctx.DefineLocal(r.HandlerName, handlerValue(exc))
		}
		ctx.ActiveException = exc
		ctx.IP = r.TargetIP
		return true, nil
	}

	if finallyRange != nil {
		if len(ctx.DataStack) > finallyRange.InitialStackDepth {
			ctx.DataStack = ctx.DataStack[:finallyRange.InitialStackDepth]
		}
		ctx.ActiveException = exc
		ctx.IP = finallyRange.TargetIP
		return true, nil
	}

	return false, nil
}

// matchesHandler evaluates r's except-clause type expression (nil means
// a bare `except:`, matching anything) and reports whether exc matches
// it. See doc.go for the known simplifications around classless
// host exceptions.
func matchesHandler(ctx *values.Context, r *compiler.ExceptionRange, exc *values.ExceptionValue) (bool, error) {
	if r.HandlerType == nil {
		return true, nil
	}
	if compiler.EvalExprHook == nil {
		return false, fmt.Errorf("vm: no evaluator configured to resolve except-clause type")
	}
	handlerVal, err := compiler.EvalExprHook(ctx, r.HandlerType)
	if err != nil {
		return false, err
	}
	candidates := []values.Value{handlerVal}
	if tuple, ok := handlerVal.(*values.TupleValue); ok {
		candidates = tuple.Elements
	}
	for _, c := range candidates {
		if classMatches(c, exc) {
			return true, nil
		}
	}
	return false, nil
}

func classMatches(candidate values.Value, exc *values.ExceptionValue) bool {
	class, ok := candidate.(*values.ScriptClass)
	if !ok {
		// The except-clause expression didn't resolve to a class at all
		// (e.g. a name the evaluator couldn't look up as one); treat it as
		// a catch-all rather than failing the match, same as bare `except:`.
		return true
	}
	if exc.Instance != nil {
		return exc.Instance.Class.IsSubclassOf(class)
	}
	return class.Name == exc.ClassName() || class.Name == "Exception" || class.Name == "BaseException"
}

// handlerValue produces the value bound by an `except ... as name:`
// clause.
func handlerValue(exc *values.ExceptionValue) values.Value {
	if exc.Instance != nil {
		return exc.Instance
	}
	return values.NewString(exc.Message)
}
