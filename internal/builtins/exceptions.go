package builtins

import (
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// exceptionSpec is one node of the built-in exception hierarchy (spec.md
// §7's error taxonomy, named the way Python itself names them so
// `except TypeError:` reads naturally in a Pyjinn script).
type exceptionSpec struct {
	name string
	base string // "" for BaseException itself
}

var exceptionTree = []exceptionSpec{
	{"BaseException", ""},
	{"Exception", "BaseException"},
	{"ArithmeticError", "Exception"},
	{"ZeroDivisionError", "ArithmeticError"},
	{"LookupError", "Exception"},
	{"IndexError", "LookupError"},
	{"KeyError", "LookupError"},
	{"NameError", "Exception"},
	{"TypeError", "Exception"},
	{"ValueError", "Exception"},
	{"AttributeError", "Exception"},
	{"RuntimeError", "Exception"},
	{"StopIteration", "Exception"},
	{"FrozenInstanceError", "AttributeError"},
}

// registerExceptionClasses builds one *values.ScriptClass per exceptionSpec,
// wired into the Bases chain so isinstance()/except-clause subclass checks
// (values.ScriptClass.IsSubclassOf) work the way a scripted class hierarchy
// would, without any script source to compile/evaluate for these classes'
// bodies — NativeNew/NativeStr (see values/classes.go) stand in for a
// compiled __init__/__str__.
func registerExceptionClasses(r *Registry) {
	for _, spec := range exceptionTree {
		class := &values.ScriptClass{
			Name:            spec.name,
			InstanceMethods: map[string]*values.BoundFunction{},
			ClassMethods:    map[string]values.ClassLevelMethod{},
			ClassVars:       map[string]values.Value{},
			NativeNew:       newExceptionInstance,
			NativeStr:       exceptionStr,
		}
		if spec.base != "" {
			class.Bases = []*values.ScriptClass{r.Classes[spec.base]}
		}
		r.Classes[spec.name] = class
	}
}

func newExceptionInstance(class *values.ScriptClass, args []values.Value) (*values.ScriptInstance, error) {
	inst := values.NewScriptInstance(class)
	inst.Dict["args"] = &values.TupleValue{Elements: append([]values.Value(nil), args...)}
	return inst, nil
}

// exceptionStr mirrors BaseException.__str__: empty for zero args, the sole
// argument's str() for exactly one, else the repr of the args tuple.
func exceptionStr(inst *values.ScriptInstance) string {
	tuple, ok := inst.Dict["args"].(*values.TupleValue)
	if !ok || len(tuple.Elements) == 0 {
		return ""
	}
	if len(tuple.Elements) == 1 {
		return tuple.Elements[0].String()
	}
	parts := make([]string, len(tuple.Elements))
	for i, e := range tuple.Elements {
		parts[i] = values.ReprString(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NewException constructs an instance of one of this package's built-in
// exception classes by name, for use by other packages (internal/vm,
// internal/evaluator) synthesizing a host-originated exception as a proper
// script instance rather than a bare *values.ExceptionValue with no Instance.
func (r *Registry) NewException(className string, message string) *values.ScriptInstance {
	class, ok := r.Classes[className]
	if !ok {
		class = r.Classes["Exception"]
	}
	inst, _ := newExceptionInstance(class, []values.Value{values.NewString(message)})
	return inst
}
