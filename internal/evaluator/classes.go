package evaluator

import (
	"fmt"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// defineClass builds a *values.ScriptClass from a `class` statement
// (spec.md §3.1, §4.2). ClassDef always escapes to this package (see
// internal/compiler/compiler.go: "case *pyast.ClassDef: return
// fc.escapeStmt(stmt)") since a class body mixes method definitions,
// class-variable assignments, and dataclass field declarations that the
// compiler's statement-at-a-time bytecode model has no use for.
func (e *Evaluator) defineClass(ctx *values.Context, s *pyast.ClassDef) error {
	class := &values.ScriptClass{
		Name:            s.Name,
		InstanceMethods: map[string]*values.BoundFunction{},
		ClassMethods:    map[string]values.ClassLevelMethod{},
		ClassVars:       map[string]values.Value{},
	}

	for _, baseExpr := range s.Bases {
		baseVal, err := e.EvalExpr(ctx, baseExpr)
		if err != nil {
			return err
		}
		baseClass, ok := baseVal.(*values.ScriptClass)
		if !ok {
			return &values.TypeError{Message: fmt.Sprintf("base class expression did not evaluate to a class (got '%s')", baseVal.Type())}
		}
		class.Bases = append(class.Bases, baseClass)
	}

	for _, dec := range s.Decorators {
		if dec.Kind == "dataclass" {
			class.IsDataclass = true
			class.Frozen = dec.Frozen
		}
	}

	// The class body runs in its own scope so methods close over the
	// class's own namespace (other methods, class-level constants)
	// rather than leaking into the enclosing scope (spec.md §4.2).
	classCtx := ctx.NewEnclosed()

	var fieldOrder []string
	fieldDefaults := map[string]values.Value{}

	for _, stmt := range s.Body {
		switch st := stmt.(type) {
		case *pyast.FunctionDef:
			e.defineClassMethod(class, classCtx, st)

		case *pyast.AnnAssign:
			name, ok := st.Target.(*pyast.Name)
			if !ok {
				continue
			}
			fieldOrder = append(fieldOrder, name.Id)
			if st.Value != nil {
				v, err := e.EvalExpr(classCtx, st.Value)
				if err != nil {
					return err
				}
				fieldDefaults[name.Id] = v
				class.ClassVars[name.Id] = v
			}

		case *pyast.Pass:
			// nothing to do

		default:
			if err := e.EvalStmt(classCtx, stmt); err != nil {
				return err
			}
		}
	}

	for _, name := range classCtx.LocalNames() {
		if v, ok := classCtx.Lookup(name); ok {
			class.ClassVars[name] = v
		}
	}

	if class.IsDataclass {
		for _, name := range fieldOrder {
			class.DataclassFields = append(class.DataclassFields, values.DataclassField{
				Name:    name,
				Default: fieldDefaults[name],
			})
		}
	}

	ctx.Assign(s.Name, class)
	return nil
}

func (e *Evaluator) defineClassMethod(class *values.ScriptClass, classCtx *values.Context, st *pyast.FunctionDef) {
	kind := ""
	for _, dec := range st.Decorators {
		if dec.Kind == "classmethod" || dec.Kind == "staticmethod" {
			kind = dec.Kind
		}
	}
	bf := &values.BoundFunction{
		Name:    st.Name,
		Def:     st,
		Closure: classCtx,
		Zombie:  classCtx.Global.Zombie,
	}
	switch kind {
	case "classmethod":
		class.ClassMethods[st.Name] = values.ClassLevelMethod{IsClassMethod: true, Callable: bf}
	case "staticmethod":
		class.ClassMethods[st.Name] = values.ClassLevelMethod{IsClassMethod: false, Callable: bf}
	default:
		class.InstanceMethods[st.Name] = bf
		switch st.Name {
		case "__init__":
			class.Constructor = bf
		case "__hash__":
			class.HashOverride = bf
		case "__str__":
			class.StrOverride = bf
		}
	}
}
