package evaluator

import (
	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// GetAttr is vm.GetAttrHook: attribute read for any receiver other than a
// *values.ScriptInstance (the VM special-cases that one directly). Also
// used directly by this package's own EvalExpr(Attribute) case, which
// passes every receiver here, ScriptInstance included.
func (e *Evaluator) GetAttr(obj values.Value, name string) (values.Value, error) {
	switch o := obj.(type) {
	case *values.ScriptInstance:
		if v, ok := o.GetAttr(name); ok {
			return v, nil
		}
		if _, _, ok := o.Class.FindInstanceMethod(name); ok {
			return &values.BoundMethodValue{Receiver: o, MethodName: name}, nil
		}
		return nil, &values.AttributeError{TypeName: o.Class.Name, Attr: name}

	case *values.ScriptClass:
		if v, ok := o.ClassVars[name]; ok {
			return v, nil
		}
		if _, ok := o.FindClassMethod(name); ok {
			return &values.BoundMethodValue{Receiver: o, MethodName: name}, nil
		}
		return nil, &values.AttributeError{TypeName: "type", Attr: name}

	case *values.HostObjectValue:
		if field, ok := e.resolveHostField(o.Class, name); ok {
			fv := o.Obj.FieldByName(field.Name)
			if fv.IsValid() {
				return values.FromGo(fv), nil
			}
		}
		return &values.BoundMethodValue{Receiver: o, MethodName: name}, nil

	case *values.ModuleValue:
		if v, ok := o.GetAttr(name); ok {
			return v, nil
		}
		return nil, &values.AttributeError{TypeName: "module", Attr: name}

	case *values.NamespaceValue:
		if v, ok := o.GetAttr(name); ok {
			return v, nil
		}
		return nil, &values.AttributeError{TypeName: "module", Attr: name}

	default:
		return &values.BoundMethodValue{Receiver: obj, MethodName: name}, nil
	}
}

func (e *Evaluator) resolveHostField(class *values.HostClassHandle, prettyName string) (hostapi.Field, bool) {
	if e.Mapper == nil || e.Provider == nil || e.Cache == nil {
		return hostapi.Field{}, false
	}
	runtimeName, ok := e.Mapper.ResolveFieldName(class, prettyName)
	if !ok {
		runtimeName = prettyName
	}
	field, err := e.Cache.GetOrResolveField(false, class, runtimeName, func() (hostapi.Field, error) {
		for _, cand := range e.Provider.Fields(class) {
			if cand.Name == runtimeName {
				return cand, nil
			}
		}
		return hostapi.Field{}, &values.AttributeError{TypeName: class.DisplayName, Attr: prettyName}
	})
	if err != nil {
		return hostapi.Field{}, false
	}
	return field, true
}

// SetAttr is vm.SetAttrHook.
func (e *Evaluator) SetAttr(obj values.Value, name string, val values.Value) error {
	switch o := obj.(type) {
	case *values.ScriptInstance:
		return o.SetAttr(name, val)
	case *values.ScriptClass:
		if o.ClassVars == nil {
			o.ClassVars = map[string]values.Value{}
		}
		o.ClassVars[name] = val
		return nil
	case *values.HostObjectValue:
		field, ok := e.resolveHostField(o.Class, name)
		if !ok {
			return &values.AttributeError{TypeName: o.Class.DisplayName, Attr: name}
		}
		fv := o.Obj.FieldByName(field.Name)
		if !fv.IsValid() || !fv.CanSet() {
			return &values.AttributeError{TypeName: o.Class.DisplayName, Attr: name}
		}
		rv, err := values.ToGo(val, fv.Type())
		if err != nil {
			return err
		}
		fv.Set(rv)
		return nil
	default:
		return &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
}

// DelAttr is vm.DelAttrHook.
func (e *Evaluator) DelAttr(obj values.Value, name string) error {
	inst, ok := obj.(*values.ScriptInstance)
	if !ok {
		return &values.AttributeError{TypeName: obj.Type(), Attr: name}
	}
	if _, ok := inst.Dict[name]; !ok {
		return &values.AttributeError{TypeName: inst.Class.Name, Attr: name}
	}
	delete(inst.Dict, name)
	return nil
}

// BoundMethod is vm.BoundMethodHook: resolves `obj.method` used in caller
// position (WasCallerFunc) for a receiver other than a ScriptInstance.
func (e *Evaluator) BoundMethod(obj values.Value, name string) (values.Value, error) {
	return e.GetAttr(obj, name)
}
