package evaluator

import "github.com/maxuser0/pyjinn-sub000/internal/values"

// The six methods below satisfy values.DunderHook, letting ScriptInstance
// values participate in equality/ordering/len/contains/str/hash without
// the values package importing this one (see values/ops.go).

func (e *Evaluator) TryEq(inst *values.ScriptInstance, other values.Value) (bool, bool, error) {
	bf, _, ok := inst.Class.FindInstanceMethod("__eq__")
	if !ok {
		return false, false, nil
	}
	result, err := e.invokeBoundFunction(bf.Closure, bf, []values.Value{inst, other}, nil, "", 0)
	if err != nil {
		return false, true, err
	}
	return values.Truthy(result), true, nil
}

func (e *Evaluator) TryCompare(inst *values.ScriptInstance, op string, other values.Value) (bool, bool, error) {
	bf, _, ok := inst.Class.FindInstanceMethod(op)
	if !ok {
		return false, false, nil
	}
	result, err := e.invokeBoundFunction(bf.Closure, bf, []values.Value{inst, other}, nil, "", 0)
	if err != nil {
		return false, true, err
	}
	return values.Truthy(result), true, nil
}

func (e *Evaluator) TryLen(inst *values.ScriptInstance) (int, bool, error) {
	bf, _, ok := inst.Class.FindInstanceMethod("__len__")
	if !ok {
		return 0, false, nil
	}
	result, err := e.invokeBoundFunction(bf.Closure, bf, []values.Value{inst}, nil, "", 0)
	if err != nil {
		return 0, true, err
	}
	n, ok := values.AsNumber(result)
	if !ok {
		return 0, true, &values.TypeError{Message: "__len__ should return an integer"}
	}
	return int(n.Int64), true, nil
}

func (e *Evaluator) TryContains(inst *values.ScriptInstance, item values.Value) (bool, bool, error) {
	bf, _, ok := inst.Class.FindInstanceMethod("__contains__")
	if !ok {
		return false, false, nil
	}
	result, err := e.invokeBoundFunction(bf.Closure, bf, []values.Value{inst, item}, nil, "", 0)
	if err != nil {
		return false, true, err
	}
	return values.Truthy(result), true, nil
}

func (e *Evaluator) TryStr(inst *values.ScriptInstance) (string, bool) {
	bf, _, ok := inst.Class.FindInstanceMethod("__str__")
	if !ok {
		return "", false
	}
	result, err := e.invokeBoundFunction(bf.Closure, bf, []values.Value{inst}, nil, "", 0)
	if err != nil || result == nil {
		return "", false
	}
	return result.String(), true
}

func (e *Evaluator) TryHash(inst *values.ScriptInstance) (int64, bool, error) {
	if inst.Class.HashOverride != nil {
		result, err := e.invokeBoundFunction(inst.Class.HashOverride.Closure, inst.Class.HashOverride, []values.Value{inst}, nil, "", 0)
		if err != nil {
			return 0, true, err
		}
		n, ok := values.AsNumber(result)
		if !ok {
			return 0, true, &values.TypeError{Message: "__hash__ should return an integer"}
		}
		return n.Int64, true, nil
	}
	if inst.Class.IsDataclass && inst.Class.Frozen {
		return values.DataclassHash(inst), true, nil
	}
	return 0, false, nil
}
