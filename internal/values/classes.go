package values

import (
	"fmt"
	"strings"
)

// DataclassField is one declared field of a @dataclass-decorated class:
// a name with an optional default expression value, evaluated once at
// class-definition time (spec.md §4.10).
type DataclassField struct {
	Name    string
	Default Value // nil if the field has no default
}

// ClassLevelMethod is a method callable on the class itself rather than
// an instance — either @classmethod (receives the class) or @staticmethod
// (receives neither self nor class). spec.md §3.1 groups both under
// "class-level methods (name -> {is_classmethod, callable})"; staticmethod
// is represented here with IsClassMethod=false.
type ClassLevelMethod struct {
	IsClassMethod bool
	Callable      *BoundFunction
}

// ScriptClass is a user-defined Python class (spec.md §3.1).
type ScriptClass struct {
	Name            string
	Bases           []*ScriptClass
	Constructor     *BoundFunction // __init__, possibly synthesized for a dataclass
	Frozen          bool
	InstanceMethods map[string]*BoundFunction
	ClassMethods    map[string]ClassLevelMethod
	HashOverride    *BoundFunction // __hash__, if declared
	StrOverride     *BoundFunction // __str__, if declared
	IsDataclass     bool
	DataclassFields []DataclassField
	ClassVars       map[string]Value // class-level (non-instance) attributes

	// NativeNew, when set, constructs an instance without going through a
	// compiled/evaluated __init__ body — used by internal/builtins for the
	// exception-class hierarchy, which has no script source to run.
	NativeNew func(class *ScriptClass, args []Value) (*ScriptInstance, error)

	// NativeStr, when set, overrides String() for instances of this class,
	// ahead of the dataclass/generic fallback — same rationale as NativeNew.
	NativeStr func(*ScriptInstance) string
}

func (c *ScriptClass) Type() string   { return "type" }
func (c *ScriptClass) String() string { return fmt.Sprintf("<class '%s'>", c.Name) }

// FindInstanceMethod looks up an instance method by name, walking the
// base-class chain (Python's MRO simplified to depth-first, left-to-right,
// adequate for the single/multiple-inheritance surface this spec covers).
func (c *ScriptClass) FindInstanceMethod(name string) (*BoundFunction, *ScriptClass, bool) {
	if m, ok := c.InstanceMethods[name]; ok {
		return m, c, true
	}
	for _, base := range c.Bases {
		if m, owner, ok := base.FindInstanceMethod(name); ok {
			return m, owner, true
		}
	}
	return nil, nil, false
}

// FindClassMethod looks up a classmethod/staticmethod by name, walking bases.
func (c *ScriptClass) FindClassMethod(name string) (ClassLevelMethod, bool) {
	if m, ok := c.ClassMethods[name]; ok {
		return m, true
	}
	for _, base := range c.Bases {
		if m, ok := base.FindClassMethod(name); ok {
			return m, true
		}
	}
	return ClassLevelMethod{}, false
}

// IsSubclassOf reports whether c is other or transitively derives from it,
// backing isinstance()/issubclass().
func (c *ScriptClass) IsSubclassOf(other *ScriptClass) bool {
	if c == other {
		return true
	}
	for _, base := range c.Bases {
		if base.IsSubclassOf(other) {
			return true
		}
	}
	return false
}

// ScriptInstance is an instance of a ScriptClass (spec.md §3.1).
type ScriptInstance struct {
	Class *ScriptClass
	Dict  map[string]Value // the instance's __dict__
}

func NewScriptInstance(class *ScriptClass) *ScriptInstance {
	return &ScriptInstance{Class: class, Dict: make(map[string]Value)}
}

func (i *ScriptInstance) Type() string { return i.Class.Name }

func (i *ScriptInstance) String() string {
	if i.Class.NativeStr != nil {
		return i.Class.NativeStr(i)
	}
	if i.Class.IsDataclass {
		return dataclassStr(i)
	}
	return fmt.Sprintf("<%s object>", i.Class.Name)
}

// GetAttr reads an instance attribute, falling back to class variables.
func (i *ScriptInstance) GetAttr(name string) (Value, bool) {
	if v, ok := i.Dict[name]; ok {
		return v, true
	}
	if v, ok := i.Class.ClassVars[name]; ok {
		return v, true
	}
	return nil, false
}

// SetAttr writes an instance attribute, failing with FrozenInstanceError
// if the class is frozen (spec.md §3.1, §4.10).
func (i *ScriptInstance) SetAttr(name string, v Value) error {
	if i.Class.Frozen {
		return &FrozenInstanceError{ClassName: i.Class.Name, Field: name}
	}
	i.Dict[name] = v
	return nil
}

// dataclassStr formats "Name(f1=v1, f2=v2, ...)" (spec.md §3.1).
func dataclassStr(i *ScriptInstance) string {
	var b strings.Builder
	b.WriteString(i.Class.Name)
	b.WriteByte('(')
	for idx, f := range i.Class.DataclassFields {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		if v, ok := i.Dict[f.Name]; ok {
			b.WriteString(ReprString(v))
		} else {
			b.WriteString("None")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// DataclassHash hashes the tuple of field values, backing a dataclass's
// synthetic __hash__ (spec.md §3.1).
func DataclassHash(i *ScriptInstance) int64 {
	var h int64 = 0x345678
	for _, f := range i.Class.DataclassFields {
		v := i.Dict[f.Name]
		h = h*1000003 ^ simpleHash(v)
	}
	return h
}

func simpleHash(v Value) int64 {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case *IntegerValue:
		return t.Num.Int64
	case *FloatValue:
		return int64(t.Num.Float64 * 1000003)
	case *StringValue:
		var h int64 = 5381
		for _, r := range t.Value {
			h = h*33 + int64(r)
		}
		return h
	case BoolValue:
		return t.AsInt64()
	case NoneValue:
		return 0
	case *TupleValue:
		var h int64 = 0x1234
		for _, e := range t.Elements {
			h = h*1000003 ^ simpleHash(e)
		}
		return h
	case *ScriptInstance:
		if t.Class.IsDataclass {
			return DataclassHash(t)
		}
	}
	return 0
}

// DataclassEqual implements frozen-dataclass equality via hash equality
// (spec.md §3.1: "Frozen dataclasses additionally implement equality via
// hash equality").
func DataclassEqual(a, b *ScriptInstance) bool {
	if a.Class != b.Class || !a.Class.IsDataclass || !a.Class.Frozen {
		return false
	}
	return DataclassHash(a) == DataclassHash(b)
}
