package values

import (
	"fmt"
	"sort"
	"strings"
)

// ListValue is a Python list: ordered, mutable sequence.
type ListValue struct {
	Elements []Value
}

func NewList(elems []Value) *ListValue { return &ListValue{Elements: elems} }

func (l *ListValue) Type() string { return "list" }

func (l *ListValue) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = ReprString(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *ListValue) Len() int { return len(l.Elements) }

func (l *ListValue) GetItem(index Value) (Value, error) {
	switch idx := index.(type) {
	case *IntegerValue:
		i, err := ResolveIndex(idx.Num.Int64, len(l.Elements))
		if err != nil {
			return nil, err
		}
		return l.Elements[i], nil
	case *SliceValue:
		lo, hi, err := idx.Resolve(len(l.Elements))
		if err != nil {
			return nil, err
		}
		out := make([]Value, hi-lo)
		copy(out, l.Elements[lo:hi])
		return &ListValue{Elements: out}, nil
	default:
		return nil, &TypeError{Message: "list indices must be integers or slices"}
	}
}

func (l *ListValue) SetItem(index, val Value) error {
	switch idx := index.(type) {
	case *IntegerValue:
		i, err := ResolveIndex(idx.Num.Int64, len(l.Elements))
		if err != nil {
			return err
		}
		l.Elements[i] = val
		return nil
	case *SliceValue:
		lo, hi, err := idx.Resolve(len(l.Elements))
		if err != nil {
			return err
		}
		repl, ok := val.(*ListValue)
		if !ok {
			return &TypeError{Message: "can only assign an iterable to a slice"}
		}
		tail := append([]Value{}, l.Elements[hi:]...)
		l.Elements = append(l.Elements[:lo], append(append([]Value{}, repl.Elements...), tail...)...)
		return nil
	default:
		return &TypeError{Message: "list indices must be integers or slices"}
	}
}

func (l *ListValue) DelItem(index Value) error {
	idx, ok := index.(*IntegerValue)
	if !ok {
		return &TypeError{Message: "list indices must be integers"}
	}
	i, err := ResolveIndex(idx.Num.Int64, len(l.Elements))
	if err != nil {
		return err
	}
	l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
	return nil
}

func (l *ListValue) Contains(item Value) (bool, error) {
	for _, e := range l.Elements {
		eq, err := Equal(e, item)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

// IAdd mutates l in place by appending other's elements, implementing
// list's __iadd__ (spec.md §3.1: "__iadd__ mutates in place").
func (l *ListValue) IAdd(other *ListValue) {
	l.Elements = append(l.Elements, other.Elements...)
}

// Add implements list's __add__: yields a fresh list (spec.md §3.1).
func (l *ListValue) Add(other *ListValue) *ListValue {
	out := make([]Value, 0, len(l.Elements)+len(other.Elements))
	out = append(out, l.Elements...)
	out = append(out, other.Elements...)
	return &ListValue{Elements: out}
}

func (l *ListValue) Iterate() Iterator { return &sliceIterator{elems: l.Elements} }

// TupleValue is a Python tuple: ordered, externally immutable.
type TupleValue struct {
	Elements []Value
}

func (t *TupleValue) Type() string { return "tuple" }

func (t *TupleValue) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = ReprString(e)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *TupleValue) Len() int { return len(t.Elements) }

func (t *TupleValue) GetItem(index Value) (Value, error) {
	switch idx := index.(type) {
	case *IntegerValue:
		i, err := ResolveIndex(idx.Num.Int64, len(t.Elements))
		if err != nil {
			return nil, err
		}
		return t.Elements[i], nil
	case *SliceValue:
		lo, hi, err := idx.Resolve(len(t.Elements))
		if err != nil {
			return nil, err
		}
		out := make([]Value, hi-lo)
		copy(out, t.Elements[lo:hi])
		return &TupleValue{Elements: out}, nil
	default:
		return nil, &TypeError{Message: "tuple indices must be integers or slices"}
	}
}

func (t *TupleValue) Iterate() Iterator { return &sliceIterator{elems: t.Elements} }

// Compare implements tuple's lexicographic compare (spec.md §3.1).
func (t *TupleValue) Compare(other *TupleValue) (int, error) {
	for i := 0; i < len(t.Elements) && i < len(other.Elements); i++ {
		c, err := CompareValues(t.Elements[i], other.Elements[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return len(t.Elements) - len(other.Elements), nil
}

// SliceValue is the triple (lower, upper, step); nil fields mean "not
// given" (spec.md §3.1).
type SliceValue struct {
	Lower, Upper, Step *int64
}

// Resolve resolves the slice against a length L: negative bounds add L,
// missing lower -> 0, missing upper -> L, and a step other than 1 fails
// explicitly (spec.md §3.1, open question (b)).
func (s *SliceValue) Resolve(length int) (lo, hi int, err error) {
	if s.Step != nil && *s.Step != 1 {
		return 0, 0, &TypeError{Message: "slice step other than 1 is not supported"}
	}
	lo64 := int64(0)
	if s.Lower != nil {
		lo64 = *s.Lower
		if lo64 < 0 {
			lo64 += int64(length)
		}
	}
	hi64 := int64(length)
	if s.Upper != nil {
		hi64 = *s.Upper
		if hi64 < 0 {
			hi64 += int64(length)
		}
	}
	if lo64 < 0 {
		lo64 = 0
	}
	if hi64 > int64(length) {
		hi64 = int64(length)
	}
	if hi64 < lo64 {
		hi64 = lo64
	}
	return int(lo64), int(hi64), nil
}

func (s *SliceValue) Type() string { return "slice" }

func (s *SliceValue) String() string {
	fmtOpt := func(p *int64) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%d", *p)
	}
	return fmt.Sprintf("slice(%s, %s, %s)", fmtOpt(s.Lower), fmtOpt(s.Upper), fmtOpt(s.Step))
}

// sliceIterator is a single-pass iterator over a Go slice snapshot, used
// by list/tuple/set iteration.
type sliceIterator struct {
	elems []Value
	pos   int
}

func (it *sliceIterator) HasNext() bool { return it.pos < len(it.elems) }

func (it *sliceIterator) Next() (Value, error) {
	if !it.HasNext() {
		return nil, StopIteration{}
	}
	v := it.elems[it.pos]
	it.pos++
	return v, nil
}

// RangeIterValue is range()'s single-pass integer producer (spec.md §3.1:
// "finite; not restartable").
type RangeIterValue struct {
	Start, Stop, Step int64
	cur               int64
	started           bool
}

func NewRangeIter(start, stop, step int64) *RangeIterValue {
	return &RangeIterValue{Start: start, Stop: stop, Step: step, cur: start}
}

func (r *RangeIterValue) Type() string { return "range_iterator" }
func (r *RangeIterValue) String() string {
	return fmt.Sprintf("range(%d, %d, %d)", r.Start, r.Stop, r.Step)
}

func (r *RangeIterValue) HasNext() bool {
	if r.Step > 0 {
		return r.cur < r.Stop
	}
	return r.cur > r.Stop
}

func (r *RangeIterValue) Next() (Value, error) {
	if !r.HasNext() {
		return nil, StopIteration{}
	}
	v := r.cur
	r.cur += r.Step
	return NewInt(v), nil
}

func (r *RangeIterValue) Iterate() Iterator { return r }

// SetValue is a Python set: unordered, mutable. Iteration order is
// unspecified (spec.md §3.1); the backing slice preserves insertion order
// only as an implementation artifact, not a guarantee.
type SetValue struct {
	elements []Value
}

func NewSet(elems []Value) *SetValue {
	s := &SetValue{}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (s *SetValue) Type() string { return "set" }

func (s *SetValue) String() string {
	if len(s.elements) == 0 {
		return "set()"
	}
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = ReprString(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *SetValue) Len() int { return len(s.elements) }

func (s *SetValue) Elements() []Value { return s.elements }

func (s *SetValue) Contains(item Value) (bool, error) {
	for _, e := range s.elements {
		eq, err := Equal(e, item)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

// Add inserts item if not already present; returns true if it was added.
func (s *SetValue) Add(item Value) bool {
	if ok, _ := s.Contains(item); ok {
		return false
	}
	s.elements = append(s.elements, item)
	return true
}

// Remove deletes item; returns an error (LookupErr) if absent, matching
// set.remove() (unlike discard(), which never errors).
func (s *SetValue) Remove(item Value) error {
	for i, e := range s.elements {
		eq, err := Equal(e, item)
		if err != nil {
			return err
		}
		if eq {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return nil
		}
	}
	return &LookupErr{Message: "element not found in set"}
}

// Discard deletes item if present; never errors.
func (s *SetValue) Discard(item Value) {
	_ = s.Remove(item)
}

func (s *SetValue) Iterate() Iterator { return &sliceIterator{elems: s.elements} }

// Union, Intersection, Difference, SymmetricDifference implement the
// set-algebra operations and their in-place variants (spec.md §3.1).
func (s *SetValue) Union(other *SetValue) *SetValue {
	out := NewSet(append([]Value{}, s.elements...))
	for _, e := range other.elements {
		out.Add(e)
	}
	return out
}

func (s *SetValue) Intersection(other *SetValue) *SetValue {
	out := &SetValue{}
	for _, e := range s.elements {
		if ok, _ := other.Contains(e); ok {
			out.Add(e)
		}
	}
	return out
}

func (s *SetValue) Difference(other *SetValue) *SetValue {
	out := &SetValue{}
	for _, e := range s.elements {
		if ok, _ := other.Contains(e); !ok {
			out.Add(e)
		}
	}
	return out
}

func (s *SetValue) SymmetricDifference(other *SetValue) *SetValue {
	return s.Difference(other).Union(other.Difference(s))
}

func (s *SetValue) IsDisjoint(other *SetValue) bool {
	for _, e := range s.elements {
		if ok, _ := other.Contains(e); ok {
			return false
		}
	}
	return true
}

func (s *SetValue) IsSubset(other *SetValue) bool {
	for _, e := range s.elements {
		if ok, _ := other.Contains(e); !ok {
			return false
		}
	}
	return true
}

func (s *SetValue) IsSuperset(other *SetValue) bool {
	return other.IsSubset(s)
}

func (s *SetValue) IUnion(other *SetValue)     { *s = *s.Union(other) }
func (s *SetValue) IIntersect(other *SetValue) { *s = *s.Intersection(other) }
func (s *SetValue) IDifference(other *SetValue) { *s = *s.Difference(other) }

// DictEntry is one key/value pair; Key is retained as a Value (not just a
// hash key string) so keys()/items() can reproduce the original key object.
type DictEntry struct {
	Key   Value
	Value Value
}

// DictValue is a Python dict. Insertion order is semantically irrelevant
// (spec.md §3.1) but is preserved as an implementation artifact via the
// order slice, giving deterministic (if unspecified-by-spec) iteration —
// useful for reproducible test output.
type DictValue struct {
	entries map[string]DictEntry
	order   []string
}

func NewDict() *DictValue {
	return &DictValue{entries: make(map[string]DictEntry)}
}

func (d *DictValue) Type() string { return "dict" }

func (d *DictValue) String() string {
	parts := make([]string, 0, len(d.order))
	for _, k := range d.order {
		e := d.entries[k]
		parts = append(parts, fmt.Sprintf("%s: %s", ReprString(e.Key), ReprString(e.Value)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *DictValue) Len() int { return len(d.order) }

// hashKey builds a canonical string key for a Value. spec.md §3.1 notes
// "string keys are strings, not wrappers" — this extends that principle
// to every hashable key kind rather than introducing a boxed-key wrapper
// type.
func hashKey(v Value) (string, error) {
	switch t := v.(type) {
	case *StringValue:
		return "s:" + t.Value, nil
	case *IntegerValue:
		return fmt.Sprintf("i:%d", t.Num.Int64), nil
	case *FloatValue:
		return fmt.Sprintf("f:%v", t.Num.Float64), nil
	case BoolValue:
		return fmt.Sprintf("i:%d", t.AsInt64()), nil
	case *TupleValue:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			k, err := hashKey(e)
			if err != nil {
				return "", err
			}
			parts[i] = k
		}
		return "t:(" + strings.Join(parts, ",") + ")", nil
	case NoneValue:
		return "n:None", nil
	default:
		return "", &TypeError{Message: fmt.Sprintf("unhashable type: '%s'", v.Type())}
	}
}

func (d *DictValue) GetItem(index Value) (Value, error) {
	k, err := hashKey(index)
	if err != nil {
		return nil, err
	}
	e, ok := d.entries[k]
	if !ok {
		return nil, &LookupErr{Message: fmt.Sprintf("key %s not found", ReprString(index))}
	}
	return e.Value, nil
}

func (d *DictValue) SetItem(index, val Value) error {
	k, err := hashKey(index)
	if err != nil {
		return err
	}
	if _, exists := d.entries[k]; !exists {
		d.order = append(d.order, k)
	}
	d.entries[k] = DictEntry{Key: index, Value: val}
	return nil
}

func (d *DictValue) DelItem(index Value) error {
	k, err := hashKey(index)
	if err != nil {
		return err
	}
	if _, ok := d.entries[k]; !ok {
		return &LookupErr{Message: fmt.Sprintf("key %s not found", ReprString(index))}
	}
	delete(d.entries, k)
	for i, o := range d.order {
		if o == k {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

func (d *DictValue) Contains(item Value) (bool, error) {
	k, err := hashKey(item)
	if err != nil {
		return false, err
	}
	_, ok := d.entries[k]
	return ok, nil
}

// Get implements dict.get(key, default): returns default (None if
// omitted) rather than failing on a missing key (spec.md §3.1).
func (d *DictValue) Get(key Value, def Value) Value {
	k, err := hashKey(key)
	if err != nil {
		return def
	}
	if e, ok := d.entries[k]; ok {
		return e.Value
	}
	return def
}

// Keys, Values, Items materialize eager lists — Pyjinn has no lazy
// dict-view protocol (SPEC_FULL.md "Supplemented features").
func (d *DictValue) Keys() []Value {
	out := make([]Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.entries[k].Key)
	}
	return out
}

func (d *DictValue) Values() []Value {
	out := make([]Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.entries[k].Value)
	}
	return out
}

func (d *DictValue) Items() []*TupleValue {
	out := make([]*TupleValue, 0, len(d.order))
	for _, k := range d.order {
		e := d.entries[k]
		out = append(out, &TupleValue{Elements: []Value{e.Key, e.Value}})
	}
	return out
}

func (d *DictValue) Iterate() Iterator { return &sliceIterator{elems: d.Keys()} }

// KwArgsBag carries a call's keyword arguments as a name->Value mapping,
// used for "**" spread and keyword binding (spec.md §2 value list: "keyword
// args bag").
type KwArgsBag struct {
	Values map[string]Value
	Order  []string
}

func NewKwArgsBag() *KwArgsBag {
	return &KwArgsBag{Values: make(map[string]Value)}
}

func (k *KwArgsBag) Set(name string, v Value) {
	if _, exists := k.Values[name]; !exists {
		k.Order = append(k.Order, name)
	}
	k.Values[name] = v
}

func (k *KwArgsBag) Type() string { return "kwargs" }

func (k *KwArgsBag) String() string {
	parts := make([]string, 0, len(k.Order))
	for _, name := range k.Order {
		parts = append(parts, fmt.Sprintf("%s=%s", name, ReprString(k.Values[name])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// sortedKeysForDiagnostics returns a sorted copy of keys, leaving keys
// itself unchanged.
func sortedKeysForDiagnostics(keys []string) []string {
	out := append([]string{}, keys...)
	sort.Strings(out)
	return out
}
