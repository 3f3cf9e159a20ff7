package values

import "strings"

// StringValue is a Python str: immutable, UTF-8 backed.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string   { return "str" }
func (s *StringValue) String() string { return s.Value }

func (s *StringValue) Len() int { return len([]rune(s.Value)) }

// GetItem implements str indexing and, via a SliceValue index, slicing.
func (s *StringValue) GetItem(index Value) (Value, error) {
	runes := []rune(s.Value)
	switch idx := index.(type) {
	case *IntegerValue:
		i, err := ResolveIndex(idx.Num.Int64, len(runes))
		if err != nil {
			return nil, err
		}
		return &StringValue{Value: string(runes[i])}, nil
	case *SliceValue:
		lo, hi, err := idx.Resolve(len(runes))
		if err != nil {
			return nil, err
		}
		return &StringValue{Value: string(runes[lo:hi])}, nil
	default:
		return nil, &TypeError{Message: "string indices must be integers or slices"}
	}
}

func (s *StringValue) Contains(item Value) (bool, error) {
	sub, ok := item.(*StringValue)
	if !ok {
		return false, &TypeError{Message: "'in <string>' requires string as left operand"}
	}
	return strings.Contains(s.Value, sub.Value), nil
}

// NewString is a convenience constructor.
func NewString(s string) *StringValue { return &StringValue{Value: s} }

// FormattedStringValue is a StringValue under a distinct Go type. Len,
// GetItem, Contains and String are StringValue's own, and ReprString and
// DebugJSON render it like a StringValue, but the operations that switch
// on *StringValue (Equal, CompareValues, `+`, dict keys, Truthy) treat it
// as a different kind of value. The evaluator returns an f-string's
// (JoinedStr's) result as a plain *StringValue, so f-strings and plain
// strings are interchangeable in scripts.
type FormattedStringValue struct {
	StringValue
}

func (f *FormattedStringValue) Type() string { return "str" }

// NewFormattedString wraps an already-rendered f-string result.
func NewFormattedString(rendered string) *FormattedStringValue {
	return &FormattedStringValue{StringValue: StringValue{Value: rendered}}
}
