package values

import "testing"

func TestApplyBinaryArithmetic(t *testing.T) {
	v, err := ApplyBinary("+", NewInt(2), NewInt(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(*IntegerValue); !ok || i.Num.Int64 != 5 {
		t.Fatalf("expected 5, got %v", v)
	}
}

func TestApplyBinaryFloorDivByZero(t *testing.T) {
	_, err := ApplyBinary("//", NewInt(1), NewInt(0))
	if err == nil {
		t.Fatal("expected zero division error")
	}
	if _, ok := err.(*ZeroDivisionError); !ok {
		t.Fatalf("expected *ZeroDivisionError, got %T", err)
	}
}

func TestApplyBinaryStringConcat(t *testing.T) {
	v, err := ApplyBinary("+", NewString("foo"), NewString("bar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(*StringValue); !ok || s.Value != "foobar" {
		t.Fatalf("expected 'foobar', got %v", v)
	}
}

func TestApplyBinaryStringRepeat(t *testing.T) {
	v, err := ApplyBinary("*", NewString("ab"), NewInt(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(*StringValue); !ok || s.Value != "ababab" {
		t.Fatalf("expected 'ababab', got %v", v)
	}
}

func TestApplyBinaryListConcat(t *testing.T) {
	a := &ListValue{Elements: []Value{NewInt(1)}}
	b := &ListValue{Elements: []Value{NewInt(2)}}
	v, err := ApplyBinary("+", a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := v.(*ListValue)
	if !ok || len(l.Elements) != 2 {
		t.Fatalf("expected 2-element list, got %v", v)
	}
}

func TestApplyBinarySetAlgebra(t *testing.T) {
	a := NewSet([]Value{NewInt(1), NewInt(2)})
	b := NewSet([]Value{NewInt(2), NewInt(3)})
	v, err := ApplyBinary("|", a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := v.(*SetValue)
	if !ok || s.Len() != 3 {
		t.Fatalf("expected 3-element union, got %v", v)
	}
}

func TestApplyUnaryNegateAndNot(t *testing.T) {
	v, err := ApplyUnary("-", NewInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(*IntegerValue); !ok || i.Num.Int64 != -5 {
		t.Fatalf("expected -5, got %v", v)
	}
	v, err = ApplyUnary("not", True)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != False {
		t.Fatalf("expected False, got %v", v)
	}
}

func TestApplyCompareOrdering(t *testing.T) {
	v, err := ApplyCompare("<", NewInt(1), NewInt(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != True {
		t.Fatalf("expected True, got %v", v)
	}
}

func TestApplyCompareIdentityWithNone(t *testing.T) {
	v, err := ApplyCompare("is", None, None)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != True {
		t.Fatalf("expected True, got %v", v)
	}
}

func TestApplyCompareIn(t *testing.T) {
	l := &ListValue{Elements: []Value{NewInt(1), NewInt(2)}}
	v, err := ApplyCompare("in", NewInt(2), l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != True {
		t.Fatalf("expected True, got %v", v)
	}
}
