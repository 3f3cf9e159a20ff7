package numeric

import "testing"

func TestFloorDivModInvariant(t *testing.T) {
	pairs := [][2]int64{
		{7, 3}, {-7, 3}, {7, -3}, {-7, -3},
		{1, 7}, {-1, 7}, {0, 5}, {100, 9},
	}
	for _, p := range pairs {
		a := Number{Kind: Int, Int64: p[0]}
		b := Number{Kind: Int, Int64: p[1]}
		q, err := FloorDiv(a, b)
		if err != nil {
			t.Fatalf("FloorDiv(%d,%d): %v", p[0], p[1], err)
		}
		r, err := Mod(a, b)
		if err != nil {
			t.Fatalf("Mod(%d,%d): %v", p[0], p[1], err)
		}
		if got := q.Int64*p[1] + r.Int64; got != p[0] {
			t.Errorf("(%d//%d)*%d+(%d%%%d) = %d, want %d", p[0], p[1], p[1], p[0], p[1], got, p[0])
		}
		if r.Int64 != 0 {
			sign := func(v int64) int {
				if v < 0 {
					return -1
				}
				return 1
			}
			if sign(r.Int64) != sign(p[1]) {
				t.Errorf("sign(%d mod %d) = %d, want sign(%d)", p[0], p[1], r.Int64, p[1])
			}
		}
	}
}

func TestDivideByZero(t *testing.T) {
	a := Number{Kind: Int, Int64: 1}
	z := Number{Kind: Int, Int64: 0}
	if _, err := FloorDiv(a, z); err == nil {
		t.Fatal("expected DivideByZero")
	}
	if _, err := Mod(a, z); err == nil {
		t.Fatal("expected DivideByZero")
	}
	if _, err := TrueDiv(a, z); err == nil {
		t.Fatal("expected DivideByZero")
	}
}

func TestTrueDivAlwaysDouble(t *testing.T) {
	a := Number{Kind: Int, Int64: 7}
	b := Number{Kind: Int, Int64: 2}
	got, err := TrueDiv(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != Double {
		t.Errorf("TrueDiv kind = %v, want Double", got.Kind)
	}
	if got.Float64 != 3.5 {
		t.Errorf("TrueDiv = %v, want 3.5", got.Float64)
	}
}

func TestWidening(t *testing.T) {
	a := Number{Kind: Int, Int64: 3}
	b := Number{Kind: Double, Float64: 1.5}
	sum := Add(a, b)
	if sum.Kind != Double {
		t.Errorf("Add kind = %v, want Double", sum.Kind)
	}
	if sum.Float64 != 4.5 {
		t.Errorf("Add = %v, want 4.5", sum.Float64)
	}
}

func TestShiftWidensPast32Bits(t *testing.T) {
	a := Number{Kind: Int, Int64: 1}
	shift := Number{Kind: Int, Int64: 40}
	got := ShiftLeft(a, shift)
	if got.Kind != Long {
		t.Errorf("ShiftLeft kind = %v, want Long once it overflows 32 bits", got.Kind)
	}
}

func TestCompareCrossKind(t *testing.T) {
	a := Number{Kind: Int, Int64: 2}
	b := Number{Kind: Double, Float64: 2.0}
	if Compare(a, b) != 0 {
		t.Errorf("Compare(2, 2.0) != 0")
	}
}
