// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

import (
	"math"
	"testing"
)

func TestEqualSameKind(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"no value", NoValue, NoValue, true},
		{"undefined", Undefined, Undefined, true},
		{"null", Null, Null, true},
		{"undefined vs null", Undefined, Null, false},
		{"no value vs undefined", NoValue, Undefined, false},
		{"bool equal", Bool(true), Bool(true), true},
		{"bool differ", Bool(true), Bool(false), false},
		{"float equal", Float(2), Float(2), true},
		{"float differ", Float(2), Float(2.5), false},
		{"float NaN", Float(math.NaN()), Float(math.NaN()), false},
		{"float signed zero", Float(0), Float(math.Copysign(0, -1)), true},
		{"int equal", Int(-3), Int(-3), true},
		{"uint equal", Uint(7), Uint(7), true},
		{"float vs int", Float(1), Int(1), false},
		{"int vs uint", Int(1), Uint(1), false},
		{"date equal", Date(1741651200000), Date(1741651200000), true},
		{"date vs float", Date(1), Float(1), false},
		{"string equal", String("a"), String("a"), true},
		{"string differ", String("a"), String("b"), false},
		{"array equal", Array(Float(1), Float(2)), Array(Float(1), Float(2)), true},
		{"array order matters", Array(Float(1), Float(2)), Array(Float(2), Float(1)), false},
		{"array prefix", Array(Float(1)), Array(Float(1), Float(2)), false},
		{"array longer", Array(Float(1), Float(2)), Array(Float(1)), false},
		{"empty arrays", Array(), Array(), true},
		{"empty array vs empty object", Array(), ObjectOf(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%#v.Equal(%#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%#v.Equal(%#v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestObjectEqualityIgnoresInsertionOrder(t *testing.T) {
	a := ObjectOf(String("x"), Float(1), String("y"), String("two"))
	b := ObjectOf(String("y"), String("two"), String("x"), Float(1))

	if !a.Equal(b) {
		t.Fatalf("objects with same entries in different order should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal objects hash differently: %x vs %x", a.Hash(), b.Hash())
	}
}

func TestObjectEqualityKeySets(t *testing.T) {
	base := ObjectOf(String("a"), Float(1), String("b"), Float(2))

	tests := []struct {
		name  string
		other Value
		want  bool
	}{
		{"identical", ObjectOf(String("a"), Float(1), String("b"), Float(2)), true},
		{"missing key", ObjectOf(String("a"), Float(1)), false},
		{"extra key", ObjectOf(String("a"), Float(1), String("b"), Float(2), String("c"), Float(3)), false},
		{"same keys different value", ObjectOf(String("a"), Float(1), String("b"), Float(3)), false},
		{"different key same size", ObjectOf(String("a"), Float(1), String("z"), Float(2)), false},
		{"nested value kind differs", ObjectOf(String("a"), Float(1), String("b"), Int(2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	pairs := [][2]Value{
		{Float(2), Float(2)},
		{Float(0), Float(math.Copysign(0, -1))},
		{Date(1741651200000), Date(1741651200000)},
		{String("hello"), String("hello")},
		{Array(Float(1), String("x")), Array(Float(1), String("x"))},
		{
			ObjectOf(String("k"), Array(Float(1)), String("j"), Null),
			ObjectOf(String("j"), Null, String("k"), Array(Float(1))),
		},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			t.Fatalf("%#v and %#v should be equal", p[0], p[1])
		}
		if p[0].Hash() != p[1].Hash() {
			t.Errorf("Hash(%#v) != Hash(%#v)", p[0], p[1])
		}
	}
}

func TestHashDistinguishesVariants(t *testing.T) {
	values := []Value{
		NoValue, Undefined, Null, Bool(true), Bool(false),
		Float(1), Int(1), Uint(1), Date(1), String("1"),
		Array(Float(1)), ObjectOf(String("1"), Float(1)),
	}
	seen := make(map[uint64]Value)
	for _, v := range values {
		h := v.Hash()
		if prev, ok := seen[h]; ok {
			t.Errorf("hash collision between %#v and %#v", prev, v)
		}
		seen[h] = v
	}
}

func TestHashFullFloatPrecision(t *testing.T) {
	if Float(1.25).Hash() == Float(1.75).Hash() {
		t.Errorf("floats differing after the decimal point should hash differently")
	}
	if Date(1000.5).Hash() == Date(1000).Hash() {
		t.Errorf("dates differing after the decimal point should hash differently")
	}
}

func TestHashStringBoundaries(t *testing.T) {
	a := Array(String("ab"), String("c"))
	b := Array(String("a"), String("bc"))
	if a.Hash() == b.Hash() {
		t.Errorf("string element boundaries should affect the hash")
	}
}

func TestCompareIsDegenerate(t *testing.T) {
	if got := Float(1).Compare(Float(2)); got != 0 {
		t.Errorf("Compare = %d, want 0", got)
	}
	if got := String("b").Compare(Null); got != 0 {
		t.Errorf("Compare = %d, want 0", got)
	}
}

func TestAccessors(t *testing.T) {
	if f, ok := Float(2).AsFloat(); !ok || f != 2 {
		t.Errorf("AsFloat = %v, %v", f, ok)
	}
	if _, ok := Float(2).AsString(); ok {
		t.Errorf("AsString on Float should report false")
	}
	if i, ok := Int(-5).AsInt(); !ok || i != -5 {
		t.Errorf("AsInt = %v, %v", i, ok)
	}
	if u, ok := Uint(math.MaxUint32).AsUint(); !ok || u != math.MaxUint32 {
		t.Errorf("AsUint = %v, %v", u, ok)
	}
	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Errorf("AsBool = %v, %v", b, ok)
	}
	if n, ok := Int(-5).Number(); !ok || n != -5 {
		t.Errorf("Number = %v, %v", n, ok)
	}
	if !(Value{}).IsNoValue() {
		t.Errorf("zero Value should be NoValue")
	}
	if tm, ok := Date(1741651200000).Time(); !ok || tm.Year() != 2025 || tm.Month() != 3 || tm.Day() != 11 {
		t.Errorf("Time = %v, %v", tm, ok)
	}
	if _, ok := Date(math.NaN()).Time(); ok {
		t.Errorf("invalid date should not convert to time")
	}
}

func TestObjectContainer(t *testing.T) {
	o := NewObject()
	o.SetString("b", Float(1))
	o.SetString("a", Float(2))
	o.SetString("b", Float(3))

	if o.Len() != 2 {
		t.Fatalf("Len = %d, want 2", o.Len())
	}
	keys := o.Keys()
	if !keys[0].Equal(String("b")) || !keys[1].Equal(String("a")) {
		t.Errorf("Keys = %#v, want insertion order [b a]", keys)
	}
	if v, ok := o.GetString("b"); !ok || !v.Equal(Float(3)) {
		t.Errorf("GetString(b) = %#v, %v", v, ok)
	}
	if !o.Delete(String("b")) {
		t.Fatalf("Delete(b) reported missing key")
	}
	if o.Has(String("b")) {
		t.Errorf("b still present after Delete")
	}
	if v, ok := o.GetString("a"); !ok || !v.Equal(Float(2)) {
		t.Errorf("GetString(a) after delete = %#v, %v", v, ok)
	}
	if o.Delete(String("missing")) {
		t.Errorf("Delete of missing key reported true")
	}

	var visited int
	o.Range(func(k, v Value) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Range visited %d entries after early stop, want 1", visited)
	}
}

func TestObjectOfOddArgsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for odd argument count")
		}
	}()
	ObjectOf(String("a"))
}
