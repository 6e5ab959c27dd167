// Copyright 2025 Tiramisu Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import (
	"math"
	"testing"
)

func TestSubstituteReplacesVariables(t *testing.T) {
	e := NewBinary(Add,
		NewVar("i", TypeInt64),
		NewBinary(Mul, NewVar("j", TypeInt64), NewConst(TypeInt64, 4)))
	got := Substitute(e, map[string]*Expr{
		"i": NewVar("x", TypeInt64),
		"j": NewConst(TypeInt64, 2),
	})
	if got.String() != "(x + 8)" {
		t.Errorf("result = %s, want (x + 8)", got)
	}
	if e.String() != "(i + (j * 4))" {
		t.Errorf("input mutated: %s", e)
	}
}

func TestSubstituteInsideAccessIndices(t *testing.T) {
	e := NewAccess(TypeFloat32, "A",
		NewVar("i", TypeInt64),
		NewBinary(Sub, NewVar("k", TypeInt64), NewConst(TypeInt64, 1)))
	got := Substitute(e, map[string]*Expr{"k": NewConst(TypeInt64, 3)})
	if got.String() != "A[i, 2]" {
		t.Errorf("result = %s, want A[i, 2]", got)
	}
}

func TestFoldConstantsCases(t *testing.T) {
	cases := []struct {
		name string
		in   *Expr
		want string
	}{
		{"add", NewBinary(Add, NewConst(TypeInt64, 2), NewConst(TypeInt64, 3)), "5"},
		{"nested", NewBinary(Mul, NewBinary(Sub, NewConst(TypeInt32, 10), NewConst(TypeInt32, 4)), NewConst(TypeInt32, 2)), "12"},
		{"div by zero unfolded", NewBinary(Div, NewConst(TypeInt64, 1), NewConst(TypeInt64, 0)), "(1 / 0)"},
		{"neg", NewUnary(Neg, NewConst(TypeInt64, 7)), "-7"},
		{"compare", NewCompare(Lt, NewConst(TypeInt64, 1), NewConst(TypeInt64, 2)), "true"},
		{"cast narrowing fits", NewCast(TypeUInt8, NewConst(TypeInt32, 200)), "200"},
		{"symbolic untouched", NewBinary(Add, NewVar("n", TypeInt64), NewConst(TypeInt64, 1)), "(n + 1)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FoldConstants(c.in); got.String() != c.want {
				t.Errorf("fold(%s) = %s, want %s", c.in, got, c.want)
			}
		})
	}
}

// Folding never widens: results that do not fit the node's type stay
// unfolded.
func TestFoldLeavesOverflowUnfolded(t *testing.T) {
	overflow := NewBinary(Add,
		NewConst(TypeInt64, math.MaxInt64),
		NewConst(TypeInt64, 1))
	if got := FoldConstants(overflow); got.Kind != KindBinary {
		t.Errorf("int64 overflow folded to %s", got)
	}
	narrow := NewCast(TypeUInt8, NewConst(TypeInt32, 300))
	if got := FoldConstants(narrow); got.Kind != KindCast {
		t.Errorf("out-of-range cast folded to %s", got)
	}
	fits := NewBinary(Add, NewConst(TypeUInt8, 200), NewConst(TypeUInt8, 100))
	if got := FoldConstants(fits); got.Kind != KindBinary {
		t.Errorf("uint8 overflow folded to %s", got)
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := NewBinary(Add, NewVar("i", TypeInt64), NewConst(TypeInt64, 1))
	b := NewBinary(Add, NewVar("i", TypeInt64), NewConst(TypeInt64, 1))
	c := NewBinary(Add, NewVar("j", TypeInt64), NewConst(TypeInt64, 1))
	if !Equal(a, b) {
		t.Errorf("identical trees compare unequal")
	}
	if Equal(a, c) {
		t.Errorf("trees with different variables compare equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Errorf("nil handling wrong")
	}
}

func TestFreeVarsAndReferencedBuffers(t *testing.T) {
	e := NewSelect(
		NewCompare(Gt, NewVar("i", TypeInt64), NewConst(TypeInt64, 0)),
		NewAccess(TypeFloat32, "A", NewVar("i", TypeInt64), NewVar("k", TypeInt64)),
		NewAccess(TypeFloat32, "B", NewVar("k", TypeInt64), NewVar("j", TypeInt64)))
	vars := FreeVars(e)
	for _, want := range []string{"i", "j", "k"} {
		if !vars[want] {
			t.Errorf("FreeVars missing %q", want)
		}
	}
	if vars["A"] || vars["B"] {
		t.Errorf("buffer names leaked into FreeVars: %v", vars)
	}
	bufs := ReferencedBuffers(e)
	if !bufs["A"] || !bufs["B"] || len(bufs) != 2 {
		t.Errorf("ReferencedBuffers = %v, want {A, B}", bufs)
	}
}
