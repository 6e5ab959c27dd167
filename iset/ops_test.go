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

package iset

import (
	"testing"

	"github.com/SharmaRithik/tiramisu/expr"
)

func mustParse(t *testing.T, s string) *IntegerSet {
	t.Helper()
	set, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return set
}

func TestIdentityFromSetAndApply(t *testing.T) {
	set := mustParse(t, "{S[i,j]: 0<=i<8 and 0<=j<4}")
	m := IdentityFromSet(set)
	if m.InTupleName != "S" || m.OutTupleName != "S" {
		t.Errorf("tuples = %q -> %q, want S -> S", m.InTupleName, m.OutTupleName)
	}
	img, err := Apply(m, set)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if img.TupleName != "S" || len(img.Dims) != 2 {
		t.Errorf("image = %s over %v", img.TupleName, img.Dims)
	}
	if b := img.Bounds["i"]; b.Upper.String() != "7" {
		t.Errorf("image i upper = %s, want 7", b.Upper)
	}
}

func TestApplyRejectsTupleMismatch(t *testing.T) {
	set := mustParse(t, "{S[i]: 0<=i<8}")
	other := mustParse(t, "{T[x]: 0<=x<8}")
	m := IdentityFromSet(set)
	if _, err := Apply(m, other); err == nil {
		t.Fatalf("Apply accepted mismatched tuple names")
	}
}

func TestMoveDimsRelocates(t *testing.T) {
	set := mustParse(t, "{S[a,b,c]: 0<=a<2 and 0<=b<2 and 0<=c<2}")
	m := IdentityFromSet(set)
	moved := MoveDims(m, 0, 2)
	want := []string{"b", "c", "a"}
	for i, name := range want {
		if moved.OutDims[i] != name {
			t.Errorf("OutDims[%d] = %q, want %q", i, moved.OutDims[i], name)
		}
	}
	if m.OutDims[0] != "a" {
		t.Errorf("MoveDims mutated its input")
	}
}

func TestAddDimsInserts(t *testing.T) {
	set := mustParse(t, "{S[i]: 0<=i<8}")
	m := IdentityFromSet(set)
	zero := expr.NewConst(expr.TypeInt64, 0)
	withStatic := AddDims(m, 0, []string{"t"}, []*expr.Expr{zero},
		map[string]Bound{"t": {Lower: zero, Upper: zero}})
	if len(withStatic.OutDims) != 2 || withStatic.OutDims[0] != "t" || withStatic.OutDims[1] != "i" {
		t.Errorf("OutDims = %v, want [t i]", withStatic.OutDims)
	}
	if !expr.Equal(withStatic.OutExprs[0], zero) {
		t.Errorf("inserted expr = %s, want 0", withStatic.OutExprs[0])
	}
}

func TestSetTupleNameCopies(t *testing.T) {
	set := mustParse(t, "{S[i]: 0<=i<8}")
	renamed := SetTupleName(set, "T")
	if renamed.TupleName != "T" || set.TupleName != "S" {
		t.Errorf("rename = (%q, orig %q), want (T, S)", renamed.TupleName, set.TupleName)
	}
	m := IdentityFromSet(set)
	both := SetMapTupleNames(m, "T")
	if both.InTupleName != "T" || both.OutTupleName != "T" {
		t.Errorf("map tuples = %q -> %q, want T -> T", both.InTupleName, both.OutTupleName)
	}
}

func TestUseAfterFreePanics(t *testing.T) {
	set := mustParse(t, "{S[i]: 0<=i<8}")
	set.Free()
	defer func() {
		if recover() == nil {
			t.Errorf("Copy on a freed handle did not panic")
		}
	}()
	set.Copy()
}

func TestBuildASTMergesSharedLoops(t *testing.T) {
	a := mustParse(t, "{S[i,j]: 0<=i<8 and 0<=j<8}")
	b := mustParse(t, "{T[i,j,k]: 0<=i<8 and 0<=j<8 and 0<=k<8}")
	ast, err := BuildASTFromScheduleMap([]ScheduleEntry{
		{TupleName: "S", Domain: a, Schedule: IdentityFromSet(a)},
		{TupleName: "T", Domain: b, Schedule: IdentityFromSet(b)},
	})
	if err != nil {
		t.Fatalf("BuildASTFromScheduleMap: %v", err)
	}
	if ast.Kind != ASTFor || ast.IterName != "i" {
		t.Fatalf("root = kind %d iter %q, want shared For i", ast.Kind, ast.IterName)
	}
	if len(ast.Body) != 1 || ast.Body[0].IterName != "j" {
		t.Fatalf("i body = %d nodes, want one shared For j", len(ast.Body))
	}
	jBody := ast.Body[0].Body
	if len(jBody) != 2 {
		t.Fatalf("j body = %d nodes, want [user S, For k]", len(jBody))
	}
	if jBody[0].Kind != ASTUser || jBody[0].TupleName != "S" {
		t.Errorf("first j child = %+v, want user S", jBody[0])
	}
	if jBody[1].Kind != ASTFor || jBody[1].IterName != "k" {
		t.Errorf("second j child = %+v, want For k", jBody[1])
	}
}

func TestBuildASTKeepsDivergentLoopsApart(t *testing.T) {
	a := mustParse(t, "{S[i]: 0<=i<8}")
	b := mustParse(t, "{T[x]: 0<=x<4}")
	ast, err := BuildASTFromScheduleMap([]ScheduleEntry{
		{TupleName: "S", Domain: a, Schedule: IdentityFromSet(a)},
		{TupleName: "T", Domain: b, Schedule: IdentityFromSet(b)},
	})
	if err != nil {
		t.Fatalf("BuildASTFromScheduleMap: %v", err)
	}
	if ast.Kind != ASTBlock || len(ast.Body) != 2 {
		t.Fatalf("root = kind %d with %d children, want Block of 2", ast.Kind, len(ast.Body))
	}
}
