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

package schedule

import (
	"errors"
	"testing"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/ir"
)

func newTestComputation(t *testing.T, domainStr string) *ir.Computation {
	t.Helper()
	ctx := ir.NewCompilationContext()
	lib := ir.NewLibrary("lib", ctx)
	fn := ir.NewFunction(lib, "fn")
	e := expr.NewConst(expr.TypeFloat32, 0)
	comp, err := ir.NewComputation(ctx, fn, e, domainStr)
	if err != nil {
		t.Fatalf("NewComputation: %v", err)
	}
	return comp
}

func TestCanSplitIterator(t *testing.T) {
	cases := []struct {
		extent, factor int64
		want           bool
	}{
		{64, 8, true},
		{64, 64, true},
		{64, 7, false},
		{10, 0, false},
		{10, -2, false},
	}
	for _, c := range cases {
		if got := CanSplitIterator(c.extent, c.factor); got != c.want {
			t.Errorf("CanSplitIterator(%d,%d) = %v, want %v", c.extent, c.factor, got, c.want)
		}
	}
}

func TestSplitReplacesLevel(t *testing.T) {
	comp := newTestComputation(t, "{S[i,j]: 0<=i<64 and 0<=j<32}")
	if err := Split(comp, 0, 8); err != nil {
		t.Fatalf("Split: %v", err)
	}
	m := comp.Schedule
	want := []string{"i_o", "i_i", "j"}
	if len(m.OutDims) != len(want) {
		t.Fatalf("OutDims = %v, want %v", m.OutDims, want)
	}
	for i, name := range want {
		if m.OutDims[i] != name {
			t.Errorf("OutDims[%d] = %q, want %q", i, m.OutDims[i], name)
		}
	}
	ob := m.OutBounds["i_o"]
	if got, _ := constInt(ob.Upper); got != 7 {
		t.Errorf("i_o upper = %d, want 7", got)
	}
	ib := m.OutBounds["i_i"]
	if got, _ := constInt(ib.Upper); got != 7 {
		t.Errorf("i_i upper = %d, want 7", got)
	}
	inv, ok := m.InverseExprs["i"]
	if !ok {
		t.Fatalf("no InverseExprs entry for %q", "i")
	}
	if !expr.Equal(inv, expr.NewBinary(expr.Add, expr.NewBinary(expr.Mul, expr.NewVar("i_o", expr.TypeInt64), expr.NewConst(expr.TypeInt64, 8)), expr.NewVar("i_i", expr.TypeInt64))) {
		t.Errorf("inverse expr = %s, want i_o*8 + i_i", inv)
	}
}

func TestSplitRejectsNonDivisibleFactor(t *testing.T) {
	comp := newTestComputation(t, "{S[i]: 0<=i<64}")
	err := Split(comp, 0, 9)
	if !errors.Is(err, compilerr.ErrInvalidFactor) {
		t.Fatalf("err = %v, want ErrInvalidFactor", err)
	}
	if len(comp.Schedule.OutDims) != 1 {
		t.Errorf("schedule mutated on failed split: %v", comp.Schedule.OutDims)
	}
}

func TestSplitRejectsOutOfRangeLevel(t *testing.T) {
	comp := newTestComputation(t, "{S[i]: 0<=i<64}")
	err := Split(comp, 5, 8)
	if !errors.Is(err, compilerr.ErrTilingArity) {
		t.Fatalf("err = %v, want ErrTilingArity", err)
	}
}
