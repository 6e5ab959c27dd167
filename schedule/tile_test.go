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

import "testing"

func TestTile2DOrdersTileThenPointLoops(t *testing.T) {
	comp := newTestComputation(t, "{S[i,j]: 0<=i<64 and 0<=j<32}")
	if err := Tile2D(comp, 0, 8, 8); err != nil {
		t.Fatalf("Tile2D: %v", err)
	}
	want := []string{"i_o", "j_o", "i_i", "j_i"}
	got := comp.Schedule.OutDims
	if len(got) != len(want) {
		t.Fatalf("OutDims = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("OutDims[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestTile3DOrdersTileThenPointLoops(t *testing.T) {
	comp := newTestComputation(t, "{S[i,j,k]: 0<=i<32 and 0<=j<32 and 0<=k<16}")
	if err := Tile3D(comp, 0, 8, 8, 4); err != nil {
		t.Fatalf("Tile3D: %v", err)
	}
	want := []string{"i_o", "j_o", "k_o", "i_i", "j_i", "k_i"}
	got := comp.Schedule.OutDims
	if len(got) != len(want) {
		t.Fatalf("OutDims = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("OutDims[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestTile2DRejectsBadFactorWithoutMutating(t *testing.T) {
	comp := newTestComputation(t, "{S[i,j]: 0<=i<64 and 0<=j<30}")
	before := append([]string(nil), comp.Schedule.OutDims...)
	if err := Tile2D(comp, 0, 8, 9); err == nil {
		t.Fatal("expected error for non-divisible tile factor")
	}
	got := comp.Schedule.OutDims
	if len(got) != len(before) {
		t.Fatalf("schedule mutated on failed tile: %v", got)
	}
}
