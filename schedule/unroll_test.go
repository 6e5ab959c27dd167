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

func TestUnrollMarksInnerDimension(t *testing.T) {
	comp := newTestComputation(t, "{S[i]: 0<=i<64}")
	if err := Unroll(comp, 0, 8); err != nil {
		t.Fatalf("Unroll: %v", err)
	}
	m := comp.Schedule
	if !m.Unrolled["i_i"] {
		t.Errorf("expected i_i marked unrolled, Unrolled=%v", m.Unrolled)
	}
	if m.Unrolled["i_o"] {
		t.Errorf("outer dim should not be marked unrolled")
	}
}

func TestUnrollFullyWhenExtentEqualsFactor(t *testing.T) {
	comp := newTestComputation(t, "{S[i]: 0<=i<8}")
	if err := Unroll(comp, 0, 8); err != nil {
		t.Fatalf("Unroll: %v", err)
	}
	ob := comp.Schedule.OutBounds["i_o"]
	if up, _ := constInt(ob.Upper); up != 0 {
		t.Errorf("outer upper = %d, want 0", up)
	}
}
