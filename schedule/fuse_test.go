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
)

func TestFuseAlignsMatchingExtentLevel(t *testing.T) {
	lhs := newTestComputation(t, "{S[i,j]: 0<=i<64 and 0<=j<32}")
	rhs := newTestComputation(t, "{T[x,y]: 0<=x<64 and 0<=y<16}")
	if err := Fuse(lhs, rhs, 1, nil); err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if rhs.Schedule.OutDims[0] != "i" {
		t.Errorf("rhs level 0 = %q, want %q", rhs.Schedule.OutDims[0], "i")
	}
	if rhs.Schedule.OutDims[1] != "y" {
		t.Errorf("rhs level 1 changed: %q", rhs.Schedule.OutDims[1])
	}
}

func TestFuseRejectsMismatchedExtent(t *testing.T) {
	lhs := newTestComputation(t, "{S[i]: 0<=i<64}")
	rhs := newTestComputation(t, "{T[x]: 0<=x<32}")
	err := Fuse(lhs, rhs, 1, nil)
	if !errors.Is(err, compilerr.ErrTilingArity) {
		t.Fatalf("err = %v, want ErrTilingArity", err)
	}
	if rhs.Schedule.OutDims[0] != "x" {
		t.Errorf("rhs schedule mutated on rejected fuse: %v", rhs.Schedule.OutDims)
	}
}
