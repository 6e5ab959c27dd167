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

func TestTagParallelAndVectorDimension(t *testing.T) {
	comp := newTestComputation(t, "{S[i,j]: 0<=i<64 and 0<=j<32}")
	if err := TagParallelDimension(comp, 0); err != nil {
		t.Fatalf("TagParallelDimension: %v", err)
	}
	if err := TagVectorDimension(comp, 1); err != nil {
		t.Fatalf("TagVectorDimension: %v", err)
	}
	fn := comp.Function()
	if !fn.Parallelize(comp.Name, 0) {
		t.Error("expected level 0 tagged parallel")
	}
	if !fn.Vectorize(comp.Name, 1) {
		t.Error("expected level 1 tagged vector")
	}
	if fn.Parallelize(comp.Name, 1) {
		t.Error("level 1 should not be parallel")
	}
}

func TestTagParallelDimensionRejectsOutOfRange(t *testing.T) {
	comp := newTestComputation(t, "{S[i]: 0<=i<64}")
	err := TagParallelDimension(comp, 3)
	if !errors.Is(err, compilerr.ErrTilingArity) {
		t.Fatalf("err = %v, want ErrTilingArity", err)
	}
}
