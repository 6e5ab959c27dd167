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
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/ir"
	"github.com/SharmaRithik/tiramisu/iset"
)

// Interchange swaps the output dimensions at levelA and levelB, realized
// as a composition of two iset.MoveDims calls: moving levelA to levelB's
// position, then moving what is now at levelB-1 (the original levelB
// dimension) back to levelA.
func Interchange(comp *ir.Computation, levelA, levelB int) error {
	m := comp.Schedule
	n := len(m.OutDims)
	if levelA < 0 || levelA >= n || levelB < 0 || levelB >= n {
		return fmt.Errorf("%w: interchange levels (%d, %d) out of range for %q (%d dims)", compilerr.ErrTilingArity, levelA, levelB, comp.Name, n)
	}
	if levelA == levelB {
		return nil
	}
	a, b := levelA, levelB
	if a > b {
		a, b = b, a
	}
	swapped := iset.MoveDims(iset.MoveDims(m, a, b), b-1, a)
	tracef(comp, "interchange %s levels %d and %d -> %v", comp.Name, levelA, levelB, swapped.OutDims)
	return comp.SetSchedule(swapped)
}
