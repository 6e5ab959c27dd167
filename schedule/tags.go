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
)

// TagParallelDimension marks comp's schedule level as the (at most one)
// parallel loop level, delegating the bookkeeping to the owning
// function's library.
func TagParallelDimension(comp *ir.Computation, level int) error {
	if err := checkLevel(comp, level); err != nil {
		return err
	}
	comp.Function().AddParallelDimension(comp.Name, level)
	return nil
}

// TagVectorDimension marks comp's schedule level as the (at most one)
// vector loop level.
func TagVectorDimension(comp *ir.Computation, level int) error {
	if err := checkLevel(comp, level); err != nil {
		return err
	}
	comp.Function().AddVectorDimension(comp.Name, level)
	return nil
}

func checkLevel(comp *ir.Computation, level int) error {
	n := len(comp.Schedule.OutDims)
	if level < 0 || level >= n {
		return fmt.Errorf("%w: level %d out of range for %q (%d dims)", compilerr.ErrTilingArity, level, comp.Name, n)
	}
	return nil
}
