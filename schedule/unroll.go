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

import "github.com/SharmaRithik/tiramisu/ir"

// Unroll splits level by factor exactly as Split does, then marks the
// resulting inner dimension unrolled in the schedule's metadata. codegen
// reads this flag to fully unroll that (small, statically bounded) loop
// into factor copies of its body instead of emitting a For node.
func Unroll(comp *ir.Computation, level int, factor int64) error {
	newMap, err := splitAt(comp.Schedule, level, factor, comp.Name)
	if err != nil {
		return err
	}
	dimName := comp.Schedule.OutDims[level]
	newMap.Unrolled[dimName+"_i"] = true
	tracef(comp, "unroll %s level %d by %d", comp.Name, level, factor)
	return comp.SetSchedule(newMap)
}
