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

// Tile2D tiles the two consecutive levels starting at level with tile
// sizes fx, fy: it splits level by fx and level+1 (after the first split,
// at level+2) by fy, then reorders the four resulting dimensions into the
// canonical tile-outer/point-inner order ℓx_o, ℓy_o, ℓx_i, ℓy_i. Either
// split failing (CanSplitIterator false) leaves comp untouched.
func Tile2D(comp *ir.Computation, level int, fx, fy int64) error {
	m := comp.Schedule
	if level < 0 || level+1 >= len(m.OutDims) {
		return fmt.Errorf("%w: tile levels (%d, %d) out of range for %q (%d dims)", compilerr.ErrTilingArity, level, level+1, comp.Name, len(m.OutDims))
	}
	m1, err := splitAt(m, level, fx, comp.Name)
	if err != nil {
		return err
	}
	m2, err := splitAt(m1, level+2, fy, comp.Name)
	if err != nil {
		return err
	}
	final := reorderRange(m2, level, []int{0, 2, 1, 3})
	tracef(comp, "tile %s at level %d by (%d, %d) -> %v", comp.Name, level, fx, fy, final.OutDims)
	return comp.SetSchedule(final)
}

// Tile3D tiles three consecutive levels with tile sizes fx, fy, fz,
// producing the canonical order ℓx_o, ℓy_o, ℓz_o, ℓx_i, ℓy_i, ℓz_i.
func Tile3D(comp *ir.Computation, level int, fx, fy, fz int64) error {
	m := comp.Schedule
	if level < 0 || level+2 >= len(m.OutDims) {
		return fmt.Errorf("%w: tile levels (%d, %d, %d) out of range for %q (%d dims)", compilerr.ErrTilingArity, level, level+1, level+2, comp.Name, len(m.OutDims))
	}
	m1, err := splitAt(m, level, fx, comp.Name)
	if err != nil {
		return err
	}
	m2, err := splitAt(m1, level+2, fy, comp.Name)
	if err != nil {
		return err
	}
	m3, err := splitAt(m2, level+4, fz, comp.Name)
	if err != nil {
		return err
	}
	final := reorderRange(m3, level, []int{0, 2, 4, 1, 3, 5})
	tracef(comp, "tile %s at level %d by (%d, %d, %d) -> %v", comp.Name, level, fx, fy, fz, final.OutDims)
	return comp.SetSchedule(final)
}

// splitAt is split's core operating on a detached intermediate map, for
// composing multiple splits before committing any of them to a
// computation (tile's atomicity: either all of its splits succeed and the
// whole reordered schedule is installed, or none of it is).
func splitAt(m *iset.AffineMap, level int, factor int64, compName string) (*iset.AffineMap, error) {
	dimName, bound, err := lookupLevelInMap(m, level, compName)
	if err != nil {
		return nil, err
	}
	extent, ok := staticExtent(bound.Lower, bound.Upper)
	if !ok {
		return nil, fmt.Errorf("%w: dimension %q at level %d has no statically known extent", compilerr.ErrInvalidFactor, dimName, level)
	}
	if !CanSplitIterator(extent, factor) {
		return nil, fmt.Errorf("%w: extent %d of %q is not splittable by %d", compilerr.ErrInvalidFactor, extent, dimName, factor)
	}
	return splitMap(m, level, dimName, bound, extent, factor)
}
