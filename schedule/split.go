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
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/ir"
	"github.com/SharmaRithik/tiramisu/iset"
)

// Split replaces the output dimension at level with two new dimensions,
// ℓ_o (outer, the quotient) and ℓ_i (inner, the remainder), related to the
// original by ℓ = lower + ℓ_o*factor + ℓ_i. level must name a dimension
// whose bound is a statically known constant range whose extent satisfies
// CanSplitIterator for factor; otherwise this returns ErrInvalidFactor
// without touching comp's schedule.
func Split(comp *ir.Computation, level int, factor int64) error {
	newMap, err := splitAt(comp.Schedule, level, factor, comp.Name)
	if err != nil {
		return err
	}
	tracef(comp, "split %s level %d by %d -> %v", comp.Name, level, factor, newMap.OutDims)
	return comp.SetSchedule(newMap)
}

func splitMap(m *iset.AffineMap, level int, dimName string, bound iset.Bound, extent, factor int64) (*iset.AffineMap, error) {
	lowerConst, _ := constInt(bound.Lower)
	outerName := dimName + "_o"
	innerName := dimName + "_i"

	e := m.OutExprs[level]
	normalized := e
	if lowerConst != 0 {
		normalized = expr.NewBinary(expr.Sub, e, expr.NewConst(expr.TypeInt64, lowerConst))
	}
	quotient := expr.NewBinary(expr.Div, normalized, expr.NewConst(expr.TypeInt64, factor))
	remainder := expr.NewBinary(expr.Mod, normalized, expr.NewConst(expr.TypeInt64, factor))

	outerBound := iset.Bound{Lower: expr.NewConst(expr.TypeInt64, 0), Upper: expr.NewConst(expr.TypeInt64, extent/factor-1)}
	innerBound := iset.Bound{Lower: expr.NewConst(expr.TypeInt64, 0), Upper: expr.NewConst(expr.TypeInt64, factor-1)}

	newMap := replaceDim(m, level, []string{outerName, innerName}, []*expr.Expr{quotient, remainder},
		map[string]iset.Bound{outerName: outerBound, innerName: innerBound})

	outerVar := expr.NewVar(outerName, expr.TypeInt64)
	innerVar := expr.NewVar(innerName, expr.TypeInt64)
	scaled := expr.NewBinary(expr.Mul, outerVar, expr.NewConst(expr.TypeInt64, factor))
	inv := expr.NewBinary(expr.Add, scaled, innerVar)
	if lowerConst != 0 {
		inv = expr.NewBinary(expr.Add, expr.NewConst(expr.TypeInt64, lowerConst), inv)
	}
	newMap.InverseExprs[dimName] = inv
	delete(newMap.Unrolled, dimName)
	return newMap, nil
}

// lookupLevelInMap is lookupLevel's map-only core, usable by multi-step
// transforms (tile) that build up an intermediate AffineMap before ever
// assigning it to a computation.
func lookupLevelInMap(m *iset.AffineMap, level int, compName string) (string, iset.Bound, error) {
	if level < 0 || level >= len(m.OutDims) {
		return "", iset.Bound{}, fmt.Errorf("%w: level %d out of range for %q (%d dims)", compilerr.ErrTilingArity, level, compName, len(m.OutDims))
	}
	dimName := m.OutDims[level]
	bound, ok := m.OutBounds[dimName]
	if !ok {
		return "", iset.Bound{}, fmt.Errorf("%w: dimension %q at level %d has no recorded bound", compilerr.ErrInvalidFactor, dimName, level)
	}
	return dimName, bound, nil
}
