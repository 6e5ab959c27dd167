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

// FuseRule decides whether lhs and rhs can share their first depth
// schedule levels. It is an interface so a caller building an auto
// scheduler can supply a dependence-based rule looser or stricter than
// DefaultFuseRule's extent check.
type FuseRule interface {
	CanFuse(lhs, rhs *ir.Computation, depth int) bool
}

type defaultFuseRule struct{}

// CanFuse requires the first depth output levels of both schedules to
// have a statically equal bound — the same loop extent at each shared
// level — which is what lets the AST builder later walk them under one
// set of For nodes.
func (defaultFuseRule) CanFuse(lhs, rhs *ir.Computation, depth int) bool {
	lm, rm := lhs.Schedule, rhs.Schedule
	if depth <= 0 || depth > len(lm.OutDims) || depth > len(rm.OutDims) {
		return false
	}
	for level := 0; level < depth; level++ {
		lb, lok := lm.OutBounds[lm.OutDims[level]]
		rb, rok := rm.OutBounds[rm.OutDims[level]]
		if !lok || !rok {
			return false
		}
		if !expr.Equal(lb.Lower, rb.Lower) || !expr.Equal(lb.Upper, rb.Upper) {
			return false
		}
	}
	return true
}

// DefaultFuseRule is the fusability check applied when Fuse is called
// with a nil rule.
var DefaultFuseRule FuseRule = defaultFuseRule{}

// Fuse aligns rhs's schedule with lhs's over their first depth levels, so
// that the polyhedral AST builder merges them into one shared loop nest
// down to that depth. It renames rhs's first depth output dimensions to
// lhs's corresponding names; it never touches lhs. On failure (rule
// rejects the pair) rhs is left untouched.
func Fuse(lhs, rhs *ir.Computation, depth int, rule FuseRule) error {
	if rule == nil {
		rule = DefaultFuseRule
	}
	if !rule.CanFuse(lhs, rhs, depth) {
		return fmt.Errorf("%w: %q and %q are not fusable at depth %d", compilerr.ErrTilingArity, lhs.Name, rhs.Name, depth)
	}
	newRhs := rhs.Schedule
	for level := 0; level < depth; level++ {
		target := lhs.Schedule.OutDims[level]
		current := newRhs.OutDims[level]
		if current != target {
			newRhs = renameOutputDim(newRhs, current, target)
		}
	}
	tracef(rhs, "fuse %s into %s over %d levels", rhs.Name, lhs.Name, depth)
	return rhs.SetSchedule(newRhs)
}

// renameOutputDim returns a copy of m with every occurrence of oldName as
// an output dimension name replaced by newName, keeping OutBounds,
// Unrolled, and every InverseExprs value (which refers to output
// dimensions by variable name) consistent with the rename.
func renameOutputDim(m *iset.AffineMap, oldName, newName string) *iset.AffineMap {
	cp := m.Copy()
	for i, d := range cp.OutDims {
		if d == oldName {
			cp.OutDims[i] = newName
		}
	}
	if b, ok := cp.OutBounds[oldName]; ok {
		cp.OutBounds[newName] = b
		delete(cp.OutBounds, oldName)
	}
	if v, ok := cp.Unrolled[oldName]; ok {
		cp.Unrolled[newName] = v
		delete(cp.Unrolled, oldName)
	}
	subst := map[string]*expr.Expr{oldName: expr.NewVar(newName, expr.TypeInt64)}
	for k, v := range cp.InverseExprs {
		cp.InverseExprs[k] = expr.Substitute(v, subst)
	}
	return cp
}
