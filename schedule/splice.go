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
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/iset"
)

// replaceDim returns a copy of m with the output dimension at pos removed
// and names/exprs spliced in its place, carrying bounds into the result's
// OutBounds. Unlike iset.AddDims (pure insertion), this is what split and
// tile need: one existing schedule output dimension is consumed and
// replaced by several new ones.
func replaceDim(m *iset.AffineMap, pos int, names []string, exprs []*expr.Expr, bounds map[string]iset.Bound) *iset.AffineMap {
	cp := m.Copy()
	dims := make([]string, 0, len(cp.OutDims)+len(names)-1)
	outExprs := make([]*expr.Expr, 0, len(cp.OutExprs)+len(exprs)-1)
	dims = append(dims, cp.OutDims[:pos]...)
	outExprs = append(outExprs, cp.OutExprs[:pos]...)
	dims = append(dims, names...)
	outExprs = append(outExprs, exprs...)
	dims = append(dims, cp.OutDims[pos+1:]...)
	outExprs = append(outExprs, cp.OutExprs[pos+1:]...)
	cp.OutDims = dims
	cp.OutExprs = outExprs
	for k, v := range bounds {
		cp.OutBounds[k] = v
	}
	return cp
}

// reorderRange returns a copy of m with the output dimensions in
// [base, base+len(order)) rearranged so that the dimension currently at
// base+order[i] ends up at base+i. It is how tile composes several splits
// into the canonical tile-outer/point-inner dimension order — a single
// rebuild of the window is simpler to get right than a chain of pairwise
// interchanges once more than two dimensions are involved.
func reorderRange(m *iset.AffineMap, base int, order []int) *iset.AffineMap {
	cp := m.Copy()
	n := len(order)
	dims := make([]string, n)
	outExprs := make([]*expr.Expr, n)
	for i, src := range order {
		dims[i] = cp.OutDims[base+src]
		outExprs[i] = cp.OutExprs[base+src]
	}
	copy(cp.OutDims[base:base+n], dims)
	copy(cp.OutExprs[base:base+n], outExprs)
	return cp
}
