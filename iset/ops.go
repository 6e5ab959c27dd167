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

package iset

import (
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
)

// IdentityFromSet builds the identity AffineMap over set: same tuple name
// on both sides, same dims, each output dim a bare passthrough of the
// identically-named input dim, bounds carried across unchanged.
func IdentityFromSet(set *IntegerSet) *AffineMap {
	set.checkLive()
	m := &AffineMap{
		InTupleName:  set.TupleName,
		OutTupleName: set.TupleName,
		InDims:       append([]string(nil), set.Dims...),
		OutDims:      append([]string(nil), set.Dims...),
		Params:       append([]string(nil), set.Params...),
		OutExprs:     make([]*expr.Expr, len(set.Dims)),
		OutBounds:    make(map[string]Bound, len(set.Dims)),
		InverseExprs: make(map[string]*expr.Expr, len(set.Dims)),
	}
	for i, d := range set.Dims {
		m.OutExprs[i] = expr.NewVar(d, expr.TypeInt64)
		m.InverseExprs[d] = expr.NewVar(d, expr.TypeInt64)
		if b, ok := set.Bounds[d]; ok {
			m.OutBounds[d] = b
		}
	}
	return m
}

// Apply computes the image of set under m: a new IntegerSet tupled as
// m.OutTupleName, over m.OutDims. set.TupleName must equal m.InTupleName.
//
// Output bounds are derived two ways: an output dim that is a bare
// passthrough of an input dim inherits that dim's Bound; every other
// output dim must already have an entry in m.OutBounds (schedule
// transformations that introduce new dims — split, tile — always record
// one). A dim with neither source is left unbounded.
func Apply(m *AffineMap, set *IntegerSet) (*IntegerSet, error) {
	m.checkLive()
	set.checkLive()
	if m.InTupleName != set.TupleName {
		return nil, fmt.Errorf("%w: map input tuple %q does not match set tuple %q", compilerr.ErrSolver, m.InTupleName, set.TupleName)
	}
	out := &IntegerSet{
		TupleName: m.OutTupleName,
		Dims:      append([]string(nil), m.OutDims...),
		Params:    unionParams(set.Params, m.Params),
		Bounds:    make(map[string]Bound, len(m.OutDims)),
	}
	renaming, bijective := passthroughRenaming(m)
	for i, outName := range m.OutDims {
		e := m.OutExprs[i]
		if e != nil && e.Kind == expr.KindVar {
			if b, ok := set.Bounds[e.Name]; ok {
				out.Bounds[outName] = b
				continue
			}
		}
		if b, ok := m.OutBounds[outName]; ok {
			out.Bounds[outName] = b
		}
	}
	if bijective && set.Extra != nil {
		out.Extra = renameVars(set.Extra, renaming)
	}
	return out, nil
}

func unionParams(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// passthroughRenaming returns, when every input dim of m appears as a bare
// passthrough output dim exactly once, the input->output name renaming and
// true; otherwise ok is false.
func passthroughRenaming(m *AffineMap) (rename map[string]string, ok bool) {
	rename = make(map[string]string, len(m.InDims))
	for i, outName := range m.OutDims {
		e := m.OutExprs[i]
		if e == nil || e.Kind != expr.KindVar {
			return nil, false
		}
		rename[e.Name] = outName
	}
	for _, in := range m.InDims {
		if _, ok := rename[in]; !ok {
			return nil, false
		}
	}
	return rename, true
}

func renameVars(e *expr.Expr, rename map[string]string) *expr.Expr {
	subst := make(map[string]*expr.Expr, len(rename))
	for from, to := range rename {
		subst[from] = expr.NewVar(to, expr.TypeInt64)
	}
	return expr.Substitute(e, subst)
}

// IntersectDomain restricts m's domain to set. set.TupleName must equal
// m.InTupleName. In this facade's restricted (rectangular) representation
// the domain a schedule is built from is already carried alongside it by
// the caller (ir.Computation keeps Domain and Schedule as siblings), so
// this operation's role is validation plus returning an independent copy,
// matching the facade contract without needing general intersection.
func IntersectDomain(m *AffineMap, set *IntegerSet) (*AffineMap, error) {
	m.checkLive()
	set.checkLive()
	if m.InTupleName != set.TupleName {
		return nil, fmt.Errorf("%w: map input tuple %q does not match domain tuple %q", compilerr.ErrSolver, m.InTupleName, set.TupleName)
	}
	return m.Copy(), nil
}

// SetTupleName returns a copy of set with a new tuple name.
func SetTupleName(set *IntegerSet, name string) *IntegerSet {
	cp := set.Copy()
	cp.TupleName = name
	return cp
}

// SetMapTupleNames returns a copy of m with both input and output tuple
// names set to name — the shape Computation.SetSchedule requires.
func SetMapTupleNames(m *AffineMap, name string) *AffineMap {
	cp := m.Copy()
	cp.InTupleName = name
	cp.OutTupleName = name
	return cp
}

// AddDims returns a copy of m with len(names) new output dimensions
// inserted at position pos (0-indexed, shifting later dimensions right).
// exprs[i] defines names[i] over m's input dims/params; bounds[names[i]],
// if present, is recorded in the result's OutBounds.
func AddDims(m *AffineMap, pos int, names []string, exprs []*expr.Expr, bounds map[string]Bound) *AffineMap {
	m.checkLive()
	if pos < 0 || pos > len(m.OutDims) {
		panic("iset: AddDims position out of range")
	}
	cp := m.Copy()
	newDims := make([]string, 0, len(cp.OutDims)+len(names))
	newExprs := make([]*expr.Expr, 0, len(cp.OutExprs)+len(exprs))
	newDims = append(newDims, cp.OutDims[:pos]...)
	newExprs = append(newExprs, cp.OutExprs[:pos]...)
	newDims = append(newDims, names...)
	newExprs = append(newExprs, exprs...)
	newDims = append(newDims, cp.OutDims[pos:]...)
	newExprs = append(newExprs, cp.OutExprs[pos:]...)
	cp.OutDims = newDims
	cp.OutExprs = newExprs
	for k, v := range bounds {
		cp.OutBounds[k] = v
	}
	return cp
}

// MoveDims returns a copy of m with the output dimension at index from
// relocated to index to, shifting the dimensions between the two
// positions by one. Composing two MoveDims calls realizes a
// transposition, which is how interchange is built.
func MoveDims(m *AffineMap, from, to int) *AffineMap {
	m.checkLive()
	n := len(m.OutDims)
	if from < 0 || from >= n || to < 0 || to >= n {
		panic("iset: MoveDims index out of range")
	}
	cp := m.Copy()
	dim := cp.OutDims[from]
	e := cp.OutExprs[from]
	dims := append(cp.OutDims[:from:from], cp.OutDims[from+1:]...)
	exprs := append(cp.OutExprs[:from:from], cp.OutExprs[from+1:]...)
	dims = append(dims[:to], append([]string{dim}, dims[to:]...)...)
	exprs = append(exprs[:to], append([]*expr.Expr{e}, exprs[to:]...)...)
	cp.OutDims = dims
	cp.OutExprs = exprs
	return cp
}
