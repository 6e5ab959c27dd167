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

// Package iset provides the integer-set layer of the pipeline: tuple-named
// sets, relations, and affine maps over integers, plus AST construction
// over a schedule. Rather than binding a full Presburger solver, it
// implements the operations the rest of the pipeline needs directly over
// a deliberately restricted representation: rectangular (box) integer
// sets with one affine Bound per dimension, which is exactly what every
// schedule transformation constructs or inspects.
//
// Handles are move-only: Free releases a handle, Copy produces an
// independent one, and using a freed handle is an internal invariant
// violation (it panics — panics are reserved for internal bugs, result
// types for user errors).
package iset

import "github.com/SharmaRithik/tiramisu/expr"

// Bound is an inclusive [Lower, Upper] affine range for one dimension.
// Either end may be nil, meaning "unknown" (unbounded in that direction) —
// this only ever happens for dimensions this facade was not asked to
// derive a bound for; every dimension produced by a schedule
// transformation in this module always has both ends set.
type Bound struct {
	Lower *expr.Expr
	Upper *expr.Expr
}

// handle is embedded in IntegerSet and AffineMap to give both move-only
// semantics.
type handle struct {
	released bool
}

func (h *handle) checkLive() {
	if h.released {
		panic("iset: use of a released handle")
	}
}

// IntegerSet is a tuple-named integer set: an ordered list of dimensions,
// each with an affine Bound, plus an optional extra boolean constraint for
// shapes that are not purely rectangular (e.g. a future triangular loop).
type IntegerSet struct {
	handle

	TupleName string
	Dims      []string
	Params    []string
	Bounds    map[string]Bound

	// Extra is an additional conjuncted boolean constraint over Dims and
	// Params, evaluated alongside Bounds. Nil means "no extra constraint."
	Extra *expr.Expr
}

// NewIntegerSet constructs a set directly (bypassing Parse) from already
// structured dimensions and bounds.
func NewIntegerSet(tupleName string, dims []string, bounds map[string]Bound) *IntegerSet {
	b := make(map[string]Bound, len(bounds))
	for k, v := range bounds {
		b[k] = v
	}
	return &IntegerSet{TupleName: tupleName, Dims: append([]string(nil), dims...), Bounds: b}
}

// Copy returns an independent deep copy of s.
func (s *IntegerSet) Copy() *IntegerSet {
	s.checkLive()
	cp := &IntegerSet{
		TupleName: s.TupleName,
		Dims:      append([]string(nil), s.Dims...),
		Params:    append([]string(nil), s.Params...),
		Bounds:    make(map[string]Bound, len(s.Bounds)),
		Extra:     s.Extra,
	}
	for k, v := range s.Bounds {
		cp.Bounds[k] = v
	}
	return cp
}

// Free releases s. Using s after Free panics.
func (s *IntegerSet) Free() { s.released = true }

// IsEmpty reports whether the set is provably empty: some dimension's
// Lower bound exceeds its Upper bound when both are integer constants.
func (s *IntegerSet) IsEmpty() bool {
	s.checkLive()
	for _, d := range s.Dims {
		b, ok := s.Bounds[d]
		if !ok || b.Lower == nil || b.Upper == nil {
			continue
		}
		lo, loOK := constInt(b.Lower)
		hi, hiOK := constInt(b.Upper)
		if loOK && hiOK && lo > hi {
			return true
		}
	}
	return false
}

func constInt(e *expr.Expr) (int64, bool) {
	if e == nil || e.Kind != expr.KindConst || e.IsFloatConst {
		return 0, false
	}
	return e.ConstVal, true
}

// AffineMap is a tuple-named affine relation: InTupleName/InDims on the
// domain side, OutTupleName/OutDims on the range side, and one expression
// per output dimension over the input dimensions and Params.
//
// OutBounds optionally records the Bound of an output dimension that is
// *not* a bare passthrough of an input dimension (e.g. the two dimensions
// a split introduces) — Apply uses it directly instead of re-deriving a
// bound through the (non-invertible, in general) OutExprs.
type AffineMap struct {
	handle

	InTupleName  string
	OutTupleName string
	InDims       []string
	OutDims      []string
	Params       []string
	OutExprs     []*expr.Expr
	OutBounds    map[string]Bound

	// InverseExprs maps each input (domain) dimension name to an
	// expression, written in terms of *output* dimension variable names,
	// that recovers its value from a point in the output space. Maps built
	// by IdentityFromSet and the schedule algebra have an entry for every
	// input dim; ParseMap records one only for input dims that appear as a
	// bare passthrough output. This is what codegen's
	// index-expression rewriting uses to go from the AST's iterator
	// stack back to the original domain coordinates a computation's
	// Expression and Access are written over — the inverse of OutExprs,
	// which this facade cannot compute generically (OutExprs is not
	// always invertible in closed form) but which every transformation in
	// the schedule algebra knows how to maintain incrementally because it
	// always changes the map in one of a handful of fixed ways.
	InverseExprs map[string]*expr.Expr

	// Unrolled marks, by output dim name, dimensions the schedule algebra
	// tagged for unrolling.
	Unrolled map[string]bool
}

// Copy returns an independent deep copy of m.
func (m *AffineMap) Copy() *AffineMap {
	m.checkLive()
	cp := &AffineMap{
		InTupleName:  m.InTupleName,
		OutTupleName: m.OutTupleName,
		InDims:       append([]string(nil), m.InDims...),
		OutDims:      append([]string(nil), m.OutDims...),
		Params:       append([]string(nil), m.Params...),
		OutExprs:     append([]*expr.Expr(nil), m.OutExprs...),
		OutBounds:    make(map[string]Bound, len(m.OutBounds)),
		InverseExprs: make(map[string]*expr.Expr, len(m.InverseExprs)),
		Unrolled:     make(map[string]bool, len(m.Unrolled)),
	}
	for k, v := range m.OutBounds {
		cp.OutBounds[k] = v
	}
	for k, v := range m.InverseExprs {
		cp.InverseExprs[k] = v
	}
	for k, v := range m.Unrolled {
		cp.Unrolled[k] = v
	}
	return cp
}

// Free releases m. Using m after Free panics.
func (m *AffineMap) Free() { m.released = true }
