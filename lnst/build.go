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

package lnst

import (
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/ir"
)

// Build projects every computation of fn onto its schedule's output
// dimensions and merges shared prefixes into one tree, returning the
// synthetic root. Two loop levels merge when their iterator name and both
// bounds coincide — the same condition iset.BuildASTFromScheduleMap uses
// to merge For nodes, so the tree the candidate generator sees is the
// tree codegen will later walk.
//
// Flags come from two places: Unrolled from the schedule's own metadata
// map, Parallelized/Vectorized from the function's tag maps. The tree is
// a snapshot; rebuild after any schedule edit.
func Build(fn *ir.Function) (*LNSTNode, error) {
	root := &LNSTNode{Depth: -1}
	for _, comp := range fn.Computations() {
		ts, err := comp.TimeProcessorSpace()
		if err != nil {
			return nil, err
		}
		node := root
		for level, dim := range comp.Schedule.OutDims {
			b := ts.Bounds[dim]
			child := findOrAddChild(node, dim, b.Lower, b.Upper, level)
			child.Computations = appendUnique(child.Computations, comp.Name)
			if comp.Schedule.Unrolled[dim] {
				child.Unrolled = true
			}
			if fn.Parallelize(comp.Name, level) {
				child.Parallelized = true
			}
			if fn.Vectorize(comp.Name, level) {
				child.Vectorized = true
			}
			node = child
		}
	}
	return root, nil
}

func findOrAddChild(parent *LNSTNode, name string, lower, upper *expr.Expr, depth int) *LNSTNode {
	for _, c := range parent.Children {
		if c.IterName == name && expr.Equal(c.Lower, lower) && expr.Equal(c.Upper, upper) {
			return c
		}
	}
	child := &LNSTNode{IterName: name, Lower: lower, Upper: upper, Depth: depth}
	parent.Children = append(parent.Children, child)
	return child
}

func appendUnique(list []string, name string) []string {
	for _, s := range list {
		if s == name {
			return list
		}
	}
	return append(list, name)
}
