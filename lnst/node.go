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

// Package lnst implements the loop-nest syntax tree: a derived,
// rebuildable projection of every computation's schedule onto its output
// dimensions, sharing prefixes the way iset.BuildASTFromScheduleMap
// shares them for the solver-facing AST, using the same bounds (each
// computation's time-processor space, from iset.Apply). It exists purely
// as an editable view for the candidate generator, not as input to
// codegen.
package lnst

import "github.com/SharmaRithik/tiramisu/expr"

// LNSTNode is one loop level of the tree. The forest of top-level loops is
// represented as the Children of a synthetic root node with Depth -1 and
// no IterName — Build returns that root directly, so every walk (fusion,
// tiling, interchange, unrolling candidates) has one entry point.
type LNSTNode struct {
	IterName string
	Lower    *expr.Expr
	Upper    *expr.Expr
	Depth    int
	Children []*LNSTNode

	// Computations lists, in first-seen order, the tuple names of every
	// computation whose schedule passes through this node.
	Computations []string

	Unrolled     bool
	Parallelized bool
	Vectorized   bool
}

// GetExtent returns the node's loop bound as (lower, upper); both may be
// symbolic expressions.
func (n *LNSTNode) GetExtent() (lower, upper *expr.Expr) {
	return n.Lower, n.Upper
}

// GetLoopLevelsChainDepth returns the number of nodes, starting at n and
// counting itself, reachable by following single-child links before
// hitting a branch (more than one child) or a leaf (no children) — "the
// length of the purely-chain descendants before any branch."
func (n *LNSTNode) GetLoopLevelsChainDepth() int {
	depth := 1
	cur := n
	for len(cur.Children) == 1 {
		cur = cur.Children[0]
		depth++
	}
	return depth
}

// GetAllComputations returns every computation name reachable from n,
// across n itself and all of its descendants, first-seen order, deduped.
func (n *LNSTNode) GetAllComputations() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(*LNSTNode)
	walk = func(node *LNSTNode) {
		for _, c := range node.Computations {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
		for _, ch := range node.Children {
			walk(ch)
		}
	}
	walk(n)
	return out
}

// GetLeftmostComputation returns the first computation name reachable by
// always descending into the first child, starting from n itself.
func (n *LNSTNode) GetLeftmostComputation() string {
	node := n
	for {
		if len(node.Computations) > 0 {
			return node.Computations[0]
		}
		if len(node.Children) == 0 {
			return ""
		}
		node = node.Children[0]
	}
}

// GetRightmostComputation returns the last computation name reachable by
// always descending into the last child, starting from n itself.
func (n *LNSTNode) GetRightmostComputation() string {
	node := n
	for {
		if len(node.Computations) > 0 {
			return node.Computations[len(node.Computations)-1]
		}
		if len(node.Children) == 0 {
			return ""
		}
		node = node.Children[len(node.Children)-1]
	}
}

// DeepCopy returns an independent twin of the subtree rooted at n: the
// candidate generator's "deep-copy-and-return-node" operation, so two
// candidates derived from the same tree share no mutable state.
func (n *LNSTNode) DeepCopy() *LNSTNode {
	if n == nil {
		return nil
	}
	cp := &LNSTNode{
		IterName:     n.IterName,
		Lower:        n.Lower,
		Upper:        n.Upper,
		Depth:        n.Depth,
		Computations: append([]string(nil), n.Computations...),
		Unrolled:     n.Unrolled,
		Parallelized: n.Parallelized,
		Vectorized:   n.Vectorized,
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.DeepCopy())
	}
	return cp
}

// At navigates from root through the given child-index path and returns
// the node reached — the "pointer into" half of a deep-copy-and-return,
// used together with DeepCopy: copy root, then call twin.At(path) to find
// the corresponding node in the twin.
func (n *LNSTNode) At(path []int) *LNSTNode {
	node := n
	for _, idx := range path {
		node = node.Children[idx]
	}
	return node
}
