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

package candidate

import (
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/lnst"
	"github.com/SharmaRithik/tiramisu/schedule"
)

// Generator enumerates successor states over an LNST. The factor lists
// are the search driver's knobs; the zero value is unusable — use
// NewGenerator for the conventional defaults.
type Generator struct {
	TilingFactors    []int64
	UnrollingFactors []int64

	// Trace, when non-nil, is called once per emitted candidate with the
	// rule that fired.
	Trace func(format string, args ...any)
}

// NewGenerator returns a Generator with power-of-two factor defaults.
func NewGenerator() *Generator {
	return &Generator{
		TilingFactors:    []int64{32, 64, 128},
		UnrollingFactors: []int64{4, 8, 16},
	}
}

func (g *Generator) tracef(format string, args ...any) {
	if g.Trace != nil {
		g.Trace(format, args...)
	}
}

// Generate returns every candidate of the given category reachable from
// root. The input tree is read-only: each returned Candidate owns an
// independent deep copy, and generation is deterministic (candidates are
// returned in sorted record order).
func (g *Generator) Generate(root *lnst.LNSTNode, optType OptimizationType) []*Candidate {
	gen := &generation{g: g, root: root}
	gen.walk(root, nil, optType)
	sortCandidates(gen.cands)
	return gen.cands
}

// generation carries one Generate invocation's state: the walk root (so
// emit can twin the whole tree) and the accumulated candidates.
type generation struct {
	g     *Generator
	root  *lnst.LNSTNode
	cands []*Candidate
}

// walk recurses through the tree, emitting candidates for node before
// descending into each child; every category recurses the same way.
func (gen *generation) walk(node *lnst.LNSTNode, path []int, optType OptimizationType) {
	switch optType {
	case Fusion:
		gen.fusionAt(node, path)
	case Tiling:
		gen.tilingAt(node, path)
	case Interchange:
		gen.interchangeAt(node, path)
	case Unrolling:
		gen.unrollingAt(node, path)
	}
	for idx, child := range node.Children {
		gen.walk(child, append(path[:len(path):len(path)], idx), optType)
	}
}

// fusionAt emits one candidate per ordered sibling pair (i < j) among
// node's children whose bounds coincide and neither of which is unrolled.
// Siblings whose iterator names also coincide never occur here — Build
// merges those into one node already — so the test is on extents, the
// same criterion schedule.DefaultFuseRule enforces at commit time. The
// record binds the left sibling's rightmost computation to the right
// sibling's leftmost, ordered lhs before rhs within the fused band.
func (gen *generation) fusionAt(node *lnst.LNSTNode, path []int) {
	for i := 0; i < len(node.Children); i++ {
		for j := i + 1; j < len(node.Children); j++ {
			a, b := node.Children[i], node.Children[j]
			if a.Unrolled || b.Unrolled {
				continue
			}
			if !expr.Equal(a.Lower, b.Lower) || !expr.Equal(a.Upper, b.Upper) {
				continue
			}
			lhs := a.GetRightmostComputation()
			rhs := b.GetLeftmostComputation()
			gen.g.tracef("fusion: %s with %s at depth %d", lhs, rhs, a.Depth)
			gen.emit(path, OptimizationInfo{
				Type:         Fusion,
				Computations: []string{lhs, rhs},
				Lhs:          lhs,
				Rhs:          rhs,
				Level:        a.Depth,
			})
		}
	}
}

// tilingAt emits, for a node heading a chain of length >= 2, one
// candidate per 2-D factor pair legal on the first two chain extents, and
// for chains of length >= 3 additionally the 3-D factor product.
func (gen *generation) tilingAt(node *lnst.LNSTNode, path []int) {
	chain := chainExtents(node)
	if len(chain) < 2 {
		return
	}
	for _, fx := range gen.g.TilingFactors {
		if !splittable(chain[0], fx) {
			continue
		}
		for _, fy := range gen.g.TilingFactors {
			if !splittable(chain[1], fy) {
				continue
			}
			gen.g.tracef("tiling 2d: %s by (%d, %d)", node.IterName, fx, fy)
			gen.emit(path, OptimizationInfo{
				Type:         Tiling,
				Computations: node.GetAllComputations(),
				Level:        node.Depth,
				Factors:      []int64{fx, fy},
			})
			if len(chain) < 3 {
				continue
			}
			for _, fz := range gen.g.TilingFactors {
				if !splittable(chain[2], fz) {
					continue
				}
				gen.g.tracef("tiling 3d: %s by (%d, %d, %d)", node.IterName, fx, fy, fz)
				gen.emit(path, OptimizationInfo{
					Type:         Tiling,
					Computations: node.GetAllComputations(),
					Level:        node.Depth,
					Factors:      []int64{fx, fy, fz},
				})
			}
		}
	}
}

// interchangeAt emits one candidate per descendant level strictly between
// node's own depth and the end of its chain, swapping node's level with
// that descendant's.
func (gen *generation) interchangeAt(node *lnst.LNSTNode, path []int) {
	if node.Unrolled || node.Depth < 0 {
		return
	}
	chainLen := node.GetLoopLevelsChainDepth()
	cur := node
	for i := 1; i < chainLen; i++ {
		cur = cur.Children[0]
		if cur.Unrolled {
			continue
		}
		gen.g.tracef("interchange: levels %d and %d under %s", node.Depth, cur.Depth, node.IterName)
		gen.emit(path, OptimizationInfo{
			Type:         Interchange,
			Computations: node.GetAllComputations(),
			Level:        node.Depth,
			SecondLevel:  cur.Depth,
		})
	}
}

// unrollingAt emits one candidate per legal unrolling factor on an
// innermost (childless), not-already-unrolled loop node.
func (gen *generation) unrollingAt(node *lnst.LNSTNode, path []int) {
	if node.Unrolled || node.Depth < 0 || len(node.Children) != 0 {
		return
	}
	extent, known := nodeExtent(node)
	if !known {
		return
	}
	for _, f := range gen.g.UnrollingFactors {
		if extent != f && !schedule.CanSplitIterator(extent, f) {
			continue
		}
		gen.g.tracef("unrolling: %s by %d", node.IterName, f)
		gen.emit(path, OptimizationInfo{
			Type:         Unrolling,
			Computations: node.GetAllComputations(),
			Level:        node.Depth,
			Factors:      []int64{f},
		})
	}
}

// emit materializes one Candidate: a twin of the whole input tree plus the
// pointer into the twin corresponding to the target node reached by path.
// The original tree is never referenced by the result.
func (gen *generation) emit(path []int, info OptimizationInfo) {
	twin := gen.root.DeepCopy()
	gen.cands = append(gen.cands, &Candidate{Tree: twin, Node: twin.At(path), Info: info})
}

func splittable(extent int64, factor int64) bool {
	return schedule.CanSplitIterator(extent, factor)
}

// chainExtents returns the statically known extents of the single-child
// chain starting at node (node itself first), stopping at the first level
// whose extent is not a constant or that is marked unrolled.
func chainExtents(node *lnst.LNSTNode) []int64 {
	var out []int64
	cur := node
	for {
		if cur.Unrolled || cur.Depth < 0 {
			break
		}
		extent, known := nodeExtent(cur)
		if !known {
			break
		}
		out = append(out, extent)
		if len(cur.Children) != 1 {
			break
		}
		cur = cur.Children[0]
	}
	return out
}

func nodeExtent(node *lnst.LNSTNode) (int64, bool) {
	lo, up := node.GetExtent()
	if lo == nil || up == nil || lo.Kind != expr.KindConst || up.Kind != expr.KindConst || lo.IsFloatConst || up.IsFloatConst {
		return 0, false
	}
	return up.ConstVal - lo.ConstVal + 1, true
}
