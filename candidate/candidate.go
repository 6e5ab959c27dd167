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

// Package candidate implements the exhaustive transformation-candidate
// generator. A Generator walks a loop-nest syntax tree and, per
// optimization category, emits one Candidate for every legal
// (node, parameter) combination. Candidates are promissory records: the
// generator never mutates a schedule. A search driver scores candidates
// and commits the chosen one through OptimizationInfo.Apply, which
// executes the transformation via the schedule algebra.
package candidate

import (
	"fmt"
	"sort"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/ir"
	"github.com/SharmaRithik/tiramisu/lnst"
	"github.com/SharmaRithik/tiramisu/schedule"
)

// OptimizationType selects which category of successor states Generate
// enumerates.
type OptimizationType int

const (
	Fusion OptimizationType = iota
	Tiling
	Interchange
	Unrolling
)

func (t OptimizationType) String() string {
	switch t {
	case Fusion:
		return "fusion"
	case Tiling:
		return "tiling"
	case Interchange:
		return "interchange"
	case Unrolling:
		return "unrolling"
	default:
		return fmt.Sprintf("OptimizationType(%d)", int(t))
	}
}

// OptimizationInfo describes one pending transformation. It is a plain
// JSON-round-trippable record with no pointers into any tree, so a
// search driver can journal decisions and replay them later.
type OptimizationInfo struct {
	Type OptimizationType `json:"type"`

	// Computations names every computation the transformation touches.
	// For Fusion it is exactly {Lhs, Rhs}; for the others it is every
	// computation whose schedule passes through the target node.
	Computations []string `json:"computations"`

	// Lhs and Rhs are set for Fusion only: the left sibling's rightmost
	// and the right sibling's leftmost computation, ordered Lhs before
	// Rhs within the fused band.
	Lhs string `json:"lhs,omitempty"`
	Rhs string `json:"rhs,omitempty"`

	// Level is the schedule output level the transformation starts at.
	// For Fusion it is the level of the two sibling loops; Apply fuses
	// levels 0 through Level, a shared depth of Level+1.
	Level int `json:"level"`

	// Factors holds the split sizes: one entry for Unrolling, two or
	// three for Tiling, none otherwise.
	Factors []int64 `json:"factors,omitempty"`

	// SecondLevel is the descendant level an Interchange swaps Level
	// with.
	SecondLevel int `json:"second_level,omitempty"`
}

// Candidate is one successor state: an independent deep copy of the input
// tree, a pointer to the transformation's target node inside that copy,
// and the single pending OptimizationInfo record.
type Candidate struct {
	Tree *lnst.LNSTNode
	Node *lnst.LNSTNode
	Info OptimizationInfo
}

// Apply resolves the named computations through ctx and executes the
// recorded transformation via the schedule algebra. Committing a replayed
// journal entry goes through the same path.
func (i *OptimizationInfo) Apply(ctx *ir.CompilationContext) error {
	lookup := func(name string) (*ir.Computation, error) {
		comp, ok := ctx.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: computation %q not found", compilerr.ErrUnboundReference, name)
		}
		return comp, nil
	}
	switch i.Type {
	case Fusion:
		lhs, err := lookup(i.Lhs)
		if err != nil {
			return err
		}
		rhs, err := lookup(i.Rhs)
		if err != nil {
			return err
		}
		return schedule.Fuse(lhs, rhs, i.Level+1, nil)
	case Tiling:
		for _, name := range i.Computations {
			comp, err := lookup(name)
			if err != nil {
				return err
			}
			switch len(i.Factors) {
			case 2:
				if err := schedule.Tile2D(comp, i.Level, i.Factors[0], i.Factors[1]); err != nil {
					return err
				}
			case 3:
				if err := schedule.Tile3D(comp, i.Level, i.Factors[0], i.Factors[1], i.Factors[2]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: tiling record carries %d factors", compilerr.ErrTilingArity, len(i.Factors))
			}
		}
		return nil
	case Interchange:
		for _, name := range i.Computations {
			comp, err := lookup(name)
			if err != nil {
				return err
			}
			if err := schedule.Interchange(comp, i.Level, i.SecondLevel); err != nil {
				return err
			}
		}
		return nil
	case Unrolling:
		for _, name := range i.Computations {
			comp, err := lookup(name)
			if err != nil {
				return err
			}
			if err := schedule.Unroll(comp, i.Level, i.Factors[0]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown optimization type %d", compilerr.ErrTilingArity, int(i.Type))
	}
}

// sortCandidates orders cands by a deterministic key so that two runs over
// structurally equal trees return the same slice, independent of any
// incidental generation-order change.
func sortCandidates(cands []*Candidate) {
	sort.SliceStable(cands, func(a, b int) bool {
		return candKey(cands[a]) < candKey(cands[b])
	})
}

func candKey(c *Candidate) string {
	return fmt.Sprintf("%d|%v|%s|%s|%d|%d|%v", int(c.Info.Type), c.Info.Computations, c.Info.Lhs, c.Info.Rhs, c.Info.Level, c.Info.SecondLevel, c.Info.Factors)
}
