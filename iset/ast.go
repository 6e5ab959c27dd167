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

// ASTNodeKind discriminates the polyhedral AST node shapes: For, If,
// Block, and the User (leaf) node that fires a computation.
type ASTNodeKind int

const (
	ASTFor ASTNodeKind = iota
	ASTIf
	ASTBlock
	ASTUser
)

// ASTNode is one node of the polyhedral AST produced by
// BuildASTFromScheduleMap. Component H's Phase 2 walks this tree; no
// behavior lives here beyond the structure itself — in the real ISL this
// structure is what a builder's leaf/after-for callbacks would be invoked
// against while the tree is visited, and since construction here is a
// single static pass (not ISL's incremental builder), this package folds
// that visitation into the one walk component H performs afterward.
type ASTNode struct {
	Kind ASTNodeKind

	// ASTFor
	IterName string
	Lower    *expr.Expr
	Upper    *expr.Expr
	Body     []*ASTNode

	// ASTIf
	Cond *expr.Expr
	Then []*ASTNode
	Else []*ASTNode

	// ASTUser
	TupleName string
}

// ScheduleEntry is one computation's (domain, schedule) pair, the input
// to BuildASTFromScheduleMap — the facade's stand-in for the union of
// every computation's time-processor space.
type ScheduleEntry struct {
	TupleName string
	Domain    *IntegerSet
	Schedule  *AffineMap
}

type leveledEntry struct {
	entry ScheduleEntry
	time  *IntegerSet
}

// BuildASTFromScheduleMap builds one shared polyhedral AST from the given
// computations' (domain, schedule) pairs. Computations whose schedule
// shares an iterator name and bound at a given depth are merged into a
// single For node at that depth — the same merge condition lnst.Build
// applies to its editable tree view — and computations that diverge
// become sibling For nodes.
func BuildASTFromScheduleMap(entries []ScheduleEntry) (*ASTNode, error) {
	leveled := make([]leveledEntry, len(entries))
	for i, e := range entries {
		ts, err := Apply(e.Schedule, e.Domain)
		if err != nil {
			return nil, fmt.Errorf("%w: building time-processor space for %q: %v", compilerr.ErrSolver, e.TupleName, err)
		}
		leveled[i] = leveledEntry{e, ts}
	}
	nodes, err := buildLevel(leveled, 0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &ASTNode{Kind: ASTBlock, Body: nodes}, nil
}

func buildLevel(items []leveledEntry, level int) ([]*ASTNode, error) {
	var nodes []*ASTNode
	var rest []leveledEntry
	for _, it := range items {
		if level >= len(it.entry.Schedule.OutDims) {
			nodes = append(nodes, &ASTNode{Kind: ASTUser, TupleName: it.entry.TupleName})
		} else {
			rest = append(rest, it)
		}
	}
	for _, group := range groupByLevelBound(rest, level) {
		dimName := group[0].entry.Schedule.OutDims[level]
		bound := group[0].time.Bounds[dimName]
		children, err := buildLevel(group, level+1)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &ASTNode{
			Kind: ASTFor, IterName: dimName,
			Lower: bound.Lower, Upper: bound.Upper,
			Body: children,
		})
	}
	return nodes, nil
}

// groupByLevelBound partitions items (all with a valid dim at level) into
// groups sharing the same iterator name and bound at that level,
// preserving first-seen order.
func groupByLevelBound(items []leveledEntry, level int) [][]leveledEntry {
	var groups [][]leveledEntry
	for _, it := range items {
		name := it.entry.Schedule.OutDims[level]
		bound := it.time.Bounds[name]
		placed := false
		for gi, g := range groups {
			rep := g[0]
			repName := rep.entry.Schedule.OutDims[level]
			repBound := rep.time.Bounds[repName]
			if name == repName && boundEqual(bound, repBound) {
				groups[gi] = append(groups[gi], it)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []leveledEntry{it})
		}
	}
	return groups
}

func boundEqual(a, b Bound) bool {
	return expr.Equal(a.Lower, b.Lower) && expr.Equal(a.Upper, b.Upper)
}
