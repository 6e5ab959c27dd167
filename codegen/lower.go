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

package codegen

import (
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/ir"
	"github.com/SharmaRithik/tiramisu/iset"
)

// Options tunes one Lower invocation.
type Options struct {
	// AfterFor, when non-nil, runs after each For level's body has been
	// lowered — a per-level bookkeeping hook. It never alters the tree.
	AfterFor func(level int, iterName string)
}

// Lower runs both lowering phases over every function of lib: build one
// polyhedral AST per function from its computations' (domain, schedule)
// pairs, then walk it emitting that function's typed statement tree,
// stored on the function.
// The per-function ASTs are retained on lib.AST.
func Lower(lib *ir.Library) error {
	return LowerWithOptions(lib, Options{})
}

// LowerWithOptions is Lower with explicit Options.
func LowerWithOptions(lib *ir.Library, opts Options) error {
	asts := make([]*iset.ASTNode, 0, len(lib.Functions()))
	for _, fn := range lib.Functions() {
		ast, err := lowerFunction(lib, fn, opts)
		if err != nil {
			return err
		}
		asts = append(asts, ast)
	}
	lib.AST = asts
	return nil
}

func lowerFunction(lib *ir.Library, fn *ir.Function, opts Options) (*iset.ASTNode, error) {
	comps := fn.Computations()
	if len(comps) == 0 {
		fn.Stmt = &Block{}
		return &iset.ASTNode{Kind: iset.ASTBlock}, nil
	}
	entries := make([]iset.ScheduleEntry, len(comps))
	for i, c := range comps {
		entries[i] = iset.ScheduleEntry{TupleName: c.Name, Domain: c.Domain, Schedule: c.Schedule}
	}
	ast, err := iset.BuildASTFromScheduleMap(entries)
	if err != nil {
		return nil, err
	}
	lw := &lowerer{lib: lib, fn: fn, opts: opts, bindings: make(map[string]*expr.Expr)}
	stmt, err := lw.node(ast)
	if err != nil {
		return nil, err
	}
	fn.Stmt = stmt
	return ast, nil
}

// lowerer carries the phase-2 walk state: the iterator stack, realized as
// the ordered list of open loop levels plus a name -> current AST
// expression binding map the leaf rewrite reads.
type lowerer struct {
	lib  *ir.Library
	fn   *ir.Function
	opts Options

	stack    []string
	bindings map[string]*expr.Expr
}

func (lw *lowerer) node(n *iset.ASTNode) (Stmt, error) {
	switch n.Kind {
	case iset.ASTFor:
		return lw.forNode(n)
	case iset.ASTIf:
		return lw.ifNode(n)
	case iset.ASTBlock:
		return lw.block(n.Body)
	case iset.ASTUser:
		return lw.leaf(n)
	default:
		return nil, fmt.Errorf("%w: unknown AST node kind %d", compilerr.ErrSolver, int(n.Kind))
	}
}

func (lw *lowerer) forNode(n *iset.ASTNode) (Stmt, error) {
	level := len(lw.stack)
	kind := lw.loopKind(n, level)

	if kind == LoopUnrolled {
		if stmt, ok, err := lw.expandUnrolled(n); err != nil {
			return nil, err
		} else if ok {
			return stmt, nil
		}
	}

	lw.push(n.IterName, expr.NewVar(n.IterName, expr.TypeInt64))
	body, err := lw.block(n.Body)
	lw.pop(n.IterName)
	if err != nil {
		return nil, err
	}
	if lw.opts.AfterFor != nil {
		lw.opts.AfterFor(level, n.IterName)
	}
	return &For{Iter: n.IterName, Lower: n.Lower, Upper: n.Upper, Kind: kind, Body: body}, nil
}

// expandUnrolled replaces an unroll-tagged For whose bounds are constants
// with factor copies of its body, the iterator bound to each constant in
// turn. Non-constant bounds fall back to a For with the unrolled kind.
func (lw *lowerer) expandUnrolled(n *iset.ASTNode) (Stmt, bool, error) {
	lo, loOK := constInt(n.Lower)
	hi, hiOK := constInt(n.Upper)
	if !loOK || !hiOK || hi < lo {
		return nil, false, nil
	}
	blk := &Block{}
	for v := lo; v <= hi; v++ {
		lw.push(n.IterName, expr.NewConst(expr.TypeInt64, v))
		body, err := lw.block(n.Body)
		lw.pop(n.IterName)
		if err != nil {
			return nil, false, err
		}
		blk.Stmts = append(blk.Stmts, body)
	}
	if lw.opts.AfterFor != nil {
		lw.opts.AfterFor(len(lw.stack), n.IterName)
	}
	return blk, true, nil
}

func (lw *lowerer) ifNode(n *iset.ASTNode) (Stmt, error) {
	then, err := lw.block(n.Then)
	if err != nil {
		return nil, err
	}
	var els Stmt
	if len(n.Else) > 0 {
		if els, err = lw.block(n.Else); err != nil {
			return nil, err
		}
	}
	return &If{Cond: expr.Substitute(n.Cond, lw.bindings), Then: then, Else: els}, nil
}

func (lw *lowerer) block(nodes []*iset.ASTNode) (Stmt, error) {
	if len(nodes) == 1 {
		return lw.node(nodes[0])
	}
	blk := &Block{Stmts: make([]Stmt, 0, len(nodes))}
	for _, n := range nodes {
		s, err := lw.node(n)
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	return blk, nil
}

// leaf is the per-domain callback: recover the computation by its
// tuple name, rewrite its access into concrete indices under the current
// iterator stack, store the index expression on the computation, and emit
// the typed assignment buffer[indices] = expression'.
func (lw *lowerer) leaf(n *iset.ASTNode) (Stmt, error) {
	comp, ok := lw.lib.Ctx.Lookup(n.TupleName)
	if !ok {
		return nil, fmt.Errorf("%w: AST leaf names unknown computation %q", compilerr.ErrUnboundReference, n.TupleName)
	}
	if comp.Access == nil {
		return nil, fmt.Errorf("%w: computation %q has no access relation", compilerr.ErrUnboundReference, comp.Name)
	}

	// Recover each original domain iterator from the current loop
	// variables through the schedule's inverse, then rewrite both the
	// access outputs and the value expression over those.
	env := make(map[string]*expr.Expr, len(comp.Domain.Dims))
	for _, d := range comp.Domain.Dims {
		inv, ok := comp.Schedule.InverseExprs[d]
		if !ok {
			return nil, fmt.Errorf("%w: schedule of %q has no inverse for iterator %q", compilerr.ErrSolver, comp.Name, d)
		}
		env[d] = expr.Substitute(inv, lw.bindings)
	}

	acc, err := iset.IntersectDomain(comp.Access, comp.Domain)
	if err != nil {
		return nil, err
	}
	indices := make([]*expr.Expr, len(acc.OutExprs))
	for i, e := range acc.OutExprs {
		indices[i] = expr.Substitute(e, env)
	}
	elemType := comp.Expression.Typ
	if buf, ok := lw.fn.Buffer(acc.OutTupleName); ok {
		elemType = buf.ElemType
	}
	comp.IndexExpr = expr.NewAccess(elemType, acc.OutTupleName, indices...)

	value := expr.Substitute(comp.Expression, env)
	return &Store{Buffer: acc.OutTupleName, Indices: indices, Value: value}, nil
}

// loopKind resolves the For node's execution attribute from the function's
// tag maps and the schedules' unroll metadata, checked against every
// computation whose leaf sits under this node.
func (lw *lowerer) loopKind(n *iset.ASTNode, level int) LoopKind {
	for _, name := range leafTuples(n) {
		comp, ok := lw.lib.Ctx.Lookup(name)
		if !ok {
			continue
		}
		switch {
		case lw.fn.Parallelize(name, level):
			return LoopParallel
		case lw.fn.Vectorize(name, level):
			return LoopVector
		case comp.Schedule.Unrolled[n.IterName]:
			return LoopUnrolled
		}
	}
	return LoopSerial
}

func leafTuples(n *iset.ASTNode) []string {
	var out []string
	var walk func(*iset.ASTNode)
	walk = func(node *iset.ASTNode) {
		if node.Kind == iset.ASTUser {
			out = append(out, node.TupleName)
			return
		}
		for _, c := range node.Body {
			walk(c)
		}
		for _, c := range node.Then {
			walk(c)
		}
		for _, c := range node.Else {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (lw *lowerer) push(name string, e *expr.Expr) {
	lw.stack = append(lw.stack, name)
	lw.bindings[name] = e
}

func (lw *lowerer) pop(name string) {
	lw.stack = lw.stack[:len(lw.stack)-1]
	delete(lw.bindings, name)
}

func constInt(e *expr.Expr) (int64, bool) {
	if e == nil || e.Kind != expr.KindConst || e.IsFloatConst {
		return 0, false
	}
	return e.ConstVal, true
}
