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

package expr

import "math/big"

// Substitute returns a structurally new tree with every KindVar node whose
// Name is a key of subst replaced by the corresponding expression.
// Constant sub-trees produced by the replacement are folded where the fold
// is exact (see FoldConstants); e is never mutated.
func Substitute(e *Expr, subst map[string]*Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindVar:
		if r, ok := subst[e.Name]; ok {
			return r
		}
		return e
	case KindConst:
		return e
	case KindBinary:
		lhs := Substitute(e.LHS, subst)
		rhs := Substitute(e.RHS, subst)
		n := &Expr{Kind: KindBinary, Typ: e.Typ, BinOp: e.BinOp, LHS: lhs, RHS: rhs}
		return foldIfConst(n)
	case KindUnary:
		operand := Substitute(e.LHS, subst)
		n := &Expr{Kind: KindUnary, Typ: e.Typ, UnOp: e.UnOp, LHS: operand}
		return foldIfConst(n)
	case KindCompare:
		lhs := Substitute(e.LHS, subst)
		rhs := Substitute(e.RHS, subst)
		n := &Expr{Kind: KindCompare, Typ: TypeBool, CmpOp: e.CmpOp, LHS: lhs, RHS: rhs}
		return foldIfConst(n)
	case KindLogical:
		lhs := Substitute(e.LHS, subst)
		var rhs *Expr
		if e.RHS != nil {
			rhs = Substitute(e.RHS, subst)
		}
		return &Expr{Kind: KindLogical, Typ: TypeBool, LogOp: e.LogOp, LHS: lhs, RHS: rhs}
	case KindCast:
		operand := Substitute(e.LHS, subst)
		n := &Expr{Kind: KindCast, Typ: e.Typ, LHS: operand}
		return foldIfConst(n)
	case KindSelect:
		return &Expr{
			Kind: KindSelect, Typ: e.Typ,
			Cond: Substitute(e.Cond, subst),
			Then: Substitute(e.Then, subst),
			Else: Substitute(e.Else, subst),
		}
	case KindAccess:
		idx := make([]*Expr, len(e.Indices))
		for i, ix := range e.Indices {
			idx[i] = Substitute(ix, subst)
		}
		return &Expr{Kind: KindAccess, Typ: e.Typ, Buffer: e.Buffer, Indices: idx}
	default:
		return e
	}
}

// FoldConstants returns a new tree with every constant-foldable sub-tree
// replaced by its folded KindConst node. Integer folding is performed with
// arbitrary-precision arithmetic (math/big) and only committed back to the
// node's fixed-width integer type when the result fits without
// truncation; there is no overflow widening. A sub-tree that would
// overflow is left unfolded.
func FoldConstants(e *Expr) *Expr {
	return Substitute(e, nil)
}

// foldIfConst attempts to evaluate n when all of its operands are already
// KindConst. It returns n unchanged if folding is not applicable or would
// overflow n's type.
func foldIfConst(n *Expr) *Expr {
	switch n.Kind {
	case KindBinary:
		if n.LHS.Kind != KindConst || n.RHS.Kind != KindConst {
			return n
		}
		if n.Typ.IsInteger() {
			return foldIntBinary(n)
		}
		if n.LHS.IsFloatConst && n.RHS.IsFloatConst {
			return foldFloatBinary(n)
		}
		return n
	case KindUnary:
		if n.LHS.Kind != KindConst {
			return n
		}
		if n.Typ.IsInteger() {
			return foldIntUnary(n)
		}
		return n
	case KindCompare:
		if n.LHS.Kind != KindConst || n.RHS.Kind != KindConst {
			return n
		}
		if n.LHS.Typ.IsInteger() && n.RHS.Typ.IsInteger() {
			return foldIntCompare(n)
		}
		return n
	case KindCast:
		if n.LHS.Kind != KindConst || n.LHS.IsFloatConst || !n.Typ.IsInteger() {
			return n
		}
		return fitsOrUnfolded(n, n.Typ, big.NewInt(n.LHS.ConstVal))
	}
	return n
}

func foldIntBinary(n *Expr) *Expr {
	a := big.NewInt(n.LHS.ConstVal)
	b := big.NewInt(n.RHS.ConstVal)
	r := new(big.Int)
	switch n.BinOp {
	case Add:
		r.Add(a, b)
	case Sub:
		r.Sub(a, b)
	case Mul:
		r.Mul(a, b)
	case Div:
		if b.Sign() == 0 {
			return n
		}
		r.Quo(a, b)
	case Mod:
		if b.Sign() == 0 {
			return n
		}
		r.Rem(a, b)
	default:
		return n
	}
	return fitsOrUnfolded(n, n.Typ, r)
}

func foldIntUnary(n *Expr) *Expr {
	a := big.NewInt(n.LHS.ConstVal)
	r := new(big.Int)
	switch n.UnOp {
	case Neg:
		r.Neg(a)
	case BitNot:
		r.Not(a)
	default:
		return n
	}
	return fitsOrUnfolded(n, n.Typ, r)
}

func foldIntCompare(n *Expr) *Expr {
	a, b := n.LHS.ConstVal, n.RHS.ConstVal
	var result bool
	switch n.CmpOp {
	case Eq:
		result = a == b
	case Ne:
		result = a != b
	case Lt:
		result = a < b
	case Le:
		result = a <= b
	case Gt:
		result = a > b
	case Ge:
		result = a >= b
	}
	return NewBool(result)
}

func foldFloatBinary(n *Expr) *Expr {
	a, b := n.LHS.ConstFloat, n.RHS.ConstFloat
	var r float64
	switch n.BinOp {
	case Add:
		r = a + b
	case Sub:
		r = a - b
	case Mul:
		r = a * b
	case Div:
		if b == 0 {
			return n
		}
		r = a / b
	default:
		return n
	}
	return NewFloatConst(n.Typ, r)
}

// fitsOrUnfolded returns a KindConst node holding r truncated-and-checked
// against t's width/signedness, or falls back to orig (unfolded) when r
// does not fit exactly in t.
func fitsOrUnfolded(orig *Expr, t Type, r *big.Int) *Expr {
	width := t.BitWidth()
	if width == 0 {
		if orig != nil {
			return orig
		}
		return NewConst(t, r.Int64())
	}
	var lo, hi big.Int
	if t.IsSigned() {
		lo.Lsh(big.NewInt(1), uint(width-1))
		lo.Neg(&lo)
		hi.Lsh(big.NewInt(1), uint(width-1))
		hi.Sub(&hi, big.NewInt(1))
	} else {
		lo.SetInt64(0)
		hi.Lsh(big.NewInt(1), uint(width))
		hi.Sub(&hi, big.NewInt(1))
	}
	if r.Cmp(&lo) < 0 || r.Cmp(&hi) > 0 {
		if orig != nil {
			return orig
		}
		return NewConst(t, r.Int64())
	}
	return NewConst(t, r.Int64())
}
