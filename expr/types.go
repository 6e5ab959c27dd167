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

// Package expr implements the symbolic expression tree used as the value
// language of computations: typed scalar constants, named variables,
// arithmetic/comparison/logical operators, casts, ternary selects, and
// indexed buffer accesses. Trees are immutable once built.
package expr

import "fmt"

// Kind discriminates the variant an Expr node holds.
type Kind int

const (
	// KindConst is a typed scalar constant.
	KindConst Kind = iota

	// KindVar is a named variable reference (an iterator, a parameter, or
	// the result of substitution).
	KindVar

	// KindBinary is a binary arithmetic operator.
	KindBinary

	// KindUnary is a unary arithmetic operator.
	KindUnary

	// KindCompare is a comparison operator, producing a Bool-typed result.
	KindCompare

	// KindLogical is a logical (boolean) combinator.
	KindLogical

	// KindCast changes the element type of its single operand.
	KindCast

	// KindSelect is a ternary: Cond ? Then : Else.
	KindSelect

	// KindAccess is an indexed read of a named buffer or of an earlier
	// computation's result (a recurrence), by its output name.
	KindAccess
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "Const"
	case KindVar:
		return "Var"
	case KindBinary:
		return "Binary"
	case KindUnary:
		return "Unary"
	case KindCompare:
		return "Compare"
	case KindLogical:
		return "Logical"
	case KindCast:
		return "Cast"
	case KindSelect:
		return "Select"
	case KindAccess:
		return "Access"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is the element type carried by every Expr node.
type Type int

const (
	TypeUnknown Type = iota
	TypeBool
	TypeInt8
	TypeUInt8
	TypeInt32
	TypeUInt32
	TypeInt64
	TypeUInt64
	TypeFloat32
	TypeFloat64
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt8:
		return "int8"
	case TypeUInt8:
		return "uint8"
	case TypeInt32:
		return "int32"
	case TypeUInt32:
		return "uint32"
	case TypeInt64:
		return "int64"
	case TypeUInt64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// IsInteger reports whether t is one of the fixed-width integer types.
func (t Type) IsInteger() bool {
	switch t {
	case TypeInt8, TypeUInt8, TypeInt32, TypeUInt32, TypeInt64, TypeUInt64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether t is a signed integer type.
func (t Type) IsSigned() bool {
	switch t {
	case TypeInt8, TypeInt32, TypeInt64:
		return true
	default:
		return false
	}
}

// BitWidth returns the width in bits of an integer type, or 0 if t is not
// an integer type.
func (t Type) BitWidth() int {
	switch t {
	case TypeInt8, TypeUInt8:
		return 8
	case TypeInt32, TypeUInt32:
		return 32
	case TypeInt64, TypeUInt64:
		return 64
	default:
		return 0
	}
}

// BinOp enumerates binary arithmetic operators.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op BinOp) String() string {
	return [...]string{"+", "-", "*", "/", "%"}[op]
}

// UnOp enumerates unary arithmetic operators.
type UnOp int

const (
	Neg UnOp = iota
	BitNot
)

func (op UnOp) String() string {
	return [...]string{"-", "~"}[op]
}

// CmpOp enumerates comparison operators. Compare nodes always produce
// TypeBool.
type CmpOp int

const (
	Eq CmpOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op CmpOp) String() string {
	return [...]string{"==", "!=", "<", "<=", ">", ">="}[op]
}

// LogOp enumerates logical combinators over Bool-typed operands.
type LogOp int

const (
	And LogOp = iota
	Or
	Not
)

func (op LogOp) String() string {
	return [...]string{"&&", "||", "!"}[op]
}

// Expr is a single node of the symbolic expression tree. It follows a
// single-struct-with-discriminator shape (the fields that matter depend on
// Kind) rather than one Go type per variant, so that a tree can be built,
// traversed, and substituted without a type switch on the node's Go type —
// only on Kind.
//
// Expr is immutable: none of its exported fields are mutated after one of
// the New* constructors returns. Substitute and FoldConstants always
// return a new tree.
type Expr struct {
	Kind Kind
	Typ  Type

	// KindConst
	ConstVal     int64 // integer/bool constants; floats also carry bit pattern via ConstFloat
	ConstFloat   float64
	IsFloatConst bool

	// KindVar
	Name string

	// KindBinary / KindUnary
	BinOp BinOp
	UnOp  UnOp
	LHS   *Expr
	RHS   *Expr // nil for KindUnary

	// KindCompare
	CmpOp CmpOp

	// KindLogical
	LogOp LogOp

	// KindCast: Operand is LHS, target type is Typ.

	// KindSelect
	Cond *Expr
	Then *Expr
	Else *Expr

	// KindAccess
	Buffer  string
	Indices []*Expr
}

// NewConst builds an integer-typed constant node.
func NewConst(t Type, v int64) *Expr {
	return &Expr{Kind: KindConst, Typ: t, ConstVal: v}
}

// NewFloatConst builds a floating-point-typed constant node.
func NewFloatConst(t Type, v float64) *Expr {
	return &Expr{Kind: KindConst, Typ: t, ConstFloat: v, IsFloatConst: true}
}

// NewBool builds a boolean constant node.
func NewBool(v bool) *Expr {
	var i int64
	if v {
		i = 1
	}
	return &Expr{Kind: KindConst, Typ: TypeBool, ConstVal: i}
}

// NewVar builds a variable reference node of the given type.
func NewVar(name string, t Type) *Expr {
	return &Expr{Kind: KindVar, Typ: t, Name: name}
}

// NewBinary builds a binary arithmetic node. The result type is lhs.Typ.
func NewBinary(op BinOp, lhs, rhs *Expr) *Expr {
	return &Expr{Kind: KindBinary, Typ: lhs.Typ, BinOp: op, LHS: lhs, RHS: rhs}
}

// NewUnary builds a unary arithmetic node. The result type is operand.Typ.
func NewUnary(op UnOp, operand *Expr) *Expr {
	return &Expr{Kind: KindUnary, Typ: operand.Typ, UnOp: op, LHS: operand}
}

// NewCompare builds a comparison node; the result is always TypeBool.
func NewCompare(op CmpOp, lhs, rhs *Expr) *Expr {
	return &Expr{Kind: KindCompare, Typ: TypeBool, CmpOp: op, LHS: lhs, RHS: rhs}
}

// NewLogical builds a logical combinator node over TypeBool operands.
// For op == Not, rhs is ignored and may be nil.
func NewLogical(op LogOp, lhs, rhs *Expr) *Expr {
	return &Expr{Kind: KindLogical, Typ: TypeBool, LogOp: op, LHS: lhs, RHS: rhs}
}

// NewCast builds a node that reinterprets operand under type t.
func NewCast(t Type, operand *Expr) *Expr {
	return &Expr{Kind: KindCast, Typ: t, LHS: operand}
}

// NewSelect builds a ternary cond ? then : else node. The result type is
// then.Typ.
func NewSelect(cond, then, els *Expr) *Expr {
	return &Expr{Kind: KindSelect, Typ: then.Typ, Cond: cond, Then: then, Else: els}
}

// NewAccess builds an indexed-access node reading buffer[indices...].
func NewAccess(t Type, buffer string, indices ...*Expr) *Expr {
	return &Expr{Kind: KindAccess, Typ: t, Buffer: buffer, Indices: indices}
}
