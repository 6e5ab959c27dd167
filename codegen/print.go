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
	goast "go/ast"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	"github.com/SharmaRithik/tiramisu/expr"
)

// Print renders s as Go-like pseudocode by building a throwaway go/ast
// tree and running go/printer over it. Debug and trace output only; the
// compiled artifact is the statement tree itself. Non-serial loops are
// rendered with their kind as a label on the for statement.
func Print(s Stmt) string {
	var buf strings.Builder
	fset := token.NewFileSet()
	for _, gs := range toGoStmts(s) {
		if err := printer.Fprint(&buf, fset, gs); err != nil {
			fmt.Fprintf(&buf, "<print error: %v>", err)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func toGoStmts(s Stmt) []goast.Stmt {
	switch st := s.(type) {
	case nil:
		return nil
	case *Block:
		var out []goast.Stmt
		for _, child := range st.Stmts {
			out = append(out, toGoStmts(child)...)
		}
		return out
	case *For:
		iter := goast.NewIdent(st.Iter)
		loop := &goast.ForStmt{
			Init: &goast.AssignStmt{
				Lhs: []goast.Expr{iter},
				Tok: token.DEFINE,
				Rhs: []goast.Expr{toGoExpr(st.Lower)},
			},
			Cond: &goast.BinaryExpr{X: iter, Op: token.LEQ, Y: toGoExpr(st.Upper)},
			Post: &goast.IncDecStmt{X: iter, Tok: token.INC},
			Body: &goast.BlockStmt{List: toGoStmts(st.Body)},
		}
		if st.Kind == LoopSerial {
			return []goast.Stmt{loop}
		}
		return []goast.Stmt{&goast.LabeledStmt{Label: goast.NewIdent(st.Kind.String()), Stmt: loop}}
	case *If:
		out := &goast.IfStmt{
			Cond: toGoExpr(st.Cond),
			Body: &goast.BlockStmt{List: toGoStmts(st.Then)},
		}
		if st.Else != nil {
			out.Else = &goast.BlockStmt{List: toGoStmts(st.Else)}
		}
		return []goast.Stmt{out}
	case *Store:
		return []goast.Stmt{&goast.AssignStmt{
			Lhs: []goast.Expr{indexChain(st.Buffer, st.Indices)},
			Tok: token.ASSIGN,
			Rhs: []goast.Expr{toGoExpr(st.Value)},
		}}
	case *Let:
		def := &goast.AssignStmt{
			Lhs: []goast.Expr{goast.NewIdent(st.Name)},
			Tok: token.DEFINE,
			Rhs: []goast.Expr{toGoExpr(st.Value)},
		}
		return append([]goast.Stmt{def}, toGoStmts(st.Body)...)
	default:
		return []goast.Stmt{&goast.ExprStmt{X: goast.NewIdent(fmt.Sprintf("unknownStmt(%T)", s))}}
	}
}

func indexChain(buffer string, indices []*expr.Expr) goast.Expr {
	var e goast.Expr = goast.NewIdent(buffer)
	for _, idx := range indices {
		e = &goast.IndexExpr{X: e, Index: toGoExpr(idx)}
	}
	return e
}

func toGoExpr(e *expr.Expr) goast.Expr {
	if e == nil {
		return goast.NewIdent("_")
	}
	switch e.Kind {
	case expr.KindConst:
		if e.IsFloatConst {
			return &goast.BasicLit{Kind: token.FLOAT, Value: strconv.FormatFloat(e.ConstFloat, 'g', -1, 64)}
		}
		if e.Typ == expr.TypeBool {
			return goast.NewIdent(strconv.FormatBool(e.ConstVal != 0))
		}
		if e.ConstVal < 0 {
			return &goast.UnaryExpr{Op: token.SUB, X: &goast.BasicLit{Kind: token.INT, Value: strconv.FormatInt(-e.ConstVal, 10)}}
		}
		return &goast.BasicLit{Kind: token.INT, Value: strconv.FormatInt(e.ConstVal, 10)}
	case expr.KindVar:
		return goast.NewIdent(e.Name)
	case expr.KindBinary:
		return &goast.BinaryExpr{X: toGoExpr(e.LHS), Op: binTok(e.BinOp), Y: toGoExpr(e.RHS)}
	case expr.KindUnary:
		op := token.SUB
		if e.UnOp == expr.BitNot {
			op = token.XOR
		}
		return &goast.UnaryExpr{Op: op, X: toGoExpr(e.LHS)}
	case expr.KindCompare:
		return &goast.BinaryExpr{X: toGoExpr(e.LHS), Op: cmpTok(e.CmpOp), Y: toGoExpr(e.RHS)}
	case expr.KindLogical:
		if e.LogOp == expr.Not {
			return &goast.UnaryExpr{Op: token.NOT, X: toGoExpr(e.LHS)}
		}
		op := token.LAND
		if e.LogOp == expr.Or {
			op = token.LOR
		}
		return &goast.BinaryExpr{X: toGoExpr(e.LHS), Op: op, Y: toGoExpr(e.RHS)}
	case expr.KindCast:
		return &goast.CallExpr{Fun: goast.NewIdent(e.Typ.String()), Args: []goast.Expr{toGoExpr(e.LHS)}}
	case expr.KindSelect:
		return &goast.CallExpr{
			Fun:  goast.NewIdent("select_"),
			Args: []goast.Expr{toGoExpr(e.Cond), toGoExpr(e.Then), toGoExpr(e.Else)},
		}
	case expr.KindAccess:
		return indexChain(e.Buffer, e.Indices)
	default:
		return goast.NewIdent("_")
	}
}

func binTok(op expr.BinOp) token.Token {
	switch op {
	case expr.Add:
		return token.ADD
	case expr.Sub:
		return token.SUB
	case expr.Mul:
		return token.MUL
	case expr.Div:
		return token.QUO
	default:
		return token.REM
	}
}

func cmpTok(op expr.CmpOp) token.Token {
	switch op {
	case expr.Eq:
		return token.EQL
	case expr.Ne:
		return token.NEQ
	case expr.Lt:
		return token.LSS
	case expr.Le:
		return token.LEQ
	case expr.Gt:
		return token.GTR
	default:
		return token.GEQ
	}
}
