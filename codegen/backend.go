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

// Package codegen lowers a library's computations to typed imperative
// statement trees: it builds one polyhedral AST per function from the
// union of its computations' time-processor spaces,
// then walks that AST rewriting each leaf's symbolic access into concrete
// array indexing. The statement node types here are the surface a native
// backend consumes; emission to an object file is the backend's job, this
// package stops at the statement tree.
package codegen

import (
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/ir"
)

// LoopKind is the execution attribute carried by a For statement.
type LoopKind int

const (
	LoopSerial LoopKind = iota
	LoopParallel
	LoopVector
	LoopUnrolled
)

func (k LoopKind) String() string {
	switch k {
	case LoopSerial:
		return "serial"
	case LoopParallel:
		return "parallel"
	case LoopVector:
		return "vector"
	case LoopUnrolled:
		return "unrolled"
	default:
		return fmt.Sprintf("LoopKind(%d)", int(k))
	}
}

// Stmt is one node of the typed statement tree handed to the backend.
type Stmt interface {
	stmtNode()
}

// For is a counted loop over [Lower, Upper] inclusive, with a loop-kind
// attribute the backend maps to its own pragmas or runtime calls.
type For struct {
	Iter  string
	Lower *expr.Expr
	Upper *expr.Expr
	Kind  LoopKind
	Body  Stmt
}

// If is a two-armed conditional; Else may be nil.
type If struct {
	Cond *expr.Expr
	Then Stmt
	Else Stmt
}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
}

// Store writes Value into Buffer at Indices.
type Store struct {
	Buffer  string
	Indices []*expr.Expr
	Value   *expr.Expr
}

// Let binds Name to Value for the duration of Body.
type Let struct {
	Name  string
	Value *expr.Expr
	Body  Stmt
}

func (*For) stmtNode()   {}
func (*If) stmtNode()    {}
func (*Block) stmtNode() {}
func (*Store) stmtNode() {}
func (*Let) stmtNode()   {}

// Target names the native target triple the backend compiles for.
type Target struct {
	Triple string
}

// ObjectCompiler is the backend's object-file compiler: it consumes one
// lowered function's statement tree (fn.Stmt) and writes native code. No
// implementation lives in this module.
type ObjectCompiler interface {
	Compile(fn *ir.Function, target Target, objPath string) error
}

// EmitObject lowers lib if it has not been lowered yet, then hands each
// function's statement tree to the backend compiler. A backend failure
// surfaces as ErrBackend with the function named.
func EmitObject(lib *ir.Library, compiler ObjectCompiler, target Target, objPath string) error {
	for _, fn := range lib.Functions() {
		if fn.Stmt == nil {
			if err := Lower(lib); err != nil {
				return err
			}
			break
		}
	}
	for _, fn := range lib.Functions() {
		if err := compiler.Compile(fn, target, objPath); err != nil {
			return fmt.Errorf("%w: compiling %q: %v", compilerr.ErrBackend, fn.Name, err)
		}
	}
	return nil
}
