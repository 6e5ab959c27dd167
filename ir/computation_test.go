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

package ir

import (
	"errors"
	"testing"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
)

func newFixture(t *testing.T) (*CompilationContext, *Library, *Function) {
	t.Helper()
	ctx := NewCompilationContext()
	lib := NewLibrary("lib", ctx)
	fn := NewFunction(lib, "fn")
	return ctx, lib, fn
}

func TestComputationDerivesNameAndIdentitySchedule(t *testing.T) {
	ctx, _, fn := newFixture(t)
	comp, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i,j]: 0<=i<8 and 0<=j<4}")
	if err != nil {
		t.Fatalf("NewComputation: %v", err)
	}
	if comp.Name != "S" || comp.Domain.TupleName != "S" {
		t.Errorf("name/tuple = %q/%q, want S/S", comp.Name, comp.Domain.TupleName)
	}
	if comp.Schedule.InTupleName != "S" || comp.Schedule.OutTupleName != "S" {
		t.Errorf("schedule tuples = %q -> %q, want S -> S", comp.Schedule.InTupleName, comp.Schedule.OutTupleName)
	}
	if len(comp.Schedule.OutDims) != 2 {
		t.Errorf("identity schedule arity = %d, want 2", len(comp.Schedule.OutDims))
	}
	if got, ok := ctx.Lookup("S"); !ok || got != comp {
		t.Errorf("directory does not resolve S")
	}
	ts, err := comp.TimeProcessorSpace()
	if err != nil {
		t.Fatalf("TimeProcessorSpace: %v", err)
	}
	if ts.IsEmpty() {
		t.Errorf("identity image of non-empty domain is empty")
	}
}

// Declaring a second computation with the same tuple name fails on the
// second declaration.
func TestDuplicateNameRejected(t *testing.T) {
	ctx, _, fn := newFixture(t)
	if _, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i]: 0<=i<8}"); err != nil {
		t.Fatalf("first NewComputation: %v", err)
	}
	_, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 1), "{S[j]: 0<=j<4}")
	if !errors.Is(err, compilerr.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
	if len(fn.Computations()) != 1 {
		t.Errorf("failed declaration still registered with the function")
	}
}

func TestExpressionScopeValidated(t *testing.T) {
	ctx, _, fn := newFixture(t)
	_, err := NewComputation(ctx, fn, expr.NewVar("q", expr.TypeInt64), "{S[i]: 0<=i<8}")
	if !errors.Is(err, compilerr.ErrUnboundReference) {
		t.Fatalf("err = %v, want ErrUnboundReference", err)
	}
	if _, ok := ctx.Lookup("S"); ok {
		t.Errorf("rejected computation leaked into the directory")
	}
}

func TestSetScheduleValidatesTupleNames(t *testing.T) {
	ctx, _, fn := newFixture(t)
	comp, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i]: 0<=i<8}")
	if err != nil {
		t.Fatalf("NewComputation: %v", err)
	}
	orig := comp.Schedule
	err = comp.SetScheduleString("{S[i] -> T[i]}")
	if !errors.Is(err, compilerr.ErrScheduleTupleMismatch) {
		t.Fatalf("err = %v, want ErrScheduleTupleMismatch", err)
	}
	if comp.Schedule != orig {
		t.Errorf("schedule replaced despite tuple mismatch")
	}
	if err := comp.SetScheduleString("{S[i] -> S[i]}"); err != nil {
		t.Fatalf("valid SetScheduleString: %v", err)
	}
}

func TestSetAccessChecksArityAndTuple(t *testing.T) {
	ctx, _, fn := newFixture(t)
	comp, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i,j]: 0<=i<8 and 0<=j<8}")
	if err != nil {
		t.Fatalf("NewComputation: %v", err)
	}
	buf := NewBuffer(fn, "B", []int{8, 8}, expr.TypeInt32, RoleOutput)

	if err := comp.SetAccess("{T[i,j] -> B[i,j]}", buf); !errors.Is(err, compilerr.ErrUnboundReference) {
		t.Errorf("wrong input tuple: err = %v, want ErrUnboundReference", err)
	}
	if err := comp.SetAccess("{S[i,j] -> B[i]}", buf); !errors.Is(err, compilerr.ErrUnboundReference) {
		t.Errorf("wrong arity: err = %v, want ErrUnboundReference", err)
	}
	if err := comp.SetAccess("{S[i,j] -> B[i,j]}", buf); err != nil {
		t.Errorf("valid access: %v", err)
	}
}

func TestBufferRegistrationAndArguments(t *testing.T) {
	_, _, fn := newFixture(t)
	buf := NewBuffer(fn, "B", []int{4, 4, 2}, expr.TypeFloat64, RoleTemporary)
	if buf.Dims() != 3 {
		t.Errorf("Dims = %d, want 3", buf.Dims())
	}
	got, ok := fn.Buffer("B")
	if !ok || got != buf {
		t.Errorf("function does not resolve buffer B")
	}
	fn.AddArgument(buf)
	if len(fn.Arguments) != 1 || fn.Arguments[0] != buf {
		t.Errorf("argument list = %v", fn.Arguments)
	}
}

func TestParallelVectorTagsHoldOneLevelEach(t *testing.T) {
	_, _, fn := newFixture(t)
	fn.AddParallelDimension("S", 1)
	fn.AddVectorDimension("S", 3)
	if !fn.Parallelize("S", 1) || fn.Parallelize("S", 0) {
		t.Errorf("parallel tag lookup wrong")
	}
	if !fn.Vectorize("S", 3) || fn.Vectorize("S", 1) {
		t.Errorf("vector tag lookup wrong")
	}
	fn.AddParallelDimension("S", 2)
	if fn.Parallelize("S", 1) || !fn.Parallelize("S", 2) {
		t.Errorf("re-tagging did not replace the stored level")
	}
	if fn.Parallelize("T", 2) {
		t.Errorf("untagged computation reports a parallel level")
	}
}

func TestLibraryCloseUnregistersNames(t *testing.T) {
	ctx := NewCompilationContext()
	lib := NewLibrary("lib", ctx)
	fn := NewFunction(lib, "fn")
	if _, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i]: 0<=i<8}"); err != nil {
		t.Fatalf("NewComputation: %v", err)
	}
	lib.Close()
	if _, ok := ctx.Lookup("S"); ok {
		t.Errorf("name still resolvable after Close")
	}
	if _, err := NewComputation(ctx, fn, expr.NewConst(expr.TypeInt32, 0), "{S[i]: 0<=i<8}"); err != nil {
		t.Errorf("name not reusable after Close: %v", err)
	}
}

func TestDefaultContextHelpers(t *testing.T) {
	orig := Default().AutoDataMapping
	defer SetAutoDataMapping(orig)
	SetAutoDataMapping(false)
	if Default().AutoDataMapping {
		t.Errorf("SetAutoDataMapping(false) not visible through Default()")
	}
}
