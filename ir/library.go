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

// Library groups an ordered list of functions that share one
// CompilationContext. It owns its functions exclusively. codegen builds
// one polyhedral AST per function, not one AST for the whole library.
type Library struct {
	Name string
	Ctx  *CompilationContext

	functions []*Function

	// parallelLevel/vectorLevel record at most one tagged level per
	// computation name; re-tagging replaces the stored level. Function's
	// tag methods delegate here.
	parallelLevel map[string]int
	vectorLevel   map[string]int

	// AST is populated by codegen.Lower: a []*iset.ASTNode holding one
	// polyhedral AST per function, in function order, each built from the
	// union of that function's computations' time-processor spaces.
	AST any
}

// NewLibrary creates a library with a fresh CompilationContext, or reuses
// ctx if non-nil. A search driver running generators in parallel must
// give each its own context; contexts are not thread-safe.
func NewLibrary(name string, ctx *CompilationContext) *Library {
	if ctx == nil {
		ctx = NewCompilationContext()
	}
	return &Library{
		Name:          name,
		Ctx:           ctx,
		parallelLevel: make(map[string]int),
		vectorLevel:   make(map[string]int),
	}
}

// AddParallelDimension records that compName's schedule level should be
// tagged parallel, replacing any previously recorded level.
func (l *Library) AddParallelDimension(compName string, level int) {
	l.parallelLevel[compName] = level
}

// AddVectorDimension records that compName's schedule level should be
// tagged vector, replacing any previously recorded level.
func (l *Library) AddVectorDimension(compName string, level int) {
	l.vectorLevel[compName] = level
}

// Parallelize reports whether compName's tagged parallel level equals lev.
func (l *Library) Parallelize(compName string, lev int) bool {
	stored, ok := l.parallelLevel[compName]
	return ok && stored == lev
}

// Vectorize reports whether compName's tagged vector level equals lev.
func (l *Library) Vectorize(compName string, lev int) bool {
	stored, ok := l.vectorLevel[compName]
	return ok && stored == lev
}

func (l *Library) addFunction(f *Function) {
	l.functions = append(l.functions, f)
}

// Functions returns the library's ordered function list.
func (l *Library) Functions() []*Function {
	return append([]*Function(nil), l.functions...)
}

// Close removes every computation owned by this library's functions from
// the shared CompilationContext directory. The directory is a weak
// index: Close never touches the computations, buffers, or functions
// themselves, only the name lookup used to resolve recurrence
// references.
func (l *Library) Close() {
	for _, f := range l.functions {
		for _, c := range f.computations {
			l.Ctx.unregister(c.Name)
		}
	}
}
