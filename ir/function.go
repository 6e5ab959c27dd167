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

// Function groups computations that lower together into one statement
// tree. It owns its buffers and the expression trees of its computations;
// the computations themselves are also indexed by the owning library's
// CompilationContext.
type Function struct {
	Name      string
	Arguments []*Buffer

	library *Library

	computations []*Computation
	buffers      map[string]*Buffer

	// Stmt is populated by codegen after lowering: the typed statement
	// tree produced for this function.
	Stmt any
}

// NewFunction creates a function owned by lib and registers it there.
func NewFunction(lib *Library, name string) *Function {
	f := &Function{
		Name:    name,
		library: lib,
		buffers: make(map[string]*Buffer),
	}
	lib.addFunction(f)
	return f
}

func (f *Function) addComputation(c *Computation) {
	f.computations = append(f.computations, c)
}

// Computations returns the function's body: an unordered multiset of
// computations.
func (f *Function) Computations() []*Computation {
	return append([]*Computation(nil), f.computations...)
}

// AddArgument appends buf to the function's ordered argument list.
func (f *Function) AddArgument(buf *Buffer) {
	f.Arguments = append(f.Arguments, buf)
}

// Buffer looks up a buffer owned by this function by name.
func (f *Function) Buffer(name string) (*Buffer, bool) {
	b, ok := f.buffers[name]
	return b, ok
}

// AddParallelDimension delegates to the owning library's tag map.
func (f *Function) AddParallelDimension(compName string, level int) {
	f.library.AddParallelDimension(compName, level)
}

// AddVectorDimension delegates to the owning library's tag map.
func (f *Function) AddVectorDimension(compName string, level int) {
	f.library.AddVectorDimension(compName, level)
}

// Parallelize reports whether compName's tagged parallel level equals lev.
func (f *Function) Parallelize(compName string, lev int) bool {
	return f.library.Parallelize(compName, lev)
}

// Vectorize reports whether compName's tagged vector level equals lev.
func (f *Function) Vectorize(compName string, lev int) bool {
	return f.library.Vectorize(compName, lev)
}

// Library returns the owning library.
func (f *Function) Library() *Library { return f.library }
