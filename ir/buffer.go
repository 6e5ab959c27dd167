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

import "github.com/SharmaRithik/tiramisu/expr"

// BufferRole classifies how a Buffer is used.
type BufferRole int

const (
	RoleInput BufferRole = iota
	RoleOutput
	RoleTemporary
)

func (r BufferRole) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleTemporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// Buffer is a named memory object: a dimensionality, an ordered size per
// dimension, an element type, a storage role, and an optional preloaded
// data pointer, owned by exactly one Function.
type Buffer struct {
	Name     string
	Sizes    []int
	ElemType expr.Type
	Role     BufferRole

	// Data optionally preloads the buffer's contents. Its concrete shape
	// (a flat []float32, []uint8, etc.) is left to the caller; the core
	// never interprets it, only threads it through to the backend.
	Data any

	Function *Function
}

// Dims returns the buffer's dimensionality.
func (b *Buffer) Dims() int { return len(b.Sizes) }

// NewBuffer constructs a Buffer and registers it with fn. It does not add
// it to fn's argument list — call Function.AddArgument for that.
func NewBuffer(fn *Function, name string, sizes []int, elemType expr.Type, role BufferRole) *Buffer {
	b := &Buffer{
		Name:     name,
		Sizes:    append([]int(nil), sizes...),
		ElemType: elemType,
		Role:     role,
		Function: fn,
	}
	fn.buffers[name] = b
	return b
}
