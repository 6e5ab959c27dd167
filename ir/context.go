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

// Package ir implements the computation IR: named statements with a
// domain/expression/schedule/access, grouped into functions and
// libraries, plus the buffer/argument model.
package ir

import (
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"golang.org/x/sys/cpu"
)

// CompilationContext carries the state that would otherwise be process
// globals: the auto-data-mapping flag, the debug-trace flag, and the
// computation-name directory, passed down through constructors.
//
// The directory is logically process-wide (expressions may reference any
// earlier computation by name, which is how recurrences resolve) but is
// held here rather than as a package global so that two independent
// compilations never collide. It is a weak index: Library.Close removes
// its own entries without touching ownership.
type CompilationContext struct {
	// AutoDataMapping, when true, makes a schedule edit re-validate the
	// edited computation's access against its (unchanged) domain; when
	// false the caller must call SetAccess explicitly after every
	// schedule edit.
	AutoDataMapping bool

	// Trace gates debug tracing in the schedule algebra for this
	// compilation only; the DEBUG_SCHEDULE environment variable enables it
	// process-wide. The candidate generator does not read it; it traces
	// through its own Generator.Trace sink.
	Trace bool

	directory map[string]*Computation
}

// NewCompilationContext returns a context with AutoDataMapping enabled.
func NewCompilationContext() *CompilationContext {
	return &CompilationContext{
		AutoDataMapping: true,
		directory:       make(map[string]*Computation),
	}
}

// X86Features mirrors the exported boolean feature flags of
// golang.org/x/sys/cpu.X86, which has no named type of its own.
type X86Features struct {
	HasAES              bool
	HasADX              bool
	HasAVX              bool
	HasAVX2             bool
	HasAVX512           bool
	HasAVX512F          bool
	HasAVX512CD         bool
	HasAVX512ER         bool
	HasAVX512PF         bool
	HasAVX512VL         bool
	HasAVX512BW         bool
	HasAVX512DQ         bool
	HasAVX512IFMA       bool
	HasAVX512VBMI       bool
	HasAVX5124VNNIW     bool
	HasAVX5124FMAPS     bool
	HasAVX512VPOPCNTDQ  bool
	HasAVX512VPCLMULQDQ bool
	HasAVX512VNNI       bool
	HasAVX512GFNI       bool
	HasAVX512VAES       bool
	HasAVX512VBMI2      bool
	HasAVX512BITALG     bool
	HasAVX512BF16       bool
	HasAMXTile          bool
	HasAMXInt8          bool
	HasAMXBF16          bool
	HasBMI1             bool
	HasBMI2             bool
	HasCX16             bool
	HasERMS             bool
	HasFMA              bool
	HasOSXSAVE          bool
	HasPCLMULQDQ        bool
	HasPOPCNT           bool
	HasRDRAND           bool
	HasRDSEED           bool
	HasSSE2             bool
	HasSSE3             bool
	HasSSSE3            bool
	HasSSE41            bool
	HasSSE42            bool
}

// HostFeatures reports a snapshot of the host's x86 feature set. It is
// informational only: nothing in this module calls it, and it never
// affects lowering.
func (c *CompilationContext) HostFeatures() X86Features {
	x := cpu.X86
	return X86Features{
		HasAES:              x.HasAES,
		HasADX:              x.HasADX,
		HasAVX:              x.HasAVX,
		HasAVX2:             x.HasAVX2,
		HasAVX512:           x.HasAVX512,
		HasAVX512F:          x.HasAVX512F,
		HasAVX512CD:         x.HasAVX512CD,
		HasAVX512ER:         x.HasAVX512ER,
		HasAVX512PF:         x.HasAVX512PF,
		HasAVX512VL:         x.HasAVX512VL,
		HasAVX512BW:         x.HasAVX512BW,
		HasAVX512DQ:         x.HasAVX512DQ,
		HasAVX512IFMA:       x.HasAVX512IFMA,
		HasAVX512VBMI:       x.HasAVX512VBMI,
		HasAVX5124VNNIW:     x.HasAVX5124VNNIW,
		HasAVX5124FMAPS:     x.HasAVX5124FMAPS,
		HasAVX512VPOPCNTDQ:  x.HasAVX512VPOPCNTDQ,
		HasAVX512VPCLMULQDQ: x.HasAVX512VPCLMULQDQ,
		HasAVX512VNNI:       x.HasAVX512VNNI,
		HasAVX512GFNI:       x.HasAVX512GFNI,
		HasAVX512VAES:       x.HasAVX512VAES,
		HasAVX512VBMI2:      x.HasAVX512VBMI2,
		HasAVX512BITALG:     x.HasAVX512BITALG,
		HasAVX512BF16:       x.HasAVX512BF16,
		HasAMXTile:          x.HasAMXTile,
		HasAMXInt8:          x.HasAMXInt8,
		HasAMXBF16:          x.HasAMXBF16,
		HasBMI1:             x.HasBMI1,
		HasBMI2:             x.HasBMI2,
		HasCX16:             x.HasCX16,
		HasERMS:             x.HasERMS,
		HasFMA:              x.HasFMA,
		HasOSXSAVE:          x.HasOSXSAVE,
		HasPCLMULQDQ:        x.HasPCLMULQDQ,
		HasPOPCNT:           x.HasPOPCNT,
		HasRDRAND:           x.HasRDRAND,
		HasRDSEED:           x.HasRDSEED,
		HasSSE2:             x.HasSSE2,
		HasSSE3:             x.HasSSE3,
		HasSSSE3:            x.HasSSSE3,
		HasSSE41:            x.HasSSE41,
		HasSSE42:            x.HasSSE42,
	}
}

func (c *CompilationContext) register(comp *Computation) error {
	if _, exists := c.directory[comp.Name]; exists {
		return fmt.Errorf("%w: %q", compilerr.ErrDuplicateName, comp.Name)
	}
	c.directory[comp.Name] = comp
	return nil
}

func (c *CompilationContext) unregister(name string) {
	delete(c.directory, name)
}

// Lookup resolves a computation by name, the way an expression's indexed
// access resolves a recurrence reference to an earlier computation.
func (c *CompilationContext) Lookup(name string) (*Computation, bool) {
	comp, ok := c.directory[name]
	return comp, ok
}

// defaultContext is the process-wide context used by the package-level
// helpers below, for callers that don't thread their own.
var defaultContext = NewCompilationContext()

// Default returns the process-wide default CompilationContext.
func Default() *CompilationContext { return defaultContext }

// SetAutoDataMapping sets the flag on the process-wide default context.
func SetAutoDataMapping(v bool) { defaultContext.AutoDataMapping = v }
