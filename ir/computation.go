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
	"fmt"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
	"github.com/SharmaRithik/tiramisu/iset"
)

// Computation is a single named statement: an iteration domain, a
// symbolic value expression, an (initially identity) schedule, and an
// access relation binding it to a buffer. Invariants:
//
//  1. domain's tuple name == Name == both tuple names of schedule.
//  2. every iterator referenced by Expression or Access is declared in
//     Domain.
//  3. Access's output arity matches its target buffer's dimensionality.
type Computation struct {
	Name       string
	Domain     *iset.IntegerSet
	Expression *expr.Expr
	Schedule   *iset.AffineMap
	Access     *iset.AffineMap

	// IndexExpr is populated by codegen at AST-build time: the concrete
	// integer index expression used at this computation's AST leaf.
	IndexExpr *expr.Expr

	ctx      *CompilationContext
	function *Function

	tpSpace *iset.IntegerSet // time_processor_space cache
}

// NewComputation parses domainStr into a domain, derives the computation's
// name from its tuple name, registers it with ctx and fn, and sets an
// identity schedule. It fails with DuplicateName if ctx already has a
// computation with that name, or with UnboundReference if expression
// refers to a variable not declared in the domain.
func NewComputation(ctx *CompilationContext, fn *Function, expression *expr.Expr, domainStr string) (*Computation, error) {
	domain, err := iset.Parse(domainStr)
	if err != nil {
		return nil, err
	}
	c := &Computation{
		Name:       domain.TupleName,
		Domain:     domain,
		Expression: expression,
		ctx:        ctx,
		function:   fn,
	}
	if err := c.validateExpressionScope(); err != nil {
		return nil, err
	}
	if err := ctx.register(c); err != nil {
		return nil, err
	}
	fn.addComputation(c)
	c.Schedule = iset.IdentityFromSet(domain)
	return c, nil
}

func (c *Computation) validateExpressionScope() error {
	dims := make(map[string]bool, len(c.Domain.Dims))
	for _, d := range c.Domain.Dims {
		dims[d] = true
	}
	for name := range expr.FreeVars(c.Expression) {
		if !dims[name] {
			return fmt.Errorf("%w: variable %q in expression of %q is not declared in its domain", compilerr.ErrUnboundReference, name, c.Name)
		}
	}
	return nil
}

// SetAccess parses accessStr and replaces Access. The map's input tuple
// name must equal c.Name; if buf is non-nil, the map's output arity must
// equal buf.Dims().
func (c *Computation) SetAccess(accessStr string, buf *Buffer) error {
	m, err := iset.ParseMap(accessStr)
	if err != nil {
		return err
	}
	if m.InTupleName != c.Name {
		return fmt.Errorf("%w: access input tuple %q does not match computation %q", compilerr.ErrUnboundReference, m.InTupleName, c.Name)
	}
	if buf != nil && len(m.OutDims) != buf.Dims() {
		return fmt.Errorf("%w: access writes %d dims but buffer %q has %d", compilerr.ErrUnboundReference, len(m.OutDims), buf.Name, buf.Dims())
	}
	c.Access = m
	return nil
}

// SetSchedule replaces c.Schedule with m (or, for SetScheduleString, the
// map parsed from s). Both require the map's input and output tuple names
// to equal c.Name, failing with ScheduleTupleMismatch otherwise. The
// edit is atomic: on error c.Schedule is untouched.
func (c *Computation) SetSchedule(m *iset.AffineMap) error {
	if m.InTupleName != c.Name || m.OutTupleName != c.Name {
		return fmt.Errorf("%w: schedule tuple (%q -> %q) does not match computation %q",
			compilerr.ErrScheduleTupleMismatch, m.InTupleName, m.OutTupleName, c.Name)
	}
	if c.ctx.AutoDataMapping && c.Access != nil {
		// Access is always expressed over Domain's original dims, which a
		// schedule edit never changes, so the access map itself needs no
		// rewrite — but it is re-validated against the (still current)
		// domain so a caller is told immediately if a prior edit left it
		// inconsistent, rather than failing much later at lowering time.
		if _, err := iset.IntersectDomain(c.Access, c.Domain); err != nil {
			return err
		}
	}
	c.Schedule = m
	c.tpSpace = nil
	return nil
}

// SetScheduleString parses s and calls SetSchedule.
func (c *Computation) SetScheduleString(s string) error {
	m, err := iset.ParseMap(s)
	if err != nil {
		return err
	}
	return c.SetSchedule(m)
}

// TimeProcessorSpace returns domain ∘ schedule, caching the result until
// the schedule next changes.
func (c *Computation) TimeProcessorSpace() (*iset.IntegerSet, error) {
	if c.tpSpace != nil {
		return c.tpSpace, nil
	}
	ts, err := iset.Apply(c.Schedule, c.Domain)
	if err != nil {
		return nil, err
	}
	c.tpSpace = ts
	return ts, nil
}

// Function returns the owning function.
func (c *Computation) Function() *Function { return c.function }

// Context returns the compilation context this computation is registered
// in.
func (c *Computation) Context() *CompilationContext { return c.ctx }
