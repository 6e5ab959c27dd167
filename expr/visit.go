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

// Visitor is called once per node during a Walk, pre-order. Returning false
// stops descent into that node's children (the node itself has already been
// visited).
type Visitor func(e *Expr) (descend bool)

// Walk traverses e and its children pre-order, calling visit on each node.
// A nil e is a no-op.
func Walk(e *Expr, visit Visitor) {
	if e == nil {
		return
	}
	if !visit(e) {
		return
	}
	switch e.Kind {
	case KindBinary, KindCompare, KindLogical:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case KindUnary, KindCast:
		Walk(e.LHS, visit)
	case KindSelect:
		Walk(e.Cond, visit)
		Walk(e.Then, visit)
		Walk(e.Else, visit)
	case KindAccess:
		for _, ix := range e.Indices {
			Walk(ix, visit)
		}
	case KindConst, KindVar:
		// leaves
	}
}

// FreeVars returns the set of distinct variable names referenced anywhere
// in e (KindVar nodes only — buffer names in KindAccess are not variables).
func FreeVars(e *Expr) map[string]bool {
	names := make(map[string]bool)
	Walk(e, func(n *Expr) bool {
		if n.Kind == KindVar {
			names[n.Name] = true
		}
		return true
	})
	return names
}

// ReferencedBuffers returns the set of distinct buffer/computation names
// read by KindAccess nodes anywhere in e.
func ReferencedBuffers(e *Expr) map[string]bool {
	names := make(map[string]bool)
	Walk(e, func(n *Expr) bool {
		if n.Kind == KindAccess {
			names[n.Buffer] = true
		}
		return true
	})
	return names
}
