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

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders e as a human-readable infix expression, for debugging and
// error messages only — it is not a wire format.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindConst:
		if e.IsFloatConst {
			return strconv.FormatFloat(e.ConstFloat, 'g', -1, 64)
		}
		if e.Typ == TypeBool {
			return strconv.FormatBool(e.ConstVal != 0)
		}
		return strconv.FormatInt(e.ConstVal, 10)
	case KindVar:
		return e.Name
	case KindBinary:
		return fmt.Sprintf("(%s %s %s)", e.LHS, e.BinOp, e.RHS)
	case KindUnary:
		return fmt.Sprintf("%s%s", e.UnOp, e.LHS)
	case KindCompare:
		return fmt.Sprintf("(%s %s %s)", e.LHS, e.CmpOp, e.RHS)
	case KindLogical:
		if e.LogOp == Not {
			return fmt.Sprintf("!%s", e.LHS)
		}
		return fmt.Sprintf("(%s %s %s)", e.LHS, e.LogOp, e.RHS)
	case KindCast:
		return fmt.Sprintf("(%s)%s", e.Typ, e.LHS)
	case KindSelect:
		return fmt.Sprintf("(%s ? %s : %s)", e.Cond, e.Then, e.Else)
	case KindAccess:
		idx := make([]string, len(e.Indices))
		for i, ix := range e.Indices {
			idx[i] = ix.String()
		}
		return fmt.Sprintf("%s[%s]", e.Buffer, strings.Join(idx, ", "))
	default:
		return fmt.Sprintf("<invalid Expr Kind=%d>", e.Kind)
	}
}
