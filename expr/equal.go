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

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b are structurally identical expression
// trees: same shape, same operators, same constants, same names. It is
// used by the schedule algebra's equivalence checks and by tests
// asserting round-trip/rewrite results.
func Equal(a, b *Expr) bool {
	return cmp.Equal(a, b)
}
