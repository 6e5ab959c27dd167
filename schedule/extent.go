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

// Package schedule implements the schedule transformation algebra:
// split, tile, interchange, fuse, unroll, and the parallel/vector
// tagging operations, all built atop the iset facade's AffineMap and the
// expr arithmetic it shares with the rest of the pipeline. Every
// transformation follows one shape: build a candidate map by copying,
// validate it, and only on success replace the computation's live
// schedule.
package schedule

import "github.com/SharmaRithik/tiramisu/expr"

// staticExtent returns the size (Upper - Lower + 1) when both bounds are
// integer constants, and false otherwise.
func staticExtent(lower, upper *expr.Expr) (int64, bool) {
	lo, loOK := constInt(lower)
	hi, hiOK := constInt(upper)
	if !loOK || !hiOK {
		return 0, false
	}
	return hi - lo + 1, true
}

func constInt(e *expr.Expr) (int64, bool) {
	if e == nil || e.Kind != expr.KindConst || e.IsFloatConst {
		return 0, false
	}
	return e.ConstVal, true
}

// CanSplitIterator reports whether a dimension of the given extent can be
// split by factor: the factor must be positive, and the extent must
// either equal the factor exactly or be evenly divisible by it.
func CanSplitIterator(extent, factor int64) bool {
	if factor <= 0 || extent <= 0 {
		return false
	}
	if extent == factor {
		return true
	}
	return extent%factor == 0
}
