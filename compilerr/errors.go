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

// Package compilerr is the error taxonomy shared by every layer of the
// lowering pipeline. Each sentinel below is the target of
// errors.Is; concrete errors are produced with fmt.Errorf("...: %w", Sentinel)
// so callers can both match on the category and read a specific message.
//
// Propagation policy: every operation either succeeds wholesale or returns
// one of these errors having mutated nothing (IR edits operate on a copy
// and commit atomically) — see ir.Computation's transformation methods and
// schedule's rewrite functions.
package compilerr

import "errors"

var (
	// ErrParse marks a malformed iteration-space, map, or access string.
	ErrParse = errors.New("parse error")

	// ErrDuplicateName marks re-registration of a computation name.
	ErrDuplicateName = errors.New("duplicate computation name")

	// ErrScheduleTupleMismatch marks a schedule whose input/output tuple
	// name disagrees with the owning computation's name.
	ErrScheduleTupleMismatch = errors.New("schedule tuple name mismatch")

	// ErrInvalidFactor marks a split/tile/unroll factor that fails
	// can_split_iterator.
	ErrInvalidFactor = errors.New("invalid split factor")

	// ErrTilingArity marks tile/interchange target levels that are not
	// consecutive or not in range.
	ErrTilingArity = errors.New("tiling arity error")

	// ErrUnboundReference marks an expression referencing an iterator or
	// buffer not in scope.
	ErrUnboundReference = errors.New("unbound reference")

	// ErrSolver marks failure of the underlying integer-set facade.
	ErrSolver = errors.New("solver error")

	// ErrBackend marks rejection of the statement tree by the backend.
	ErrBackend = errors.New("backend error")
)
