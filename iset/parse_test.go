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

package iset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/SharmaRithik/tiramisu/compilerr"
)

var ignoreHandles = cmpopts.IgnoreUnexported(IntegerSet{}, AffineMap{})

func TestParseSet(t *testing.T) {
	s, err := Parse("{S[i,j]: 0<=i<64 and 0<=j<=31}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.TupleName != "S" {
		t.Errorf("tuple = %q, want S", s.TupleName)
	}
	if len(s.Dims) != 2 || s.Dims[0] != "i" || s.Dims[1] != "j" {
		t.Errorf("dims = %v, want [i j]", s.Dims)
	}
	if b := s.Bounds["i"]; b.Lower.String() != "0" || b.Upper.String() != "63" {
		t.Errorf("i bounds = [%s, %s], want [0, 63]", b.Lower, b.Upper)
	}
	if b := s.Bounds["j"]; b.Lower.String() != "0" || b.Upper.String() != "31" {
		t.Errorf("j bounds = [%s, %s], want [0, 31]", b.Lower, b.Upper)
	}
}

func TestParseSymbolicBound(t *testing.T) {
	s, err := Parse("{S[i]: 0<=i<N}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Params) != 1 || s.Params[0] != "N" {
		t.Errorf("params = %v, want [N]", s.Params)
	}
	if up := s.Bounds["i"].Upper; up.String() != "(N - 1)" {
		t.Errorf("upper = %s, want (N - 1)", up)
	}
}

func TestParseRejectsMalformedStrings(t *testing.T) {
	for _, bad := range []string{
		"",
		"S[i]",
		"{S[i: 0<=i<4}",
		"{S[i] 0<=i<4}",
		"{[i]: 0<=i<4}",
	} {
		if _, err := Parse(bad); !errors.Is(err, compilerr.ErrParse) {
			t.Errorf("Parse(%q) = %v, want ErrParse", bad, err)
		}
	}
}

// Parse-then-print round-trips up to whitespace and constraint
// re-ordering. The printer normalizes, so one extra parse-print cycle
// must be a fixed point.
func TestSetRoundTrip(t *testing.T) {
	for _, src := range []string{
		"{S[i,j]: 0<=i<64 and 0<=j<32}",
		"{S0[i, j] :  0 <= i <= 1000 and 0<=j<=1000}",
		"{S[i]: 0<=i<N}",
		"{S[i,j,k]: 0<=i<8 and 0<=j<8 and 0<=k<8}",
	} {
		first, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		printed := first.ToString()
		second, err := Parse(printed)
		if err != nil {
			t.Fatalf("reparse(%q): %v", printed, err)
		}
		if diff := cmp.Diff(first, second, ignoreHandles); diff != "" {
			t.Errorf("round trip of %q changed the set:\n%s", src, diff)
		}
		if again := second.ToString(); again != printed {
			t.Errorf("printer not a fixed point: %q then %q", printed, again)
		}
	}
}

func TestMapRoundTrip(t *testing.T) {
	for _, src := range []string{
		"{S[i,j] -> buf0[i,j]}",
		"{S[i,j,k] -> C[i,j]}",
		"{S[i] -> S[c0] : c0 = i*2}",
	} {
		first, err := ParseMap(src)
		if err != nil {
			t.Fatalf("ParseMap(%q): %v", src, err)
		}
		printed := first.ToString()
		second, err := ParseMap(printed)
		if err != nil {
			t.Fatalf("reparse(%q): %v", printed, err)
		}
		if diff := cmp.Diff(first, second, ignoreHandles); diff != "" {
			t.Errorf("round trip of %q changed the map:\n%s", src, diff)
		}
	}
}
