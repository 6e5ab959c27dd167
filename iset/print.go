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
	"fmt"
	"strings"

	"github.com/SharmaRithik/tiramisu/expr"
)

// ToString renders s back to the textual form Parse accepts.
// Parse(ToString(s)) is structurally equal to s up to whitespace and
// constraint re-ordering — the printer always emits dimensions in
// declaration order, so the ordering half of that guarantee is
// trivially met.
func (s *IntegerSet) ToString() string {
	s.checkLive()
	var sb strings.Builder
	fmt.Fprintf(&sb, "{%s[%s]", s.TupleName, strings.Join(s.Dims, ", "))
	var terms []string
	for _, d := range s.Dims {
		b, ok := s.Bounds[d]
		if !ok {
			continue
		}
		switch {
		case b.Lower != nil && b.Upper != nil:
			terms = append(terms, fmt.Sprintf("%s<=%s<=%s", b.Lower, d, b.Upper))
		case b.Lower != nil:
			terms = append(terms, fmt.Sprintf("%s<=%s", b.Lower, d))
		case b.Upper != nil:
			terms = append(terms, fmt.Sprintf("%s<=%s", d, b.Upper))
		}
	}
	if s.Extra != nil {
		terms = append(terms, s.Extra.String())
	}
	if len(terms) > 0 {
		fmt.Fprintf(&sb, ": %s", strings.Join(terms, " and "))
	}
	sb.WriteString("}")
	return sb.String()
}

// ToString renders m back to the textual form ParseMap accepts.
func (m *AffineMap) ToString() string {
	m.checkLive()
	var sb strings.Builder
	fmt.Fprintf(&sb, "{%s[%s] -> %s[%s]", m.InTupleName, strings.Join(m.InDims, ", "), m.OutTupleName, strings.Join(m.OutDims, ", "))
	var terms []string
	for i, name := range m.OutDims {
		e := m.OutExprs[i]
		if e != nil && e.Kind == expr.KindVar && e.Name == name {
			continue // identity passthrough, nothing to print
		}
		terms = append(terms, fmt.Sprintf("%s = %s", name, e))
	}
	if len(terms) > 0 {
		fmt.Fprintf(&sb, " : %s", strings.Join(terms, " and "))
	}
	sb.WriteString("}")
	return sb.String()
}
