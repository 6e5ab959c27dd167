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
	"strconv"
	"strings"
	"unicode"

	"github.com/SharmaRithik/tiramisu/compilerr"
	"github.com/SharmaRithik/tiramisu/expr"
)

// textual grammar, a narrow ISL-flavored adapter kept at the package
// boundary (internal code operates on structured values only):
//
//	Set  := "{" Ident "[" IdentList "]" ":" Constraints "}" | "{" Ident "[" IdentList "]" "}"
//	Map  := "{" Ident "[" IdentList "]" "->" Ident "[" IdentList "]" (":" Eqns)? "}"
//	Constraints := Range ("and" Range)*
//	Range := AffineExpr RelOp AffineExpr (RelOp AffineExpr)?
//	Eqns  := Ident "=" AffineExpr ("and" Ident "=" AffineExpr)*
//	AffineExpr := term (("+"|"-") term)*
//	term := factor (("*"|"/"|"%") factor)*
//	factor := Int | Ident | "(" AffineExpr ")" | "-" factor

type token struct {
	kind string // "ident", "int", "op", "eof"
	text string
}

type lexer struct {
	toks []token
	pos  int
}

func lex(s string) *lexer {
	var toks []token
	r := []rune(s)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(r) && (unicode.IsLetter(r[j]) || unicode.IsDigit(r[j]) || r[j] == '_') {
				j++
			}
			toks = append(toks, token{"ident", string(r[i:j])})
			i = j
		case unicode.IsDigit(c):
			j := i
			for j < len(r) && unicode.IsDigit(r[j]) {
				j++
			}
			toks = append(toks, token{"int", string(r[i:j])})
			i = j
		case c == '-' && i+1 < len(r) && r[i+1] == '>':
			toks = append(toks, token{"op", "->"})
			i += 2
		case c == '<' && i+1 < len(r) && r[i+1] == '=':
			toks = append(toks, token{"op", "<="})
			i += 2
		case c == '>' && i+1 < len(r) && r[i+1] == '=':
			toks = append(toks, token{"op", ">="})
			i += 2
		case c == '!' && i+1 < len(r) && r[i+1] == '=':
			toks = append(toks, token{"op", "!="})
			i += 2
		case strings.ContainsRune("{}[]():,+-*/%<>=", c):
			toks = append(toks, token{"op", string(c)})
			i++
		default:
			i++
		}
	}
	toks = append(toks, token{"eof", ""})
	return &lexer{toks: toks}
}

func (l *lexer) peek() token { return l.toks[l.pos] }
func (l *lexer) next() token { t := l.toks[l.pos]; l.pos++; return t }
func (l *lexer) is(s string) bool {
	t := l.peek()
	return (t.kind == "op" || t.kind == "ident") && t.text == s
}
func (l *lexer) expect(s string) error {
	if !l.is(s) {
		return fmt.Errorf("%w: expected %q, got %q", compilerr.ErrParse, s, l.peek().text)
	}
	l.next()
	return nil
}

func parseIdentList(l *lexer) ([]string, error) {
	if err := l.expect("["); err != nil {
		return nil, err
	}
	var names []string
	for {
		t := l.next()
		if t.kind != "ident" {
			return nil, fmt.Errorf("%w: expected identifier in dim list, got %q", compilerr.ErrParse, t.text)
		}
		names = append(names, t.text)
		if l.is(",") {
			l.next()
			continue
		}
		break
	}
	if err := l.expect("]"); err != nil {
		return nil, err
	}
	return names, nil
}

func parseAffine(l *lexer) (*expr.Expr, error) {
	lhs, err := parseTerm(l)
	if err != nil {
		return nil, err
	}
	for l.is("+") || l.is("-") {
		op := l.next().text
		rhs, err := parseTerm(l)
		if err != nil {
			return nil, err
		}
		if op == "+" {
			lhs = expr.NewBinary(expr.Add, lhs, rhs)
		} else {
			lhs = expr.NewBinary(expr.Sub, lhs, rhs)
		}
	}
	return lhs, nil
}

func parseTerm(l *lexer) (*expr.Expr, error) {
	lhs, err := parseFactor(l)
	if err != nil {
		return nil, err
	}
	for l.is("*") || l.is("/") || l.is("%") {
		op := l.next().text
		rhs, err := parseFactor(l)
		if err != nil {
			return nil, err
		}
		switch op {
		case "*":
			lhs = expr.NewBinary(expr.Mul, lhs, rhs)
		case "/":
			lhs = expr.NewBinary(expr.Div, lhs, rhs)
		case "%":
			lhs = expr.NewBinary(expr.Mod, lhs, rhs)
		}
	}
	return lhs, nil
}

func parseFactor(l *lexer) (*expr.Expr, error) {
	if l.is("-") {
		l.next()
		f, err := parseFactor(l)
		if err != nil {
			return nil, err
		}
		return expr.NewUnary(expr.Neg, f), nil
	}
	if l.is("(") {
		l.next()
		e, err := parseAffine(l)
		if err != nil {
			return nil, err
		}
		if err := l.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}
	t := l.next()
	switch t.kind {
	case "int":
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad integer %q", compilerr.ErrParse, t.text)
		}
		return expr.NewConst(expr.TypeInt64, v), nil
	case "ident":
		return expr.NewVar(t.text, expr.TypeInt64), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %q", compilerr.ErrParse, t.text)
	}
}

// Parse parses an iteration-space string such as
// "{S[i,j]: 0<=i<N and 0<=j<M}" into an IntegerSet.
func Parse(s string) (*IntegerSet, error) {
	l := lex(s)
	if err := l.expect("{"); err != nil {
		return nil, err
	}
	name := l.next()
	if name.kind != "ident" {
		return nil, fmt.Errorf("%w: expected tuple name", compilerr.ErrParse)
	}
	dims, err := parseIdentList(l)
	if err != nil {
		return nil, err
	}
	set := &IntegerSet{TupleName: name.text, Dims: dims, Bounds: map[string]Bound{}}
	if l.is(":") {
		l.next()
		if err := parseSetConstraints(l, set); err != nil {
			return nil, err
		}
	}
	if err := l.expect("}"); err != nil {
		return nil, err
	}
	set.Params = nonDimNames(set)
	return set, nil
}

func nonDimNames(set *IntegerSet) []string {
	dimSet := make(map[string]bool, len(set.Dims))
	for _, d := range set.Dims {
		dimSet[d] = true
	}
	seen := make(map[string]bool)
	var params []string
	collect := func(e *expr.Expr) {
		for n := range expr.FreeVars(e) {
			if !dimSet[n] && !seen[n] {
				seen[n] = true
				params = append(params, n)
			}
		}
	}
	for _, b := range set.Bounds {
		collect(b.Lower)
		collect(b.Upper)
	}
	collect(set.Extra)
	return params
}

func parseSetConstraints(l *lexer, set *IntegerSet) error {
	for {
		if err := parseRange(l, set); err != nil {
			return err
		}
		if l.is("and") {
			l.next()
			continue
		}
		break
	}
	return nil
}

var relOps = map[string]bool{"<=": true, "<": true, ">=": true, ">": true, "=": true, "!=": true}

func parseRange(l *lexer, set *IntegerSet) error {
	e1, err := parseAffine(l)
	if err != nil {
		return err
	}
	op1, err := expectRelOp(l)
	if err != nil {
		return err
	}
	e2, err := parseAffine(l)
	if err != nil {
		return err
	}
	// Optional second relation forms a range: e1 op1 e2 op2 e3.
	if l.peek().kind == "op" && relOps[l.peek().text] {
		op2, err := expectRelOp(l)
		if err != nil {
			return err
		}
		e3, err := parseAffine(l)
		if err != nil {
			return err
		}
		return applyRangeBound(set, e1, op1, e2, op2, e3)
	}
	return applySingleBound(set, e1, op1, e2)
}

func expectRelOp(l *lexer) (string, error) {
	t := l.peek()
	if t.kind != "op" || !relOps[t.text] {
		return "", fmt.Errorf("%w: expected relational operator, got %q", compilerr.ErrParse, t.text)
	}
	l.next()
	return t.text, nil
}

// applyRangeBound handles "lo OP1 dim OP2 hi" forms (dim is e2).
func applyRangeBound(set *IntegerSet, lo *expr.Expr, op1 string, mid *expr.Expr, op2 string, hi *expr.Expr) error {
	dimName, isDim := asDimVar(set, mid)
	if !isDim {
		return fmt.Errorf("%w: range constraint must center on a dimension", compilerr.ErrParse)
	}
	b := set.Bounds[dimName]
	lower := adjustLowerForOp(lo, op1)
	upper := adjustUpperForOp(hi, op2)
	if lower != nil {
		b.Lower = lower
	}
	if upper != nil {
		b.Upper = upper
	}
	set.Bounds[dimName] = b
	return nil
}

func applySingleBound(set *IntegerSet, lhs *expr.Expr, op string, rhs *expr.Expr) error {
	if dimName, ok := asDimVar(set, lhs); ok {
		b := set.Bounds[dimName]
		switch op {
		case "<=":
			b.Upper = rhs
		case "<":
			b.Upper = expr.FoldConstants(expr.NewBinary(expr.Sub, rhs, expr.NewConst(expr.TypeInt64, 1)))
		case ">=":
			b.Lower = rhs
		case ">":
			b.Lower = expr.FoldConstants(expr.NewBinary(expr.Add, rhs, expr.NewConst(expr.TypeInt64, 1)))
		case "=":
			b.Lower, b.Upper = rhs, rhs
		default:
			return fmt.Errorf("%w: unsupported operator %q", compilerr.ErrParse, op)
		}
		set.Bounds[dimName] = b
		return nil
	}
	if dimName, ok := asDimVar(set, rhs); ok {
		flipped := flip(op)
		b := set.Bounds[dimName]
		switch flipped {
		case "<=":
			b.Upper = lhs
		case "<":
			b.Upper = expr.FoldConstants(expr.NewBinary(expr.Sub, lhs, expr.NewConst(expr.TypeInt64, 1)))
		case ">=":
			b.Lower = lhs
		case ">":
			b.Lower = expr.FoldConstants(expr.NewBinary(expr.Add, lhs, expr.NewConst(expr.TypeInt64, 1)))
		case "=":
			b.Lower, b.Upper = lhs, lhs
		}
		set.Bounds[dimName] = b
		return nil
	}
	// Neither side is a bare dimension: keep as an extra boolean constraint.
	cmp := toCompare(lhs, op, rhs)
	if set.Extra == nil {
		set.Extra = cmp
	} else {
		set.Extra = expr.NewLogical(expr.And, set.Extra, cmp)
	}
	return nil
}

func flip(op string) string {
	switch op {
	case "<=":
		return ">="
	case "<":
		return ">"
	case ">=":
		return "<="
	case ">":
		return "<"
	default:
		return op
	}
}

func toCompare(lhs *expr.Expr, op string, rhs *expr.Expr) *expr.Expr {
	switch op {
	case "<=":
		return expr.NewCompare(expr.Le, lhs, rhs)
	case "<":
		return expr.NewCompare(expr.Lt, lhs, rhs)
	case ">=":
		return expr.NewCompare(expr.Ge, lhs, rhs)
	case ">":
		return expr.NewCompare(expr.Gt, lhs, rhs)
	case "!=":
		return expr.NewCompare(expr.Ne, lhs, rhs)
	default:
		return expr.NewCompare(expr.Eq, lhs, rhs)
	}
}

func adjustLowerForOp(lo *expr.Expr, op string) *expr.Expr {
	switch op {
	case "<=":
		return lo
	case "<":
		return expr.FoldConstants(expr.NewBinary(expr.Add, lo, expr.NewConst(expr.TypeInt64, 1)))
	default:
		return nil
	}
}

func adjustUpperForOp(hi *expr.Expr, op string) *expr.Expr {
	switch op {
	case "<=":
		return hi
	case "<":
		return expr.FoldConstants(expr.NewBinary(expr.Sub, hi, expr.NewConst(expr.TypeInt64, 1)))
	default:
		return nil
	}
}

func asDimVar(set *IntegerSet, e *expr.Expr) (string, bool) {
	if e.Kind != expr.KindVar {
		return "", false
	}
	for _, d := range set.Dims {
		if d == e.Name {
			return d, true
		}
	}
	return "", false
}

// ParseMap parses a schedule/access map string such as
// "{S[i,j] -> S[i0,i1,j] : i0 = i/32 and i1 = i%32}" into an AffineMap.
// An output dim with no defining equation defaults to an identity
// passthrough of the identically named input dim.
func ParseMap(s string) (*AffineMap, error) {
	l := lex(s)
	if err := l.expect("{"); err != nil {
		return nil, err
	}
	inName := l.next()
	if inName.kind != "ident" {
		return nil, fmt.Errorf("%w: expected input tuple name", compilerr.ErrParse)
	}
	inDims, err := parseIdentList(l)
	if err != nil {
		return nil, err
	}
	if err := l.expect("->"); err != nil {
		return nil, err
	}
	outName := l.next()
	if outName.kind != "ident" {
		return nil, fmt.Errorf("%w: expected output tuple name", compilerr.ErrParse)
	}
	outDims, err := parseIdentList(l)
	if err != nil {
		return nil, err
	}
	m := &AffineMap{
		InTupleName: inName.text, OutTupleName: outName.text,
		InDims: inDims, OutDims: outDims,
		OutExprs: make([]*expr.Expr, len(outDims)),
	}
	eqs := make(map[string]*expr.Expr)
	if l.is(":") {
		l.next()
		for {
			lhs := l.next()
			if lhs.kind != "ident" {
				return nil, fmt.Errorf("%w: expected output dim name in map equation", compilerr.ErrParse)
			}
			if err := l.expect("="); err != nil {
				return nil, err
			}
			rhs, err := parseAffine(l)
			if err != nil {
				return nil, err
			}
			eqs[lhs.text] = rhs
			if l.is("and") {
				l.next()
				continue
			}
			break
		}
	}
	if err := l.expect("}"); err != nil {
		return nil, err
	}
	m.OutBounds = make(map[string]Bound)
	m.InverseExprs = make(map[string]*expr.Expr)
	m.Unrolled = make(map[string]bool)
	for i, name := range outDims {
		if e, ok := eqs[name]; ok {
			m.OutExprs[i] = e
		} else {
			m.OutExprs[i] = expr.NewVar(name, expr.TypeInt64)
		}
	}
	// Input dims that appear as a bare passthrough output invert to
	// themselves; anything else stays absent until a schedule
	// transformation records its inverse incrementally.
	for _, e := range m.OutExprs {
		if e.Kind == expr.KindVar {
			for _, in := range m.InDims {
				if in == e.Name {
					m.InverseExprs[in] = expr.NewVar(in, expr.TypeInt64)
				}
			}
		}
	}
	m.Params = mapParams(m)
	return m, nil
}

func mapParams(m *AffineMap) []string {
	inSet := make(map[string]bool, len(m.InDims))
	for _, d := range m.InDims {
		inSet[d] = true
	}
	seen := make(map[string]bool)
	var params []string
	for _, e := range m.OutExprs {
		for n := range expr.FreeVars(e) {
			if !inSet[n] && !seen[n] {
				seen[n] = true
				params = append(params, n)
			}
		}
	}
	return params
}
