package parser

import (
	"strconv"
	"strings"

	"github.com/veritab/veritab/ast"
)

// ParseExpr classifies one condition side as a constant, a bare variable
// reference, or an arithmetic combination. It is total: text that cannot
// be split cleanly is treated as a single variable reference and left for
// variable resolution to reject.
func ParseExpr(text string) ast.Expr {
	s := strings.TrimSpace(text)
	s = stripParens(s)
	if numberRe.MatchString(s) {
		v, _ := strconv.ParseFloat(s, 64)
		return &ast.Constant{Value: v, Text: s}
	}
	if !strings.ContainsAny(s, "+-*/") {
		return &ast.Variable{Name: s}
	}
	terms, ops := splitArith(s)
	if len(terms) < 2 {
		return &ast.Variable{Name: s}
	}
	comb := &ast.Combination{Ops: ops, Text: s}
	for _, t := range terms {
		comb.Terms = append(comb.Terms, ParseExpr(t))
	}
	return comb
}

// stripParens removes enclosing parentheses while the whole text is one
// parenthesized group.
func stripParens(s string) string {
	for isParenthesized(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// splitArith splits s into terms and operators at parenthesis depth zero.
// A '-' directly after an operator (or at the start) is unary and stays
// with its term, so "-5 * A" yields terms ["-5", "A"].
func splitArith(s string) (terms, ops []string) {
	depth := 0
	start := 0
	expectTerm := true
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '(':
			depth++
			expectTerm = false
		case ch == ')':
			depth--
		case depth == 0 && (ch == '+' || ch == '-' || ch == '*' || ch == '/'):
			if expectTerm && (ch == '+' || ch == '-') {
				// unary sign, part of the term
				continue
			}
			term := strings.TrimSpace(s[start:i])
			if term == "" {
				return nil, nil
			}
			terms = append(terms, term)
			ops = append(ops, string(ch))
			start = i + 1
			expectTerm = true
		default:
			if !isSpace(ch) {
				expectTerm = false
			}
		}
	}
	last := strings.TrimSpace(s[start:])
	if last == "" {
		return nil, nil
	}
	terms = append(terms, last)
	return terms, ops
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}
