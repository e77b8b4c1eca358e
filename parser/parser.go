// Package parser turns formula text into an ordered condition list.
//
// The grammar is deliberately small: comparison clauses joined by
// case-insensitive AND/OR keywords, with optional [Variable Name] bracket
// syntax and bracket-free arithmetic on either side. There is no operator
// precedence between AND and OR; conditions evaluate strictly left to
// right, preserving the behavior formulas were authored under.
package parser

import (
	"regexp"
	"strings"

	"github.com/veritab/veritab/ast"
)

var (
	bracketRe = regexp.MustCompile(`\[([^\[\]]+)\]`)
	logicalRe = regexp.MustCompile(`(?i)\s+(AND|OR)\s+`)
	compareRe = regexp.MustCompile(`>=|<=|==|!=|>|<`)
	numberRe  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
)

// Parse splits formula text into conditions. Malformed clauses (no
// comparison operator, or an empty side as in ">10") are skipped rather
// than raised; a wholly unparsable or empty formula yields an empty list,
// which callers treat as "invalid formula".
func Parse(text string) []ast.Condition {
	text = bracketRe.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	clauses, keywords := splitLogical(text)

	var conds []ast.Condition
	for i, clause := range clauses {
		loc := compareRe.FindStringIndex(clause)
		if loc == nil {
			continue
		}
		left := strings.TrimSpace(clause[:loc[0]])
		right := strings.TrimSpace(clause[loc[1]:])
		if left == "" || right == "" {
			continue
		}
		if len(conds) > 0 && i > 0 {
			conds[len(conds)-1].Logical = ast.LogicalOp(strings.ToUpper(keywords[i-1]))
		}
		conds = append(conds, ast.Condition{
			Left:  normalizeSide(left),
			Op:    ast.CompareOp(clause[loc[0]:loc[1]]),
			Right: normalizeSide(right),
		})
	}
	return conds
}

// splitLogical splits text on AND/OR keywords, returning the clauses and
// the keyword preceding each clause after the first.
func splitLogical(text string) (clauses, keywords []string) {
	matches := logicalRe.FindAllStringSubmatchIndex(text, -1)
	prev := 0
	for _, m := range matches {
		clauses = append(clauses, text[prev:m[0]])
		keywords = append(keywords, text[m[2]:m[3]])
		prev = m[1]
	}
	clauses = append(clauses, text[prev:])
	return clauses, keywords
}

// normalizeSide canonicalizes one side of a condition: whitespace is
// collapsed, bare numbers pass through, and an unparenthesized arithmetic
// group is wrapped so downstream substitution sees an explicit boundary.
func normalizeSide(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || numberRe.MatchString(s) {
		return s
	}
	if strings.ContainsAny(s, "+-*/") && !isParenthesized(s) {
		return "(" + s + ")"
	}
	return s
}

// isParenthesized reports whether s is a single fully parenthesized group,
// i.e. the opening paren at position 0 matches the final character.
func isParenthesized(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

// IsNumber reports whether s is a bare numeric literal.
func IsNumber(s string) bool {
	return numberRe.MatchString(s)
}
