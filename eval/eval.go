// Package eval computes numeric values for formula expression sides
// against a variable binding table, and applies condition comparators.
//
// Evaluation is textual by design: known variable names are substituted
// into the expression (longest name first, at word boundaries), the result
// is checked to contain nothing but arithmetic, and the remainder runs
// through the restricted evaluator in arith.go.
package eval

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/veritab/veritab/fold"
)

// Bindings maps variable names to their numeric value in one data column.
type Bindings map[string]float64

var (
	numberRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
	// identRe matches a run of identifier words, so an unbound multi-word
	// name like "Toplam Azot" is reported (and zeroed) as one variable.
	identRe = regexp.MustCompile(`[\p{L}_][\p{L}\p{N}_]*(?:[ \t]+[\p{L}_][\p{L}\p{N}_]*)*`)
)

// Evaluate reduces one expression side to a number. The returned warnings
// list the variables that were absent from bindings and substituted with
// zero; that substitution can make a condition hold for the wrong reason,
// so callers should surface it rather than drop it.
func Evaluate(expr string, b Bindings) (float64, []string, error) {
	s := strings.TrimSpace(expr)
	s = stripParens(s)
	if s == "" {
		return 0, nil, &EvalError{Expr: expr, Reason: "empty expression"}
	}
	if numberRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, nil, &EvalError{Expr: expr, Reason: "bad number"}
		}
		return v, nil, nil
	}
	if !strings.ContainsAny(s, "+-*/") {
		v, err := lookup(s, b)
		if err != nil {
			return 0, nil, err
		}
		return v, nil, nil
	}
	return evalCombination(expr, s, b)
}

// lookup resolves a bare variable reference: exact first, then normalized
// comparison against every binding key. Keys are visited in sorted order
// so repeated evaluation is deterministic.
func lookup(name string, b Bindings) (float64, error) {
	if v, ok := b[name]; ok {
		return v, nil
	}
	n := fold.Normalize(name)
	for _, k := range sortedKeys(b) {
		if fold.Normalize(k) == n {
			return b[k], nil
		}
	}
	return 0, &VarNotFoundError{Name: name}
}

// evalCombination substitutes variable values into the expression text and
// evaluates the purely arithmetic remainder.
func evalCombination(orig, s string, b Bindings) (float64, []string, error) {
	// Longest names first so "Azot Toplam" is not clobbered by "Azot".
	names := sortedKeys(b)
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, name := range names {
		s = replaceWord(s, name, strconv.FormatFloat(b[name], 'f', -1, 64))
	}

	var warnings []string
	s = identRe.ReplaceAllStringFunc(s, func(m string) string {
		warnings = append(warnings, fmt.Sprintf("variable %q not found, substituted 0", m))
		return "0"
	})

	for _, r := range s {
		if !isArithRune(r) {
			return 0, warnings, &EvalError{Expr: orig, Reason: fmt.Sprintf("disallowed character %q after substitution", r)}
		}
	}
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if compact == "" || strings.Contains(compact, "()") {
		return 0, warnings, &EvalError{Expr: orig, Reason: "empty expression after substitution"}
	}

	v, err := Arith(s)
	if err != nil {
		return 0, warnings, &EvalError{Expr: orig, Reason: err.Error()}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, warnings, &EvalError{Expr: orig, Reason: "result is not a finite number"}
	}
	return v, warnings, nil
}

func isArithRune(r rune) bool {
	return r >= '0' && r <= '9' || r == '.' || unicode.IsSpace(r) ||
		r == '(' || r == ')' || r == '+' || r == '-' || r == '*' || r == '/'
}

// replaceWord substitutes every word-boundary occurrence of name in s.
// Boundaries are anything that cannot continue an identifier, so "Azot"
// does not match inside "Azotlu".
func replaceWord(s, name, repl string) string {
	if name == "" {
		return s
	}
	var out strings.Builder
	for {
		i := strings.Index(s, name)
		if i < 0 {
			out.WriteString(s)
			return out.String()
		}
		if boundaryBefore(s, i) && boundaryAfter(s, i+len(name)) {
			out.WriteString(s[:i])
			out.WriteString(repl)
		} else {
			out.WriteString(s[:i+len(name)])
		}
		s = s[i+len(name):]
		if len(s) == 0 {
			return out.String()
		}
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isIdentRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isIdentRune(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// stripParens removes enclosing parentheses while the whole expression is
// one parenthesized group.
func stripParens(s string) string {
	for isParenthesized(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

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

func sortedKeys(b Bindings) []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
