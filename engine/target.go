// Package engine decides what a formula highlights: it classifies
// condition sides, applies the unidirectional rule, aggregates highlighted
// cells across formulas and data columns, and validates formulas before
// activation.
package engine

import (
	"github.com/veritab/veritab/ast"
	"github.com/veritab/veritab/fold"
	"github.com/veritab/veritab/parser"
)

// Target identifies the variable a condition tests. Its row is what gets
// highlighted when the condition holds.
type Target struct {
	Variable  string // table's canonical spelling
	FromLeft  bool
	LeftVars  []string // resolved references on the left side
	RightVars []string // resolved references on the right side
}

// sideInfo is the classification of one condition side.
type sideInfo struct {
	bare     bool // a bare variable reference, no arithmetic
	resolved []string
	missing  []string
}

func analyzeSide(text string, available []string) sideInfo {
	expr := parser.ParseExpr(text)
	info := sideInfo{}
	if _, ok := expr.(*ast.Variable); ok {
		info.bare = true
	}
	for _, ref := range ast.Vars(expr) {
		if name, ok := fold.Match(ref, available); ok {
			if !contains(info.resolved, name) {
				info.resolved = append(info.resolved, name)
			}
		} else {
			info.missing = append(info.missing, ref)
		}
	}
	return info
}

// ResolveTarget applies the unidirectional rule to a single condition:
// exactly one side must be a bare variable (or both, in which case the
// left wins), and that variable is the highlight target. Rejections map
// onto the error types above.
func ResolveTarget(c ast.Condition, available []string) (*Target, error) {
	left := analyzeSide(c.Left, available)
	right := analyzeSide(c.Right, available)

	if missing := append(append([]string{}, left.missing...), right.missing...); len(missing) > 0 {
		return nil, &MissingVariableError{Names: missing}
	}

	nL, nR := len(left.resolved), len(right.resolved)
	switch {
	case nL == 0 && nR == 0:
		return nil, &AmbiguousTargetError{Reason: "formula contains no variables"}
	case nL > 1 && nR > 1:
		return nil, &AmbiguousTargetError{Reason: "both sides contain multiple variables"}
	}

	t := &Target{LeftVars: left.resolved, RightVars: right.resolved}
	switch {
	case left.bare:
		t.Variable = left.resolved[0]
		t.FromLeft = true
		if contains(right.resolved, t.Variable) {
			return nil, &ScopeError{Reason: "target variable appears on both sides"}
		}
	case right.bare:
		t.Variable = right.resolved[0]
		if contains(left.resolved, t.Variable) {
			return nil, &ScopeError{Reason: "target variable appears on both sides"}
		}
	case nL == 1 || nR == 1:
		return nil, &ScopeError{Reason: "the single-variable side must be a bare variable, without arithmetic"}
	default:
		return nil, &AmbiguousTargetError{Reason: "no single-variable side to highlight"}
	}
	return t, nil
}

// condRefs returns the distinct resolved variables referenced by a
// condition, left side first.
func condRefs(c ast.Condition, available []string) []string {
	var out []string
	for _, side := range []string{c.Left, c.Right} {
		for _, name := range analyzeSide(side, available).resolved {
			if !contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// missingRefs collects unresolvable references across all conditions.
func missingRefs(conds []ast.Condition, available []string) []string {
	var out []string
	for _, c := range conds {
		for _, side := range []string{c.Left, c.Right} {
			for _, m := range analyzeSide(side, available).missing {
				if !contains(out, m) {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
