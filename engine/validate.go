package engine

import (
	"errors"
	"fmt"

	"github.com/veritab/veritab/ast"
	"github.com/veritab/veritab/eval"
	"github.com/veritab/veritab/parser"
)

// workspace formulas past these sizes still validate, but get a warning:
// long chains under precedence-free AND/OR folding are easy to misread.
const (
	warnConditions = 3
	warnVariables  = 5
)

// Validation is the structured result of pre-activation checks. It is
// always returned by value; formula problems are never raised as errors.
type Validation struct {
	IsValid          bool     `json:"isValid"`
	Error            string   `json:"error,omitempty"`
	MissingVariables []string `json:"missingVariables,omitempty"`
	TargetVariable   string   `json:"targetVariable,omitempty"`
	LeftVariables    []string `json:"leftVariables,omitempty"`
	RightVariables   []string `json:"rightVariables,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Validate runs structural and scope checks on formula text against the
// table's available variables, then dry-runs the evaluation with every
// variable bound to 1 to surface evaluation-time failures (unbalanced
// parentheses, non-finite arithmetic) before the formula is activated.
func Validate(text string, available []string, scope ast.Scope) Validation {
	conds := parser.Parse(text)
	if len(conds) == 0 {
		return Validation{Error: "formula is empty or has no parsable condition"}
	}

	v := Validation{}
	if scope == ast.ScopeWorkspace {
		if missing := missingRefs(conds, available); len(missing) > 0 {
			return Validation{Error: (&MissingVariableError{Names: missing}).Error(), MissingVariables: missing}
		}
		for _, c := range conds {
			for _, name := range analyzeSide(c.Left, available).resolved {
				if !contains(v.LeftVariables, name) {
					v.LeftVariables = append(v.LeftVariables, name)
				}
			}
			for _, name := range analyzeSide(c.Right, available).resolved {
				if !contains(v.RightVariables, name) {
					v.RightVariables = append(v.RightVariables, name)
				}
			}
		}
		if len(conds) > warnConditions {
			v.Warnings = append(v.Warnings, fmt.Sprintf("formula has %d conditions; consider splitting it", len(conds)))
		}
		if n := len(distinct(v.LeftVariables, v.RightVariables)); n > warnVariables {
			v.Warnings = append(v.Warnings, fmt.Sprintf("formula references %d variables; consider splitting it", n))
		}
	} else {
		if len(conds) > 1 {
			return Validation{Error: "table-scoped formulas allow a single condition"}
		}
		target, err := ResolveTarget(conds[0], available)
		if err != nil {
			var missing *MissingVariableError
			if errors.As(err, &missing) {
				return Validation{Error: err.Error(), MissingVariables: missing.Names}
			}
			return Validation{Error: err.Error()}
		}
		v.TargetVariable = target.Variable
		v.LeftVariables = target.LeftVars
		v.RightVariables = target.RightVars
	}

	// Dry run: every available variable bound to 1.
	dummy := make(eval.Bindings, len(available))
	for _, name := range available {
		dummy[name] = 1
	}
	_, _, warns, err := eval.EvalConditions(conds, dummy)
	if err != nil {
		return Validation{
			Error:            err.Error(),
			MissingVariables: v.MissingVariables,
			TargetVariable:   v.TargetVariable,
			LeftVariables:    v.LeftVariables,
			RightVariables:   v.RightVariables,
		}
	}
	v.Warnings = append(v.Warnings, warns...)
	v.IsValid = true
	return v
}

func distinct(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if !contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}
