package eval

import (
	"fmt"
	"math"

	"github.com/veritab/veritab/ast"
)

// Epsilon absorbs binary floating-point noise on equality comparisons, so
// "A == 0.3" holds when A was computed as 0.1 + 0.2.
const Epsilon = 1e-10

// Outcome carries both side values of an evaluated condition alongside the
// comparison result.
type Outcome struct {
	Left  float64
	Right float64
	Holds bool
}

// EvalCondition evaluates both sides of c and applies its comparator.
func EvalCondition(c ast.Condition, b Bindings) (Outcome, []string, error) {
	left, lw, err := Evaluate(c.Left, b)
	if err != nil {
		return Outcome{}, lw, err
	}
	right, rw, err := Evaluate(c.Right, b)
	warnings := append(lw, rw...)
	if err != nil {
		return Outcome{}, warnings, err
	}
	holds, err := compare(c.Op, left, right)
	if err != nil {
		return Outcome{}, warnings, err
	}
	return Outcome{Left: left, Right: right, Holds: holds}, warnings, nil
}

// EvalConditions evaluates every condition of a formula and folds the
// results strictly left to right. AND does not bind tighter than OR: the
// running result combines with each next condition in source order, which
// is the semantic existing formulas were authored under.
func EvalConditions(conds []ast.Condition, b Bindings) (bool, []Outcome, []string, error) {
	if len(conds) == 0 {
		return false, nil, nil, &EvalError{Reason: "formula has no conditions"}
	}
	outcomes := make([]Outcome, 0, len(conds))
	var warnings []string
	for _, c := range conds {
		o, w, err := EvalCondition(c, b)
		warnings = append(warnings, w...)
		if err != nil {
			return false, outcomes, warnings, err
		}
		outcomes = append(outcomes, o)
	}
	result := outcomes[0].Holds
	for i := 1; i < len(outcomes); i++ {
		if conds[i-1].Logical == ast.LogicalAnd {
			result = result && outcomes[i].Holds
		} else {
			result = result || outcomes[i].Holds
		}
	}
	return result, outcomes, warnings, nil
}

func compare(op ast.CompareOp, left, right float64) (bool, error) {
	switch op {
	case ast.OpGT:
		return left > right, nil
	case ast.OpLT:
		return left < right, nil
	case ast.OpGE:
		return left >= right, nil
	case ast.OpLE:
		return left <= right, nil
	case ast.OpEQ:
		return math.Abs(left-right) < Epsilon, nil
	case ast.OpNE:
		return math.Abs(left-right) >= Epsilon, nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}
