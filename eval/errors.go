package eval

import "fmt"

// VarNotFoundError reports an identifier that resolved to no binding even
// after normalized matching.
type VarNotFoundError struct {
	Name string
}

func (e *VarNotFoundError) Error() string {
	return fmt.Sprintf("variable not found: %q", e.Name)
}

// EvalError reports an expression that could not be reduced to a finite
// number: disallowed characters after substitution, unbalanced or empty
// parentheses, or a non-finite result.
type EvalError struct {
	Expr   string
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", e.Expr, e.Reason)
}
