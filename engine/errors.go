package engine

import (
	"fmt"
	"strings"
)

// ScopeError reports a formula that breaks the structural rules of its
// scope: extra conditions on a table formula, arithmetic on the side that
// should be a bare variable, or a self-referencing target.
type ScopeError struct {
	Reason string
}

func (e *ScopeError) Error() string { return e.Reason }

// AmbiguousTargetError reports a condition with no resolvable highlight
// target: both sides multi-variable, or neither side references one.
type AmbiguousTargetError struct {
	Reason string
}

func (e *AmbiguousTargetError) Error() string { return e.Reason }

// MissingVariableError lists referenced variables absent from the table
// even after fuzzy matching.
type MissingVariableError struct {
	Names []string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("unknown variables: %s", strings.Join(e.Names, ", "))
}
