package ast

// Scope controls which structural rules apply to a formula.
type Scope string

const (
	// ScopeTable binds a formula to a single table: one condition,
	// unidirectional rule enforced.
	ScopeTable Scope = "table"
	// ScopeWorkspace applies a formula across tables: multiple conditions
	// allowed, no single highlight target.
	ScopeWorkspace Scope = "workspace"
)

// CompareOp is a comparison operator between two expression sides.
type CompareOp string

const (
	OpGT CompareOp = ">"
	OpLT CompareOp = "<"
	OpGE CompareOp = ">="
	OpLE CompareOp = "<="
	OpEQ CompareOp = "=="
	OpNE CompareOp = "!="
)

// LogicalOp joins a condition with the one that follows it.
type LogicalOp string

const (
	LogicalAnd  LogicalOp = "AND"
	LogicalOr   LogicalOp = "OR"
	LogicalNone LogicalOp = ""
)

// Formula is one user-authored highlighting rule. Immutable for the
// duration of an evaluation pass.
type Formula struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Text         string `json:"text"`
	Color        string `json:"color"`
	Active       bool   `json:"active"`
	Scope        Scope  `json:"scope"`
	OwnerTableID string `json:"ownerTableId,omitempty"`
}

// Condition is one comparison clause of a formula. Left and Right hold the
// normalized side text as produced by the parser; evaluation resolves them
// against a binding table. Logical decorates this condition, stating how it
// combines with the *next* one (LogicalNone on the last condition).
type Condition struct {
	Left    string
	Op      CompareOp
	Right   string
	Logical LogicalOp
}

// Expr is the interface for expression-side nodes.
type Expr interface {
	expr()
	String() string
}

// Constant is a bare numeric literal side.
type Constant struct {
	Value float64
	Text  string
}

func (c *Constant) expr()          {}
func (c *Constant) String() string { return c.Text }

// Variable is a reference to a named table variable.
type Variable struct {
	Name string
}

func (v *Variable) expr()          {}
func (v *Variable) String() string { return v.Name }

// Combination is an arithmetic combination of terms. Terms and Ops are
// ordered left to right; len(Terms) == len(Ops)+1.
type Combination struct {
	Terms []Expr
	Ops   []string
	Text  string
}

func (c *Combination) expr()          {}
func (c *Combination) String() string { return c.Text }

// Vars returns the distinct variable names referenced by e, in first-seen
// order. Constants contribute nothing.
func Vars(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Variable:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *Combination:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	walk(e)
	return out
}
