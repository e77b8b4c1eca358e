package engine

import (
	"fmt"

	"github.com/veritab/veritab/ast"
	"github.com/veritab/veritab/eval"
	"github.com/veritab/veritab/parser"
	"github.com/veritab/veritab/table"
)

// FormulaDetail preserves one formula's contribution to a merged cell.
type FormulaDetail struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FormulaText string  `json:"formulaText"`
	LeftResult  float64 `json:"leftResult"`
	RightResult float64 `json:"rightResult"`
	Color       string  `json:"color"`
}

// Cell is one highlighted (row, column) pair. Row ids follow the canonical
// convention "row-<index>" with a zero-based index. When several formulas
// highlight the same cell, FormulaIDs and Details grow while Color keeps
// the first contributor's color; renderers draw multi-formula cells from
// Details, not from a blended color.
type Cell struct {
	Row        string          `json:"row"`
	Col        string          `json:"col"`
	Color      string          `json:"color"`
	Message    string          `json:"message"`
	FormulaIDs []string        `json:"formulaIds"`
	Details    []FormulaDetail `json:"formulaDetails"`
}

// Diag records a formula/column pair whose evaluation failed. Failures
// never abort the batch; they surface here instead.
type Diag struct {
	FormulaID string `json:"formulaId"`
	Column    string `json:"column,omitempty"`
	Err       string `json:"error"`
}

// Result is the aggregator output: merged cells in first-touch order,
// plus diagnostics and zero-substitution warnings.
type Result struct {
	Cells       []Cell   `json:"cells"`
	Diagnostics []Diag   `json:"diagnostics,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Highlight evaluates every active formula against every data column of t
// and returns the merged highlight set. cache may be nil; callers that
// re-evaluate on edits pass their own parser.Cache.
func Highlight(formulas []ast.Formula, t *table.Table, cache *parser.Cache) *Result {
	res := &Result{}
	rows := t.Variables()
	available := make([]string, 0, len(rows))
	rowOf := make(map[string]int, len(rows))
	for i, v := range rows {
		if v == "" {
			continue
		}
		if _, ok := rowOf[v]; !ok {
			rowOf[v] = i
			available = append(available, v)
		}
	}

	dataCols := t.DataColumns()
	bindings := make(map[int]eval.Bindings, len(dataCols))
	for _, col := range dataCols {
		bindings[col] = t.Bindings(col)
	}

	cells := make(map[string]*Cell)
	var order []string

	merge := func(row int, colName string, f ast.Formula, o eval.Outcome) {
		key := fmt.Sprintf("row-%d\x00%s", row, colName)
		msg := fmt.Sprintf("%s: %s", f.Name, f.Text)
		detail := FormulaDetail{
			ID:          f.ID,
			Name:        f.Name,
			FormulaText: f.Text,
			LeftResult:  o.Left,
			RightResult: o.Right,
			Color:       f.Color,
		}
		if c, ok := cells[key]; ok {
			if contains(c.FormulaIDs, f.ID) {
				return
			}
			c.FormulaIDs = append(c.FormulaIDs, f.ID)
			c.Details = append(c.Details, detail)
			c.Message += "; " + msg
			return
		}
		c := &Cell{
			Row:        fmt.Sprintf("row-%d", row),
			Col:        colName,
			Color:      f.Color,
			Message:    msg,
			FormulaIDs: []string{f.ID},
			Details:    []FormulaDetail{detail},
		}
		cells[key] = c
		order = append(order, key)
	}

	for _, f := range formulas {
		if !f.Active {
			continue
		}
		conds := parser.ParseCached(cache, f.Text)
		if len(conds) == 0 {
			res.Diagnostics = append(res.Diagnostics, Diag{FormulaID: f.ID, Err: "invalid formula: no parsable conditions"})
			continue
		}

		var target *Target
		if f.Scope != ast.ScopeWorkspace {
			if len(conds) > 1 {
				res.Diagnostics = append(res.Diagnostics, Diag{FormulaID: f.ID, Err: "table-scoped formulas allow a single condition"})
				continue
			}
			resolved, err := ResolveTarget(conds[0], available)
			if err != nil {
				res.Diagnostics = append(res.Diagnostics, Diag{FormulaID: f.ID, Err: err.Error()})
				continue
			}
			target = resolved
		} else if missing := missingRefs(conds, available); len(missing) > 0 {
			res.Diagnostics = append(res.Diagnostics, Diag{FormulaID: f.ID, Err: (&MissingVariableError{Names: missing}).Error()})
			continue
		}

		for _, col := range dataCols {
			colName := t.Columns[col]
			holds, outcomes, warns, err := eval.EvalConditions(conds, bindings[col])
			for _, w := range warns {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s [%s]: %s", f.Name, colName, w))
			}
			if err != nil {
				res.Diagnostics = append(res.Diagnostics, Diag{FormulaID: f.ID, Column: colName, Err: err.Error()})
				continue
			}
			if !holds {
				continue
			}
			if target != nil {
				if row, ok := rowOf[target.Variable]; ok {
					merge(row, colName, f, outcomes[0])
				}
				continue
			}
			// Workspace scope has no single target: highlight every
			// variable of the first condition that held.
			idx := 0
			for i, o := range outcomes {
				if o.Holds {
					idx = i
					break
				}
			}
			for _, v := range condRefs(conds[idx], available) {
				if row, ok := rowOf[v]; ok {
					merge(row, colName, f, outcomes[idx])
				}
			}
		}
	}

	for _, key := range order {
		res.Cells = append(res.Cells, *cells[key])
	}
	return res
}
