// Package table models the tabular payload formulas run against: a header
// row plus cell data, with one column literally named "Variable" naming
// each row. Every other non-reserved column is an independent data column
// (a sampling date, a measurement batch) evaluated on its own.
package table

import (
	"strings"

	"github.com/veritab/veritab/fold"
)

// VariableColumnName is the exact header of the column holding row
// variable identifiers.
const VariableColumnName = "Variable"

// reserved columns never evaluated as data columns.
var reserved = map[string]bool{
	"id":          true,
	"Variable":    true,
	"Data Source": true,
	"Method":      true,
	"Unit":        true,
	"LOQ":         true,
}

// Table is the in-memory payload supplied by the caller. Rows hold cell
// values as decoded from JSON: string, float64, or nil.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

// DataColumns returns the indices of columns that formulas evaluate
// against, preserving table order.
func (t *Table) DataColumns() []int {
	var out []int
	for i, name := range t.Columns {
		if !reserved[name] {
			out = append(out, i)
		}
	}
	return out
}

// VariableColumn returns the index of the Variable column, or -1. The
// header must match exactly; fuzzy matching applies to variable values,
// never to the schema.
func (t *Table) VariableColumn() int {
	for i, name := range t.Columns {
		if name == VariableColumnName {
			return i
		}
	}
	return -1
}

// Variables returns the cleaned variable name of every row, in row order.
// Rows with an empty variable cell contribute an empty string so indices
// stay aligned with row numbers.
func (t *Table) Variables() []string {
	vc := t.VariableColumn()
	if vc < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if vc < len(row) {
			out[i] = CleanName(cellString(row[vc]))
		}
	}
	return out
}

// RowOf resolves name to a row index using fuzzy matching against the
// Variable column. Returns -1 when no row matches.
func (t *Table) RowOf(name string) int {
	vars := t.Variables()
	match, ok := fold.Match(name, nonEmpty(vars))
	if !ok {
		return -1
	}
	for i, v := range vars {
		if v == match {
			return i
		}
	}
	return -1
}

// Bindings builds the variable binding map for one data column. Rows whose
// cell fails tolerant numeric parsing are omitted, not zero-filled.
func (t *Table) Bindings(col int) map[string]float64 {
	vc := t.VariableColumn()
	if vc < 0 || col < 0 || col >= len(t.Columns) {
		return nil
	}
	b := make(map[string]float64, len(t.Rows))
	for _, row := range t.Rows {
		if vc >= len(row) || col >= len(row) {
			continue
		}
		name := CleanName(cellString(row[vc]))
		if name == "" {
			continue
		}
		if v, ok := ParseNumber(row[col]); ok {
			b[name] = v
		}
	}
	return b
}

// CleanName trims an identifier and strips trailing commas, the two
// artifacts spreadsheet imports commonly leave on variable cells.
func CleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ",")
	return strings.TrimSpace(s)
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
