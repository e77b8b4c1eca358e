package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/veritab/veritab/ast"
	"github.com/veritab/veritab/engine"
	"github.com/veritab/veritab/parser"
	"github.com/veritab/veritab/table"
)

// Execute runs the veritab CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:    "veritab",
		Usage:   "Parse, validate, and evaluate table highlighting formulas",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Print the condition list parsed from a formula",
				ArgsUsage: "<formula>",
				Action:    parseAction,
			},
			{
				Name:      "check",
				Usage:     "Validate a formula against a table payload",
				ArgsUsage: "<formula>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "table",
						Aliases:  []string{"t"},
						Usage:    "Table payload JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Formula scope: table or workspace",
						Value: string(ast.ScopeTable),
					},
				},
				Action: checkAction,
			},
			{
				Name:  "eval",
				Usage: "Evaluate formulas against a table and print highlighted cells",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "table",
						Aliases:  []string{"t"},
						Usage:    "Table payload JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "formulas",
						Aliases:  []string{"f"},
						Usage:    "Formulas JSON file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit the full result as JSON",
					},
				},
				Action: evalAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: veritab parse <formula>")
	}
	text := strings.Join(cmd.Args().Slice(), " ")
	conds := parser.Parse(text)
	if len(conds) == 0 {
		return fmt.Errorf("no parsable conditions in %q", text)
	}
	for i, c := range conds {
		fmt.Printf("%d: %s %s %s", i, c.Left, c.Op, c.Right)
		if c.Logical != ast.LogicalNone {
			fmt.Printf("  %s", c.Logical)
		}
		fmt.Println()
	}
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: veritab check --table <file> <formula>")
	}
	t, err := loadTable(cmd.String("table"))
	if err != nil {
		return err
	}
	scope := ast.Scope(cmd.String("scope"))
	if scope != ast.ScopeTable && scope != ast.ScopeWorkspace {
		return fmt.Errorf("unknown scope %q", scope)
	}

	text := strings.Join(cmd.Args().Slice(), " ")
	v := engine.Validate(text, availableVars(t), scope)

	ok, fail, reset := colors()
	if v.IsValid {
		fmt.Printf("%svalid%s", ok, reset)
		if v.TargetVariable != "" {
			fmt.Printf("  target: %s", v.TargetVariable)
		}
		fmt.Println()
	} else {
		fmt.Printf("%sinvalid%s: %s\n", fail, reset, v.Error)
		if len(v.MissingVariables) > 0 {
			fmt.Printf("missing variables: %s\n", strings.Join(v.MissingVariables, ", "))
		}
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !v.IsValid {
		os.Exit(1)
	}
	return nil
}

func evalAction(ctx context.Context, cmd *cli.Command) error {
	t, err := loadTable(cmd.String("table"))
	if err != nil {
		return err
	}
	formulas, err := loadFormulas(cmd.String("formulas"))
	if err != nil {
		return err
	}

	res := engine.Highlight(formulas, t, parser.NewCache())

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	ok, fail, reset := colors()
	for _, c := range res.Cells {
		fmt.Printf("%s%s / %s%s  %s  %s\n", ok, c.Row, c.Col, reset, c.Color, c.Message)
	}
	for _, d := range res.Diagnostics {
		col := d.Column
		if col == "" {
			col = "-"
		}
		fmt.Fprintf(os.Stderr, "%sformula %s%s [%s]: %s\n", fail, d.FormulaID, reset, col, d.Err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}

// colors returns ANSI sequences for ok/fail markers, empty when NO_COLOR
// is set or stdout is not a terminal.
func colors() (ok, fail, reset string) {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", "", ""
	}
	return "\033[32m", "\033[31m", "\033[0m"
}

func loadTable(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	var t table.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing table %s: %w", path, err)
	}
	return &t, nil
}

func loadFormulas(path string) ([]ast.Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading formulas: %w", err)
	}
	var formulas []ast.Formula
	if err := json.Unmarshal(data, &formulas); err != nil {
		return nil, fmt.Errorf("parsing formulas %s: %w", path, err)
	}
	return formulas, nil
}

// availableVars returns the distinct non-empty variable names of a table.
func availableVars(t *table.Table) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range t.Variables() {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
