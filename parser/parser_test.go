package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritab/veritab/ast"
)

func TestParseSingleCondition(t *testing.T) {
	conds := Parse("Azot > 10")
	require.Len(t, conds, 1)
	assert.Equal(t, "Azot", conds[0].Left)
	assert.Equal(t, ast.OpGT, conds[0].Op)
	assert.Equal(t, "10", conds[0].Right)
	assert.Equal(t, ast.LogicalNone, conds[0].Logical)
}

func TestParseBracketSyntax(t *testing.T) {
	conds := Parse("[Toplam Azot] <= 0.5")
	require.Len(t, conds, 1)
	assert.Equal(t, "Toplam Azot", conds[0].Left)
	assert.Equal(t, ast.OpLE, conds[0].Op)
}

func TestParseTwoCharOperators(t *testing.T) {
	tests := []struct {
		text string
		op   ast.CompareOp
	}{
		{"A >= 1", ast.OpGE},
		{"A <= 1", ast.OpLE},
		{"A == 1", ast.OpEQ},
		{"A != 1", ast.OpNE},
		{"A > 1", ast.OpGT},
		{"A < 1", ast.OpLT},
	}
	for _, tt := range tests {
		conds := Parse(tt.text)
		require.Len(t, conds, 1, tt.text)
		assert.Equal(t, tt.op, conds[0].Op, tt.text)
	}
}

func TestParseLogicalOperators(t *testing.T) {
	conds := Parse("A > 1 AND B < 2 or C == 3")
	require.Len(t, conds, 3)
	assert.Equal(t, ast.LogicalAnd, conds[0].Logical)
	assert.Equal(t, ast.LogicalOr, conds[1].Logical, "keywords are case-insensitive")
	assert.Equal(t, ast.LogicalNone, conds[2].Logical)
}

func TestParseLogicalDecoratesPreceding(t *testing.T) {
	conds := Parse("A > 1 OR B < 2")
	require.Len(t, conds, 2)
	assert.Equal(t, ast.LogicalOr, conds[0].Logical)
	assert.Equal(t, ast.LogicalNone, conds[1].Logical)
}

func TestParseRejectsMalformed(t *testing.T) {
	assert.Empty(t, Parse(">10"), "leading operator has an empty left side")
	assert.Empty(t, Parse("<"))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("Azot"), "no comparison operator")
	assert.Empty(t, Parse("Azot >"), "empty right side")
}

func TestParseSkipsMalformedClauseOnly(t *testing.T) {
	conds := Parse("A > 1 AND >10 OR B < 2")
	require.Len(t, conds, 2)
	assert.Equal(t, "A", conds[0].Left)
	assert.Equal(t, "B", conds[1].Left)
	assert.Equal(t, ast.LogicalOr, conds[0].Logical, "surviving conditions stay connected")
}

func TestParseWrapsArithmeticSides(t *testing.T) {
	conds := Parse("A + B > 10")
	require.Len(t, conds, 1)
	assert.Equal(t, "(A + B)", conds[0].Left)
	assert.Equal(t, "10", conds[0].Right, "bare numbers pass through")

	conds = Parse("(A + B) > C * 2")
	require.Len(t, conds, 1)
	assert.Equal(t, "(A + B)", conds[0].Left, "already parenthesized sides stay as-is")
	assert.Equal(t, "(C * 2)", conds[0].Right)
}

func TestParseCollapsesWhitespace(t *testing.T) {
	conds := Parse("Toplam   Azot   <   5")
	require.Len(t, conds, 1)
	assert.Equal(t, "Toplam Azot", conds[0].Left)
}

func TestParseExprClassification(t *testing.T) {
	c, ok := ParseExpr("42.5").(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, 42.5, c.Value)

	_, ok = ParseExpr("-3").(*ast.Constant)
	assert.True(t, ok)

	v, ok := ParseExpr("(Azot)").(*ast.Variable)
	require.True(t, ok, "parens around a bare variable strip away")
	assert.Equal(t, "Azot", v.Name)

	comb, ok := ParseExpr("(A + B * 2)").(*ast.Combination)
	require.True(t, ok)
	require.Len(t, comb.Terms, 3)
	assert.Equal(t, []string{"+", "*"}, comb.Ops)
	assert.Equal(t, []string{"A", "B"}, ast.Vars(comb))
}

func TestParseExprUnaryMinus(t *testing.T) {
	comb, ok := ParseExpr("-5 * A").(*ast.Combination)
	require.True(t, ok)
	require.Len(t, comb.Terms, 2)
	assert.Equal(t, []string{"*"}, comb.Ops)
	assert.Equal(t, []string{"A"}, ast.Vars(comb))
}

func TestParseExprNestedGroups(t *testing.T) {
	comb, ok := ParseExpr("(A + B) / 2").(*ast.Combination)
	require.True(t, ok)
	assert.Equal(t, []string{"/"}, comb.Ops)
	assert.Equal(t, []string{"A", "B"}, ast.Vars(comb))
}

func TestCache(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("A > 1")
	assert.False(t, ok)

	conds := ParseCached(c, "A > 1")
	require.Len(t, conds, 1)
	assert.Equal(t, 1, c.Len())

	cached, ok := c.Get("A > 1")
	require.True(t, ok)
	assert.Equal(t, conds, cached)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestParseCachedNilCache(t *testing.T) {
	conds := ParseCached(nil, "A > 1")
	assert.Len(t, conds, 1)
}
