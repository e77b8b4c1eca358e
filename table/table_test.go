package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"id", "Variable", "Unit", "Method", "LOQ", "Data Source", "Jan", "Feb"},
		Rows: [][]any{
			{"1", "Azot", "mg/L", "ISO", "0.01", "lab", 12.5, "3,2"},
			{"2", "Fosfor,", "mg/L", "ISO", "0.01", "lab", "< 0.05", nil},
			{"3", "Çözünmüş Oksijen", "mg/L", "ISO", "0.01", "lab", "8.1 mg/L", 7.0},
			{"4", "", "mg/L", "ISO", "0.01", "lab", 1.0, 1.0},
		},
	}
}

func TestDataColumns(t *testing.T) {
	tbl := sampleTable()
	cols := tbl.DataColumns()
	require.Len(t, cols, 2)
	assert.Equal(t, "Jan", tbl.Columns[cols[0]])
	assert.Equal(t, "Feb", tbl.Columns[cols[1]])
}

func TestVariableColumn(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, 1, tbl.VariableColumn())

	empty := &Table{Columns: []string{"a", "b"}}
	assert.Equal(t, -1, empty.VariableColumn())
}

func TestVariables(t *testing.T) {
	vars := sampleTable().Variables()
	require.Len(t, vars, 4)
	assert.Equal(t, "Azot", vars[0])
	assert.Equal(t, "Fosfor", vars[1], "trailing comma stripped")
	assert.Equal(t, "Çözünmüş Oksijen", vars[2])
	assert.Equal(t, "", vars[3], "empty variable cell keeps index alignment")
}

func TestBindings(t *testing.T) {
	tbl := sampleTable()
	jan := tbl.Bindings(6)
	assert.Equal(t, 12.5, jan["Azot"])
	assert.Equal(t, 0.05, jan["Fosfor"], "annotations stripped by tolerant parsing")
	assert.Equal(t, 8.1, jan["Çözünmüş Oksijen"])
	assert.Len(t, jan, 3, "the unnamed row contributes nothing")

	feb := tbl.Bindings(7)
	assert.Equal(t, 7.0, feb["Çözünmüş Oksijen"])
	_, ok := feb["Fosfor"]
	assert.False(t, ok, "unparsable cells are omitted, not zero-filled")
}

func TestBindingsNoVariableColumn(t *testing.T) {
	tbl := &Table{Columns: []string{"a"}, Rows: [][]any{{1.0}}}
	assert.Nil(t, tbl.Bindings(0))
}

func TestRowOf(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, 0, tbl.RowOf("Azot"))
	assert.Equal(t, 1, tbl.RowOf("fosfor"), "case-insensitive fallback")
	assert.Equal(t, 2, tbl.RowOf("cozunmus oksijen"), "diacritic-folded fallback")
	assert.Equal(t, -1, tbl.RowOf("Kurşun"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{7, 7, true},
		{"3.14", 3.14, true},
		{"< 0.05 mg/L", 0.05, true},
		{"-1.5", -1.5, true},
		{"yok", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%v)", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseNumber(%v)", tt.in)
		}
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Azot", CleanName("  Azot , "))
	assert.Equal(t, "Toplam Azot", CleanName("Toplam Azot,"))
	assert.Equal(t, "", CleanName(" , "))
}
