package transform

import (
	"math"
	"testing"

	"hermannm.dev/dataprep/table"
)

func newTestTable(t *testing.T, columns ...table.Column) table.Table {
	t.Helper()

	tbl, err := table.New(columns...)
	if err != nil {
		t.Fatalf("failed to construct test table: %v", err)
	}
	return tbl
}

func columnValues(t *testing.T, tbl table.Table, columnName string) []any {
	t.Helper()

	column, ok := tbl.Column(columnName)
	if !ok {
		t.Fatalf("table has no column named '%s'", columnName)
	}
	return column.Values
}

func approxEqual(a float64, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func tablesEqual(t *testing.T, a table.Table, b table.Table) bool {
	t.Helper()

	if a.NumRows() != b.NumRows() || a.NumColumns() != b.NumColumns() {
		return false
	}
	for _, columnName := range a.ColumnNames() {
		columnA, _ := a.Column(columnName)
		columnB, ok := b.Column(columnName)
		if !ok || columnA.DataType != columnB.DataType {
			return false
		}
		for i, value := range columnA.Values {
			if !table.CellsEqual(value, columnB.Values[i]) {
				return false
			}
		}
	}
	return true
}
