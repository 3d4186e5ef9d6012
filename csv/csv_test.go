package csv

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hermannm.dev/dataprep/table"
)

func TestLoadTable(t *testing.T) {
	input := `name,age,bmi,enrolled,id
Alice,34,22.5,2023-01-15,6ba7b810-9dad-11d1-80b4-00c04fd430c8
Bob,45,,2023-02-20,6ba7b811-9dad-11d1-80b4-00c04fd430c8
Carol,,24.1,2023-03-25,6ba7b812-9dad-11d1-80b4-00c04fd430c8
`

	tbl, err := LoadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tbl.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.NumRows())
	}

	expectedTypes := map[string]table.DataType{
		"name":     table.DataTypeString,
		"age":      table.DataTypeInt,
		"bmi":      table.DataTypeFloat,
		"enrolled": table.DataTypeTimestamp,
		"id":       table.DataTypeUUID,
	}
	for name, expectedType := range expectedTypes {
		column, ok := tbl.Column(name)
		if !ok {
			t.Fatalf("missing column '%s'", name)
		}
		if column.DataType != expectedType {
			t.Errorf("expected column '%s' type %v, got %v", name, expectedType, column.DataType)
		}
	}

	age, _ := tbl.Column("age")
	if age.Values[0] != int64(34) {
		t.Errorf("expected age 34 in row 1, got %v", age.Values[0])
	}
	if age.Values[2] != nil {
		t.Errorf("expected missing age in row 3, got %v", age.Values[2])
	}

	enrolled, _ := tbl.Column("enrolled")
	expectedDate := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !enrolled.Values[0].(time.Time).Equal(expectedDate) {
		t.Errorf("expected enrollment date %v in row 1, got %v", expectedDate, enrolled.Values[0])
	}
}

func TestLoadTableMixedNumericColumn(t *testing.T) {
	input := "value\n1\n2.5\n3\n"

	tbl, err := LoadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	column, _ := tbl.Column("value")
	if column.DataType != table.DataTypeFloat {
		t.Errorf("expected mixed int/float column to widen to FLOAT, got %v", column.DataType)
	}
	if column.Values[0] != float64(1) {
		t.Errorf("expected first value 1.0, got %v", column.Values[0])
	}
}

func TestLoadTableIncompatibleColumnFallsBackToText(t *testing.T) {
	input := "value\n1\nnot a number\n"

	tbl, err := LoadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	column, _ := tbl.Column("value")
	if column.DataType != table.DataTypeString {
		t.Errorf("expected incompatible column to fall back to STRING, got %v", column.DataType)
	}
}

func TestLoadTableWithSemicolonDelimiter(t *testing.T) {
	input := "name;age\nAlice;34\nBob;45\n"

	tbl, err := LoadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tbl.NumColumns() != 2 {
		t.Fatalf("expected 2 columns, got %d", tbl.NumColumns())
	}
	age, ok := tbl.Column("age")
	if !ok {
		t.Fatal("missing column 'age'")
	}
	if age.Values[1] != int64(45) {
		t.Errorf("expected age 45 in row 2, got %v", age.Values[1])
	}
}

func TestLoadTableEmptyInput(t *testing.T) {
	if _, err := LoadTable(strings.NewReader("")); err == nil {
		t.Error("expected error for input without header row")
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	original, err := table.New(
		table.Column{Name: "name", DataType: table.DataTypeString, Values: []any{"Alice", "Bob"}},
		table.Column{Name: "age", DataType: table.DataTypeInt, Values: []any{int64(34), nil}},
		table.Column{Name: "bmi", DataType: table.DataTypeFloat, Values: []any{22.5, 24.1}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var output bytes.Buffer
	if err := WriteTable(&output, original); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	reloaded, err := LoadTable(bytes.NewReader(output.Bytes()))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if reloaded.NumRows() != original.NumRows() {
		t.Fatalf("expected %d rows after round trip, got %d",
			original.NumRows(), reloaded.NumRows())
	}
	for _, columnName := range original.ColumnNames() {
		originalColumn, _ := original.Column(columnName)
		reloadedColumn, ok := reloaded.Column(columnName)
		if !ok {
			t.Fatalf("round trip lost column '%s'", columnName)
		}
		for i, originalValue := range originalColumn.Values {
			if !table.CellsEqual(originalValue, reloadedColumn.Values[i]) {
				t.Errorf(
					"round trip changed cell %d of column '%s': %v != %v",
					i,
					columnName,
					originalValue,
					reloadedColumn.Values[i],
				)
			}
		}
	}
}

func TestDeduceFieldDelimiter(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"comma with semicolon in field", "a,b\nx;y,2\nz,3\n", ','},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if delimiter := DeduceFieldDelimiter(testCase.input); delimiter != testCase.expected {
				t.Errorf("expected delimiter %q, got %q", testCase.expected, delimiter)
			}
		})
	}
}
