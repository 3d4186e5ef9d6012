package transform

import (
	"testing"

	"hermannm.dev/dataprep/table"
)

func dirtyTestTable(t *testing.T) table.Table {
	t.Helper()

	return newTestTable(t,
		table.Column{
			Name:     "site",
			DataType: table.DataTypeString,
			Values:   []any{"A", "B", "A", "B"},
		},
		table.Column{
			Name:     "age",
			DataType: table.DataTypeInt,
			Values:   []any{int64(34), int64(-999), int64(34), int64(45)},
		},
	)
}

func TestCleanDataRemovesDuplicates(t *testing.T) {
	cleaned := CleanData(dirtyTestTable(t), DefaultCleanOptions())

	// Row 3 duplicates row 1, so 4 rows shrink to 3.
	if cleaned.NumRows() != 3 {
		t.Fatalf("expected 3 rows after cleaning, got %d", cleaned.NumRows())
	}

	site := columnValues(t, cleaned, "site")
	if site[0] != "A" || site[1] != "B" || site[2] != "B" {
		t.Errorf("unexpected site values after cleaning: %v", site)
	}
}

func TestCleanDataKeepsDuplicatesWhenDisabled(t *testing.T) {
	options := DefaultCleanOptions()
	options.RemoveDuplicates = false

	cleaned := CleanData(dirtyTestTable(t), options)
	if cleaned.NumRows() != 4 {
		t.Fatalf("expected 4 rows, got %d", cleaned.NumRows())
	}
}

func TestCleanDataReplacesSentinel(t *testing.T) {
	cleaned := CleanData(dirtyTestTable(t), DefaultCleanOptions())

	age := columnValues(t, cleaned, "age")
	if age[1] != nil {
		t.Errorf("expected sentinel -999 to become missing, got %v", age[1])
	}
	if cleaned.MissingCounts()["age"] != 1 {
		t.Errorf("expected 1 missing age cell, got %d", cleaned.MissingCounts()["age"])
	}
}

func TestCleanDataCustomSentinel(t *testing.T) {
	tbl := newTestTable(t, table.Column{
		Name:     "value",
		DataType: table.DataTypeFloat,
		Values:   []any{-1.0, 2.0, -999.0},
	})

	cleaned := CleanData(tbl, CleanOptions{RemoveDuplicates: true, Sentinel: -1})

	value := columnValues(t, cleaned, "value")
	if value[0] != nil {
		t.Errorf("expected sentinel -1 to become missing, got %v", value[0])
	}
	if value[2] != -999.0 {
		t.Errorf("expected -999 to stay put with custom sentinel, got %v", value[2])
	}
}

func TestCleanDataDoesNotTouchTextColumns(t *testing.T) {
	tbl := newTestTable(t, table.Column{
		Name:     "label",
		DataType: table.DataTypeString,
		Values:   []any{"-999", "x"},
	})

	cleaned := CleanData(tbl, DefaultCleanOptions())
	if columnValues(t, cleaned, "label")[0] != "-999" {
		t.Error("expected sentinel replacement to skip text columns")
	}
}

func TestCleanDataIsIdempotent(t *testing.T) {
	options := DefaultCleanOptions()

	once := CleanData(dirtyTestTable(t), options)
	twice := CleanData(once, options)

	if !tablesEqual(t, once, twice) {
		t.Error("expected cleaning twice to equal cleaning once")
	}
}

func TestCleanDataDoesNotMutateInput(t *testing.T) {
	tbl := dirtyTestTable(t)
	CleanData(tbl, DefaultCleanOptions())

	if tbl.NumRows() != 4 {
		t.Error("expected input table to be unchanged")
	}
	if columnValues(t, tbl, "age")[1] != int64(-999) {
		t.Error("expected input table's sentinel cell to be unchanged")
	}
}
