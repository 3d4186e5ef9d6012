// Package transform provides single-pass cleaning and reshaping operations on
// tables. Every operation takes a table by value and returns a new table,
// leaving the input untouched.
package transform

import (
	"strings"

	"hermannm.dev/dataprep/table"
)

// DefaultSentinel is the placeholder that raw datasets commonly use for
// missing numeric values.
const DefaultSentinel float64 = -999

type CleanOptions struct {
	RemoveDuplicates bool
	Sentinel         float64
}

func DefaultCleanOptions() CleanOptions {
	return CleanOptions{RemoveDuplicates: true, Sentinel: DefaultSentinel}
}

// CleanData removes fully duplicated rows (keeping the first occurrence) when
// options.RemoveDuplicates is set, and replaces every numeric cell equal to
// options.Sentinel with a missing cell. CleanData is idempotent.
func CleanData(tbl table.Table, options CleanOptions) table.Table {
	if options.RemoveDuplicates {
		tbl = dropDuplicateRows(tbl)
	}
	return replaceSentinel(tbl, options.Sentinel)
}

func dropDuplicateRows(tbl table.Table) table.Table {
	seenRows := make(map[string]struct{}, tbl.NumRows())
	keptRows := make([]int, 0, tbl.NumRows())

	for rowIndex := 0; rowIndex < tbl.NumRows(); rowIndex++ {
		key := rowKey(tbl.Row(rowIndex))
		if _, seen := seenRows[key]; seen {
			continue
		}
		seenRows[key] = struct{}{}
		keptRows = append(keptRows, rowIndex)
	}

	return tbl.SelectRows(keptRows)
}

func rowKey(row []any) string {
	var key strings.Builder
	for i, cell := range row {
		if i > 0 {
			key.WriteByte(0x1f)
		}
		if cell == nil {
			// Distinguishes a missing cell from an empty string cell.
			key.WriteByte(0x00)
		} else {
			key.WriteString(table.FormatCell(cell))
		}
	}
	return key.String()
}

func replaceSentinel(tbl table.Table, sentinel float64) table.Table {
	cloned := tbl.Clone()

	for _, column := range cloned.Columns() {
		if !column.DataType.IsNumeric() {
			continue
		}
		for i, cell := range column.Values {
			if value, ok := table.NumericCell(cell); ok && value == sentinel {
				column.Values[i] = nil
			}
		}
	}

	return cloned
}
