package transform

import (
	"errors"
	"fmt"

	"hermannm.dev/dataprep/table"
)

// CreateBins returns a copy of the table with a new category column, where
// each row gets the label of the half-open interval
// [binEdges[i], binEdges[i+1]) containing its value in the given numeric
// column. Values outside every interval (and missing cells) get a missing
// cell in the new column.
//
// Bin edges must be ascending, and len(labels) must equal len(binEdges)-1.
// newColumn defaults to '{column}_binned' when blank.
func CreateBins(
	tbl table.Table,
	columnName string,
	binEdges []float64,
	labels []string,
	newColumn string,
) (table.Table, error) {
	if len(binEdges) < 2 {
		return table.Table{}, errors.New("binning requires at least two bin edges")
	}
	if len(labels) != len(binEdges)-1 {
		return table.Table{}, fmt.Errorf(
			"got %d bin labels for %d bin edges, expected %d (one per interval)",
			len(labels),
			len(binEdges),
			len(binEdges)-1,
		)
	}
	for i := 1; i < len(binEdges); i++ {
		if binEdges[i] <= binEdges[i-1] {
			return table.Table{}, fmt.Errorf(
				"bin edges must be ascending, but edge %d (%v) does not exceed edge %d (%v)",
				i,
				binEdges[i],
				i-1,
				binEdges[i-1],
			)
		}
	}

	column, ok := tbl.Column(columnName)
	if !ok {
		return table.Table{}, fmt.Errorf("table has no column named '%s'", columnName)
	}
	if !column.DataType.IsNumeric() {
		return table.Table{}, fmt.Errorf(
			"cannot bin column '%s' of non-numeric type %v",
			columnName,
			column.DataType,
		)
	}

	if newColumn == "" {
		newColumn = columnName + "_binned"
	}

	values := make([]any, 0, len(column.Values))
	for _, cell := range column.Values {
		number, present := table.NumericCell(cell)
		if !present {
			values = append(values, nil)
			continue
		}

		if label, inRange := binLabel(number, binEdges, labels); inRange {
			values = append(values, label)
		} else {
			values = append(values, nil)
		}
	}

	return tbl.WithColumn(
		table.Column{Name: newColumn, DataType: table.DataTypeCategory, Values: values},
	)
}

func binLabel(value float64, binEdges []float64, labels []string) (label string, inRange bool) {
	for i := 0; i < len(binEdges)-1; i++ {
		if value >= binEdges[i] && value < binEdges[i+1] {
			return labels[i], true
		}
	}
	return "", false
}
