package transform

import (
	"fmt"

	"hermannm.dev/dataprep/table"
	"hermannm.dev/enumnames"
)

type FillStrategy uint8

const (
	FillStrategyMean FillStrategy = iota + 1
	FillStrategyMedian
	FillStrategyForwardFill
)

var fillStrategyNames = enumnames.NewMap(map[FillStrategy]string{
	FillStrategyMean:        "MEAN",
	FillStrategyMedian:      "MEDIAN",
	FillStrategyForwardFill: "FORWARD_FILL",
})

func (strategy FillStrategy) IsValid() bool {
	return fillStrategyNames.ContainsEnumValue(strategy)
}

func (strategy FillStrategy) String() string {
	return fillStrategyNames.GetNameOrFallback(strategy, "INVALID_FILL_STRATEGY")
}

func (strategy FillStrategy) MarshalJSON() ([]byte, error) {
	return fillStrategyNames.MarshalToNameJSON(strategy)
}

func (strategy *FillStrategy) UnmarshalJSON(bytes []byte) error {
	return fillStrategyNames.UnmarshalFromNameJSON(bytes, strategy)
}

// FillMissing returns a copy of the table where the missing cells of the
// given column are filled per the given strategy:
//   - FillStrategyMean/FillStrategyMedian replace every missing cell with the
//     mean/median of the column's present values (requires a numeric column)
//   - FillStrategyForwardFill replaces each missing cell with the nearest
//     preceding present value in row order; leading missing cells stay
//     missing
//
// An unrecognized strategy is an error, not a no-op: filling with a strategy
// the caller did not intend silently corrupts downstream analysis.
func FillMissing(
	tbl table.Table,
	columnName string,
	strategy FillStrategy,
) (table.Table, error) {
	if !strategy.IsValid() {
		return table.Table{}, fmt.Errorf("unrecognized fill strategy (value %d)", strategy)
	}

	column, ok := tbl.Column(columnName)
	if !ok {
		return table.Table{}, fmt.Errorf("table has no column named '%s'", columnName)
	}

	switch strategy {
	case FillStrategyMean, FillStrategyMedian:
		return fillWithColumnStatistic(tbl, column, strategy)
	case FillStrategyForwardFill:
		return fillForward(tbl, column)
	}

	return table.Table{}, fmt.Errorf("unhandled fill strategy %v", strategy)
}

func fillWithColumnStatistic(
	tbl table.Table,
	column table.Column,
	strategy FillStrategy,
) (table.Table, error) {
	if !column.DataType.IsNumeric() {
		return table.Table{}, fmt.Errorf(
			"cannot fill column '%s' of type %v with strategy %v (requires a numeric column)",
			column.Name,
			column.DataType,
			strategy,
		)
	}

	present := presentNumbers(column)
	if len(present) == 0 {
		// Nothing to compute a fill value from; the column stays as-is.
		return tbl.Clone(), nil
	}

	var fillValue float64
	if strategy == FillStrategyMean {
		fillValue = mean(present)
	} else {
		fillValue = median(present)
	}

	// The fill value is generally fractional, so an integer column widens to
	// float when filled.
	values := make([]any, 0, len(column.Values))
	for _, cell := range column.Values {
		if cell == nil {
			values = append(values, fillValue)
		} else {
			number, _ := table.NumericCell(cell)
			values = append(values, number)
		}
	}

	return tbl.WithColumn(
		table.Column{Name: column.Name, DataType: table.DataTypeFloat, Values: values},
	)
}

func fillForward(tbl table.Table, column table.Column) (table.Table, error) {
	values := make([]any, 0, len(column.Values))

	var lastPresent any
	for _, cell := range column.Values {
		if cell == nil {
			values = append(values, lastPresent)
		} else {
			values = append(values, cell)
			lastPresent = cell
		}
	}

	return tbl.WithColumn(
		table.Column{Name: column.Name, DataType: column.DataType, Values: values},
	)
}
