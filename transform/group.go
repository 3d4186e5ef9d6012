package transform

import (
	"fmt"
	"strings"

	"hermannm.dev/dataprep/table"
	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

type Aggregation uint8

const (
	AggregationCount Aggregation = iota + 1
	AggregationSum
	AggregationMean
	AggregationMedian
	AggregationMin
	AggregationMax
	AggregationStdDev
)

var aggregationNames = enumnames.NewMap(map[Aggregation]string{
	AggregationCount:  "COUNT",
	AggregationSum:    "SUM",
	AggregationMean:   "MEAN",
	AggregationMedian: "MEDIAN",
	AggregationMin:    "MIN",
	AggregationMax:    "MAX",
	AggregationStdDev: "STD",
})

func (aggregation Aggregation) IsValid() bool {
	return aggregationNames.ContainsEnumValue(aggregation)
}

func (aggregation Aggregation) String() string {
	return aggregationNames.GetNameOrFallback(aggregation, "INVALID_AGGREGATION")
}

func (aggregation Aggregation) MarshalJSON() ([]byte, error) {
	return aggregationNames.MarshalToNameJSON(aggregation)
}

func (aggregation *Aggregation) UnmarshalJSON(bytes []byte) error {
	return aggregationNames.UnmarshalFromNameJSON(bytes, aggregation)
}

// Statistics applied to every numeric column when the caller gives no
// aggregations, mirroring a standard descriptive statistics panel (quartiles
// computed with linear interpolation).
var describeStatistics = []describeStatistic{
	{"count", func(column table.Column) any { return presentCount(column) }},
	{"mean", numericStatistic(mean)},
	{"std", numericStatistic(sampleStdDev)},
	{"min", numericStatistic(func(numbers []float64) float64 { return percentile(numbers, 0) })},
	{"25%", numericStatistic(func(numbers []float64) float64 { return percentile(numbers, 0.25) })},
	{"50%", numericStatistic(func(numbers []float64) float64 { return percentile(numbers, 0.5) })},
	{"75%", numericStatistic(func(numbers []float64) float64 { return percentile(numbers, 0.75) })},
	{"max", numericStatistic(func(numbers []float64) float64 { return percentile(numbers, 1) })},
}

type describeStatistic struct {
	name    string
	compute func(column table.Column) any
}

func numericStatistic(compute func(numbers []float64) float64) func(column table.Column) any {
	return func(column table.Column) any {
		numbers := presentNumbers(column)
		if len(numbers) == 0 {
			return nil
		}
		return compute(numbers)
	}
}

func presentCount(column table.Column) int64 {
	count := int64(0)
	for _, cell := range column.Values {
		if cell != nil {
			count++
		}
	}
	return count
}

// SummarizeByGroup partitions the table's rows by the distinct values of
// groupColumn (in first-appearance order, excluding rows where the group cell
// is missing), and returns a table with one row per group.
//
// With a nil/empty aggregations map, every numeric column gets the full
// descriptive statistics panel (count, mean, std, min, quartiles, max).
// Otherwise, each named column gets one result column per given aggregation.
func SummarizeByGroup(
	tbl table.Table,
	groupColumn string,
	aggregations map[string][]Aggregation,
) (table.Table, error) {
	grouping, ok := tbl.Column(groupColumn)
	if !ok {
		return table.Table{}, fmt.Errorf("table has no column named '%s'", groupColumn)
	}

	groups := partitionRows(grouping)

	if len(aggregations) == 0 {
		return describeGroups(tbl, grouping, groups)
	}
	return aggregateGroups(tbl, grouping, groups, aggregations)
}

type rowGroup struct {
	key  any
	rows []int
}

func partitionRows(grouping table.Column) []rowGroup {
	var groups []rowGroup
	groupIndices := make(map[string]int)

	for rowIndex, cell := range grouping.Values {
		if cell == nil {
			continue
		}

		key := table.FormatCell(cell)
		index, seen := groupIndices[key]
		if !seen {
			index = len(groups)
			groupIndices[key] = index
			groups = append(groups, rowGroup{key: cell})
		}
		groups[index].rows = append(groups[index].rows, rowIndex)
	}

	return groups
}

func describeGroups(
	tbl table.Table,
	grouping table.Column,
	groups []rowGroup,
) (table.Table, error) {
	resultColumns := []table.Column{groupKeyColumn(grouping, groups)}

	for _, column := range tbl.Columns() {
		if column.Name == grouping.Name || !column.DataType.IsNumeric() {
			continue
		}

		for _, statistic := range describeStatistics {
			values := make([]any, 0, len(groups))
			for _, group := range groups {
				values = append(values, statistic.compute(columnSubset(column, group.rows)))
			}

			dataType := table.DataTypeFloat
			if statistic.name == "count" {
				dataType = table.DataTypeInt
			}
			resultColumns = append(resultColumns, table.Column{
				Name:     fmt.Sprintf("%s_%s", column.Name, statistic.name),
				DataType: dataType,
				Values:   values,
			})
		}
	}

	return table.New(resultColumns...)
}

func aggregateGroups(
	tbl table.Table,
	grouping table.Column,
	groups []rowGroup,
	aggregations map[string][]Aggregation,
) (table.Table, error) {
	for columnName := range aggregations {
		if tbl.ColumnIndex(columnName) == -1 {
			return table.Table{}, fmt.Errorf("table has no column named '%s'", columnName)
		}
	}

	resultColumns := []table.Column{groupKeyColumn(grouping, groups)}

	// Result columns follow the table's column order, so output is
	// deterministic regardless of the aggregation map's iteration order.
	for _, column := range tbl.Columns() {
		columnAggregations, requested := aggregations[column.Name]
		if !requested {
			continue
		}

		for _, aggregation := range columnAggregations {
			resultColumn, err := aggregateColumn(column, aggregation, groups)
			if err != nil {
				return table.Table{}, wrap.Errorf(
					err,
					"failed to aggregate column '%s'",
					column.Name,
				)
			}
			resultColumns = append(resultColumns, resultColumn)
		}
	}

	return table.New(resultColumns...)
}

func groupKeyColumn(grouping table.Column, groups []rowGroup) table.Column {
	keys := make([]any, 0, len(groups))
	for _, group := range groups {
		keys = append(keys, group.key)
	}
	return table.Column{Name: grouping.Name, DataType: grouping.DataType, Values: keys}
}

func aggregateColumn(
	column table.Column,
	aggregation Aggregation,
	groups []rowGroup,
) (table.Column, error) {
	if !aggregation.IsValid() {
		return table.Column{}, fmt.Errorf("unrecognized aggregation (value %d)", aggregation)
	}
	if aggregation != AggregationCount && !column.DataType.IsNumeric() {
		return table.Column{}, fmt.Errorf(
			"aggregation %v requires a numeric column, but column has type %v",
			aggregation,
			column.DataType,
		)
	}

	dataType := table.DataTypeFloat
	if aggregation == AggregationCount {
		dataType = table.DataTypeInt
	}

	values := make([]any, 0, len(groups))
	for _, group := range groups {
		subset := columnSubset(column, group.rows)

		if aggregation == AggregationCount {
			values = append(values, presentCount(subset))
			continue
		}

		numbers := presentNumbers(subset)
		if len(numbers) == 0 {
			values = append(values, nil)
			continue
		}

		switch aggregation {
		case AggregationSum:
			values = append(values, sum(numbers))
		case AggregationMean:
			values = append(values, mean(numbers))
		case AggregationMedian:
			values = append(values, median(numbers))
		case AggregationMin:
			values = append(values, percentile(numbers, 0))
		case AggregationMax:
			values = append(values, percentile(numbers, 1))
		case AggregationStdDev:
			values = append(values, sampleStdDev(numbers))
		}
	}

	return table.Column{
		Name:     fmt.Sprintf("%s_%s", column.Name, strings.ToLower(aggregation.String())),
		DataType: dataType,
		Values:   values,
	}, nil
}

func columnSubset(column table.Column, rows []int) table.Column {
	values := make([]any, 0, len(rows))
	for _, rowIndex := range rows {
		values = append(values, column.Values[rowIndex])
	}
	return table.Column{Name: column.Name, DataType: column.DataType, Values: values}
}
