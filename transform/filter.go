package transform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hermannm.dev/dataprep/table"
	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

type FilterCondition uint8

const (
	FilterEquals FilterCondition = iota + 1
	FilterGreaterThan
	FilterLessThan
	FilterInRange
	FilterInList
)

var filterConditionNames = enumnames.NewMap(map[FilterCondition]string{
	FilterEquals:      "EQUALS",
	FilterGreaterThan: "GREATER_THAN",
	FilterLessThan:    "LESS_THAN",
	FilterInRange:     "IN_RANGE",
	FilterInList:      "IN_LIST",
})

func (condition FilterCondition) IsValid() bool {
	return filterConditionNames.ContainsEnumValue(condition)
}

func (condition FilterCondition) String() string {
	return filterConditionNames.GetNameOrFallback(condition, "INVALID_FILTER_CONDITION")
}

func (condition FilterCondition) MarshalJSON() ([]byte, error) {
	return filterConditionNames.MarshalToNameJSON(condition)
}

func (condition *FilterCondition) UnmarshalJSON(bytes []byte) error {
	return filterConditionNames.UnmarshalFromNameJSON(bytes, condition)
}

// Filter keeps the rows of a table where the value of the given column
// matches the condition. Value holds a scalar for EQUALS/GREATER_THAN/
// LESS_THAN, a two-element [low, high] sequence for IN_RANGE (inclusive on
// both ends), and a list of allowed scalars for IN_LIST.
type Filter struct {
	Column    string          `json:"column"`
	Condition FilterCondition `json:"condition"`
	Value     any             `json:"value"`
}

func (filter Filter) Validate() error {
	if filter.Column == "" {
		return errors.New("filter column is blank")
	}

	switch filter.Condition {
	case FilterEquals, FilterGreaterThan, FilterLessThan:
		if _, isList := filter.Value.([]any); isList || filter.Value == nil {
			return fmt.Errorf("filter condition %v requires a scalar value", filter.Condition)
		}
	case FilterInRange:
		bounds, isList := filter.Value.([]any)
		if !isList || len(bounds) != 2 {
			return errors.New("filter condition IN_RANGE requires a [low, high] value pair")
		}
	case FilterInList:
		if _, isList := filter.Value.([]any); !isList {
			return errors.New("filter condition IN_LIST requires a list value")
		}
	default:
		// An unrecognized condition is an error, not a no-op: silently
		// skipping a filter would yield a larger row set than the caller
		// asked for.
		return fmt.Errorf("unrecognized filter condition (value %d)", filter.Condition)
	}

	return nil
}

// FilterData applies each filter in order to the progressively narrowed
// table, so the result contains the rows matching every filter. An empty
// filter list returns the table unchanged (as a copy).
func FilterData(tbl table.Table, filters []Filter) (table.Table, error) {
	filtered := tbl.Clone()

	for i, filter := range filters {
		var err error
		filtered, err = applyFilter(filtered, filter)
		if err != nil {
			return table.Table{}, wrap.Errorf(
				err,
				"failed to apply filter %d on column '%s'",
				i+1,
				filter.Column,
			)
		}
	}

	return filtered, nil
}

func applyFilter(tbl table.Table, filter Filter) (table.Table, error) {
	if err := filter.Validate(); err != nil {
		return table.Table{}, err
	}

	column, ok := tbl.Column(filter.Column)
	if !ok {
		return table.Table{}, fmt.Errorf("table has no column named '%s'", filter.Column)
	}

	keptRows := make([]int, 0, len(column.Values))
	for rowIndex, cell := range column.Values {
		// Missing cells never match a filter.
		if cell == nil {
			continue
		}

		matches, err := filter.matches(cell)
		if err != nil {
			return table.Table{}, err
		}
		if matches {
			keptRows = append(keptRows, rowIndex)
		}
	}

	return tbl.SelectRows(keptRows), nil
}

func (filter Filter) matches(cell any) (bool, error) {
	switch filter.Condition {
	case FilterEquals:
		return cellEqualsFilterValue(cell, filter.Value), nil
	case FilterGreaterThan:
		comparison, err := compareCellToFilterValue(cell, filter.Value)
		if err != nil {
			return false, err
		}
		return comparison > 0, nil
	case FilterLessThan:
		comparison, err := compareCellToFilterValue(cell, filter.Value)
		if err != nil {
			return false, err
		}
		return comparison < 0, nil
	case FilterInRange:
		bounds := filter.Value.([]any)

		lowerComparison, err := compareCellToFilterValue(cell, bounds[0])
		if err != nil {
			return false, err
		}
		upperComparison, err := compareCellToFilterValue(cell, bounds[1])
		if err != nil {
			return false, err
		}
		return lowerComparison >= 0 && upperComparison <= 0, nil
	case FilterInList:
		for _, allowed := range filter.Value.([]any) {
			if cellEqualsFilterValue(cell, allowed) {
				return true, nil
			}
		}
		return false, nil
	}

	return false, fmt.Errorf("unrecognized filter condition (value %d)", filter.Condition)
}

func cellEqualsFilterValue(cell any, value any) bool {
	if cellTime, isTime := cell.(time.Time); isTime {
		valueTime, ok := filterValueAsTime(value)
		return ok && cellTime.Equal(valueTime)
	}
	return table.CellsEqual(cell, value)
}

// compareCellToFilterValue orders a cell against a filter value: negative if
// the cell comes first, positive if the value does, zero if equal. Numeric
// cells compare numerically, timestamp cells compare chronologically (the
// value may be timestamp-formatted text), and text cells lexically.
func compareCellToFilterValue(cell any, value any) (int, error) {
	if cellNumber, ok := table.NumericCell(cell); ok {
		valueNumber, ok := table.NumericCell(value)
		if !ok {
			return 0, fmt.Errorf("cannot compare numeric cell to filter value '%v'", value)
		}
		switch {
		case cellNumber < valueNumber:
			return -1, nil
		case cellNumber > valueNumber:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if cellTime, isTime := cell.(time.Time); isTime {
		valueTime, ok := filterValueAsTime(value)
		if !ok {
			return 0, fmt.Errorf("cannot compare timestamp cell to filter value '%v'", value)
		}
		return cellTime.Compare(valueTime), nil
	}

	if cellText, isText := cell.(string); isText {
		valueText, isText := value.(string)
		if !isText {
			return 0, fmt.Errorf("cannot compare text cell to filter value '%v'", value)
		}
		return strings.Compare(cellText, valueText), nil
	}

	return 0, fmt.Errorf("cell '%v' does not support ordered comparison", cell)
}

func filterValueAsTime(value any) (time.Time, bool) {
	switch value := value.(type) {
	case time.Time:
		return value, true
	case string:
		return table.ParseTimestamp(value)
	default:
		return time.Time{}, false
	}
}
