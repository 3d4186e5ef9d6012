package transform

import (
	"fmt"
	"strconv"
	"time"

	"hermannm.dev/dataprep/table"
	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

// ColumnType is a target representation for column type conversion.
type ColumnType uint8

const (
	ColumnTypeDatetime ColumnType = iota + 1
	ColumnTypeNumeric
	ColumnTypeCategory
	ColumnTypeString
)

var columnTypeNames = enumnames.NewMap(map[ColumnType]string{
	ColumnTypeDatetime: "DATETIME",
	ColumnTypeNumeric:  "NUMERIC",
	ColumnTypeCategory: "CATEGORY",
	ColumnTypeString:   "STRING",
})

func (columnType ColumnType) IsValid() bool {
	return columnTypeNames.ContainsEnumValue(columnType)
}

func (columnType ColumnType) String() string {
	return columnTypeNames.GetNameOrFallback(columnType, "INVALID_COLUMN_TYPE")
}

func (columnType ColumnType) MarshalJSON() ([]byte, error) {
	return columnTypeNames.MarshalToNameJSON(columnType)
}

func (columnType *ColumnType) UnmarshalJSON(bytes []byte) error {
	return columnTypeNames.UnmarshalFromNameJSON(bytes, columnType)
}

// ConvertTypes returns a copy of the table where each column named in
// columnTypes is converted to the given target type:
//   - DATETIME parses text cells permissively across common date layouts
//   - NUMERIC parses cells to float, failing on unparseable cells
//   - CATEGORY/STRING convert cells to their textual form
//
// A type outside the supported ones fails with an error naming it.
func ConvertTypes(tbl table.Table, columnTypes map[string]ColumnType) (table.Table, error) {
	converted := tbl.Clone()

	for _, column := range converted.Columns() {
		columnType, requested := columnTypes[column.Name]
		if !requested {
			continue
		}

		convertedColumn, err := convertColumn(column, columnType)
		if err != nil {
			return table.Table{}, wrap.Errorf(
				err,
				"failed to convert column '%s' to %v",
				column.Name,
				columnType,
			)
		}

		converted, err = converted.WithColumn(convertedColumn)
		if err != nil {
			return table.Table{}, err
		}
	}

	for columnName := range columnTypes {
		if converted.ColumnIndex(columnName) == -1 {
			return table.Table{}, fmt.Errorf("table has no column named '%s'", columnName)
		}
	}

	return converted, nil
}

func convertColumn(column table.Column, columnType ColumnType) (table.Column, error) {
	var dataType table.DataType
	var convert func(cell any) (any, error)

	switch columnType {
	case ColumnTypeDatetime:
		dataType = table.DataTypeTimestamp
		convert = cellToTimestamp
	case ColumnTypeNumeric:
		dataType = table.DataTypeFloat
		convert = cellToNumber
	case ColumnTypeCategory:
		dataType = table.DataTypeCategory
		convert = cellToText
	case ColumnTypeString:
		dataType = table.DataTypeString
		convert = cellToText
	default:
		return table.Column{}, fmt.Errorf(
			"unsupported column type '%v' (value %d)",
			columnType,
			columnType,
		)
	}

	values := make([]any, 0, len(column.Values))
	for rowIndex, cell := range column.Values {
		if cell == nil {
			values = append(values, nil)
			continue
		}

		converted, err := convert(cell)
		if err != nil {
			return table.Column{}, wrap.Errorf(err, "row %d", rowIndex+1)
		}
		values = append(values, converted)
	}

	return table.Column{Name: column.Name, DataType: dataType, Values: values}, nil
}

func cellToTimestamp(cell any) (any, error) {
	switch cell := cell.(type) {
	case time.Time:
		return cell, nil
	case string:
		parsed, ok := table.ParseTimestamp(cell)
		if !ok {
			return nil, fmt.Errorf("failed to parse '%s' as timestamp", cell)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("cannot convert '%v' to timestamp", cell)
	}
}

func cellToNumber(cell any) (any, error) {
	if number, ok := table.NumericCell(cell); ok {
		return number, nil
	}
	if text, isText := cell.(string); isText {
		number, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse '%s' as number", text)
		}
		return number, nil
	}
	return nil, fmt.Errorf("cannot convert '%v' to number", cell)
}

func cellToText(cell any) (any, error) {
	return table.FormatCell(cell), nil
}
