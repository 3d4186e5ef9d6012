// Package csv loads delimited text files into tables, and writes tables back
// out as comma-separated text.
package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"hermannm.dev/dataprep/table"
	"hermannm.dev/wrap"
)

func LoadTableFromFile(path string) (table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return table.Table{}, wrap.Errorf(err, "failed to open file '%s'", path)
	}
	defer file.Close()

	loaded, err := LoadTable(file)
	if err != nil {
		return table.Table{}, wrap.Errorf(err, "failed to load table from file '%s'", path)
	}
	return loaded, nil
}

// LoadTable reads delimited text with a header row into a table. The field
// delimiter is deduced from the data, and column data types are deduced from
// the fields of each column. Blank fields become missing cells.
func LoadTable(reader io.Reader) (table.Table, error) {
	rawText, err := io.ReadAll(reader)
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to read input")
	}

	delimiter := DeduceFieldDelimiter(string(rawText))

	csvReader := csv.NewReader(strings.NewReader(string(rawText)))
	csvReader.Comma = delimiter

	records, err := csvReader.ReadAll()
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to parse delimited text")
	}
	if len(records) == 0 {
		return table.Table{}, errors.New("input ended before header row")
	}

	columnNames := records[0]
	rows := records[1:]

	columns := make([]table.Column, 0, len(columnNames))
	for columnIndex, columnName := range columnNames {
		dataType := deduceColumnDataType(rows, columnIndex)

		values := make([]any, 0, len(rows))
		for rowNumber, row := range rows {
			value, err := parseField(row[columnIndex], dataType)
			if err != nil {
				return table.Table{}, wrap.Errorf(
					err,
					"failed to parse field in row %d of column '%s'",
					rowNumber+1,
					columnName,
				)
			}
			values = append(values, value)
		}

		columns = append(
			columns,
			table.Column{Name: columnName, DataType: dataType, Values: values},
		)
	}

	loaded, err := table.New(columns...)
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to construct table")
	}
	return loaded, nil
}

func deduceColumnDataType(rows [][]string, columnIndex int) table.DataType {
	var deduced table.DataType

	for _, row := range rows {
		field := row[columnIndex]
		if field == "" {
			continue
		}

		fieldType := deduceFieldDataType(field)
		switch {
		case deduced == 0:
			deduced = fieldType
		case deduced == fieldType:
			continue
		case numericTypes(deduced, fieldType):
			deduced = table.DataTypeFloat
		default:
			// Incompatible types in the same column: fall back to text.
			return table.DataTypeString
		}
	}

	if deduced == 0 {
		return table.DataTypeString
	}
	return deduced
}

func numericTypes(type1 table.DataType, type2 table.DataType) bool {
	return type1.IsNumeric() && type2.IsNumeric()
}

func deduceFieldDataType(field string) table.DataType {
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return table.DataTypeInt
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return table.DataTypeFloat
	}
	if _, ok := table.ParseTimestamp(field); ok {
		return table.DataTypeTimestamp
	}
	if _, err := uuid.Parse(field); err == nil {
		return table.DataTypeUUID
	}
	return table.DataTypeString
}

func parseField(field string, dataType table.DataType) (any, error) {
	if field == "" {
		return nil, nil
	}

	switch dataType {
	case table.DataTypeInt:
		return strconv.ParseInt(field, 10, 64)
	case table.DataTypeFloat:
		return strconv.ParseFloat(field, 64)
	case table.DataTypeTimestamp:
		parsed, ok := table.ParseTimestamp(field)
		if !ok {
			return nil, errors.New("failed to parse field as timestamp")
		}
		return parsed, nil
	case table.DataTypeUUID:
		if _, err := uuid.Parse(field); err != nil {
			return nil, wrap.Error(err, "failed to parse field as UUID")
		}
		return field, nil
	case table.DataTypeString, table.DataTypeCategory:
		return field, nil
	}

	return nil, errors.New("unrecognized column data type")
}
