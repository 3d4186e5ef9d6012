package table

import (
	"errors"
	"fmt"
)

// Table is an in-memory dataset with named, typed columns of equal length.
// A nil cell is the missing-value marker.
//
// Tables are treated as immutable values: every operation that would change a
// table instead returns a new one, built from fresh value slices. Callers must
// not modify the Values slice of a column they got from an existing table.
type Table struct {
	columns []Column
	numRows int
}

type Column struct {
	Name     string
	DataType DataType
	Values   []any
}

func New(columns ...Column) (Table, error) {
	numRows := 0
	if len(columns) > 0 {
		numRows = len(columns[0].Values)
	}

	seenNames := make(map[string]struct{}, len(columns))
	for i, column := range columns {
		if err := column.Validate(); err != nil {
			return Table{}, fmt.Errorf("column %d ('%s'): %w", i, column.Name, err)
		}
		if _, seen := seenNames[column.Name]; seen {
			return Table{}, fmt.Errorf("duplicate column name '%s'", column.Name)
		}
		seenNames[column.Name] = struct{}{}

		if len(column.Values) != numRows {
			return Table{}, fmt.Errorf(
				"column '%s' has %d values, while column '%s' has %d",
				column.Name,
				len(column.Values),
				columns[0].Name,
				numRows,
			)
		}
	}

	return Table{columns: columns, numRows: numRows}, nil
}

func (column Column) Validate() error {
	if column.Name == "" {
		return errors.New("column name is blank")
	}
	if !column.DataType.IsValid() {
		return errors.New("invalid column data type")
	}

	for i, value := range column.Values {
		if value == nil {
			continue
		}
		if !cellMatchesDataType(value, column.DataType) {
			return fmt.Errorf(
				"value '%v' in row %d does not match column data type %v",
				value,
				i,
				column.DataType,
			)
		}
	}

	return nil
}

func (table Table) NumRows() int {
	return table.numRows
}

func (table Table) NumColumns() int {
	return len(table.columns)
}

func (table Table) ColumnNames() []string {
	names := make([]string, 0, len(table.columns))
	for _, column := range table.columns {
		names = append(names, column.Name)
	}
	return names
}

func (table Table) Columns() []Column {
	return table.columns
}

func (table Table) Column(name string) (Column, bool) {
	for _, column := range table.columns {
		if column.Name == name {
			return column, true
		}
	}
	return Column{}, false
}

func (table Table) ColumnIndex(name string) int {
	for i, column := range table.columns {
		if column.Name == name {
			return i
		}
	}
	return -1
}

// Row returns a fresh slice with the cells of the given row, one per column.
func (table Table) Row(index int) []any {
	row := make([]any, 0, len(table.columns))
	for _, column := range table.columns {
		row = append(row, column.Values[index])
	}
	return row
}

// Clone deep-copies the table, so the copy's columns can be modified freely
// before constructing a new table from them.
func (table Table) Clone() Table {
	columns := make([]Column, 0, len(table.columns))
	for _, column := range table.columns {
		values := make([]any, len(column.Values))
		copy(values, column.Values)
		columns = append(
			columns,
			Column{Name: column.Name, DataType: column.DataType, Values: values},
		)
	}
	return Table{columns: columns, numRows: table.numRows}
}

// WithColumn returns a copy of the table where the given column replaces the
// existing column of the same name, or is appended if no such column exists.
func (table Table) WithColumn(newColumn Column) (Table, error) {
	if err := newColumn.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid column '%s': %w", newColumn.Name, err)
	}
	if len(table.columns) > 0 && len(newColumn.Values) != table.numRows {
		return Table{}, fmt.Errorf(
			"column '%s' has %d values, while the table has %d rows",
			newColumn.Name,
			len(newColumn.Values),
			table.numRows,
		)
	}

	cloned := table.Clone()

	if index := cloned.ColumnIndex(newColumn.Name); index != -1 {
		cloned.columns[index] = newColumn
	} else {
		cloned.columns = append(cloned.columns, newColumn)
	}
	if cloned.numRows == 0 {
		cloned.numRows = len(newColumn.Values)
	}

	return cloned, nil
}

// SelectRows returns a new table with only the rows at the given indices, in
// the given order.
func (table Table) SelectRows(indices []int) Table {
	columns := make([]Column, 0, len(table.columns))
	for _, column := range table.columns {
		values := make([]any, 0, len(indices))
		for _, index := range indices {
			values = append(values, column.Values[index])
		}
		columns = append(
			columns,
			Column{Name: column.Name, DataType: column.DataType, Values: values},
		)
	}
	return Table{columns: columns, numRows: len(indices)}
}

// MissingCounts returns the number of missing cells in each column.
func (table Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(table.columns))
	for _, column := range table.columns {
		count := 0
		for _, value := range column.Values {
			if value == nil {
				count++
			}
		}
		counts[column.Name] = count
	}
	return counts
}
