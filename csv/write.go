package csv

import (
	"encoding/csv"
	"io"
	"os"

	"hermannm.dev/dataprep/table"
	"hermannm.dev/wrap"
)

// WriteTable writes the table as comma-separated text with a header row.
// Missing cells are written as empty fields.
func WriteTable(writer io.Writer, tbl table.Table) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(tbl.ColumnNames()); err != nil {
		return wrap.Error(err, "failed to write header row")
	}

	row := make([]string, tbl.NumColumns())
	for rowIndex := 0; rowIndex < tbl.NumRows(); rowIndex++ {
		for columnIndex, cell := range tbl.Row(rowIndex) {
			row[columnIndex] = table.FormatCell(cell)
		}
		if err := csvWriter.Write(row); err != nil {
			return wrap.Errorf(err, "failed to write row %d", rowIndex+1)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func WriteTableToFile(path string, tbl table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return wrap.Errorf(err, "failed to create file '%s'", path)
	}
	defer file.Close()

	if err := WriteTable(file, tbl); err != nil {
		return wrap.Errorf(err, "failed to write table to file '%s'", path)
	}
	return nil
}
