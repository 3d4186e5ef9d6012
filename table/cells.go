package table

import (
	"strconv"
	"time"
)

// Canonical cell representations per data type: int64 for INTEGER, float64 for
// FLOAT, time.Time for TIMESTAMP, string for STRING/UUID/CATEGORY.
func cellMatchesDataType(cell any, dataType DataType) bool {
	switch cell.(type) {
	case int64:
		return dataType == DataTypeInt
	case float64:
		return dataType == DataTypeFloat
	case time.Time:
		return dataType == DataTypeTimestamp
	case string:
		return dataType == DataTypeString || dataType == DataTypeUUID ||
			dataType == DataTypeCategory
	default:
		return false
	}
}

// NumericCell converts a cell to float64, if it holds a numeric value.
func NumericCell(cell any) (value float64, isNumeric bool) {
	switch cell := cell.(type) {
	case int64:
		return float64(cell), true
	case float64:
		return cell, true
	default:
		return 0, false
	}
}

// FormatCell gives the textual form of a cell, as written to CSV output.
// Missing cells format as the empty string.
func FormatCell(cell any) string {
	switch cell := cell.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(cell, 10)
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case time.Time:
		return cell.Format(time.RFC3339)
	case string:
		return cell
	default:
		return ""
	}
}

// CellsEqual compares two cells for equality, treating int64 and float64
// cells with the same numeric value as equal. Missing cells equal only other
// missing cells.
func CellsEqual(a any, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if aNumeric, ok := NumericCell(a); ok {
		bNumeric, ok := NumericCell(b)
		return ok && aNumeric == bNumeric
	}

	if aTime, ok := a.(time.Time); ok {
		bTime, ok := b.(time.Time)
		return ok && aTime.Equal(bTime)
	}

	return a == b
}
