package transform

import (
	"math"
	"sort"

	"hermannm.dev/dataprep/table"
)

// presentNumbers collects the non-missing numeric values of a column, in row
// order.
func presentNumbers(column table.Column) []float64 {
	numbers := make([]float64, 0, len(column.Values))
	for _, cell := range column.Values {
		if value, ok := table.NumericCell(cell); ok {
			numbers = append(numbers, value)
		}
	}
	return numbers
}

func sum(numbers []float64) float64 {
	total := 0.0
	for _, number := range numbers {
		total += number
	}
	return total
}

func mean(numbers []float64) float64 {
	return sum(numbers) / float64(len(numbers))
}

func median(numbers []float64) float64 {
	return percentile(numbers, 0.5)
}

// percentile computes the given percentile (0 to 1) with linear interpolation
// between the two nearest ranks.
func percentile(numbers []float64, fraction float64) float64 {
	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	position := fraction * float64(len(sorted)-1)
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))
	if lower == upper {
		return sorted[lower]
	}
	weight := position - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// sampleStdDev computes the sample standard deviation (dividing by n-1).
// Returns NaN for fewer than two values, where the deviation is undefined.
func sampleStdDev(numbers []float64) float64 {
	if len(numbers) < 2 {
		return math.NaN()
	}

	average := mean(numbers)
	sumOfSquares := 0.0
	for _, number := range numbers {
		deviation := number - average
		sumOfSquares += deviation * deviation
	}
	return math.Sqrt(sumOfSquares / float64(len(numbers)-1))
}
