package sampledata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"hermannm.dev/wrap"
)

type Statistics struct {
	Mean   float64
	Median float64
	Sum    float64
	Count  int
}

// CalculateStatistics computes the mean, median, sum and count of the given
// numbers. The mean of an empty sequence is undefined, so empty input is an
// error rather than a NaN result.
func CalculateStatistics(numbers []float64) (Statistics, error) {
	if len(numbers) == 0 {
		return Statistics{}, errors.New("cannot calculate statistics of empty number sequence")
	}

	sum := 0.0
	for _, number := range numbers {
		sum += number
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	var median float64
	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[middle-1] + sorted[middle]) / 2
	} else {
		median = sorted[middle]
	}

	return Statistics{
		Mean:   sum / float64(len(numbers)),
		Median: median,
		Sum:    sum,
		Count:  len(numbers),
	}, nil
}

// Format gives the statistics as 'key: value' lines, in the order mean,
// median, sum, count.
func (statistics Statistics) Format() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "mean: %s\n", formatNumber(statistics.Mean))
	fmt.Fprintf(&builder, "median: %s\n", formatNumber(statistics.Median))
	fmt.Fprintf(&builder, "sum: %s\n", formatNumber(statistics.Sum))
	fmt.Fprintf(&builder, "count: %d\n", statistics.Count)
	return builder.String()
}

func formatNumber(number float64) string {
	return strconv.FormatFloat(number, 'f', -1, 64)
}

func WriteStatisticsFile(path string, statistics Statistics) error {
	if err := os.WriteFile(path, []byte(statistics.Format()), 0644); err != nil {
		return wrap.Errorf(err, "failed to write statistics file '%s'", path)
	}
	return nil
}

// ReadSampleData reads a generated sample data file back into numbers, one
// per line.
func ReadSampleData(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to open sample data file '%s'", path)
	}
	defer file.Close()

	numbers, err := readNumberLines(file)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to read sample data file '%s'", path)
	}
	return numbers, nil
}

func readNumberLines(reader io.Reader) ([]float64, error) {
	var numbers []float64

	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		number, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, wrap.Errorf(err, "line %d is not a number: '%s'", lineNumber, line)
		}
		numbers = append(numbers, number)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return numbers, nil
}
