package csv

import (
	"bufio"
	"strings"
)

var delimitersToCheck = []rune{',', ';', '\t', '|'}

const maxRowsToCheckForDelimiter = 20

// DeduceFieldDelimiter finds the most likely field delimiter for the given
// raw delimited text, by counting candidate delimiter occurrences over the
// first rows. A candidate that appears the same number of times on every row
// is preferred, since every row has the same number of fields.
func DeduceFieldDelimiter(rawText string) rune {
	candidates := make([]delimiterCandidate, 0, len(delimitersToCheck))
	for _, delimiter := range delimitersToCheck {
		candidates = append(candidates, delimiterCandidate{delimiter: delimiter})
	}

	scanner := bufio.NewScanner(strings.NewReader(rawText))
	for i := 0; scanner.Scan() && i < maxRowsToCheckForDelimiter; i++ {
		line := scanner.Text()
		for j := range candidates {
			candidates[j].countLine(line)
		}
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.beats(best) {
			best = candidate
		}
	}
	return best.delimiter
}

type delimiterCandidate struct {
	delimiter    rune
	linesCounted int
	totalCount   int
	consistent   bool
	lineCount    int
}

func (candidate *delimiterCandidate) countLine(line string) {
	count := strings.Count(line, string(candidate.delimiter))

	if candidate.linesCounted == 0 {
		candidate.lineCount = count
		candidate.consistent = true
	} else if count != candidate.lineCount {
		candidate.consistent = false
	}

	candidate.linesCounted++
	candidate.totalCount += count
}

func (candidate delimiterCandidate) beats(other delimiterCandidate) bool {
	if candidate.totalCount == 0 {
		return false
	}
	if candidate.consistent != other.consistent {
		return candidate.consistent
	}
	return candidate.totalCount > other.totalCount
}
