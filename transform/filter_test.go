package transform

import (
	"testing"

	"github.com/goccy/go-json"
	"hermannm.dev/dataprep/table"
)

func filterTestTable(t *testing.T) table.Table {
	t.Helper()

	return newTestTable(t,
		table.Column{
			Name:     "site",
			DataType: table.DataTypeString,
			Values:   []any{"A", "B", "A", "C", nil},
		},
		table.Column{
			Name:     "age",
			DataType: table.DataTypeInt,
			Values:   []any{int64(15), int64(18), int64(40), int64(65), int64(70)},
		},
	)
}

func TestFilterDataEmptyFilterListReturnsInputUnchanged(t *testing.T) {
	tbl := filterTestTable(t)

	filtered, err := FilterData(tbl, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tablesEqual(t, tbl, filtered) {
		t.Error("expected empty filter list to return the table unchanged")
	}
}

func TestFilterConditions(t *testing.T) {
	testCases := []struct {
		name         string
		filter       Filter
		expectedAges []int64
	}{
		{
			name:         "equals",
			filter:       Filter{Column: "site", Condition: FilterEquals, Value: "A"},
			expectedAges: []int64{15, 40},
		},
		{
			name:         "greater than",
			filter:       Filter{Column: "age", Condition: FilterGreaterThan, Value: 40.0},
			expectedAges: []int64{65, 70},
		},
		{
			name:         "less than",
			filter:       Filter{Column: "age", Condition: FilterLessThan, Value: 18.0},
			expectedAges: []int64{15},
		},
		{
			name: "in range includes both ends",
			filter: Filter{
				Column:    "age",
				Condition: FilterInRange,
				Value:     []any{18.0, 65.0},
			},
			expectedAges: []int64{18, 40, 65},
		},
		{
			name: "in list",
			filter: Filter{
				Column:    "site",
				Condition: FilterInList,
				Value:     []any{"B", "C"},
			},
			expectedAges: []int64{18, 65},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filtered, err := FilterData(filterTestTable(t), []Filter{testCase.filter})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ages := columnValues(t, filtered, "age")
			if len(ages) != len(testCase.expectedAges) {
				t.Fatalf("expected %d rows, got %d", len(testCase.expectedAges), len(ages))
			}
			for i, expectedAge := range testCase.expectedAges {
				if ages[i] != expectedAge {
					t.Errorf("row %d: expected age %d, got %v", i+1, expectedAge, ages[i])
				}
			}
		})
	}
}

func TestFiltersComposeByIntersection(t *testing.T) {
	tbl := filterTestTable(t)
	adultFilter := Filter{Column: "age", Condition: FilterGreaterThan, Value: 18.0}
	siteFilter := Filter{Column: "site", Condition: FilterEquals, Value: "A"}

	sequential, err := FilterData(tbl, []Filter{adultFilter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sequential, err = FilterData(sequential, []Filter{siteFilter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	combined, err := FilterData(tbl, []Filter{adultFilter, siteFilter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tablesEqual(t, sequential, combined) {
		t.Error("expected sequential filtering to equal combined filtering")
	}
}

func TestFilterSkipsMissingCells(t *testing.T) {
	// The site filter must not match row 5, where site is missing.
	filtered, err := FilterData(filterTestTable(t), []Filter{
		{Column: "site", Condition: FilterInList, Value: []any{"A", "B", "C"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filtered.NumRows() != 4 {
		t.Errorf("expected 4 rows, got %d", filtered.NumRows())
	}
}

func TestFilterErrors(t *testing.T) {
	testCases := []struct {
		name   string
		filter Filter
	}{
		{
			name:   "unrecognized condition",
			filter: Filter{Column: "age", Condition: FilterCondition(99), Value: 1.0},
		},
		{
			name:   "unknown column",
			filter: Filter{Column: "no_such_column", Condition: FilterEquals, Value: 1.0},
		},
		{
			name:   "range without value pair",
			filter: Filter{Column: "age", Condition: FilterInRange, Value: 18.0},
		},
		{
			name:   "list with scalar value",
			filter: Filter{Column: "site", Condition: FilterInList, Value: "A"},
		},
		{
			name:   "incomparable value",
			filter: Filter{Column: "age", Condition: FilterGreaterThan, Value: "abc"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := FilterData(filterTestTable(t), []Filter{testCase.filter}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFilterConditionJSON(t *testing.T) {
	var filter Filter
	filterJSON := `{"column": "age", "condition": "IN_RANGE", "value": [18, 65]}`
	if err := json.Unmarshal([]byte(filterJSON), &filter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Condition != FilterInRange {
		t.Errorf("expected FilterInRange, got %v", filter.Condition)
	}

	invalidJSON := `{"column": "age", "condition": "between", "value": [18, 65]}`
	if err := json.Unmarshal([]byte(invalidJSON), &filter); err == nil {
		t.Error("expected error for unrecognized filter condition name")
	}
}
