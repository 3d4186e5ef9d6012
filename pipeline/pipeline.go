// Package pipeline runs an ordered list of table transformations declared in
// a JSON document, so a whole cleaning flow can be described in a file
// instead of code.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"hermannm.dev/dataprep/table"
	"hermannm.dev/dataprep/transform"
	"hermannm.dev/wrap"
)

type Pipeline struct {
	Steps []Step `json:"steps"`
}

// Step declares a single transformation. Exactly one of its fields must be
// set; enum-valued fields inside each step reject unrecognized names at
// decode time.
type Step struct {
	Clean            *CleanStep            `json:"clean,omitempty"`
	FillMissing      *FillMissingStep      `json:"fillMissing,omitempty"`
	Filter           *FilterStep           `json:"filter,omitempty"`
	ConvertTypes     *ConvertTypesStep     `json:"convertTypes,omitempty"`
	CreateBins       *CreateBinsStep       `json:"createBins,omitempty"`
	SummarizeByGroup *SummarizeByGroupStep `json:"summarizeByGroup,omitempty"`
}

type CleanStep struct {
	KeepDuplicates bool     `json:"keepDuplicates,omitempty"`
	Sentinel       *float64 `json:"sentinel,omitempty"`
}

type FillMissingStep struct {
	Column   string                 `json:"column"`
	Strategy transform.FillStrategy `json:"strategy"`
}

type FilterStep struct {
	Filters []transform.Filter `json:"filters"`
}

type ConvertTypesStep struct {
	ColumnTypes map[string]transform.ColumnType `json:"columnTypes"`
}

type CreateBinsStep struct {
	Column    string    `json:"column"`
	BinEdges  []float64 `json:"binEdges"`
	Labels    []string  `json:"labels"`
	NewColumn string    `json:"newColumn,omitempty"`
}

type SummarizeByGroupStep struct {
	GroupColumn  string                             `json:"groupColumn"`
	Aggregations map[string][]transform.Aggregation `json:"aggregations,omitempty"`
}

func ParseFile(path string) (Pipeline, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, wrap.Errorf(err, "failed to read pipeline file '%s'", path)
	}

	pipeline, err := Parse(contents)
	if err != nil {
		return Pipeline{}, wrap.Errorf(err, "failed to parse pipeline file '%s'", path)
	}
	return pipeline, nil
}

func Parse(pipelineJSON []byte) (Pipeline, error) {
	var pipeline Pipeline
	if err := json.Unmarshal(pipelineJSON, &pipeline); err != nil {
		return Pipeline{}, wrap.Error(err, "failed to parse pipeline JSON")
	}

	for i, step := range pipeline.Steps {
		if err := step.validate(); err != nil {
			return Pipeline{}, wrap.Errorf(err, "invalid pipeline step %d", i+1)
		}
	}

	return pipeline, nil
}

func (step Step) validate() error {
	declared := 0
	for _, field := range []bool{
		step.Clean != nil,
		step.FillMissing != nil,
		step.Filter != nil,
		step.ConvertTypes != nil,
		step.CreateBins != nil,
		step.SummarizeByGroup != nil,
	} {
		if field {
			declared++
		}
	}

	switch declared {
	case 1:
		return nil
	case 0:
		return errors.New("step declares no transformation")
	default:
		return fmt.Errorf("step declares %d transformations, expected 1", declared)
	}
}

// Apply runs the pipeline's steps in order, each step transforming the
// previous step's output. The input table is left untouched.
func (pipeline Pipeline) Apply(tbl table.Table) (table.Table, error) {
	result := tbl

	for i, step := range pipeline.Steps {
		var err error
		result, err = step.apply(result)
		if err != nil {
			return table.Table{}, wrap.Errorf(err, "pipeline step %d failed", i+1)
		}
	}

	return result, nil
}

func (step Step) apply(tbl table.Table) (table.Table, error) {
	switch {
	case step.Clean != nil:
		options := transform.DefaultCleanOptions()
		options.RemoveDuplicates = !step.Clean.KeepDuplicates
		if step.Clean.Sentinel != nil {
			options.Sentinel = *step.Clean.Sentinel
		}
		return transform.CleanData(tbl, options), nil
	case step.FillMissing != nil:
		return transform.FillMissing(tbl, step.FillMissing.Column, step.FillMissing.Strategy)
	case step.Filter != nil:
		return transform.FilterData(tbl, step.Filter.Filters)
	case step.ConvertTypes != nil:
		return transform.ConvertTypes(tbl, step.ConvertTypes.ColumnTypes)
	case step.CreateBins != nil:
		return transform.CreateBins(
			tbl,
			step.CreateBins.Column,
			step.CreateBins.BinEdges,
			step.CreateBins.Labels,
			step.CreateBins.NewColumn,
		)
	case step.SummarizeByGroup != nil:
		return transform.SummarizeByGroup(
			tbl,
			step.SummarizeByGroup.GroupColumn,
			step.SummarizeByGroup.Aggregations,
		)
	}

	return table.Table{}, errors.New("step declares no transformation")
}
