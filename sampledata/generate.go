package sampledata

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"hermannm.dev/wrap"
)

// GenerateParams are the integer values of a validated config.
type GenerateParams struct {
	Rows int
	Min  int
	Max  int
}

// GenerateParams converts the config's values to integers. It assumes the
// config has already passed validation, but still errors on values it cannot
// convert.
func (config Config) GenerateParams() (GenerateParams, error) {
	var params GenerateParams

	for _, value := range []struct {
		key   string
		field *int
	}{
		{ConfigKeyRows, &params.Rows},
		{ConfigKeyMin, &params.Min},
		{ConfigKeyMax, &params.Max},
	} {
		parsed, err := strconv.Atoi(config[value.key])
		if err != nil {
			return GenerateParams{}, wrap.Errorf(
				err,
				"config value '%s' for %s is not an integer",
				config[value.key],
				value.key,
			)
		}
		*value.field = parsed
	}

	if params.Max < params.Min {
		return GenerateParams{}, fmt.Errorf(
			"config gives empty sample range [%d, %d]",
			params.Min,
			params.Max,
		)
	}

	return params, nil
}

// GenerateSampleData writes params.Rows lines to the file at the given path,
// each an independently drawn uniform random integer in [params.Min,
// params.Max] inclusive, overwriting any existing file.
//
// The random generator is injected so tests can fix the seed: the same seed
// always produces the same file.
func GenerateSampleData(path string, params GenerateParams, random *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return wrap.Errorf(err, "failed to create sample data file '%s'", path)
	}
	defer file.Close()

	if err := WriteSampleData(file, params, random); err != nil {
		return wrap.Errorf(err, "failed to write sample data to '%s'", path)
	}
	return nil
}

func WriteSampleData(writer io.Writer, params GenerateParams, random *rand.Rand) error {
	buffered := bufio.NewWriter(writer)

	for i := 0; i < params.Rows; i++ {
		number := params.Min + random.Intn(params.Max-params.Min+1)

		if _, err := buffered.WriteString(strconv.Itoa(number)); err != nil {
			return err
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return err
		}
	}

	return buffered.Flush()
}
