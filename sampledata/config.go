// Package sampledata generates files of synthetic sample numbers from a
// small key=value config file, and computes descriptive statistics over the
// generated numbers.
package sampledata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hermannm.dev/wrap"
)

// Config keys recognized by validation and generation.
const (
	ConfigKeyRows = "sample_data_rows"
	ConfigKeyMin  = "sample_data_min"
	ConfigKeyMax  = "sample_data_max"
)

// Config holds the raw key=value pairs of a parsed config file. Values stay
// unparsed text until validated; a well-formed config may still fail
// validation.
type Config map[string]string

func ParseConfigFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to open config file '%s'", path)
	}
	defer file.Close()

	config, err := ParseConfig(file)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to parse config file '%s'", path)
	}
	return config, nil
}

// ParseConfig reads key=value pairs, one per line. Blank lines are skipped;
// any other line must contain exactly one '=', with no quoting or escaping.
// A malformed line aborts the whole parse.
func ParseConfig(reader io.Reader) (Config, error) {
	config := make(Config)

	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Count(line, "=") != 1 {
			return nil, fmt.Errorf(
				"line %d is not a single key=value pair: '%s'",
				lineNumber,
				line,
			)
		}

		key, value, _ := strings.Cut(line, "=")
		config[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, wrap.Error(err, "failed to read config")
	}

	return config, nil
}

// ValidationResult maps each config key to whether its value passed
// validation. Keys outside the recognized config keys are always invalid.
type ValidationResult map[string]bool

// Validate checks each config value against the rules for its key:
// sample_data_rows must be a positive integer, sample_data_min an integer of
// at least 1, and sample_data_max an integer greater than sample_data_min.
//
// A config with a number of entries other than three is a structural error.
// A value failing its rule is not an error: it yields false in the result.
func (config Config) Validate() (ValidationResult, error) {
	if len(config) != 3 {
		return nil, fmt.Errorf("config has %d entries, expected 3", len(config))
	}

	result := make(ValidationResult, len(config))
	for key, value := range config {
		switch key {
		case ConfigKeyRows:
			rows, ok := parsePositiveInt(value)
			result[key] = ok && rows > 0
		case ConfigKeyMin:
			min, ok := parsePositiveInt(value)
			result[key] = ok && min >= 1
		case ConfigKeyMax:
			max, maxOK := parsePositiveInt(value)
			min, minOK := parsePositiveInt(config[ConfigKeyMin])
			result[key] = maxOK && minOK && max > min
		default:
			result[key] = false
		}
	}

	return result, nil
}

// parsePositiveInt parses strings of decimal digits only, so signs,
// whitespace, and fractions all fail validation rather than sneaking through
// strconv's more lenient parsing.
func parsePositiveInt(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for _, char := range value {
		if char < '0' || char > '9' {
			return 0, false
		}
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
