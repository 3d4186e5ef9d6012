package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"hermannm.dev/dataprep/config"
	"hermannm.dev/dataprep/csv"
	"hermannm.dev/dataprep/pipeline"
	"hermannm.dev/dataprep/sampledata"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.ErrorCause(err, "dataprep failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dataprep",
		Short:         "Generate synthetic sample data, and clean tabular datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.ReadFromEnv()
			if err != nil {
				return wrap.Error(err, "failed to read config from env")
			}

			logLevel := slog.LevelInfo
			if conf.DebugLogs {
				logLevel = slog.LevelDebug
			}
			logHandler := devlog.NewHandler(os.Stderr, &devlog.Options{Level: logLevel})
			slog.SetDefault(slog.New(logHandler))

			return nil
		},
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newTransformCmd())
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var outputPath string
	var statisticsPath string
	var seed int64

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample data file from a key=value config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateSampleData(configPath, outputPath, statisticsPath, seed)
		},
	}

	flags := generateCmd.Flags()
	flags.StringVar(&configPath, "config", "sample_config.txt", "path to key=value config file")
	flags.StringVar(&outputPath, "output", "sample_data.csv", "path of generated data file")
	flags.StringVar(
		&statisticsPath,
		"statistics",
		"",
		"also write statistics over the generated data to this file",
	)
	flags.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the current time)")

	return generateCmd
}

func generateSampleData(
	configPath string,
	outputPath string,
	statisticsPath string,
	seed int64,
) error {
	conf, err := sampledata.ParseConfigFile(configPath)
	if err != nil {
		return err
	}

	validation, err := conf.Validate()
	if err != nil {
		return wrap.Error(err, "invalid config")
	}
	if invalidKeys := invalidConfigKeys(validation); len(invalidKeys) > 0 {
		return fmt.Errorf(
			"config failed validation for keys: %s",
			strings.Join(invalidKeys, ", "),
		)
	}

	params, err := conf.GenerateParams()
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	random := rand.New(rand.NewSource(seed))

	if err := sampledata.GenerateSampleData(outputPath, params, random); err != nil {
		return err
	}
	log.Infof(
		"Generated %d sample numbers in [%d, %d] to '%s'",
		params.Rows,
		params.Min,
		params.Max,
		outputPath,
	)

	if statisticsPath == "" {
		return nil
	}

	numbers, err := sampledata.ReadSampleData(outputPath)
	if err != nil {
		return err
	}
	statistics, err := sampledata.CalculateStatistics(numbers)
	if err != nil {
		return err
	}
	if err := sampledata.WriteStatisticsFile(statisticsPath, statistics); err != nil {
		return err
	}
	log.Infof("Wrote statistics over generated data to '%s'", statisticsPath)

	return nil
}

func invalidConfigKeys(validation sampledata.ValidationResult) []string {
	var invalidKeys []string
	for key, valid := range validation {
		if !valid {
			invalidKeys = append(invalidKeys, key)
		}
	}
	sort.Strings(invalidKeys)
	return invalidKeys
}

func newTransformCmd() *cobra.Command {
	var pipelinePath string
	var outputPath string

	transformCmd := &cobra.Command{
		Use:   "transform [input CSV file]",
		Short: "Run a JSON-declared transformation pipeline on a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformTable(args[0], pipelinePath, outputPath)
		},
	}

	flags := transformCmd.Flags()
	flags.StringVar(&pipelinePath, "pipeline", "", "path to JSON pipeline file (required)")
	flags.StringVar(&outputPath, "output", "", "path of output CSV file (default: stdout)")

	return transformCmd
}

func transformTable(inputPath string, pipelinePath string, outputPath string) error {
	if pipelinePath == "" {
		return errors.New("missing required flag --pipeline")
	}

	tbl, err := csv.LoadTableFromFile(inputPath)
	if err != nil {
		return err
	}
	log.Infof(
		"Loaded table with %d rows and %d columns from '%s'",
		tbl.NumRows(),
		tbl.NumColumns(),
		inputPath,
	)

	steps, err := pipeline.ParseFile(pipelinePath)
	if err != nil {
		return err
	}

	transformed, err := steps.Apply(tbl)
	if err != nil {
		return err
	}
	log.Infof(
		"Pipeline produced table with %d rows and %d columns",
		transformed.NumRows(),
		transformed.NumColumns(),
	)

	if outputPath == "" {
		return csv.WriteTable(os.Stdout, transformed)
	}
	return csv.WriteTableToFile(outputPath, transformed)
}
