package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/internal/cliformat"
	"github.com/lucene-ql/lqp/parser"
)

var (
	parseJSON   bool
	parseOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse query files and print any syntax errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("error: please provide one or more query files")
		}
		return runParse(args)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "report results as a JSON array instead of text")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output path (when using --json)")
}

// parseFileResult is one file's outcome in --json mode.
type parseFileResult struct {
	Path   string         `json:"path"`
	OK     bool           `json:"ok"`
	Errors []parser.Error `json:"errors,omitempty"`
}

func runParse(paths []string) error {
	var results []parseFileResult
	failed := false

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read file", zap.String("path", path), zap.Error(err))
			failed = true
			continue
		}

		res := parser.Parse(string(text))
		if parseJSON {
			results = append(results, parseFileResult{Path: path, OK: res.IsSuccess, Errors: res.Errors})
			if !res.IsSuccess {
				failed = true
			}
			continue
		}

		if res.IsSuccess {
			continue
		}
		failed = true
		fmt.Printf("%s:\n", path)
		fmt.Print(cliformat.FormatDiagnostics(string(text), cliformat.FromParserErrors(res.Errors)))
	}

	if parseJSON {
		if err := printParseResultsJSON(results); err != nil {
			logger.Error("error marshalling results to JSON", zap.Error(err))
			os.Exit(1)
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func printParseResultsJSON(results []parseFileResult) error {
	d, err := json.Marshal(results)
	if err != nil {
		return err
	}

	if parseOutput == "" {
		fmt.Println(string(d))
		return nil
	}

	f, err := os.Create(parseOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
