package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/internal/cliformat"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/validate"
	"github.com/lucene-ql/lqp/visitor"
)

var (
	validateAllowedFields    string
	validateRestrictedFields string
	validateMaxDepth         int
	validateAllowWildcards   bool
	validateQuiet            bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate query files against field and depth restrictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("error: please provide one or more query files")
		}
		return runValidate(args)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateAllowedFields, "allowed-fields", "", "comma-separated list of allowed fields")
	validateCmd.Flags().StringVar(&validateRestrictedFields, "restricted-fields", "", "comma-separated list of restricted fields")
	validateCmd.Flags().IntVar(&validateMaxDepth, "max-depth", 0, "maximum allowed group nesting depth (0 = unlimited)")
	validateCmd.Flags().BoolVar(&validateAllowWildcards, "allow-leading-wildcards", false, "allow leading * or ? in terms")
	validateCmd.Flags().BoolVar(&validateQuiet, "quiet", false, "suppress the progress bar")
}

func runValidate(paths []string) error {
	opts := validate.Options{
		AllowedFields:         splitCSV(validateAllowedFields),
		RestrictedFields:      splitCSV(validateRestrictedFields),
		AllowLeadingWildcards: validateAllowWildcards,
		AllowedMaxNodeDepth:   validateMaxDepth,
		ShouldThrow:           true,
	}

	var bar *progressbar.ProgressBar
	if !validateQuiet {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("validating"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	failed := false
	for _, path := range paths {
		if bar != nil {
			_ = bar.Add(1)
		}

		text, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read file", zap.String("path", path), zap.Error(err))
			failed = true
			continue
		}

		res := parser.Parse(string(text))
		if !res.IsSuccess {
			failed = true
			fmt.Printf("%s:\n", path)
			fmt.Print(cliformat.FormatDiagnostics(string(text), cliformat.FromParserErrors(res.Errors)))
			continue
		}

		ctx := visitor.NewContext(context.Background())
		if _, err := validate.Run(ctx, res.Document, opts); err != nil {
			failed = true
			fmt.Printf("%s: %v\n", path, err)
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
