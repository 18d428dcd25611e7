package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/include"
	"github.com/lucene-ql/lqp/internal/cliformat"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/visitor"
)

var includesCmd = &cobra.Command{
	Use:   "includes [files...]",
	Short: "List @include references in query files, without resolving them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("error: please provide one or more query files")
		}
		return runIncludes(args)
	},
}

func runIncludes(paths []string) error {
	failed := false
	for _, path := range paths {
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
		ctx.SkipInclude = func(string) bool { return true }
		iv := include.New(nil)
		visitor.Walk(iv, ctx, res.Document)

		names := make([]string, 0, len(iv.Result().ReferencedIncludes))
		for name := range iv.Result().ReferencedIncludes {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%s:\n", path)
		for _, name := range names {
			fmt.Printf("  @include:%s\n", name)
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}
