package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/builder"
	"github.com/lucene-ql/lqp/datemath"
	"github.com/lucene-ql/lqp/include"
	"github.com/lucene-ql/lqp/internal/cliformat"
	"github.com/lucene-ql/lqp/lqpconfig"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/resolver"
	"github.com/lucene-ql/lqp/visitor"
)

var (
	renderIncludeDir string
	renderNoDateMath bool
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Parse, expand includes, resolve fields, and print the canonical query string",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("error: please provide one or more query files")
		}
		return runRender(args)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderIncludeDir, "includes", "", "directory to resolve @include fragments from")
	renderCmd.Flags().BoolVar(&renderNoDateMath, "no-datemath", false, "leave date-math range bounds (now-7d, etc.) unevaluated")
}

func runRender(paths []string) error {
	cfg := loadConfig()
	fieldMap := cfg.BuildFieldMap()

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
		ctx.FieldResolver = fieldMap

		doc := res.Document
		if dir := includeDir(cfg); dir != "" {
			ctx.IncludeResolver = include.NewFileResolver(dir)
			doc = walkDocument(include.New(nil), ctx, doc)
		}
		doc = walkDocument(resolver.New(nil), ctx, doc)
		if !renderNoDateMath {
			doc = walkDocument(datemath.New(time.Now()), ctx, doc)
		}

		fmt.Println(builder.Build(ctx, doc))
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func includeDir(cfg lqpconfig.Config) string {
	if renderIncludeDir != "" {
		return renderIncludeDir
	}
	if len(cfg.IncludeRoots) > 0 {
		return cfg.IncludeRoots[0]
	}
	return ""
}

func walkDocument(v visitor.Visitor, ctx *visitor.Context, doc *ast.QueryDocument) *ast.QueryDocument {
	return visitor.Walk(v, ctx, doc).(*ast.QueryDocument)
}
