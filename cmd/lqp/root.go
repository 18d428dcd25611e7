// Command lqp is a thin CLI over the lqp library: parse, validate, render,
// list includes, and watch query files, exercising the library end-to-end.
package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/lqpconfig"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "lqp [files...]",
	Short:            "lqp - a Lucene-style query parser, validator, and renderer",
	TraverseChildren: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return parseCmd.RunE(parseCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to .lqp.yaml (default: ./.lqp.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for file processing (parsed but not applied by any command)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
}

func loadConfig() lqpconfig.Config {
	path := cfgFile
	if path == "" {
		path = ".lqp.yaml"
	}
	cfg, err := lqpconfig.Load(path)
	if err != nil {
		return lqpconfig.Default()
	}
	return cfg
}
