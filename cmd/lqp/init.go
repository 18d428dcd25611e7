package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/lqpconfig"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .lqp.yaml configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = ".lqp.yaml"
		}
		if err := lqpconfig.Save(path, lqpconfig.Default()); err != nil {
			logger.Error("error writing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}
