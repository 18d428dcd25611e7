package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucene-ql/lqp/internal/cliformat"
	"github.com/lucene-ql/lqp/parser"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and re-parse *.lucene files on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("error: please provide one or more directories")
		}
		return runWatch(args)
	},
}

func runWatch(dirs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("lqp: creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("lqp: adding directory to watcher: %w", err)
		}
	}

	logger.Info("watching for changes", zap.Strings("dirs", dirs))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

func handleWatchEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".lucene") {
		return
	}

	// debounce: collapse bursts of writes from one save into one reparse.
	time.Sleep(100 * time.Millisecond)

	text, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Error("failed to read changed file", zap.String("path", event.Name), zap.Error(err))
		return
	}

	res := parser.Parse(string(text))
	if res.IsSuccess {
		fmt.Printf("%s: ok\n", event.Name)
		return
	}
	fmt.Printf("%s:\n", event.Name)
	fmt.Print(cliformat.FormatDiagnostics(string(text), cliformat.FromParserErrors(res.Errors)))
}
