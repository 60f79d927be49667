package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/batch"
	"github.com/shibukawa/cgeltree/source"
	"github.com/shibukawa/cgeltree/store"
)

// loadConfig loads the configuration named by the global flag
func loadConfig(ctx *Context) (*cgeltree.Config, error) {
	config, err := cgeltree.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Using configuration %s\n", ctx.Config)
	}

	return config, nil
}

// configPath resolves a path from the configuration file against its directory
func configPath(ctx *Context, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(filepath.Dir(ctx.Config), path)
}

// collectTasks turns the inputs into batch tasks. Without inputs the
// configured input_dir is scanned, and without that standard input is read.
func collectTasks(ctx *Context, config *cgeltree.Config, inputs, extensions []string, loader *source.Loader, stdinID string) ([]batch.Task, error) {
	if len(inputs) == 0 && config.InputDir != "" {
		inputs = []string{configPath(ctx, config.InputDir)}
	}

	if len(inputs) == 0 {
		unit, err := loader.Read(stdinID, ctx.Stdin, false)
		if err != nil {
			return nil, err
		}

		return batch.UnitTasks(unit), nil
	}

	files, err := source.Files(inputs, extensions)
	if err != nil {
		return nil, err
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Found %d source file(s)\n", len(files))
	}

	return batch.FileTasks(loader, files), nil
}

// openOutput returns the writer for path, falling back to the configured
// output and then to standard output
func openOutput(ctx *Context, config *cgeltree.Config, path string) (io.Writer, func() error, error) {
	if path == "" {
		path = configPath(ctx, config.Output)
	}

	if path == "" {
		return ctx.Stdout, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	return file, file.Close, nil
}

// newSink writes text output to w and, when dbPath is set, every record to
// the corpus database
func newSink(ctx context.Context, w io.Writer, dbPath, direction string) (store.Sink, error) {
	text := store.NewTextSink(w, false)
	if dbPath == "" {
		return text, nil
	}

	db, err := store.OpenSQLite(ctx, dbPath, direction)
	if err != nil {
		return nil, err
	}

	return store.Tee(text, db), nil
}

// workers picks the worker count: the flag, then the configuration, then the CPU count
func workers(flag int, config *cgeltree.Config) int {
	if flag > 0 {
		return flag
	}

	return config.Parallel
}

// report prints the failures and the summary of a run to standard error
func report(ctx *Context, summary *batch.Summary) error {
	red := color.New(color.FgRed)

	for _, failure := range summary.Failures {
		red.Fprintf(ctx.Stderr, "%v\n", failure)
	}

	if !ctx.Quiet {
		green := color.New(color.FgGreen)
		if !summary.OK() {
			green = color.New(color.FgYellow)
		}

		green.Fprintf(ctx.Stderr, "Converted %d of %d tree(s) from %d source(s) in %s\n",
			summary.Trees-summary.Failed, summary.Trees, summary.Sources, summary.Duration.Round(time.Millisecond))
	}

	if !summary.OK() {
		return fmt.Errorf("%w: %d failure(s)", ErrConversionFailed, len(summary.Failures))
	}

	return nil
}
