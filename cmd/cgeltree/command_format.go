package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/formatter"
	"github.com/shibukawa/cgeltree/source"
)

// FormatCmd represents the format command
type FormatCmd struct {
	Input  string `arg:"" optional:"" help:"Input file or directory (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout, or overwrite input file)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
	Check  bool   `short:"c" help:"Check if files are formatted (exit 1 if not)"`
	Diff   bool   `short:"d" help:"Show diff instead of rewriting files"`
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	run := &formatRun{cmd: cmd, ctx: ctx, config: config}

	if cmd.Input == "" {
		return run.formatFromReader(ctx.Stdin, ctx.Stdout, "<stdin>")
	}

	info, err := os.Stat(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		return run.formatDirectory(cmd.Input)
	}

	return run.formatFile(cmd.Input)
}

type formatRun struct {
	cmd    *FormatCmd
	ctx    *Context
	config *cgeltree.Config
}

// format formats the content of filename
func (r *formatRun) format(input, filename string) (string, error) {
	if formatter.IsMarkdownFile(filename) {
		formatted, err := formatter.NewMarkdownFormatter(r.config.Markdown.CgelLanguages...).Format(input)
		if err != nil {
			return "", fmt.Errorf("failed to format %s: %w", filename, err)
		}

		return formatted, nil
	}

	formatted, err := formatter.NewCgelFormatter().Format(input)
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w", filename, err)
	}

	return formatted, nil
}

// formatFromReader formats records from a reader and writes to a writer
func (r *formatRun) formatFromReader(reader io.Reader, writer io.Writer, filename string) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := r.format(string(input), filename)
	if err != nil {
		return err
	}

	if r.cmd.Check {
		if string(input) != formatted {
			fmt.Fprintf(r.ctx.Stderr, "%s is not formatted\n", filename)
			return ErrFileNotFormatted
		}

		return nil
	}

	if r.cmd.Diff {
		r.showDiff(string(input), formatted, filename)
		return nil
	}

	_, err = io.WriteString(writer, formatted)

	return err
}

// formatFile formats a single file
func (r *formatRun) formatFile(filename string) error {
	if !isCgelFile(filename, r.config.Extensions.Cgel2Tex) {
		if !r.cmd.Check {
			fmt.Fprintf(r.ctx.Stderr, "Skipping non-CGEL file: %s\n", filename)
		}

		return nil
	}

	input, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	inPlace := r.cmd.Write || r.cmd.Output == filename
	if r.cmd.Check || r.cmd.Diff || (!inPlace && r.cmd.Output == "") {
		return r.formatFromReader(strings.NewReader(string(input)), r.ctx.Stdout, filename)
	}

	formatted, err := r.format(string(input), filename)
	if err != nil {
		return err
	}

	target := r.cmd.Output
	if inPlace {
		target = filename
	}

	return replaceFile(target, formatted)
}

// replaceFile writes content to a temporary file next to path and renames it over path
func replaceFile(path, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".cgeltree-format-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = tempFile.WriteString(content)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tempFile.Name(), path); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// formatDirectory formats all bracket-notation files in a directory recursively
func (r *formatRun) formatDirectory(dirPath string) error {
	files, err := source.Files([]string{dirPath}, r.config.Extensions.Cgel2Tex)
	if err != nil {
		return err
	}

	// a directory is always formatted in place
	if !r.cmd.Check && !r.cmd.Diff {
		r.cmd.Write = true
	}

	var hasErrors bool

	for _, path := range files {
		if err := r.formatFile(path); err != nil {
			fmt.Fprintf(r.ctx.Stderr, "Error formatting %s: %v\n", path, err)

			hasErrors = true

			continue
		}

		if !r.cmd.Check && !r.cmd.Diff && !r.ctx.Quiet {
			color.New(color.FgGreen).Fprintf(r.ctx.Stderr, "Formatted: %s\n", path)
		}
	}

	if hasErrors {
		return ErrFormattingErrors
	}

	return nil
}

// showDiff shows the difference between original and formatted content
func (r *formatRun) showDiff(original, formatted, filename string) {
	if original == formatted {
		return
	}

	out := r.ctx.Stdout

	fmt.Fprintf(out, "--- %s (original)\n", filename)
	fmt.Fprintf(out, "+++ %s (formatted)\n", filename)

	originalLines := strings.Split(original, "\n")
	formattedLines := strings.Split(formatted, "\n")

	for i := range max(len(originalLines), len(formattedLines)) {
		var origLine, formLine string

		if i < len(originalLines) {
			origLine = originalLines[i]
		}

		if i < len(formattedLines) {
			formLine = formattedLines[i]
		}

		if origLine == formLine {
			continue
		}

		if i < len(originalLines) {
			fmt.Fprintf(out, "-%s\n", origLine)
		}

		if i < len(formattedLines) {
			fmt.Fprintf(out, "+%s\n", formLine)
		}
	}
}

// isCgelFile reports whether the format command handles filename
func isCgelFile(filename string, extensions []string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(filename)))
}

// Help returns help text for the format command
func (cmd *FormatCmd) Help() string {
	return `Format CGEL bracket-notation files.

Every record is redrawn canonically: four spaces of indentation per level,
properties in a fixed order and one blank line between records. Markdown
files have their cgel code blocks formatted and the rest left alone.

Examples:
  # Format a file and print to stdout
  cgeltree format trees.cgel

  # Format a file in place
  cgeltree format -w trees.cgel

  # Format every file in a directory
  cgeltree format ./corpus/

  # Check formatting in CI
  cgeltree format -c trees.cgel`
}
