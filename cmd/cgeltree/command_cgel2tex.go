package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shibukawa/cgeltree/batch"
	"github.com/shibukawa/cgeltree/rewriter"
	"github.com/shibukawa/cgeltree/source"
)

// Cgel2TexCmd represents the cgel2tex command
type Cgel2TexCmd struct {
	Inputs      []string `arg:"" optional:"" help:"Input files or directories (default: stdin)"`
	Output      string   `short:"o" help:"Output file (default: stdout)"`
	Standalone  bool     `short:"s" help:"Wrap the trees in a standalone LaTeX document"`
	Raw         bool     `help:"Rewrite trees as written instead of redrawing them first"`
	GapTerminal string   `name:"gap-terminal" help:"Placeholder leaf written under gaps (default: from configuration)"`
	DB          string   `name:"db" help:"SQLite corpus database that stores every tree"`
	Parallel    int      `help:"Number of parallel workers (default: from configuration, then CPU count)"`
}

// Run executes the cgel2tex command
func (cmd *Cgel2TexCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	opts := rewriter.DefaultOptions()
	opts.GapTerminal = config.LaTeX.GapTerminal

	if cmd.GapTerminal != "" {
		opts.GapTerminal = cmd.GapTerminal
	}

	tasks, err := collectTasks(ctx, config, cmd.Inputs, config.Extensions.Cgel2Tex, source.NewLoader(config.Markdown.CgelLanguages), source.StdinID)
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(ctx, config, cmd.Output)
	if err != nil {
		return err
	}

	dbPath := cmd.DB
	if dbPath == "" {
		dbPath = config.Database.Path
	}

	runCtx := context.Background()

	sink, err := newSink(runCtx, w, dbPath, "cgel2tex")
	if err != nil {
		return errors.Join(err, closeOutput())
	}

	if cmd.Standalone {
		if _, err := io.WriteString(w, config.LaTeX.DocumentHeader); err != nil {
			return errors.Join(fmt.Errorf("failed to write document header: %w", err), sink.Close(), closeOutput())
		}
	}

	runner := batch.NewRunner(workers(cmd.Parallel, config), batch.Cgel2Tex(rewriter.New(opts), cmd.Raw))

	summary, err := runner.Run(runCtx, tasks, sink)
	if err == nil && cmd.Standalone {
		_, err = io.WriteString(w, config.LaTeX.DocumentFooter)
	}

	if err = errors.Join(err, sink.Close(), closeOutput()); err != nil {
		return err
	}

	return report(ctx, summary)
}

// Help returns help text for the cgel2tex command
func (cmd *Cgel2TexCmd) Help() string {
	return `Convert CGEL bracket notation into parsetree LaTeX.

Each record (id line, sentence line, tree lines, blank line) becomes one
\begin{parsetree} ... \end{parsetree} block with \NL{Function}{Category}
labels. Punctuation, lemmas, substrings and notes are dropped; corrections
are shown as [text]; gaps get a placeholder leaf.

Markdown inputs contribute their cgel code blocks.

Examples:
  cgeltree cgel2tex trees.cgel
  cgeltree cgel2tex --standalone -o trees.tex trees.cgel
  cgeltree cgel2tex --raw < trees.cgel`
}
