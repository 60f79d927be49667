package main

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/batch"
	"github.com/shibukawa/cgeltree/source"
	"github.com/shibukawa/cgeltree/texparser"
)

// Tex2CgelCmd represents the tex2cgel command
type Tex2CgelCmd struct {
	Inputs   []string `arg:"" optional:"" help:"Input files or directories (default: stdin)"`
	Output   string   `short:"o" help:"Output file (default: stdout)"`
	Dialect  string   `help:"Label dialect: auto, table or macro-call (default: from configuration)"`
	Markers  []string `help:"Source identifier fragments that select the table dialect under auto"`
	ID       string   `name:"id" help:"Source identifier for standard input" default:"stdin"`
	Spans    bool     `help:"Append the span table after each tree"`
	DB       string   `name:"db" help:"SQLite corpus database that stores every tree"`
	Parallel int      `help:"Number of parallel workers (default: from configuration, then CPU count)"`
}

// Run executes the tex2cgel command
func (cmd *Tex2CgelCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dialect := config.DialectSetting()
	if cmd.Dialect != "" {
		dialect, err = cgeltree.ParseDialect(cmd.Dialect)
		if err != nil {
			return err
		}
	}

	markers := config.TableStyleMarkers
	if len(cmd.Markers) > 0 {
		markers = cmd.Markers
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Dialect: %s (table markers %v)\n", dialect, markers)
	}

	tasks, err := collectTasks(ctx, config, cmd.Inputs, config.Extensions.Tex2Cgel, source.NewLoader(config.Markdown.TexLanguages), cmd.ID)
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

	sink, err := newSink(runCtx, w, dbPath, "tex2cgel")
	if err != nil {
		return errors.Join(err, closeOutput())
	}

	runner := batch.NewRunner(workers(cmd.Parallel, config),
		batch.Tex2Cgel(texparser.NewConverter(dialect, markers), cmd.Spans))

	summary, err := runner.Run(runCtx, tasks, sink)
	if err = errors.Join(err, sink.Close(), closeOutput()); err != nil {
		return err
	}

	return report(ctx, summary)
}

// Help returns help text for the tex2cgel command
func (cmd *Tex2CgelCmd) Help() string {
	return `Convert parsetree LaTeX into CGEL bracket notation.

Every \begin{parsetree} ... \end{parsetree} block of the inputs becomes one
record: "Tree <source>-<n>", the sentence, the indented tree and a blank line.
Markdown inputs contribute their latex/tex code blocks.

Labels are read as \NL{Function}{Category} or as
\begin{tabular}{c}Function:\\Category\end{tabular}. With --dialect auto the
table dialect is used for sources whose name contains a table marker.

A tree that fails is reported and skipped; the other trees are still written.

Examples:
  cgeltree tex2cgel chapter1.tex
  cgeltree tex2cgel -o corpus.cgel ./trees/
  cgeltree tex2cgel --dialect table --spans < SIEG-2.tex
  cgeltree tex2cgel --db corpus.db ./trees/`
}
