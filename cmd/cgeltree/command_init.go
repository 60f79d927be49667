package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// InitCmd represents the init command
type InitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing configuration file"`
}

// Run executes the init command
func (i *InitCmd) Run(ctx *Context) error {
	if ctx.Verbose {
		color.New(color.FgBlue).Fprintln(ctx.Stderr, "Initializing cgeltree project")
	}

	configPath := ctx.Config
	if configPath == "" {
		configPath = "cgeltree.yaml"
	}

	if _, err := os.Stat(configPath); err == nil && !i.Force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, configPath)
	}

	inputDir := filepath.Join(filepath.Dir(configPath), "trees")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", inputDir, err)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stderr, "Created %s\n", configPath)
		fmt.Fprintln(ctx.Stderr, "\nNext steps:")
		fmt.Fprintln(ctx.Stderr, "1. Put parsetree .tex files or .cgel files into trees/")
		fmt.Fprintln(ctx.Stderr, "2. Run 'cgeltree tex2cgel -o corpus.cgel trees/'")
		fmt.Fprintln(ctx.Stderr, "3. Run 'cgeltree validate corpus.cgel'")
	}

	return nil
}

const sampleConfig = `# Label dialect of parsetree sources: auto, table or macro-call.
# auto picks the table dialect when the source name contains a marker below.
dialect: "auto"
table_style_markers:
  - "SIEG"

# Inputs and output used when tex2cgel/cgel2tex get none on the command line
# (empty: stdin and stdout). Relative paths are resolved against this file.
input_dir: "./trees"
output: ""

# File extensions read per direction
extensions:
  tex2cgel: [".tex", ".md"]
  cgel2tex: [".cgel", ".md"]

# Number of parallel workers (0: number of CPUs)
parallel: 0

# Fenced code block languages read from Markdown files
markdown:
  tex_languages: ["latex", "tex"]
  cgel_languages: ["cgel"]

# LaTeX output
latex:
  gap_terminal: "—"

# SQLite corpus database (empty: disabled); ${VAR} is expanded
database:
  path: ""

# Checks run by 'cgeltree validate'
validation:
  check_format: true
  check_sentence: true
  check_categories: true
`
