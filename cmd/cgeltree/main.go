package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config   string      `help:"Configuration file path" default:"cgeltree.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Tex2Cgel Tex2CgelCmd `cmd:"" name:"tex2cgel" help:"Convert parsetree LaTeX into CGEL bracket notation"`
	Cgel2Tex Cgel2TexCmd `cmd:"" name:"cgel2tex" help:"Convert CGEL bracket notation into parsetree LaTeX"`
	Validate ValidateCmd `cmd:"" help:"Validate CGEL bracket-notation files"`
	Format   FormatCmd   `cmd:"" help:"Format CGEL bracket-notation files"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "cgeltree v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cgeltree"),
		kong.Description("Convert syntax trees between parsetree LaTeX and CGEL bracket notation."),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
