package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/cgeltree/cgel"
	"github.com/shibukawa/cgeltree/source"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Inputs       []string `arg:"" optional:"" help:"Files or directories to validate (default: stdin)"`
	NoFormat     bool     `help:"Skip the canonical formatting check"`
	NoSentence   bool     `help:"Skip the sentence line check"`
	NoCategories bool     `help:"Skip the category name check"`
}

// validationChecks selects the checks run on every tree
type validationChecks struct {
	format     bool
	sentence   bool
	categories bool
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	checks := validationChecks{
		format:     config.Validation.CheckFormat && !cmd.NoFormat,
		sentence:   config.Validation.CheckSentence && !cmd.NoSentence,
		categories: config.Validation.CheckCategories && !cmd.NoCategories,
	}

	loader := source.NewLoader(config.Markdown.CgelLanguages)

	var units []*source.Unit

	if len(cmd.Inputs) == 0 {
		unit, err := loader.Read(source.StdinID, ctx.Stdin, false)
		if err != nil {
			return err
		}

		units = append(units, unit)
	} else {
		files, err := source.Files(cmd.Inputs, config.Extensions.Cgel2Tex)
		if err != nil {
			return err
		}

		for _, file := range files {
			unit, err := loader.Load(file)
			if err != nil {
				return err
			}

			units = append(units, unit)
		}
	}

	var trees, problems int

	for _, unit := range units {
		if ctx.Verbose {
			color.New(color.FgBlue).Fprintf(ctx.Stderr, "Validating %s\n", unit.ID)
		}

		n, found := validateUnit(unit, checks)
		trees += n

		for _, problem := range found {
			color.New(color.FgRed).Fprintf(ctx.Stderr, "%s: %v\n", unit.ID, problem)
		}

		problems += len(found)
	}

	if !ctx.Quiet {
		c := color.New(color.FgGreen)
		if problems > 0 {
			c = color.New(color.FgYellow)
		}

		c.Fprintf(ctx.Stderr, "Checked %d tree(s) in %d source(s): %d problem(s)\n", trees, len(units), problems)
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrValidationFailed, problems)
	}

	return nil
}

// validateUnit reads every record of unit and runs the selected checks
func validateUnit(unit *source.Unit, checks validationChecks) (int, []error) {
	var (
		trees    int
		problems []error
	)

	for t, err := range cgel.Trees(strings.NewReader(unit.Text), cgel.ReadOptions{CheckFormat: checks.format}) {
		trees++

		if err != nil {
			problems = append(problems, err)
			continue
		}

		if checks.sentence {
			if err := t.CheckSentence(); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", t.SentID, err))
			}
		}

		if checks.categories {
			for _, problem := range t.Validate() {
				problems = append(problems, fmt.Errorf("%s: %w", t.SentID, problem))
			}
		}
	}

	return trees, problems
}

// Help returns help text for the validate command
func (cmd *ValidateCmd) Help() string {
	return `Validate CGEL bracket-notation files.

Every record is read and checked:
  - the tree text must equal its canonical redraw (see "cgeltree format")
  - the sentence line must equal the words of the tree, with or without
    "--" for gaps
  - categories must look like CGEL categories and every gap needs an
    antecedent

The checks can be switched off in cgeltree.yaml (validation:) or per run.

Examples:
  cgeltree validate trees.cgel
  cgeltree validate --no-format ./corpus/`
}
