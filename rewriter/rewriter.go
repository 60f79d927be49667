// Package rewriter turns indented bracket notation back into parsetree
// LaTeX markup by a fixed sequence of textual rewrite rules.
package rewriter

import (
	"strings"

	"github.com/shibukawa/cgeltree"
)

// Header and Footer wrap every rewritten tree.
const (
	Header = "\n\\begin{parsetree}\n"
	Footer = "\n\\end{parsetree}\n"
)

// Options configures a Rewriter.
type Options struct {
	// GapTerminal is the placeholder leaf written under every gap.
	GapTerminal string
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{GapTerminal: "—"}
}

// Rewriter applies the rewrite pipeline to single trees.
type Rewriter struct {
	rules []Rule
}

// New builds the rule pipeline.
func New(opts Options) *Rewriter {
	if opts.GapTerminal == "" {
		opts.GapTerminal = DefaultOptions().GapTerminal
	}

	return &Rewriter{rules: []Rule{
		{Name: "strip annotations", Apply: StripAnnotations},
		{Name: "subscripts", Apply: ApplySubscripts},
		{Name: "gap shorthand", Apply: ExpandGaps},
		{Name: "root", Apply: RewriteRoot},
		GapTerminal(opts.GapTerminal),
		{Name: "coindexation", Apply: RewriteCoindex},
		{Name: "nonterminals", Apply: RewriteNonterminals},
		{Name: "corrections", Apply: RewriteCorrections},
		{Name: "terminals", Apply: RewriteTerminals},
		{Name: "residue", Apply: CheckResidue},
	}}
}

// Rules returns the pipeline in application order.
func (r *Rewriter) Rules() []Rule {
	return r.rules
}

// Rewrite converts one tree in bracket notation into a parsetree
// environment. Leading and trailing blank lines of text are ignored.
// On error no partial output is returned.
func (r *Rewriter) Rewrite(treeID, text string) (string, error) {
	text = strings.TrimSpace(text)

	for _, rule := range r.rules {
		var err error

		text, err = rule.Apply(text)
		if err != nil {
			return "", cgeltree.NewTreeError(treeID, -1, err)
		}
	}

	return Header + text + Footer, nil
}

// Document wraps rewritten trees in a standalone document.
func Document(header string, trees []string, footer string) string {
	var sb strings.Builder

	sb.WriteString(header)

	for _, t := range trees {
		sb.WriteString(t)
	}

	sb.WriteString(footer)

	return sb.String()
}
