// Package texparser reads constituency trees written with the parsetree
// LaTeX package and converts them into the flat tree model.
package texparser

import (
	"regexp"
	"strings"
)

// LineSeparator replaces line breaks before trees are extracted, so that a
// tree spanning several source lines is scanned as one line.
const LineSeparator = ";"

var treePattern = regexp.MustCompile(`\\begin\{parsetree\}.*?\\end\{parsetree\}`)

// Flatten joins the lines of text with LineSeparator.
func Flatten(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", LineSeparator)
}

// ExtractTrees returns every non-overlapping parsetree environment of text,
// in order of appearance. The text is flattened first.
func ExtractTrees(text string) []string {
	return treePattern.FindAllString(Flatten(text), -1)
}
