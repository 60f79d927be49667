package rewriter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shibukawa/cgeltree"
)

// quoted matches a double-quoted bracket-notation string with \" and \\ escapes.
const quoted = `"(?:[^"\\]|\\"|\\\\)*"`

// Rule is one rewrite pass. Rules run in order, each on the output of the
// previous one.
type Rule struct {
	Name  string
	Apply func(text string) (string, error)
}

var (
	annotationPattern  = regexp.MustCompile(` :(?:p|l|subt|subp|note) ` + quoted)
	gapShortPattern    = regexp.MustCompile(`(\s):(\S+) \(([a-z][a-z0-9]*)\)`)
	rootPattern        = regexp.MustCompile(`^\((\S+)`)
	gapPattern         = regexp.MustCompile(`(\s+):(\S+) \((\S+) / ` + regexp.QuoteMeta(gapCategory))
	coindexPattern     = regexp.MustCompile(`(\s+):(\S+) \((\S+) / ([^\s)]+)`)
	nonterminalPattern = regexp.MustCompile(`(\s+):(\S+) \(([^\s)]+)`)
	correctionPattern  = regexp.MustCompile(`(?: :t (` + quoted + `))? :correct (` + quoted + `)`)
	terminalPattern    = regexp.MustCompile(` :t (` + quoted + `)`)
	residualPattern    = regexp.MustCompile(`\s:\S+ \(`)
	propertyPattern    = regexp.MustCompile(`\s:[A-Za-z]+ "`)
	leafSpanPattern    = regexp.MustCompile("`[^`']*'")
)

const gapCategory = "GAP"

// StripAnnotations drops punctuation, lemma, substring and note properties
// together with their values. Running it twice gives the same text.
func StripAnnotations(text string) (string, error) {
	return annotationPattern.ReplaceAllString(text, ""), nil
}

// ApplySubscripts replaces the tabulated subscript names with their display
// forms. Any underscore left outside quoted text afterwards is an error.
func ApplySubscripts(text string) (string, error) {
	text = cgeltree.ToDisplay(text)

	if idx := strings.IndexByte(unquotedText(text), '_'); idx >= 0 {
		return "", fmt.Errorf("%w: underscore survives subscript substitution near %q", cgeltree.ErrFormat, excerpt(text, idx))
	}

	return text, nil
}

// ExpandGaps rewrites the short gap form ":Obj (i)" to ":Obj (i / GAP)".
func ExpandGaps(text string) (string, error) {
	return gapShortPattern.ReplaceAllString(text, "${1}:${2} (${3} / "+gapCategory+")"), nil
}

// RewriteRoot turns the root "(Category" into the bare parsetree label "(.Category.".
func RewriteRoot(text string) (string, error) {
	if !rootPattern.MatchString(text) {
		return "", fmt.Errorf("%w: tree must start with '(' and a root label", cgeltree.ErrFormat)
	}

	return rootPattern.ReplaceAllString(text, "(.${1}."), nil
}

// GapTerminal returns the rule that gives every gap a placeholder terminal.
func GapTerminal(terminal string) Rule {
	replacement := "${1}:${2} (${3} / " + gapCategory + " :t " + strings.ReplaceAll(cgeltree.Quote(terminal), "$", "$$")

	return Rule{
		Name: "gap terminal",
		Apply: func(text string) (string, error) {
			return gapPattern.ReplaceAllString(text, replacement), nil
		},
	}
}

// RewriteCoindex writes "name / Category" as Category\textsubscript{name}.
func RewriteCoindex(text string) (string, error) {
	return coindexPattern.ReplaceAllString(text, `${1}:${2} (${4}\textsubscript{${3}}`), nil
}

// RewriteNonterminals writes every ":Function (Category" as "(.\NL{Function}{Category}.".
func RewriteNonterminals(text string) (string, error) {
	return nonterminalPattern.ReplaceAllString(text, `${1}(.\NL{${2}}{${3}}.`), nil
}

// RewriteCorrections merges ":t "orig" :correct "fixed"" into the single
// leaf `orig [fixed]'. A correction without text gives ` [fixed]'.
func RewriteCorrections(text string) (string, error) {
	return correctionPattern.ReplaceAllStringFunc(text, func(m string) string {
		groups := correctionPattern.FindStringSubmatch(m)
		original := cgeltree.Unquote(groups[1])

		return leaf(original + " [" + cgeltree.Unquote(groups[2]) + "]")
	}), nil
}

// RewriteTerminals turns every remaining ':t "text"' into an escaped leaf.
func RewriteTerminals(text string) (string, error) {
	return terminalPattern.ReplaceAllStringFunc(text, func(m string) string {
		groups := terminalPattern.FindStringSubmatch(m)
		return leaf(cgeltree.Unquote(groups[1]))
	}), nil
}

// CheckResidue fails when bracket-notation markup survived every rule.
// Leaf text is not inspected.
func CheckResidue(text string) (string, error) {
	markup := leafSpanPattern.ReplaceAllStringFunc(text, func(leaf string) string {
		return strings.Repeat(" ", len(leaf))
	})

	for _, marker := range []string{`:t "`, `:correct "`, " / "} {
		if idx := strings.Index(markup, marker); idx >= 0 {
			return "", fmt.Errorf("%w: unconverted %q near %q", cgeltree.ErrFormat, strings.TrimSpace(marker), excerpt(text, idx))
		}
	}

	if loc := residualPattern.FindStringIndex(markup); loc != nil {
		return "", fmt.Errorf("%w: unconverted node near %q", cgeltree.ErrFormat, excerpt(text, loc[0]))
	}

	if loc := propertyPattern.FindStringIndex(markup); loc != nil {
		return "", fmt.Errorf("%w: unknown property near %q", cgeltree.ErrFormat, excerpt(text, loc[0]))
	}

	return text, nil
}

func leaf(text string) string {
	return "  `" + LaTeXQuote(text) + "'"
}

// unquotedText blanks out the contents of quoted strings, keeping offsets.
func unquotedText(text string) string {
	b := []byte(text)
	inQuote := false

	for i := 0; i < len(b); i++ {
		switch {
		case inQuote && b[i] == '\\' && i+1 < len(b):
			b[i], b[i+1] = ' ', ' '
			i++
		case b[i] == '"':
			inQuote = !inQuote
		case inQuote:
			b[i] = ' '
		}
	}

	return string(b)
}

func excerpt(text string, idx int) string {
	start := max(0, idx-20)
	end := min(len(text), idx+20)

	return text[start:end]
}
