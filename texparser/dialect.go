package texparser

import (
	"regexp"
	"strings"

	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/tree"
)

// LabelParser reads the (function, category) pair out of a node's label
// region. It reports false when the region is not written in its dialect.
type LabelParser func(region string) (tree.Label, bool)

// LabelParserFor returns the parser of a resolved dialect. DialectAuto must
// be resolved against the source identifier first.
func LabelParserFor(d cgeltree.Dialect) LabelParser {
	if d == cgeltree.DialectTable {
		return parseTableLabel
	}

	return parseMacroCallLabel
}

var tablePattern = regexp.MustCompile(`\\begin\{tabular\}\{c\}(.*?)\\end\{tabular\}`)

// parseTableLabel reads "\begin{tabular}{c}Function:\\Category\end{tabular}".
// A missing category row gives an empty category.
func parseTableLabel(region string) (tree.Label, bool) {
	match := tablePattern.FindStringSubmatch(region)
	if match == nil {
		return tree.Label{}, false
	}

	rows := strings.Split(match[1], `\\`)
	label := tree.Label{Function: strings.Trim(rows[0], ":")}

	if len(rows) > 1 {
		label.Category = rows[1]
	}

	return label, true
}

const labelMacro = `\NL{`

// parseMacroCallLabel reads "\NL{Function}{Category}". Arguments may nest
// braces, as in "\NL{Head}{N\textsubscript{\textsc{pro}}}".
func parseMacroCallLabel(region string) (tree.Label, bool) {
	start := strings.Index(region, labelMacro)
	if start < 0 {
		return tree.Label{}, false
	}

	function, rest, ok := braceGroup(region[start+len(labelMacro)-1:])
	if !ok {
		return tree.Label{}, false
	}

	category, _, ok := braceGroup(rest)
	if !ok {
		return tree.Label{}, false
	}

	return tree.Label{Function: function, Category: normalizeSubscript(category)}, true
}

// braceGroup splits "{content}rest" at the brace matching the first one.
func braceGroup(s string) (content, rest string, ok bool) {
	if s == "" || s[0] != '{' {
		return "", s, false
	}

	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}

	return "", s, false
}

const (
	subscriptMacro = `\textsubscript{`
	smallCapsMacro = `\textsc{`
)

// normalizeSubscript flattens "Base\textsubscript{sub}" into "Base_sub". A
// small-caps wrapper inside the subscript is dropped, so
// N\textsubscript{\textsc{pro}} becomes N_pro.
func normalizeSubscript(category string) string {
	for {
		idx := strings.Index(category, subscriptMacro)
		if idx < 0 {
			return category
		}

		sub, rest, ok := braceGroup(category[idx+len(subscriptMacro)-1:])
		if !ok {
			// unbalanced: keep the bare marker replacement
			return strings.ReplaceAll(category, subscriptMacro, "_")
		}

		if strings.HasPrefix(sub, smallCapsMacro) {
			if inner, tail, ok := braceGroup(sub[len(smallCapsMacro)-1:]); ok && tail == "" {
				sub = inner
			}
		}

		category = category[:idx] + "_" + sub + rest
	}
}
