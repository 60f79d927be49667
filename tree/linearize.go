package tree

import (
	"strings"

	"github.com/shibukawa/cgeltree"
)

// Indent is the per-level indentation of bracket notation.
const Indent = "    "

// SplitCoindex separates an embedded coindexation name from a category:
// "NP_i" gives ("NP", "i"). Tabulated subscript forms such as "Clause_rel"
// carry no name and are returned unchanged.
func SplitCoindex(category string) (base, name string) {
	idx := strings.LastIndex(category, "_")
	if idx < 0 || cgeltree.IsSubscriptForm(category) {
		return category, ""
	}

	return category[:idx], category[idx+1:]
}

// Linearize renders the tree as indented bracket notation. The root line is
// "(" followed by the root's function, or its category when the function is
// empty; every other node is ":function (" with an optional "name / ", the
// category and an optional :t terminal. Gap nodes print only their name.
func Linearize(t *Tree) (string, error) {
	if len(t.Nodes) == 0 {
		return "", ErrNoRoot
	}

	var sb strings.Builder

	enter := func(i, depth int) {
		node := &t.Nodes[i]

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}

		if depth == 0 {
			sb.WriteByte('(')

			if node.Label.Function != "" {
				sb.WriteString(node.Label.Function)
			} else {
				sb.WriteString(node.Label.Category)
			}

			return
		}

		sb.WriteString(strings.Repeat(Indent, depth))
		sb.WriteString(":" + node.Label.Function + " (")

		category, name := SplitCoindex(node.Label.Category)
		if category == GapCategory {
			sb.WriteString(name)
			return
		}

		if name != "" {
			sb.WriteString(name + " / ")
		}

		sb.WriteString(category)

		if node.HasWord {
			sb.WriteString(" :t " + cgeltree.Quote(node.Word))
		}
	}

	leave := func(int) {
		sb.WriteByte(')')
	}

	if err := Nest(t.Parents(), enter, leave); err != nil {
		return "", err
	}

	return sb.String(), nil
}
