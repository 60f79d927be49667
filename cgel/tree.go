package cgel

import (
	"fmt"
	"regexp"
	"strings"
)

// Tree is one record: its id line, its sentence line and the nodes in
// preorder. Node 0 is the root.
type Tree struct {
	SentID string
	Sent   string
	Nodes  []*Node

	children [][]int
	raw      string
}

// Raw returns the tree text as read, without the header lines.
func (t *Tree) Raw() string {
	return t.raw
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.Nodes[0]
}

// Children returns the indices of the children of node i in order.
func (t *Tree) Children(i int) []int {
	return t.children[i]
}

// Draw renders the tree in canonical bracket notation: four spaces of
// indentation per level and each closing paren directly after the last
// descendant.
func (t *Tree) Draw() string {
	var sb strings.Builder

	t.draw(&sb, 0, 0)

	return sb.String()
}

func (t *Tree) draw(sb *strings.Builder, i, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
	sb.WriteString(t.Nodes[i].String())

	for _, child := range t.children[i] {
		sb.WriteByte('\n')
		t.draw(sb, child, depth+1)
	}

	sb.WriteByte(')')
}

func (t *Tree) String() string {
	return t.Draw()
}

// Record renders the id line, the sentence line, the tree and a blank line.
func (t *Tree) Record() string {
	return t.SentID + "\n" + t.Sent + "\n" + t.Draw() + "\n\n"
}

// Sentence joins the node texts in order. With gaps, every gap contributes
// GapSymbol.
func (t *Tree) Sentence(gaps bool) string {
	var words []string

	for _, node := range t.Nodes {
		if node.HasText {
			words = append(words, node.Text)
		}

		if node.IsGap() && gaps {
			words = append(words, GapSymbol)
		}
	}

	return strings.Join(words, " ")
}

// categoryPattern admits names like NP, Clause_rel, V_aux+P and
// NP-Coordination. Unlike the corpus category check it also accepts a
// lowercase "_name" suffix, since tabulated subscript forms such as
// N_pro are written that way in bracket notation.
var categoryPattern = regexp.MustCompile(`^[A-Z][A-Za-z]*(_[a-z]+)?(\+[A-Z][A-Za-z]*(_[a-z]+)?)*(-Coordination)?$`)

// Validate reports category names that do not look like CGEL categories
// and gaps whose name no other node carries. An empty result means the
// tree is valid.
func (t *Tree) Validate() []error {
	var problems []error

	for i, node := range t.Nodes {
		if node.IsGap() {
			if node.Antecedent < 0 {
				problems = append(problems, fmt.Errorf("%w: node %d (%s)", ErrMissingAntecedent, i, node.Label))
			}

			continue
		}

		if !categoryPattern.MatchString(node.Constituent) {
			problems = append(problems, fmt.Errorf("%w: %q at node %d", ErrCategory, node.Constituent, i))
		}
	}

	return problems
}

// CheckFormat fails when the tree text read does not equal Draw.
func (t *Tree) CheckFormat() error {
	drawn := t.Draw()
	if t.raw == drawn {
		return nil
	}

	return fmt.Errorf("%w:\n%s", ErrFormatMismatch, LineDiff(t.raw, drawn))
}

// CheckSentence fails when the sentence line matches the tree's words
// neither with nor without gap symbols.
func (t *Tree) CheckSentence() error {
	if t.Sent == t.Sentence(true) || t.Sent == t.Sentence(false) {
		return nil
	}

	return fmt.Errorf("%w: %q vs %q", ErrSentenceMismatch, t.Sent, t.Sentence(true))
}

// LineDiff compares two texts line by line: "= " marks equal lines, "< "
// and "> " the differing lines of a and b.
func LineDiff(a, b string) string {
	var sb strings.Builder

	aa := strings.Split(a, "\n")
	bb := strings.Split(b, "\n")

	for i, line := range aa {
		switch {
		case i >= len(bb):
			sb.WriteString("< " + line + "\n")
		case line == bb[i]:
			sb.WriteString("= " + line + "\n")
		default:
			sb.WriteString("< " + line + "\n> " + bb[i] + "\n")
		}
	}

	for i := len(aa); i < len(bb); i++ {
		sb.WriteString("> " + bb[i] + "\n")
	}

	return sb.String()
}
