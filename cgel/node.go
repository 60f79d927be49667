// Package cgel reads and writes trees in CGEL bracket notation: indented
// nodes of the form ":Function (name / Category :t "text")" preceded by a
// tree id line and a sentence line.
package cgel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shibukawa/cgeltree"
)

// GapCategory is the category of a gap node.
const GapCategory = "GAP"

// GapSymbol stands for a gap in sentences.
const GapSymbol = "--"

// NoHead is the head index of the root.
const NoHead = -1

// Substring is a :subt or :subp property.
type Substring struct {
	Kind  string // "subt" or "subp"
	Value string
}

// Node is one constituent.
type Node struct {
	Deprel      string
	Constituent string
	Label       string // coindexation name
	Text        string
	HasText     bool
	Correct     string
	Prepunct    []string
	Postpunct   []string
	Substrings  []Substring
	Lemma       string
	Note        string
	Head        int
	Antecedent  int // node carrying the same label, for gaps; -1 when none
}

var (
	shortGap     = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	embeddedName = regexp.MustCompile(`^(.+)_([a-z0-9])$`)
)

// newNode builds a node from a parsed header. "X_i" with a one-character
// suffix carries the coindexation name i; a lowercase name alone is a gap.
func newNode(deprel string, h header, head int) *Node {
	n := &Node{Deprel: deprel, Constituent: h.category, Label: h.name, Head: head, Antecedent: -1}

	if n.Label == "" {
		if m := embeddedName.FindStringSubmatch(n.Constituent); m != nil && !cgeltree.IsSubscriptForm(n.Constituent) {
			n.Constituent, n.Label = m[1], m[2]
		}
	}

	if shortGap.MatchString(n.Constituent) {
		n.Label = n.Constituent
		n.Constituent = GapCategory
	}

	return n
}

// IsGap reports whether the node is a gap.
func (n *Node) IsGap() bool {
	return n.Constituent == GapCategory
}

// String renders the node's own line without indentation, children or the
// closing paren.
func (n *Node) String() string {
	var sb strings.Builder

	if n.Head == NoHead && n.Deprel == "" {
		sb.WriteByte('(')
	} else {
		sb.WriteString(":" + n.Deprel + " (")
	}

	if n.Label != "" {
		sb.WriteString(n.Label + " / ")
	}

	sb.WriteString(n.Constituent)

	if n.HasText {
		for _, p := range n.Prepunct {
			sb.WriteString(" :p " + cgeltree.Quote(p))
		}

		sb.WriteString(" :t " + cgeltree.Quote(n.Text))

		for _, p := range n.Postpunct {
			sb.WriteString(" :p " + cgeltree.Quote(p))
		}

		if n.Lemma != "" {
			sb.WriteString(" :l " + cgeltree.Quote(n.Lemma))
		}
	}

	if n.Correct != "" {
		sb.WriteString(" :correct " + cgeltree.Quote(n.Correct))
	}

	if n.HasText {
		for _, s := range n.Substrings {
			sb.WriteString(" :" + s.Kind + " " + cgeltree.Quote(s.Value))
		}
	}

	if n.Note != "" {
		sb.WriteString(" :note " + cgeltree.Quote(n.Note))
	}

	return sb.String()
}

// setProperty applies one ":key "value"" pair. A :p before :t is
// pre-punctuation, after it post-punctuation. A :t of GapSymbol on a gap
// is ignored.
func (n *Node) setProperty(key, value string) error {
	switch key {
	case "t":
		if value == GapSymbol && n.IsGap() {
			return nil
		}

		n.Text, n.HasText = value, true
	case "correct":
		n.Correct = value
	case "p":
		if n.HasText {
			n.Postpunct = append(n.Postpunct, value)
		} else {
			n.Prepunct = append(n.Prepunct, value)
		}
	case "l":
		n.Lemma = value
	case "subt", "subp":
		n.Substrings = append(n.Substrings, Substring{Kind: key, Value: value})
	case "note":
		n.Note = value
	default:
		return fmt.Errorf("%w: unknown property :%s", ErrUnexpectedToken, key)
	}

	return nil
}
