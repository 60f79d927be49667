package tree

import (
	"fmt"
	"strings"

	"github.com/shibukawa/cgeltree"
)

// RankMarker is appended once per earlier claim on the same span label.
const RankMarker = "’"

// RankCounter counts claims on span labels within one tree.
type RankCounter struct {
	counts map[string]int
}

// NewRankCounter returns an empty counter.
func NewRankCounter() *RankCounter {
	return &RankCounter{counts: make(map[string]int)}
}

// Claim registers one more claim on label and returns the new count.
func (c *RankCounter) Claim(label string) int {
	c.counts[label]++
	return c.counts[label]
}

// Decorate returns label with one rank marker per claim beyond the first.
func (c *RankCounter) Decorate(label string) string {
	count := c.counts[label]
	if count <= 1 {
		return label
	}

	return label + strings.Repeat(RankMarker, count-1)
}

// TerminalLine is one leaf token of the span table.
type TerminalLine struct {
	Label string
	Word  string
}

// ConstituentLine is one node of the span table. Parent is "0" for the root.
type ConstituentLine struct {
	Label    string
	Function string
	Category string
	Parent   string
}

// SpanTable lists the rank-decorated span labels of a resolved tree.
type SpanTable struct {
	Terminals    []TerminalLine
	Constituents []ConstituentLine
}

// String renders the terminal lines followed by the constituent lines, tab separated.
func (s *SpanTable) String() string {
	var sb strings.Builder

	for _, line := range s.Terminals {
		sb.WriteString(line.Label + "\t" + line.Word + "\n")
	}

	for _, line := range s.Constituents {
		sb.WriteString(line.Label + "\t" + line.Function + "\t" + line.Category + "\t" + line.Parent + "\n")
	}

	return sb.String()
}

// Resolve widens every node's span to cover its children, converts the
// spans to 1-based labels and assigns rank-decorated labels. A node with a
// word claims its label twice: the terminal line takes the rank after the
// node's first claim, the node takes the rank after the second.
// Resolving an already resolved tree returns the existing table.
func Resolve(t *Tree) (*SpanTable, error) {
	if t.spans != nil {
		return t.spans, nil
	}

	if len(t.Nodes) == 0 {
		return nil, ErrNoRoot
	}

	nodes := t.Nodes

	// children come after their parent, so walking backwards finalizes
	// every child before its parent is widened
	for i := len(nodes) - 1; i >= 0; i-- {
		parent := nodes[i].Parent
		if parent == NoParent {
			continue
		}

		if parent < 0 || parent >= i {
			return nil, fmt.Errorf("%w: node %d has parent %d", ErrNotPreorder, i, parent)
		}

		nodes[parent].Left = min(nodes[parent].Left, nodes[i].Left)
		nodes[parent].Right = max(nodes[parent].Right, nodes[i].Right)
	}

	if err := checkSpans(nodes); err != nil {
		return nil, err
	}

	counter := NewRankCounter()
	table := &SpanTable{}

	for i := range nodes {
		node := &nodes[i]
		node.Left++
		node.Right++
		node.SpanLabel = node.Span()

		counter.Claim(node.SpanLabel)

		if node.HasWord {
			node.TerminalRank = counter.Decorate(node.SpanLabel)
			table.Terminals = append(table.Terminals, TerminalLine{Label: node.TerminalRank, Word: node.Word})
			counter.Claim(node.SpanLabel)
		}

		node.Rank = counter.Decorate(node.SpanLabel)

		parent := "0"
		if node.Parent != NoParent {
			parent = nodes[node.Parent].Rank
		}

		table.Constituents = append(table.Constituents, ConstituentLine{
			Label:    node.Rank,
			Function: node.Label.Function,
			Category: node.Label.Category,
			Parent:   parent,
		})
	}

	t.spans = table

	return table, nil
}

// checkSpans verifies left <= right everywhere and that every child lies
// inside its parent.
func checkSpans(nodes []Node) error {
	for i := range nodes {
		node := &nodes[i]
		if node.Left > node.Right {
			return fmt.Errorf("%w: node %d has span %d-%d", cgeltree.ErrSpanInvariant, i, node.Left, node.Right)
		}

		if node.Parent == NoParent {
			continue
		}

		parent := &nodes[node.Parent]
		if node.Left < parent.Left || node.Right > parent.Right {
			return fmt.Errorf("%w: node %d (%d-%d) lies outside parent %d (%d-%d)",
				cgeltree.ErrSpanInvariant, i, node.Left, node.Right, node.Parent, parent.Left, parent.Right)
		}
	}

	return nil
}
