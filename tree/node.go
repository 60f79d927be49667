// Package tree holds the flat constituency-tree model shared by the
// converters: a preorder arena of nodes with parent indices and token spans,
// the span/label resolver and the linearizer that turns the arena back into
// indented bracket notation.
package tree

import (
	"fmt"
	"strings"
)

// NoParent is the parent index of the root node.
const NoParent = -1

// GapCategory is the category of an empty (extracted) constituent.
const GapCategory = "GAP"

// Label is the (function, category) pair of a node. Category may carry a
// coindexation name as "Category_name".
type Label struct {
	Function string
	Category string
}

func (l Label) String() string {
	if l.Function == "" {
		return l.Category
	}

	return l.Function + ":" + l.Category
}

// Node is one bracket pair of the macro notation.
type Node struct {
	Left    int // token span, inclusive; 1-based after Resolve
	Right   int
	Word    string
	HasWord bool
	Label   Label
	Parent  int

	SpanLabel    string // "L" or "L-R", set by Resolve
	Rank         string // SpanLabel with rank markers
	TerminalRank string // rank label of the terminal line when HasWord
}

// IsGap reports whether the node is an empty constituent.
func (n *Node) IsGap() bool {
	category, _ := SplitCoindex(n.Label.Category)
	return category == GapCategory
}

// Span returns the span label for the node's current boundaries.
func (n *Node) Span() string {
	if n.Left == n.Right {
		return fmt.Sprintf("%d", n.Left)
	}

	return fmt.Sprintf("%d-%d", n.Left, n.Right)
}

// Tree is a preorder arena of nodes. A parent always precedes its children.
type Tree struct {
	ID    string
	Nodes []Node

	spans *SpanTable
}

// New creates an empty tree.
func New(id string) *Tree {
	return &Tree{ID: id}
}

// Add appends a node and returns its index. The parent must already be in
// the arena.
func (t *Tree) Add(node Node) (int, error) {
	if node.Parent != NoParent && (node.Parent < 0 || node.Parent >= len(t.Nodes)) {
		return 0, fmt.Errorf("%w: node %d refers to parent %d", ErrNotPreorder, len(t.Nodes), node.Parent)
	}

	t.Nodes = append(t.Nodes, node)

	return len(t.Nodes) - 1, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Parents returns the parent index of every node in arena order.
func (t *Tree) Parents() []int {
	parents := make([]int, len(t.Nodes))
	for i := range t.Nodes {
		parents[i] = t.Nodes[i].Parent
	}

	return parents
}

// Children returns the indices of the direct children of node i.
func (t *Tree) Children(i int) []int {
	var children []int

	for j := i + 1; j < len(t.Nodes); j++ {
		if t.Nodes[j].Parent == i {
			children = append(children, j)
		}
	}

	return children
}

// Words returns the terminal words in preorder.
func (t *Tree) Words() []string {
	var words []string

	for i := range t.Nodes {
		if t.Nodes[i].HasWord {
			words = append(words, t.Nodes[i].Word)
		}
	}

	return words
}

// Sentence joins the terminal words with single spaces.
func (t *Tree) Sentence() string {
	return strings.Join(t.Words(), " ")
}

// SentenceWithGaps is like Sentence but writes symbol in place of every gap
// node, whether or not the gap carries a placeholder word.
func (t *Tree) SentenceWithGaps(symbol string) string {
	var words []string

	for i := range t.Nodes {
		node := &t.Nodes[i]
		if node.IsGap() {
			words = append(words, symbol)
			continue
		}

		if node.HasWord {
			words = append(words, node.Word)
		}
	}

	return strings.Join(words, " ")
}

// Resolved reports whether Resolve has run on the tree.
func (t *Tree) Resolved() bool {
	return t.spans != nil
}
