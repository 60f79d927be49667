package tree

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
)

// build makes a tree from (parent, function, category, word) rows with the
// leaf cursor the macro parser would produce.
func build(t *testing.T, rows ...row) *Tree {
	t.Helper()

	tr := New("test-0")
	cursor := 0

	for _, r := range rows {
		node := Node{Parent: r.parent, Label: Label{Function: r.function, Category: r.category}, Left: cursor, Right: cursor}
		if r.word != "" {
			node.Word = r.word
			node.HasWord = true
			node.Right = cursor + len(strings.Fields(r.word)) - 1
			cursor = node.Right + 1
		}

		_, err := tr.Add(node)
		assert.NoError(t, err)
	}

	return tr
}

type row struct {
	parent   int
	function string
	category string
	word     string
}

func TestResolveSingleLeaf(t *testing.T) {
	tr := build(t, row{NoParent, "Head", "N", "cat"})

	table, err := Resolve(tr)
	assert.NoError(t, err)

	node := tr.Nodes[0]
	assert.Equal(t, 1, node.Left)
	assert.Equal(t, 1, node.Right)
	assert.Equal(t, "1", node.SpanLabel)

	assert.Equal(t, 1, len(table.Terminals))
	assert.Equal(t, 1, len(table.Constituents))
	assert.Equal(t, "1", table.Terminals[0].Label)
	assert.Equal(t, "1’", table.Constituents[0].Label)
	assert.Equal(t, "0", table.Constituents[0].Parent)
}

func TestResolveWidensAncestors(t *testing.T) {
	tr := build(t,
		row{NoParent, "", "Clause", ""},
		row{0, "Subj", "NP", ""},
		row{1, "Head", "N", "it"},
		row{0, "Head", "VP", ""},
		row{3, "Head", "V", "is"},
		row{3, "PredComp", "AdjP", "all right"},
	)

	_, err := Resolve(tr)
	assert.NoError(t, err)

	spans := make([]string, len(tr.Nodes))
	for i, node := range tr.Nodes {
		spans[i] = node.SpanLabel
	}

	assert.Equal(t, []string{"1-4", "1", "1", "2-4", "2", "3-4"}, spans)

	// containment
	for i, node := range tr.Nodes {
		if node.Parent == NoParent {
			continue
		}

		parent := tr.Nodes[node.Parent]
		assert.True(t, node.Left >= parent.Left, "node %d", i)
		assert.True(t, node.Right <= parent.Right, "node %d", i)
	}
}

func TestResolveLeafMonotonicity(t *testing.T) {
	tr := build(t,
		row{NoParent, "", "Clause", ""},
		row{0, "Subj", "NP", "they"},
		row{0, "Head", "VP", ""},
		row{2, "Head", "V", "say"},
		row{2, "Obj", "NP", "the white house"},
		row{2, "Mod", "AdvP", "today"},
	)

	_, err := Resolve(tr)
	assert.NoError(t, err)

	last := 0
	for _, node := range tr.Nodes {
		if !node.HasWord {
			continue
		}

		assert.True(t, node.Left > last, "leaf %q overlaps previous leaf", node.Word)
		assert.True(t, node.Left <= node.Right)
		last = node.Right
	}
}

func TestResolveRankMarkers(t *testing.T) {
	// two gaps without words share the placeholder span of the next token
	tr := build(t,
		row{NoParent, "", "Clause", ""},
		row{0, "Subj", "NP", "it"},
		row{0, "Mod", "GAP_i", ""},
		row{0, "Comp", "GAP_j", ""},
		row{0, "Head", "V", "rains"},
	)

	table, err := Resolve(tr)
	assert.NoError(t, err)

	assert.Equal(t, "2", tr.Nodes[2].Rank)
	assert.Equal(t, "2’", tr.Nodes[3].Rank)

	seen := map[string]bool{}
	for _, line := range table.Terminals {
		assert.False(t, seen[line.Label], "duplicate label %s", line.Label)
		seen[line.Label] = true
	}

	for _, line := range table.Constituents {
		assert.False(t, seen[line.Label], "duplicate label %s", line.Label)
		seen[line.Label] = true
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	tr := build(t, row{NoParent, "Head", "N", "cat"})

	first, err := Resolve(tr)
	assert.NoError(t, err)

	second, err := Resolve(tr)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, tr.Nodes[0].Left)
}

func TestResolveDetectsBrokenSpan(t *testing.T) {
	tr := New("broken-0")
	_, err := tr.Add(Node{Parent: NoParent, Left: 3, Right: 1, Label: Label{Category: "Clause"}})
	assert.NoError(t, err)

	_, err = Resolve(tr)
	assert.IsError(t, err, cgeltree.ErrSpanInvariant)
}

func TestResolveEmptyTree(t *testing.T) {
	_, err := Resolve(New("empty-0"))
	assert.IsError(t, err, ErrNoRoot)
}

func TestAddRejectsForwardParent(t *testing.T) {
	tr := New("x")
	_, err := tr.Add(Node{Parent: 0})
	assert.IsError(t, err, ErrNotPreorder)
}

func TestSpanTableString(t *testing.T) {
	tr := build(t,
		row{NoParent, "", "Clause", ""},
		row{0, "Head", "N", "cat"},
	)

	table, err := Resolve(tr)
	assert.NoError(t, err)
	assert.Equal(t, "1’\tcat\n1\t\tClause\t0\n1’’\tHead\tN\t1\n", table.String())
}

func TestRankCounter(t *testing.T) {
	c := NewRankCounter()
	assert.Equal(t, "2", c.Decorate("2"))
	c.Claim("2")
	assert.Equal(t, "2", c.Decorate("2"))
	c.Claim("2")
	assert.Equal(t, "2’", c.Decorate("2"))
	c.Claim("2")
	assert.Equal(t, "2’’", c.Decorate("2"))
	assert.Equal(t, "3", c.Decorate("3"))
}
