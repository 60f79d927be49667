package texparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/tree"
)

var (
	// "(" up to the first '.', then the label region up to the next '.'
	labelRegion = regexp.MustCompile(`^\(.*?\.(.*?)\.`)
	// a `quoted' leaf directly before the node's closing paren
	leafPattern = regexp.MustCompile("^[^)(]*?`(.*?)' *\\)")
)

// Parser builds flat trees from parsetree bracket text written in one
// label dialect.
type Parser struct {
	dialect cgeltree.Dialect
	labels  LabelParser
}

// NewParser returns a parser for a resolved dialect.
func NewParser(dialect cgeltree.Dialect) *Parser {
	return &Parser{dialect: dialect, labels: LabelParserFor(dialect)}
}

// Dialect returns the label dialect the parser reads.
func (p *Parser) Dialect() cgeltree.Dialect {
	return p.dialect
}

// Parse scans one tree. Nodes are appended in preorder as their "(" is
// met; leaves take consecutive token positions from a running cursor that
// never moves backwards. Spans of internal nodes are placeholders until
// tree.Resolve widens them.
func (p *Parser) Parse(treeID, text string) (*tree.Tree, error) {
	t := tree.New(treeID)
	stack := make([]int, 0, 16)
	left, right := 0, 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			if len(stack) == 0 && t.Len() > 0 {
				return nil, structureError(treeID, i, "second root node")
			}

			region := labelRegion.FindStringSubmatch(text[i:])
			if region == nil {
				return nil, cgeltree.NewTreeError(treeID, i, fmt.Errorf("%w: no .label. region after '('", cgeltree.ErrLabel))
			}

			parent := tree.NoParent
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			node := tree.Node{Left: left, Right: right, Parent: parent}
			next := i + len(region[0]) - 1

			if label, ok := p.labels(region[1]); ok {
				node.Label = label

				if loc := leafPattern.FindStringSubmatchIndex(text[i+1:]); loc != nil {
					word := text[i+1+loc[2] : i+1+loc[3]]

					// an empty leaf still occupies one position
					right += max(1, len(strings.Fields(word))) - 1
					node.Left, node.Right = left, right
					node.Word, node.HasWord = word, true
					left = right + 1
					right = left

					// resume at the closing paren so quoted parens are not read as nodes
					next = i + loc[1] - 1
				}
			} else {
				category := strings.TrimSpace(region[1])
				if category == "" {
					return nil, cgeltree.NewTreeError(treeID, i, fmt.Errorf("%w: empty label region", cgeltree.ErrLabel))
				}

				node.Label = tree.Label{Category: category}
			}

			index, err := t.Add(node)
			if err != nil {
				return nil, cgeltree.NewTreeError(treeID, i, err)
			}

			stack = append(stack, index)
			i = next
		case ')':
			if len(stack) == 0 {
				return nil, structureError(treeID, i, "unmatched ')'")
			}

			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return nil, structureError(treeID, len(text), fmt.Sprintf("%d unclosed node(s)", len(stack)))
	}

	if t.Len() == 0 {
		return nil, structureError(treeID, -1, "no nodes")
	}

	return t, nil
}

func structureError(treeID string, offset int, msg string) error {
	return cgeltree.NewTreeError(treeID, offset, fmt.Errorf("%w: %s", cgeltree.ErrStructure, msg))
}
