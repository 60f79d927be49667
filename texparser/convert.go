package texparser

import (
	"fmt"
	"strings"

	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/tree"
)

// GapSymbol stands for a gap in the sentence line of a record.
const GapSymbol = "--"

// Result is the outcome of converting one tree occurrence. Err is set when
// the tree failed; the other trees of the source are unaffected.
type Result struct {
	SourceID string
	Index    int
	TreeID   string
	Tree     *tree.Tree
	Spans    *tree.SpanTable
	Sentence string
	Text     string // indented bracket notation
	Err      error
}

// Record renders the result as a bracket-notation record: the tree id line,
// the sentence line, the tree and a blank separator line.
func (r *Result) Record() string {
	if r.Err != nil {
		return ""
	}

	return "Tree " + r.TreeID + "\n" + r.Sentence + "\n" + r.Text + "\n\n"
}

// SpanRecord renders the span table of the result under its tree id.
func (r *Result) SpanRecord() string {
	if r.Err != nil || r.Spans == nil {
		return ""
	}

	return "Tree " + r.TreeID + "\n" + r.Spans.String() + "\n"
}

// Converter turns parsetree sources into bracket-notation records.
type Converter struct {
	Dialect cgeltree.Dialect
	Markers []string
}

// NewConverter returns a converter. With cgeltree.DialectAuto the dialect is
// picked per source from markers.
func NewConverter(dialect cgeltree.Dialect, markers []string) *Converter {
	if markers == nil {
		markers = cgeltree.DefaultTableStyleMarkers
	}

	return &Converter{Dialect: dialect, Markers: markers}
}

// TreeID names the index-th tree of a source.
func TreeID(sourceID string, index int) string {
	return fmt.Sprintf("%s-%d", sourceID, index)
}

// ConvertSource converts every tree of one source unit. One dialect is used
// for the whole unit. Failed trees are returned with Err set.
func (c *Converter) ConvertSource(sourceID, text string) []Result {
	parser := NewParser(c.Dialect.Resolve(sourceID, c.Markers))
	blocks := ExtractTrees(text)
	results := make([]Result, 0, len(blocks))

	for index, block := range blocks {
		result := parser.Convert(TreeID(sourceID, index), block)
		result.SourceID = sourceID
		result.Index = index
		results = append(results, result)
	}

	return results
}

// Convert parses, resolves and linearizes one tree.
func (p *Parser) Convert(treeID, text string) Result {
	result := Result{TreeID: treeID}

	t, err := p.Parse(treeID, text)
	if err != nil {
		result.Err = err
		return result
	}

	result.Tree = t
	result.Sentence = t.SentenceWithGaps(GapSymbol)

	spans, err := tree.Resolve(t)
	if err != nil {
		result.Err = cgeltree.NewTreeError(treeID, -1, err)
		return result
	}

	result.Spans = spans

	linear, err := tree.Linearize(t)
	if err != nil {
		result.Err = cgeltree.NewTreeError(treeID, -1, err)
		return result
	}

	result.Text = linear

	return result
}

// Records concatenates the records of the successful results.
func Records(results []Result) string {
	var sb strings.Builder

	for i := range results {
		sb.WriteString(results[i].Record())
	}

	return sb.String()
}
