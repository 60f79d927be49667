package cgel

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
	"github.com/stretchr/testify/require"
)

const corpus = `# sent_id = one
it rains

(Clause
    :Subj (NP :t "it")
    :Head (VP :t "rains"))

# sent_id = two
go
(Clause
	:Head (V :t "go"))

# sent_id = three
what you saw --
(Clause
    :Prenucleus (i / NP :t "what")
    :Head (Clause
        :Subj (NP :t "you")
        :Head (VP
            :Head (V :t "saw")
            :Obj (i / GAP))))
`

func TestTrees(t *testing.T) {
	// the blank line after the first sentence ends that record
	trees, errs := ReadAll(strings.NewReader(corpus))

	ids := make([]string, 0, len(trees))
	for _, tr := range trees {
		ids = append(ids, tr.SentID)
	}

	require.Equal(t, []string{"# sent_id = three"}, ids)
	require.Len(t, errs, 3)

	var treeErr *cgeltree.TreeError
	require.True(t, errors.As(errs[0], &treeErr))
	require.Equal(t, "# sent_id = one", treeErr.TreeID)
	require.ErrorIs(t, errs[0], ErrRecord)
	require.ErrorIs(t, errs[2], ErrRecord) // tab in tree line
}

func TestTreesReadsForwardRecords(t *testing.T) {
	input := "Tree weather-0\nit rains\n(Clause\n    :Subj (NP :t \"it\")\n    :Head (VP :t \"rains\"))\n\n" +
		"Tree weather-1\nhello\n(Clause\n    :Head (Interj :t \"hello\"))"

	trees, errs := ReadAll(strings.NewReader(input), ReadOptions{CheckFormat: true})
	require.Empty(t, errs)
	require.Len(t, trees, 2)

	assert.Equal(t, "Tree weather-0", trees[0].SentID)
	assert.Equal(t, "it rains", trees[0].Sent)
	assert.Equal(t, "it rains", trees[0].Sentence(true))
	assert.Equal(t, "hello", trees[1].Sentence(false))
	assert.NoError(t, trees[1].CheckSentence())
}

func TestTreesCheckFormat(t *testing.T) {
	input := "id\nx\n(Clause\n    :Head (X :t \"x\")  )\n"

	trees, errs := ReadAll(strings.NewReader(input), ReadOptions{CheckFormat: true})
	assert.Equal(t, 0, len(trees))
	assert.Equal(t, 1, len(errs))
	assert.IsError(t, errs[0], ErrFormatMismatch)

	trees, errs = ReadAll(strings.NewReader(input))
	assert.Equal(t, 1, len(trees))
	assert.Equal(t, 0, len(errs))
}

func TestTreesStopsWhenConsumerStops(t *testing.T) {
	input := "a\nx\n(X)\n\nb\ny\n(Y)\n"

	count := 0
	for range Trees(strings.NewReader(input)) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

func TestRecord(t *testing.T) {
	tr, err := Parse("(Clause\n    :Head (V :t \"go\"))")
	require.NoError(t, err)

	tr.SentID = "Tree x-0"
	tr.Sent = "go"
	assert.Equal(t, "Tree x-0\ngo\n(Clause\n    :Head (V :t \"go\"))\n\n", tr.Record())
}
