package cgel

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
)

const whatSaw = `(Clause
    :Prenucleus (i / NP
        :Head (N_pro :t "what"))
    :Head (Clause
        :Subj (NP :t "you")
        :Head (VP
            :Head (V :p "(" :t "saw" :p ")" :l "see" :correct "seen" :subt "sa" :note "tense")
            :Obj (i / GAP))))`

func TestParseDrawIsCanonical(t *testing.T) {
	tr, err := Parse(whatSaw)
	assert.NoError(t, err)
	assert.Equal(t, whatSaw, tr.Draw())
	assert.NoError(t, tr.CheckFormat())
}

func TestParseNodes(t *testing.T) {
	tr, err := Parse(whatSaw)
	assert.NoError(t, err)

	assert.Equal(t, 8, len(tr.Nodes))

	root := tr.Root()
	assert.Equal(t, "", root.Deprel)
	assert.Equal(t, "Clause", root.Constituent)
	assert.Equal(t, NoHead, root.Head)
	assert.Equal(t, []int{1, 3}, tr.Children(0))

	prenucleus := tr.Nodes[1]
	assert.Equal(t, "Prenucleus", prenucleus.Deprel)
	assert.Equal(t, "i", prenucleus.Label)
	assert.Equal(t, "NP", prenucleus.Constituent)

	verb := tr.Nodes[6]
	assert.Equal(t, "saw", verb.Text)
	assert.Equal(t, []string{"("}, verb.Prepunct)
	assert.Equal(t, []string{")"}, verb.Postpunct)
	assert.Equal(t, "see", verb.Lemma)
	assert.Equal(t, "seen", verb.Correct)
	assert.Equal(t, []Substring{{Kind: "subt", Value: "sa"}}, verb.Substrings)
	assert.Equal(t, "tense", verb.Note)

	gap := tr.Nodes[7]
	assert.True(t, gap.IsGap())
	assert.Equal(t, 1, gap.Antecedent)
}

func TestParseGapForms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		drawn    string
		label    string
		category string
	}{
		{"short gap", "(Clause\n    :Obj (i))", "(Clause\n    :Obj (i / GAP))", "i", GapCategory},
		{"short gap with digit", "(Clause\n    :Obj (i1))", "(Clause\n    :Obj (i1 / GAP))", "i1", GapCategory},
		{"embedded name", "(Clause\n    :Obj (NP_j :t \"it\"))", "(Clause\n    :Obj (j / NP :t \"it\"))", "j", "NP"},
		{"subscript form is not a name", "(Clause\n    :Mod (Clause_rel :t \"that\"))", "(Clause\n    :Mod (Clause_rel :t \"that\"))", "", "Clause_rel"},
		{"gap symbol text is dropped", "(Clause\n    :Obj (i / GAP :t \"--\"))", "(Clause\n    :Obj (i / GAP))", "i", GapCategory},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr, err := Parse(test.text)
			assert.NoError(t, err)
			assert.Equal(t, test.label, tr.Nodes[1].Label)
			assert.Equal(t, test.category, tr.Nodes[1].Constituent)
			assert.Equal(t, test.drawn, tr.Draw())
		})
	}
}

func TestSentence(t *testing.T) {
	tr, err := Parse(whatSaw)
	assert.NoError(t, err)

	assert.Equal(t, "what you saw", tr.Sentence(false))
	assert.Equal(t, "what you saw --", tr.Sentence(true))

	tr.Sent = "what you saw --"
	assert.NoError(t, tr.CheckSentence())

	tr.Sent = "what you saw"
	assert.NoError(t, tr.CheckSentence())

	tr.Sent = "what they saw"
	assert.IsError(t, tr.CheckSentence(), ErrSentenceMismatch)
}

func TestValidate(t *testing.T) {
	tr, err := Parse(whatSaw)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(tr.Validate()))

	tr, err = Parse("(Clause\n    :Subj (Np-x :t \"a\")\n    :Obj (V_aux+P :t \"b\")\n    :Mod (j))")
	assert.NoError(t, err)

	problems := tr.Validate()
	assert.Equal(t, 2, len(problems))
	assert.IsError(t, problems[0], ErrCategory)
	assert.IsError(t, problems[1], ErrMissingAntecedent)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"unclosed", "(Clause\n    :Head (V :t \"go\")", cgeltree.ErrStructure},
		{"extra close", "(Clause)\n)", cgeltree.ErrStructure},
		{"second root", "(Clause)\n(Clause)", cgeltree.ErrStructure},
		{"dangling function", "(Clause :Head)", cgeltree.ErrFormat},
		{"unknown property", "(Clause\n    :Head (V :x \"go\"))", cgeltree.ErrFormat},
		{"unterminated string", "(Clause\n    :Head (V :t \"go))", cgeltree.ErrFormat},
		{"empty", "   ", cgeltree.ErrFormat},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.text)
			assert.IsError(t, err, test.err)
		})
	}
}

func TestCheckFormatReportsDiff(t *testing.T) {
	tr, err := Parse("(Clause\n  :Head (V :t \"go\"))")
	assert.NoError(t, err)

	err = tr.CheckFormat()
	assert.IsError(t, err, ErrFormatMismatch)
	assert.Contains(t, err.Error(), "<   :Head (V :t \"go\"))")
	assert.Contains(t, err.Error(), ">     :Head (V :t \"go\"))")
}

func TestLineDiff(t *testing.T) {
	assert.Equal(t, "= a\n< b\n> c\n> d\n", LineDiff("a\nb", "a\nc\nd"))
	assert.Equal(t, "= a\n< b\n", LineDiff("a\nb", "a"))
}
