package texparser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/tree"
)

func TestNormalizeSubscript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NP", "NP"},
		{`NP\textsubscript{i}`, "NP_i"},
		{`N\textsubscript{\textsc{pro}}`, "N_pro"},
		{`V\textsubscript{\textsc{aux}}`, "V_aux"},
		{`GAP\textsubscript{i1}`, "GAP_i1"},
		{`Clause\textsubscript{rel}\textsubscript{j}`, "Clause_rel_j"},
		{`X\textsubscript{broken`, "X_broken"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, normalizeSubscript(test.input))
		})
	}
}

func TestLabelParsers(t *testing.T) {
	tests := []struct {
		name    string
		dialect cgeltree.Dialect
		region  string
		label   tree.Label
		ok      bool
	}{
		{"macro call", cgeltree.DialectMacroCall, `\NL{Subj}{NP}`, tree.Label{Function: "Subj", Category: "NP"}, true},
		{"macro call nested braces", cgeltree.DialectMacroCall, `\NL{Head}{N\textsubscript{\textsc{pro}}}`, tree.Label{Function: "Head", Category: "N_pro"}, true},
		{"macro call missing argument", cgeltree.DialectMacroCall, `\NL{Subj}`, tree.Label{}, false},
		{"macro call on table region", cgeltree.DialectMacroCall, `\begin{tabular}{c}Subj:\\NP\end{tabular}`, tree.Label{}, false},
		{"table", cgeltree.DialectTable, `\begin{tabular}{c}Subj:\\NP\end{tabular}`, tree.Label{Function: "Subj", Category: "NP"}, true},
		{"table without category", cgeltree.DialectTable, `\begin{tabular}{c}Mod:\end{tabular}`, tree.Label{Function: "Mod"}, true},
		{"table on macro region", cgeltree.DialectTable, `\NL{Subj}{NP}`, tree.Label{}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			label, ok := LabelParserFor(test.dialect)(test.region)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.label, label)
		})
	}
}
