package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/rewriter"
	"github.com/shibukawa/cgeltree/source"
	"github.com/shibukawa/cgeltree/store"
	"github.com/shibukawa/cgeltree/texparser"
)

func parsetree(body string) string {
	return "\\begin{parsetree}\n" + body + "\n\\end{parsetree}\n"
}

var (
	itRains  = parsetree("(.Clause. (.\\NL{Subj}{NP}. `it') (.\\NL{Head}{VP}. `rains'))")
	broken   = parsetree("(.Clause. (.\\NL{Subj}{NP}. `it')")
	tableRow = parsetree("(.Clause. (.\\begin{tabular}{c}Subj:\\\\NP\\end{tabular}. `it'))")
)

func TestRunTex2CgelKeepsOrder(t *testing.T) {
	units := []*source.Unit{
		{ID: "a", Text: itRains + broken + itRains},
		{ID: "b", Text: itRains},
		{ID: "c", Text: ""},
	}

	var out bytes.Buffer

	runner := NewRunner(3, Tex2Cgel(texparser.NewConverter(cgeltree.DialectMacroCall, nil), false))
	summary, err := runner.Run(context.Background(), UnitTasks(units...), store.NewTextSink(&out, false))
	assert.NoError(t, err)

	assert.Equal(t, 3, summary.Sources)
	assert.Equal(t, 4, summary.Trees)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.OK())
	assert.Equal(t, "a-1", summary.Failures[0].TreeID)
	assert.IsError(t, summary.Failures[0], cgeltree.ErrStructure)

	ids := []string{}
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Tree ") {
			ids = append(ids, line)
		}
	}

	assert.Equal(t, []string{"Tree a-0", "Tree a-2", "Tree b-0"}, ids)
}

func TestRunTex2CgelUnitDialectOverride(t *testing.T) {
	var out bytes.Buffer

	runner := NewRunner(1, Tex2Cgel(texparser.NewConverter(cgeltree.DialectMacroCall, nil), false))
	summary, err := runner.Run(context.Background(),
		UnitTasks(&source.Unit{ID: "notes", Text: tableRow, Dialect: cgeltree.DialectTable}),
		store.NewTextSink(&out, false))
	assert.NoError(t, err)
	assert.True(t, summary.OK())
	assert.Contains(t, out.String(), ":Subj (NP :t \"it\")")
}

func TestRunTex2CgelSpans(t *testing.T) {
	var out bytes.Buffer

	runner := NewRunner(0, Tex2Cgel(texparser.NewConverter(cgeltree.DialectMacroCall, nil), true))
	_, err := runner.Run(context.Background(), UnitTasks(&source.Unit{ID: "w", Text: itRains}), store.NewTextSink(&out, false))
	assert.NoError(t, err)

	// the record is followed by the span table under the same id
	assert.Equal(t, 2, strings.Count(out.String(), "Tree w-0\n"))
	assert.Contains(t, out.String(), "1-2\t\tClause\t0\n")
}

func TestRunCgel2Tex(t *testing.T) {
	text := "Tree a-0\nit rains\n(Clause\n    :Subj (NP :t \"it\")\n    :Head (VP :t \"rains\"))\n\n" +
		"Tree a-1\nbroken\n(Clause\n    :Subj (NP :t \"it\")\n\n" +
		"Tree a-2\nrains\n(Clause\n    :Head (VP :t \"rains\"))\n"

	var out bytes.Buffer

	runner := NewRunner(2, Cgel2Tex(rewriter.New(rewriter.DefaultOptions()), false))
	summary, err := runner.Run(context.Background(), UnitTasks(&source.Unit{ID: "a", Text: text}), store.NewTextSink(&out, false))
	assert.NoError(t, err)

	assert.Equal(t, 3, summary.Trees)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "Tree a-1", summary.Failures[0].TreeID)
	assert.Equal(t, 2, strings.Count(out.String(), "\\begin{parsetree}"))
	assert.Contains(t, out.String(), "(.\\NL{Subj}{NP}.")
}

func TestRunReportsUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tex")
	assert.NoError(t, os.WriteFile(good, []byte(itRains), 0o644))

	var out bytes.Buffer

	runner := NewRunner(2, Tex2Cgel(texparser.NewConverter(cgeltree.DialectAuto, nil), false))
	tasks := FileTasks(source.NewLoader(nil), []string{filepath.Join(dir, "missing.tex"), good})

	summary, err := runner.Run(context.Background(), tasks, store.NewTextSink(&out, false))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(summary.Failures))
	assert.Equal(t, "", summary.Failures[0].TreeID)
	assert.IsError(t, summary.Failures[0], os.ErrNotExist)
	assert.Contains(t, out.String(), "Tree good-0\n")
}
