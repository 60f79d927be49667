package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/cgeltree"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	assert.NoError(t, err)

	err = os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
}

func TestID(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"trees/ch1.tex", "ch1"},
		{"SIEG-12.tex", "SIEG-12"},
		{"/abs/notes.cgel", "notes"},
		{"noext", "noext"},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, ID(test.path))
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.tex"), "")
	writeFile(t, filepath.Join(dir, "a.tex"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.md"), "")
	writeFile(t, filepath.Join(dir, "skip.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "d.tex"), "")

	files, err := Files([]string{dir}, []string{".tex", ".md"})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.tex"),
		filepath.Join(dir, "b.tex"),
		filepath.Join(dir, "sub", "c.md"),
	}, files)
}

func TestFilesIncludesNamedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trees.txt")
	writeFile(t, path, "")

	files, err := Files([]string{path}, []string{".tex"})
	assert.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFilesErrors(t *testing.T) {
	_, err := Files([]string{t.TempDir()}, []string{".tex"})
	assert.IsError(t, err, ErrNoSources)

	_, err = Files([]string{filepath.Join(t.TempDir(), "missing.tex")}, []string{".tex"})
	assert.IsError(t, err, os.ErrNotExist)
}

func TestLoaderLoadPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SIEG-3.tex")
	writeFile(t, path, "\\begin{parsetree}(.Clause.)\\end{parsetree}\n")

	unit, err := NewLoader([]string{"latex"}).Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "SIEG-3", unit.ID)
	assert.Equal(t, path, unit.Path)
	assert.Equal(t, "\\begin{parsetree}(.Clause.)\\end{parsetree}\n", unit.Text)
	assert.Equal(t, cgeltree.Dialect(""), unit.Dialect)
}

func TestLoaderLoadMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	writeFile(t, path, strings.Join([]string{
		"---",
		"id: chapter-2",
		"dialect: table",
		"---",
		"# Examples",
		"",
		"```latex",
		"\\begin{parsetree}",
		"(.Clause.)",
		"\\end{parsetree}",
		"```",
		"",
		"```go",
		"ignored",
		"```",
		"",
	}, "\n"))

	unit, err := NewLoader([]string{"latex", "tex"}).Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "chapter-2", unit.ID)
	assert.Equal(t, cgeltree.DialectTable, unit.Dialect)
	assert.Equal(t, "\\begin{parsetree}\n(.Clause.)\n\\end{parsetree}\n", unit.Text)
}

func TestLoaderLoadMarkdownBadDialect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	writeFile(t, path, "---\ndialect: xml\n---\n")

	_, err := NewLoader(nil).Load(path)
	assert.IsError(t, err, ErrInvalidFrontMatter)
	assert.IsError(t, err, cgeltree.ErrUnknownDialect)
}

func TestLoaderRead(t *testing.T) {
	unit, err := NewLoader(nil).Read("", strings.NewReader("Tree x\n"), false)
	assert.NoError(t, err)
	assert.Equal(t, StdinID, unit.ID)
	assert.Equal(t, "", unit.Path)
	assert.Equal(t, "Tree x\n", unit.Text)
}
