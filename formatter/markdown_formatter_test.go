package formatter

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMarkdownFormatter_Format(t *testing.T) {
	formatter := NewMarkdownFormatter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "cgel code block",
			input: "# Trees\n\n" +
				"```cgel\n" +
				"Tree a-0\nit\n(Clause :Subj (NP :t \"it\"))\n" +
				"```\n\n" +
				"That's it!",
			expected: "# Trees\n\n" +
				"```cgel\n" +
				"Tree a-0\nit\n(Clause\n    :Subj (NP :t \"it\"))\n" +
				"```\n\n" +
				"That's it!",
		},
		{
			name: "other languages are untouched",
			input: "```latex\n" +
				"(Clause :Subj (NP :t \"it\"))\n" +
				"```\n",
			expected: "```latex\n" +
				"(Clause :Subj (NP :t \"it\"))\n" +
				"```\n",
		},
		{
			name: "indented block keeps its indentation",
			input: "- item\n" +
				"  ```cgel\n" +
				"  Tree a-0\n  it\n  (Clause :Subj (NP :t \"it\"))\n" +
				"  ```\n",
			expected: "- item\n" +
				"  ```cgel\n" +
				"  Tree a-0\n  it\n  (Clause\n      :Subj (NP :t \"it\"))\n" +
				"  ```\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := formatter.Format(test.input)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestMarkdownFormatter_KeepsBrokenBlock(t *testing.T) {
	input := "```cgel\nTree a-0\nit\n(Clause\n```\n"

	result, err := NewMarkdownFormatter().Format(input)
	assert.IsError(t, err, ErrUnformattable)
	assert.Equal(t, input, result)
}

func TestIsMarkdownFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"notes.md", true},
		{"NOTES.MD", true},
		{"doc.markdown", true},
		{"trees.cgel", false},
		{"trees.tex", false},
	}

	for _, test := range tests {
		t.Run(test.filename, func(t *testing.T) {
			assert.Equal(t, test.expected, IsMarkdownFile(test.filename))
		})
	}
}
