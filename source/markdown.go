package source

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// FrontMatter holds the per-document settings of a Markdown source.
type FrontMatter struct {
	ID      string `yaml:"id"`
	Dialect string `yaml:"dialect"`
}

// parseFrontMatter splits a leading "---" delimited YAML block from content.
func parseFrontMatter(content string) (FrontMatter, string, error) {
	var meta FrontMatter

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return meta, content, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return meta, "", fmt.Errorf("%w: missing closing delimiter", ErrInvalidFrontMatter)
	}

	endIndex += 4

	err := yaml.Unmarshal([]byte(content[4:endIndex]), &meta)
	if err != nil {
		return meta, "", fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	return meta, content[endIndex+4:], nil
}

// CodeBlock is a fenced code block of a Markdown document.
type CodeBlock struct {
	Language string
	Content  string
	Line     int // 1-based line of the first content line
}

// CodeBlocks returns the fenced code blocks whose info string names one of
// languages, in document order. Matching ignores case.
func CodeBlocks(content []byte, languages []string) []CodeBlock {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)

	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []CodeBlock

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		codeBlock, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		language := strings.ToLower(string(codeBlock.Language(content)))
		if !containsFold(languages, language) {
			return ast.WalkSkipChildren, nil
		}

		var body strings.Builder

		lines := codeBlock.Lines()
		for i := range lines.Len() {
			line := lines.At(i)
			body.WriteString(strings.TrimRight(string(line.Value(content)), "\r\n"))
			body.WriteByte('\n')
		}

		block := CodeBlock{Language: language, Content: body.String()}
		if lines.Len() > 0 {
			block.Line = lineOf(content, lines.At(0).Start)
		}

		blocks = append(blocks, block)

		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// ExtractCodeBlocks joins the matching fenced code blocks with a blank line
// between them, so that bracket-notation records stay separated.
func ExtractCodeBlocks(content []byte, languages []string) string {
	blocks := CodeBlocks(content, languages)
	parts := make([]string, len(blocks))

	for i, block := range blocks {
		parts[i] = block.Content
	}

	return strings.Join(parts, "\n")
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}

func lineOf(content []byte, offset int) int {
	return strings.Count(string(content[:offset]), "\n") + 1
}
