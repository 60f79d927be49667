package formatter

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// MarkdownFormatter formats bracket-notation code blocks within Markdown files
type MarkdownFormatter struct {
	cgelFormatter *CgelFormatter
	languages     []string
}

// NewMarkdownFormatter creates a formatter for fenced code blocks of the
// given languages, "cgel" when none are given.
func NewMarkdownFormatter(languages ...string) *MarkdownFormatter {
	if len(languages) == 0 {
		languages = []string{"cgel"}
	}

	return &MarkdownFormatter{
		cgelFormatter: NewCgelFormatter(),
		languages:     languages,
	}
}

var (
	blockStartRe = regexp.MustCompile("^(\\s*)`{3}\\s*([A-Za-z0-9_-]+)")
	blockEndRe   = regexp.MustCompile("^(\\s*)`{3}\\s*$")
)

// Format formats the matching code blocks of markdown. A block that cannot
// be formatted is kept as it is and its error is returned along with the
// rest of the document.
func (f *MarkdownFormatter) Format(markdown string) (string, error) {
	var (
		result       strings.Builder
		blockContent strings.Builder
		rawBlock     strings.Builder
		blockIndent  string
		inBlock      bool
		errs         []error
	)

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	lineNo := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		if !inBlock {
			if match := blockStartRe.FindStringSubmatch(line); match != nil && f.formats(match[2]) {
				inBlock = true
				blockIndent = match[1]
				blockContent.Reset()
				rawBlock.Reset()
			}

			result.WriteString(line)
			result.WriteString("\n")

			continue
		}

		if !blockEndRe.MatchString(line) {
			blockContent.WriteString(strings.TrimPrefix(line, blockIndent))
			blockContent.WriteString("\n")
			rawBlock.WriteString(line)
			rawBlock.WriteString("\n")

			continue
		}

		inBlock = false

		formatted, err := f.cgelFormatter.Format(blockContent.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("block ending at line %d: %w", lineNo, err))
			formatted = blockContent.String()
		}

		for _, blockLine := range strings.Split(strings.TrimRight(formatted, "\n"), "\n") {
			if blockLine != "" {
				result.WriteString(blockIndent)
				result.WriteString(blockLine)
			}

			result.WriteString("\n")
		}

		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading markdown: %w", err)
	}

	// an unterminated block is copied unchanged
	if inBlock {
		result.WriteString(rawBlock.String())
	}

	output := result.String()
	if !strings.HasSuffix(markdown, "\n") {
		output = strings.TrimSuffix(output, "\n")
	}

	return output, errors.Join(errs...)
}

func (f *MarkdownFormatter) formats(language string) bool {
	return slices.ContainsFunc(f.languages, func(l string) bool { return strings.EqualFold(l, language) })
}

// IsMarkdownFile checks if a file is a Markdown file
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}
