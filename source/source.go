// Package source enumerates and loads the source units fed to the converters.
//
// A source unit is one file (or standard input). Plain files are used as they
// are; Markdown files contribute only their fenced code blocks of the
// configured languages, and may override the unit identifier and the label
// dialect in a YAML front matter block.
package source

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shibukawa/cgeltree"
)

// StdinID identifies a unit read from standard input.
const StdinID = "stdin"

// Unit is one source handed to a converter.
type Unit struct {
	ID      string
	Path    string // empty for standard input
	Text    string
	Dialect cgeltree.Dialect // empty unless set by front matter
}

// ID derives a source identifier from a path: the base name without its extension.
func ID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsMarkdown reports whether path names a Markdown document.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// Loader reads source units.
type Loader struct {
	// Languages are the fenced code block info strings read from Markdown files.
	Languages []string
}

// NewLoader returns a loader reading the given fenced code block languages.
func NewLoader(languages []string) *Loader {
	return &Loader{Languages: languages}
}

// Load reads one file.
func (l *Loader) Load(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	unit, err := l.parse(ID(path), data, IsMarkdown(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	unit.Path = path

	return unit, nil
}

// Read loads a unit from r, typically standard input.
func (l *Loader) Read(id string, r io.Reader, markdown bool) (*Unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if id == "" {
		id = StdinID
	}

	return l.parse(id, data, markdown)
}

func (l *Loader) parse(id string, data []byte, markdown bool) (*Unit, error) {
	if !markdown {
		return &Unit{ID: id, Text: string(data)}, nil
	}

	meta, body, err := parseFrontMatter(string(data))
	if err != nil {
		return nil, err
	}

	unit := &Unit{ID: id, Text: ExtractCodeBlocks([]byte(body), l.Languages)}

	if meta.ID != "" {
		unit.ID = meta.ID
	}

	if meta.Dialect != "" {
		dialect, err := cgeltree.ParseDialect(meta.Dialect)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
		}

		unit.Dialect = dialect
	}

	return unit, nil
}

// Files expands the inputs into source file paths. Directories are walked
// recursively and contribute the files whose extension is in extensions;
// files named directly are always included.
func Files(inputs []string, extensions []string) ([]string, error) {
	var files []string

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", input, err)
		}

		if !info.IsDir() {
			files = append(files, input)
			continue
		}

		found, err := walk(input, extensions)
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, strings.Join(inputs, ", "))
	}

	return files, nil
}

// walk returns the matching files below dir in lexical order.
func walk(dir string, extensions []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// skip hidden directories such as .git
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}
