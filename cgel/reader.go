package cgel

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/shibukawa/cgeltree"
)

const maxLineSize = 1024 * 1024

// ReadOptions controls Trees.
type ReadOptions struct {
	// CheckFormat fails records whose tree text differs from Draw.
	CheckFormat bool
}

// Trees iterates over the records of r. A record is an id line, a sentence
// line and the tree lines, ended by a blank line or the end of input. A bad
// record yields an error and reading continues with the next record.
func Trees(r io.Reader, opts ...ReadOptions) iter.Seq2[*Tree, error] {
	var opt ReadOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	return func(yield func(*Tree, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		next := func() (string, bool) {
			if !scanner.Scan() {
				return "", false
			}

			lineNo++

			return strings.TrimSuffix(scanner.Text(), "\r"), true
		}

		for {
			line, ok := next()
			if !ok {
				if err := scanner.Err(); err != nil {
					yield(nil, err)
				}

				return
			}

			if strings.TrimSpace(line) == "" {
				continue
			}

			id := strings.TrimSpace(line)
			start := lineNo

			sent, ok := next()
			if !ok || strings.TrimSpace(sent) == "" {
				if !yield(nil, recordError(id, fmt.Errorf("%w: line %d: missing sentence line", ErrRecord, start))) || !ok {
					return
				}

				continue
			}

			var (
				lines   []string
				lineErr error
			)

			for {
				line, ok = next()
				if !ok || strings.TrimSpace(line) == "" {
					break
				}

				if lineErr == nil {
					lineErr = checkTreeLine(line, lineNo)
				}

				lines = append(lines, line)
			}

			t, err := readRecord(id, strings.TrimSpace(sent), lines, lineErr, opt)
			if !yield(t, err) {
				return
			}

			if !ok {
				if err := scanner.Err(); err != nil {
					yield(nil, err)
				}

				return
			}
		}
	}
}

func readRecord(id, sent string, lines []string, lineErr error, opt ReadOptions) (*Tree, error) {
	if lineErr != nil {
		return nil, recordError(id, lineErr)
	}

	if len(lines) == 0 {
		return nil, recordError(id, fmt.Errorf("%w: no tree lines", ErrRecord))
	}

	t, err := Parse(strings.Join(lines, "\n"))
	if err != nil {
		return nil, recordError(id, err)
	}

	t.SentID = id
	t.Sent = sent

	if opt.CheckFormat {
		if err := t.CheckFormat(); err != nil {
			return t, recordError(id, err)
		}
	}

	return t, nil
}

func checkTreeLine(line string, lineNo int) error {
	if strings.Contains(line, "\t") {
		return fmt.Errorf("%w: line %d: tree line contains a tab", ErrRecord, lineNo)
	}

	if line[0] != ' ' && line[0] != '(' {
		return fmt.Errorf("%w: line %d: tree line starts with %q", ErrRecord, lineNo, line[0])
	}

	return nil
}

func recordError(id string, err error) error {
	return cgeltree.NewTreeError(id, -1, err)
}

// ReadAll collects every tree of r. Failed records are returned as errors
// alongside the trees that were read.
func ReadAll(r io.Reader, opts ...ReadOptions) ([]*Tree, []error) {
	var (
		trees []*Tree
		errs  []error
	)

	for t, err := range Trees(r, opts...) {
		if err != nil {
			errs = append(errs, err)
			continue
		}

		trees = append(trees, t)
	}

	return trees, errs
}
