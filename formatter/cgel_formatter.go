// Package formatter rewrites bracket-notation files, and the bracket-notation
// code blocks of Markdown documents, in canonical form.
package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/cgeltree/cgel"
)

// ErrUnformattable is returned when a record cannot be read
var ErrUnformattable = errors.New("input cannot be formatted")

// CgelFormatter redraws every record of a bracket-notation file.
type CgelFormatter struct{}

// NewCgelFormatter creates a new formatter
func NewCgelFormatter() *CgelFormatter {
	return &CgelFormatter{}
}

// Format returns the records of input in canonical form, one blank line
// between records. Nothing is returned when a record cannot be read.
func (f *CgelFormatter) Format(input string) (string, error) {
	trees, errs := cgel.ReadAll(strings.NewReader(input))
	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrUnformattable, errors.Join(errs...))
	}

	if len(trees) == 0 {
		return "", nil
	}

	var result strings.Builder

	for _, t := range trees {
		result.WriteString(t.Record())
	}

	return strings.TrimRight(result.String(), "\n") + "\n", nil
}

// FormatFromReader formats records from a reader and writes to a writer
func (f *CgelFormatter) FormatFromReader(reader io.Reader, writer io.Writer) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.Format(string(input))
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(formatted))

	return err
}
