package cgeltree

import (
	"fmt"
	"strings"
)

// Dialect selects how node labels are written in the macro notation.
// One dialect is chosen per source unit.
type Dialect string

const (
	// DialectAuto picks a dialect from the source identifier.
	DialectAuto Dialect = "auto"
	// DialectTable writes function and category as rows of a tabular block:
	// \begin{tabular}{c}Subj:\\NP\end{tabular}
	DialectTable Dialect = "table"
	// DialectMacroCall writes them as the two arguments of \NL: \NL{Subj}{NP}
	DialectMacroCall Dialect = "macro-call"
)

// DefaultTableStyleMarkers are the source identifier fragments that mark
// table-style sources.
var DefaultTableStyleMarkers = []string{"SIEG"}

// ParseDialect converts a configuration or flag value into a Dialect.
// An empty string means DialectAuto.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case "", DialectAuto:
		return DialectAuto, nil
	case DialectTable, "tabular":
		return DialectTable, nil
	case DialectMacroCall, "macro", "nl":
		return DialectMacroCall, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of auto, table, macro-call)", ErrUnknownDialect, s)
	}
}

// Resolve returns the concrete dialect for a source. Explicit dialects are
// returned unchanged; DialectAuto becomes DialectTable when the source
// identifier contains one of the markers and DialectMacroCall otherwise.
func (d Dialect) Resolve(sourceID string, markers []string) Dialect {
	if d != DialectAuto && d != "" {
		return d
	}

	for _, marker := range markers {
		if marker != "" && strings.Contains(sourceID, marker) {
			return DialectTable
		}
	}

	return DialectMacroCall
}

func (d Dialect) String() string {
	return string(d)
}
