package cgel

import (
	"errors"
	"fmt"

	"github.com/shibukawa/cgeltree"
)

// Sentinel errors
var (
	ErrUnterminatedString = fmt.Errorf("%w: unterminated string", cgeltree.ErrFormat)
	ErrUnexpectedToken    = fmt.Errorf("%w: unexpected token", cgeltree.ErrFormat)
	ErrUnbalanced         = fmt.Errorf("%w: unbalanced brackets", cgeltree.ErrStructure)
	ErrRecord             = fmt.Errorf("%w: malformed record", cgeltree.ErrFormat)
	ErrFormatMismatch     = fmt.Errorf("%w: tree text is not in canonical form", cgeltree.ErrFormat)
	ErrSentenceMismatch   = errors.New("sentence line does not match the tree")
	ErrCategory           = errors.New("invalid category name")
	ErrMissingAntecedent  = errors.New("gap has no antecedent")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF           TokenType = iota
	OPENED_PARENS           // (
	CLOSED_PARENS           // )
	EDGE                    // :Head, :t, :correct ...
	QUOTE                   // "text"
	WORD                    // category or coindexation name
	SLASH                   // /
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case EDGE:
		return "EDGE"
	case QUOTE:
		return "QUOTE"
	case WORD:
		return "WORD"
	case SLASH:
		return "SLASH"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Position is a 1-based line and column plus a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is one lexical unit of bracket notation. EDGE values have the
// leading colon removed; QUOTE values are unescaped.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}
