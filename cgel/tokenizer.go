package cgel

import (
	"fmt"
	"iter"

	"github.com/shibukawa/cgeltree"
)

// Tokens returns an iterator over the tokens of input. Whitespace is
// skipped. The last token is EOF unless an error stops the iteration.
func Tokens(input string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		t := &tokenizer{input: input, line: 1, column: 1}

		for {
			token, err := t.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !yield(token, nil) || token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens collects every token of input, EOF included.
func AllTokens(input string) ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range Tokens(input) {
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

type tokenizer struct {
	input    string
	position int
	line     int
	column   int
}

func (t *tokenizer) peek() byte {
	if t.position >= len(t.input) {
		return 0
	}

	return t.input[t.position]
}

func (t *tokenizer) advance() {
	if t.input[t.position] == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	t.position++
}

func (t *tokenizer) pos() Position {
	return Position{Line: t.line, Column: t.column, Offset: t.position}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '"'
}

func (t *tokenizer) nextToken() (Token, error) {
	for t.position < len(t.input) && isSpace(t.peek()) {
		t.advance()
	}

	start := t.pos()

	switch c := t.peek(); {
	case t.position >= len(t.input):
		return Token{Type: EOF, Position: start}, nil
	case c == '(':
		t.advance()
		return Token{Type: OPENED_PARENS, Value: "(", Position: start}, nil
	case c == ')':
		t.advance()
		return Token{Type: CLOSED_PARENS, Value: ")", Position: start}, nil
	case c == '"':
		return t.readString(start)
	case c == ':':
		t.advance()
		return Token{Type: EDGE, Value: t.readBare(), Position: start}, nil
	case c == '/' && (t.position+1 == len(t.input) || isDelimiter(t.input[t.position+1])):
		t.advance()
		return Token{Type: SLASH, Value: "/", Position: start}, nil
	default:
		return Token{Type: WORD, Value: t.readBare(), Position: start}, nil
	}
}

func (t *tokenizer) readBare() string {
	begin := t.position
	for t.position < len(t.input) && !isDelimiter(t.input[t.position]) {
		t.advance()
	}

	return t.input[begin:t.position]
}

func (t *tokenizer) readString(start Position) (Token, error) {
	t.advance() // opening quote
	begin := t.position

	for t.position < len(t.input) {
		switch t.input[t.position] {
		case '\\':
			t.advance()

			if t.position < len(t.input) {
				t.advance()
			}
		case '"':
			value := cgeltree.Unquote(t.input[begin:t.position])
			t.advance()

			return Token{Type: QUOTE, Value: value, Position: start}, nil
		default:
			t.advance()
		}
	}

	return Token{}, fmt.Errorf("%w at %s", ErrUnterminatedString, start)
}
