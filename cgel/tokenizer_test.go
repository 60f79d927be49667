package cgel

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokens(t *testing.T) {
	tokens, err := AllTokens(`:Head (i / NP :t "it \"is\"" :p ",")`)
	assert.NoError(t, err)

	var types []TokenType
	var values []string

	for _, token := range tokens {
		types = append(types, token.Type)
		values = append(values, token.Value)
	}

	assert.Equal(t, []TokenType{EDGE, OPENED_PARENS, WORD, SLASH, WORD, EDGE, QUOTE, EDGE, QUOTE, CLOSED_PARENS, EOF}, types)
	assert.Equal(t, []string{"Head", "(", "i", "/", "NP", "t", `it "is"`, "p", ",", ")", ""}, values)
}

func TestTokenPositions(t *testing.T) {
	tokens, err := AllTokens("(Clause\n    :Head (V :t \"go\"))")
	assert.NoError(t, err)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 12}, tokens[2].Position)
}

func TestTokensKeepTeXBackslashes(t *testing.T) {
	tokens, err := AllTokens(`"\textquoteright s"`)
	assert.NoError(t, err)
	assert.Equal(t, `\textquoteright s`, tokens[0].Value)
}

func TestTokensSlashInsideWord(t *testing.T) {
	tokens, err := AllTokens(`(and/or)`)
	assert.NoError(t, err)
	assert.Equal(t, WORD, tokens[1].Type)
	assert.Equal(t, "and/or", tokens[1].Value)
}

func TestTokensUnterminatedString(t *testing.T) {
	_, err := AllTokens(`(N :t "open`)
	assert.IsError(t, err, ErrUnterminatedString)
}
