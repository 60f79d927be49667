package cgel

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"
)

var (
	parenOpen = primitiveType("parenOpen", OPENED_PARENS)
	word      = primitiveType("word", WORD)
	slash     = primitiveType("slash", SLASH)
	edge      = primitiveType("edge", EDGE)
	quote     = primitiveType("quote", QUOTE)

	// property is ":key "value""
	property = pc.Seq(edge, quote)

	// nodeHeader is the part of a node between "(" and its first child:
	// "(" [name "/"] [category] {property}
	nodeHeader = pc.Seq(
		parenOpen,
		pc.Optional(pc.Seq(word, slash)),
		pc.Optional(word),
		pc.ZeroOrMore("property", property),
	)
)

func primitiveType(typeName string, types ...TokenType) pc.Parser[Token] {
	return func(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, []pc.Token[Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func toParserTokens(tokens []Token) []pc.Token[Token] {
	results := make([]pc.Token[Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

// header is a recognised node header.
type header struct {
	name       string
	category   string
	properties []prop
}

type prop struct {
	key   string
	value string
}

// readHeader matches nodeHeader at the start of tokens and returns the
// number of tokens consumed.
func readHeader(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, header, error) {
	consume, match, err := nodeHeader(pctx, tokens)
	if err != nil {
		return 0, header{}, err
	}

	var h header

	// match[0] is the open paren
	for i := 1; i < len(match); i++ {
		token := match[i].Val
		switch token.Type {
		case WORD:
			if i+1 < len(match) && match[i+1].Val.Type == SLASH {
				h.name = token.Value
				i++
			} else {
				h.category = token.Value
			}
		case EDGE:
			h.properties = append(h.properties, prop{key: token.Value, value: match[i+1].Val.Value})
			i++
		}
	}

	return consume, h, nil
}
