package cgel

import (
	"fmt"

	pc "github.com/shibukawa/parsercombinator"
)

// Parse reads the bracket text of a single tree.
func Parse(text string) (*Tree, error) {
	tokens, err := AllTokens(text)
	if err != nil {
		return nil, err
	}

	pctx := pc.NewParseContext[Token]()
	ptokens := toParserTokens(tokens)
	t := &Tree{raw: text}
	stack := make([]int, 0, 16)
	deprel := ""

	for pos := 0; pos < len(tokens); {
		token := tokens[pos]

		switch token.Type {
		case EOF:
			pos = len(tokens)
		case EDGE:
			if pos+1 >= len(tokens) || tokens[pos+1].Type != OPENED_PARENS {
				return nil, fmt.Errorf("%w %s at %s: a function must be followed by '('", ErrUnexpectedToken, token, token.Position)
			}

			deprel = token.Value
			pos++
		case OPENED_PARENS:
			if len(stack) == 0 && len(t.Nodes) > 0 {
				return nil, fmt.Errorf("%w: second root at %s", ErrUnbalanced, token.Position)
			}

			consume, h, err := readHeader(pctx, ptokens[pos:])
			if err != nil {
				return nil, fmt.Errorf("%w at %s: %w", ErrUnexpectedToken, token.Position, err)
			}

			head := NoHead
			if len(stack) > 0 {
				head = stack[len(stack)-1]
			}

			node := newNode(deprel, h, head)
			for _, p := range h.properties {
				if err := node.setProperty(p.key, p.value); err != nil {
					return nil, fmt.Errorf("%w at %s", err, token.Position)
				}
			}

			index := len(t.Nodes)
			t.Nodes = append(t.Nodes, node)
			t.children = append(t.children, nil)

			if head != NoHead {
				t.children[head] = append(t.children[head], index)
			}

			stack = append(stack, index)
			deprel = ""
			pos += consume
		case CLOSED_PARENS:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched ')' at %s", ErrUnbalanced, token.Position)
			}

			stack = stack[:len(stack)-1]
			pos++
		default:
			return nil, fmt.Errorf("%w %s at %s", ErrUnexpectedToken, token, token.Position)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: %d unclosed node(s)", ErrUnbalanced, len(stack))
	}

	if len(t.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no tree", ErrRecord)
	}

	t.link()

	return t, nil
}

// link points every gap at the first non-gap node with the same name.
func (t *Tree) link() {
	antecedents := make(map[string]int)

	for i, node := range t.Nodes {
		if node.Label == "" || node.IsGap() {
			continue
		}

		if _, ok := antecedents[node.Label]; !ok {
			antecedents[node.Label] = i
		}
	}

	for _, node := range t.Nodes {
		if !node.IsGap() {
			continue
		}

		if i, ok := antecedents[node.Label]; ok {
			node.Antecedent = i
		}
	}
}
