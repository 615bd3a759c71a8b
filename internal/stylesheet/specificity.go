package stylesheet

import (
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Specificity weights on the base-100 ordinal scale. A category only
// dominates the one below it while the lower count stays under 100.
const (
	WeightID      = 100 // #id
	WeightClass   = 10  // .class, [attr], :pseudo-class
	WeightElement = 1   // tag, ::pseudo-element
)

// Specificity returns the additive weight of a selector. For a selector
// list the most specific part wins.
func Specificity(selector string) int {
	best := 0
	for i, part := range SplitSelectorList(selector) {
		if w := compoundSpecificity(part); i == 0 || w > best {
			best = w
		}
	}
	return best
}

type token struct {
	tt   css.TokenType
	data []byte
}

// lex tokenizes a selector with the CSS lexer.
func lex(selector string) []token {
	l := css.NewLexer(parse.NewInputString(selector))
	var tokens []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		// the lexer reuses its buffer
		tokens = append(tokens, token{tt: tt, data: append([]byte(nil), data...)})
	}
}

// compoundSpecificity weighs one selector from a list.
func compoundSpecificity(selector string) int {
	tokens := lex(selector)
	weight := 0

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.tt {
		case css.HashToken:
			weight += WeightID

		case css.DelimToken:
			if string(t.data) == "." && i+1 < len(tokens) && tokens[i+1].tt == css.IdentToken {
				weight += WeightClass
				i++
			}

		case css.LeftBracketToken:
			weight += WeightClass
			i = skipGroup(tokens, i)

		case css.ColonToken:
			if i+1 < len(tokens) && tokens[i+1].tt == css.ColonToken {
				// ::pseudo-element
				weight += WeightElement
				i += 2
				if i < len(tokens) && tokens[i].tt == css.FunctionToken {
					i = skipGroup(tokens, i)
				}
				continue
			}
			weight += WeightClass
			i++
			if i < len(tokens) && tokens[i].tt == css.FunctionToken {
				// arguments of :not(), :is(), :nth-child() are not counted
				i = skipGroup(tokens, i)
			}

		case css.IdentToken:
			weight += WeightElement

		case css.FunctionToken, css.LeftParenthesisToken:
			i = skipGroup(tokens, i)
		}
	}
	return weight
}

// skipGroup returns the index of the token closing the bracket or
// parenthesis group opened at tokens[start].
func skipGroup(tokens []token, start int) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].tt {
		case css.LeftBracketToken, css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightBracketToken, css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}
