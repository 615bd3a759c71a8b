package naming

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// RewriteSelector replaces every class token in selector with its
// generated name, registering classes seen for the first time. All other
// tokens are copied through unchanged.
//
// A registered original class is always rewritten, even when it is
// spelled like a generated name. Other tokens that already carry a name
// generated by this registry are kept, so rewriting a rewritten selector
// is a no-op.
func (r *Registry) RewriteSelector(selector string) string {
	var out strings.Builder
	eachToken(selector, func(class string, raw []byte) {
		if class == "" {
			out.Write(raw)
			return
		}
		out.WriteByte('.')
		if _, original := r.LookupGenerated(class); !original && r.IsGenerated(class) {
			out.Write(raw)
			return
		}
		out.WriteString(r.Generate(class))
	})
	return out.String()
}

// ClassTokens returns the decoded class names referenced by selector,
// in order of appearance.
func ClassTokens(selector string) []string {
	var classes []string
	eachToken(selector, func(class string, _ []byte) {
		if class != "" {
			classes = append(classes, class)
		}
	})
	return classes
}

// eachToken lexes selector and calls fn once per token. For a class
// token (".name") fn receives the decoded name and the raw ident bytes;
// for anything else class is empty and raw holds the token text.
func eachToken(selector string, fn func(class string, raw []byte)) {
	l := css.NewLexer(parse.NewInputString(selector))
	dot := false
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if dot {
			dot = false
			if tt == css.IdentToken {
				fn(unescapeIdent(string(data)), data)
				continue
			}
			fn("", []byte{'.'})
		}
		if tt == css.DelimToken && len(data) == 1 && data[0] == '.' {
			dot = true
			continue
		}
		fn("", data)
	}
	if dot {
		fn("", []byte{'.'})
	}
}

// unescapeIdent decodes CSS escapes: "\:" -> ":", "\31 0" -> "10".
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j < i+7 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			// escaped literal character
			b.WriteByte(s[j])
			i = j
			continue
		}
		code, err := strconv.ParseUint(s[i+1:j], 16, 32)
		if err != nil || code == 0 || code > 0x10FFFF {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteRune(rune(code))
		}
		// a single whitespace terminates a hex escape
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
