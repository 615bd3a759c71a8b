package stylesheet

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser turns stylesheet text into rules and conditional groups.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a stylesheet parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("stylesheet")}
}

// parserState carries the source order counter across top-level rules
// and grouped rules so both share one ordering.
type parserState struct {
	p       *css.Parser
	text    string
	sheet   *Stylesheet
	order   int
	pending []string // selector parts seen before a comma
}

// Parse parses CSS text. Source order continues from 0.
func (p *Parser) Parse(text string) (*Stylesheet, error) {
	return p.ParseFrom(text, 0)
}

// ParseFrom parses CSS text, numbering rules starting at firstOrder.
// It lets several sources be parsed into one cascade.
func (p *Parser) ParseFrom(text string, firstOrder int) (*Stylesheet, error) {
	s := &parserState{
		p:     css.NewParser(parse.NewInputString(text), false),
		text:  text,
		sheet: &Stylesheet{},
		order: firstOrder,
	}

	for {
		start := s.p.Offset()
		gt, _, data := s.p.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := grammarError(s.p.Err()); err != nil {
				return nil, err
			}
			p.log.Debug("Parsed stylesheet",
				zap.Int("rules", len(s.sheet.Rules)),
				zap.Int("groups", len(s.sheet.Groups)))
			return s.sheet, nil

		case css.QualifiedRuleGrammar:
			s.pending = append(s.pending, selectorText(s.consumed(start)))

		case css.BeginRulesetGrammar:
			rule, err := s.ruleset(start)
			if err != nil {
				return nil, err
			}
			if rule != nil {
				s.sheet.Rules = append(s.sheet.Rules, rule)
			}

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			switch name {
			case "@media", "@supports":
				group := &ConditionalGroup{
					Kind:      GroupKind(strings.TrimPrefix(name, "@")),
					Condition: conditionText(s.consumed(start), len(data)),
				}
				if err := s.groupRules(group, p.log); err != nil {
					return nil, err
				}
				p.log.Debug("Parsed conditional block",
					zap.String("kind", string(group.Kind)),
					zap.String("condition", group.Condition),
					zap.Int("rules", len(group.Rules)))
				s.sheet.Groups = append(s.sheet.Groups, group)
			default:
				if err := s.skipBlock(); err != nil {
					return nil, err
				}
				p.log.Debug("Skipping @-rule", zap.String("rule", name))
			}

		case css.AtRuleGrammar:
			name := strings.ToLower(string(data))
			if name == "@import" {
				if url := importURL(s.p.Values()); url != "" {
					s.sheet.Imports = append(s.sheet.Imports, url)
				}
				continue
			}
			p.log.Debug("Skipping @-rule", zap.String("rule", name))
		}
	}
}

// consumed returns the source text read since offset start, as written.
// The grammar tokens drop whitespace around ':' and ',' so selectors,
// conditions and values are taken from here instead.
func (s *parserState) consumed(start int) string {
	end := s.p.Offset()
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// ruleset reads the declarations of the block that was just opened.
func (s *parserState) ruleset(start int) (*Rule, error) {
	parts := append(s.pending, selectorText(s.consumed(start)))
	s.pending = nil

	props, err := s.declarations()
	if err != nil {
		return nil, err
	}

	selector := strings.Join(nonEmpty(parts), ", ")
	if selector == "" {
		return nil, nil
	}
	rule := NewRule(selector, props, s.order)
	s.order++
	return rule, nil
}

// declarations reads property declarations until the block closes.
func (s *parserState) declarations() (*Properties, error) {
	props := NewProperties()
	for {
		start := s.p.Offset()
		gt, _, data := s.p.Next()

		switch gt {
		case css.ErrorGrammar:
			return props, grammarError(s.p.Err())
		case css.EndRulesetGrammar:
			return props, nil
		case css.DeclarationGrammar:
			if value := valueText(s.consumed(start)); value != "" {
				props.Set(strings.ToLower(string(data)), value)
			}
		case css.CustomPropertyGrammar:
			// custom property names are case-sensitive
			if value := valueText(s.consumed(start)); value != "" {
				props.Set(string(data), value)
			}
		}
	}
}

// groupRules collects rulesets until the conditional block closes.
// Nested at-rules inside a group are skipped.
func (s *parserState) groupRules(group *ConditionalGroup, log *zap.Logger) error {
	for {
		start := s.p.Offset()
		gt, _, data := s.p.Next()

		switch gt {
		case css.ErrorGrammar:
			return grammarError(s.p.Err())
		case css.EndAtRuleGrammar:
			return nil
		case css.QualifiedRuleGrammar:
			s.pending = append(s.pending, selectorText(s.consumed(start)))
		case css.BeginRulesetGrammar:
			rule, err := s.ruleset(start)
			if err != nil {
				return err
			}
			if rule != nil {
				group.Rules = append(group.Rules, rule)
			}
		case css.BeginAtRuleGrammar:
			log.Debug("Skipping nested @-rule",
				zap.String("rule", string(data)),
				zap.String("condition", group.Condition))
			if err := s.skipBlock(); err != nil {
				return err
			}
		}
	}
}

func (s *parserState) skipBlock() error {
	depth := 1
	for depth > 0 {
		gt, _, _ := s.p.Next()
		switch gt {
		case css.ErrorGrammar:
			return grammarError(s.p.Err())
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
	return nil
}

// ParseInlineStyle parses the body of a style="" attribute.
func ParseInlineStyle(style string) (*Properties, error) {
	props := NewProperties()
	if strings.TrimSpace(style) == "" {
		return props, nil
	}

	s := &parserState{
		p:    css.NewParser(parse.NewInputString(style), true),
		text: style,
	}
	for {
		start := s.p.Offset()
		gt, _, data := s.p.Next()
		switch gt {
		case css.ErrorGrammar:
			return props, grammarError(s.p.Err())
		case css.DeclarationGrammar:
			if value := valueText(s.consumed(start)); value != "" {
				props.Set(strings.ToLower(string(data)), value)
			}
		case css.CustomPropertyGrammar:
			if value := valueText(s.consumed(start)); value != "" {
				props.Set(string(data), value)
			}
		}
	}
}

// grammarError maps the grammar's terminal error to a ParseError.
// io.EOF is a clean end of input and yields nil.
func grammarError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Column: perr.Column, Message: perr.Message}
	}
	return &ParseError{Message: err.Error()}
}

// selectorText trims a prelude read up to and including its '{'.
func selectorText(raw string) string {
	raw = strings.TrimSpace(stripComments(raw))
	return strings.TrimSpace(strings.TrimSuffix(raw, "{"))
}

// conditionText drops the at-keyword of nameLen bytes from a block
// prelude and returns the condition between it and the '{'.
func conditionText(raw string, nameLen int) string {
	raw = strings.TrimSpace(stripComments(raw))
	if nameLen <= len(raw) && strings.HasPrefix(raw, "@") {
		raw = raw[nameLen:]
	}
	return selectorText(raw)
}

// valueText returns the value of a declaration read up to and including
// its terminator. A '}' only counts as terminator when it is unbalanced.
func valueText(raw string) string {
	raw = stripComments(raw)
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return ""
	}
	v := strings.TrimSpace(raw[colon+1:])
	if strings.HasSuffix(v, ";") {
		v = v[:len(v)-1]
	} else if strings.HasSuffix(v, "}") && strings.Count(v, "}") > strings.Count(v, "{") {
		v = v[:len(v)-1]
	}
	return strings.TrimSpace(v)
}

// stripComments removes /* */ comments outside of strings, leaving one
// space where the comment separated two tokens.
func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(c)
				i++
				c = s[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 3
			}
			text := b.String()
			if len(text) == 0 || isSpace(text[len(text)-1]) {
				for i+1 < len(s) && isSpace(s[i+1]) {
					i++
				}
			} else if i+1 < len(s) && !isSpace(s[i+1]) {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// importURL extracts the target of @import "x" / @import url(x).
func importURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
