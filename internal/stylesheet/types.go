// Package stylesheet parses CSS text into an ordered rule model and
// computes selector specificity.
package stylesheet

import (
	"fmt"
	"strings"
)

// Rule is one declaration block with its (possibly comma-joined) selector.
type Rule struct {
	Selector         string      // Current selector text, rewritten in place by the naming registry
	OriginalSelector string      // Selector as it appeared in the source
	Specificity      int         // Always derived from Selector
	Properties       *Properties // Declarations in source order, last duplicate wins
	SourceOrder      int         // Stylesheet-wide appearance index
}

// NewRule creates a rule and computes its specificity.
func NewRule(selector string, props *Properties, order int) *Rule {
	if props == nil {
		props = NewProperties()
	}
	return &Rule{
		Selector:         selector,
		OriginalSelector: selector,
		Specificity:      Specificity(selector),
		Properties:       props,
		SourceOrder:      order,
	}
}

// SetSelector replaces the selector text and recomputes specificity.
// OriginalSelector is left untouched.
func (r *Rule) SetSelector(selector string) {
	r.Selector = selector
	r.Specificity = Specificity(selector)
}

// Selectors returns the comma-separated parts of the current selector.
func (r *Rule) Selectors() []string {
	return SplitSelectorList(r.Selector)
}

// GroupKind identifies the at-rule that introduced a conditional group.
type GroupKind string

// Conditional group kinds
const (
	GroupMedia    GroupKind = "media"
	GroupSupports GroupKind = "supports"
)

// ConditionalGroup holds the rules of one @media (or @supports) block.
// Its rules are never merged with top-level rules.
type ConditionalGroup struct {
	Kind      GroupKind
	Condition string // Raw prelude, e.g. "(max-width: 600px)"
	Rules     []*Rule
}

// Stylesheet is the parsed form of one or more CSS sources.
type Stylesheet struct {
	Rules   []*Rule             // Unconditional rules in source order
	Groups  []*ConditionalGroup // Conditional blocks in source order
	Imports []string            // @import targets, recorded only
}

// RuleCount returns the number of rules, including grouped ones.
func (s *Stylesheet) RuleCount() int {
	n := len(s.Rules)
	for _, g := range s.Groups {
		n += len(g.Rules)
	}
	return n
}

// Append adds the rules, groups and imports of other after those of s.
// Source orders are not renumbered; parse other with ParseFrom to keep
// them increasing.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Rules = append(s.Rules, other.Rules...)
	s.Groups = append(s.Groups, other.Groups...)
	s.Imports = append(s.Imports, other.Imports...)
}

// EachRule visits every rule, top-level first, then each group in order.
func (s *Stylesheet) EachRule(fn func(r *Rule)) {
	for _, r := range s.Rules {
		fn(r)
	}
	for _, g := range s.Groups {
		for _, r := range g.Rules {
			fn(r)
		}
	}
}

// Format serializes the stylesheet using the current selectors.
func (s *Stylesheet) Format() string {
	var b strings.Builder
	for _, imp := range s.Imports {
		fmt.Fprintf(&b, "@import %q;\n", imp)
	}
	for _, r := range s.Rules {
		writeRule(&b, r, "")
	}
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "@%s %s {\n", g.Kind, g.Condition)
		for _, r := range g.Rules {
			writeRule(&b, r, "  ")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func writeRule(b *strings.Builder, r *Rule, indent string) {
	fmt.Fprintf(b, "%s%s {", indent, r.Selector)
	if r.Properties.Len() > 0 {
		fmt.Fprintf(b, " %s;", r.Properties.String())
	}
	b.WriteString(" }\n")
}

// SplitSelectorList splits a selector list on top-level commas.
// Commas inside brackets, parentheses or strings are not separators.
func SplitSelectorList(selector string) []string {
	var parts []string
	var depth int
	var quote rune
	start := 0
	for i, ch := range selector {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' || ch == '[':
			depth++
		case ch == ')' || ch == ']':
			if depth > 0 {
				depth--
			}
		case ch == ',' && depth == 0:
			if part := strings.TrimSpace(selector[start:i]); part != "" {
				parts = append(parts, part)
			}
			start = i + 1
		}
	}
	if part := strings.TrimSpace(selector[start:]); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// ParseError reports stylesheet text the CSS grammar could not tokenize.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("stylesheet parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "stylesheet parse error: " + e.Message
}
