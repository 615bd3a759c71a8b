// Package cascade merges matching style rules into one property set per
// element.
//
// Matching is deliberately narrow: a selector part applies to an element
// only when it is exactly one of the element's classes (".name") or
// exactly its tag name. Compound, descendant and attribute selectors are
// never applied here.
package cascade

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// Target describes the element being resolved.
type Target struct {
	Tag     string                 // Tag name, compared case-insensitively
	Classes []string               // Generated class names
	Inline  *stylesheet.Properties // Optional inline style, merged last
}

// Match is a rule that applies to a target, with the specificity of the
// selector part that matched.
type Match struct {
	Rule        *stylesheet.Rule
	Selector    string // The comma part that matched
	Specificity int
}

// ConditionalStyle is the resolved style for one conditional group.
type ConditionalStyle struct {
	Kind       stylesheet.GroupKind   `json:"kind"`
	Condition  string                 `json:"condition"`
	Properties *stylesheet.Properties `json:"properties"`
}

// Resolver runs the cascade.
type Resolver struct {
	log *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log.Named("cascade")}
}

// Resolve computes the final properties of target against one rule set.
// An element that matches nothing gets an empty, non-nil result.
func (r *Resolver) Resolve(target Target, rules []*stylesheet.Rule) *stylesheet.Properties {
	matches := Candidates(target, rules)
	result := stylesheet.NewProperties()
	for _, m := range matches {
		result.Merge(m.Rule.Properties)
	}
	if target.Inline != nil {
		result.Merge(target.Inline)
	}

	if len(matches) > 0 {
		r.log.Debug("Resolved element",
			zap.String("tag", target.Tag),
			zap.Strings("classes", target.Classes),
			zap.Int("matches", len(matches)),
			zap.Int("properties", result.Len()))
	}
	return result
}

// ResolveGroups resolves target against each conditional group on its
// own. Groups that contribute no properties are omitted. Inline style
// does not take part; it already applies unconditionally.
func (r *Resolver) ResolveGroups(target Target, groups []*stylesheet.ConditionalGroup) []ConditionalStyle {
	scoped := Target{Tag: target.Tag, Classes: target.Classes}

	var out []ConditionalStyle
	for _, g := range groups {
		props := r.Resolve(scoped, g.Rules)
		if props.Len() == 0 {
			continue
		}
		out = append(out, ConditionalStyle{
			Kind:       g.Kind,
			Condition:  g.Condition,
			Properties: props,
		})
	}
	return out
}

// Candidates returns the rules that apply to target, sorted ascending by
// specificity and then source order, so later entries take priority.
func Candidates(target Target, rules []*stylesheet.Rule) []Match {
	classes := make(map[string]bool, len(target.Classes))
	for _, c := range target.Classes {
		classes["."+c] = true
	}

	var matches []Match
	for _, rule := range rules {
		best := -1
		var selector string
		for _, part := range rule.Selectors() {
			if !matchesPart(part, target.Tag, classes) {
				continue
			}
			if spec := stylesheet.Specificity(part); spec > best {
				best = spec
				selector = part
			}
		}
		if best >= 0 {
			matches = append(matches, Match{Rule: rule, Selector: selector, Specificity: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Specificity != matches[j].Specificity {
			return matches[i].Specificity < matches[j].Specificity
		}
		return matches[i].Rule.SourceOrder < matches[j].Rule.SourceOrder
	})
	return matches
}

// Matches reports whether a single selector part applies to the element.
func Matches(part string, target Target) bool {
	classes := make(map[string]bool, len(target.Classes))
	for _, c := range target.Classes {
		classes["."+c] = true
	}
	return matchesPart(strings.TrimSpace(part), target.Tag, classes)
}

func matchesPart(part, tag string, classes map[string]bool) bool {
	if classes[part] {
		return true
	}
	return tag != "" && strings.EqualFold(part, tag)
}
