package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/html2wf/internal/stylesheet"
)

func rule(selector string, order int, kv ...string) *stylesheet.Rule {
	props := stylesheet.NewProperties()
	for i := 0; i+1 < len(kv); i += 2 {
		props.Set(kv[i], kv[i+1])
	}
	return stylesheet.NewRule(selector, props, order)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		rules  []*stylesheet.Rule
		want   map[string]string
	}{
		{
			name:   "class beats tag declared later",
			target: Target{Tag: "p", Classes: []string{"wf-text"}},
			rules: []*stylesheet.Rule{
				rule(".wf-text", 0, "color", "blue"),
				rule("p", 1, "color", "red"),
			},
			want: map[string]string{"color": "blue"},
		},
		{
			name:   "equal specificity falls back to source order",
			target: Target{Tag: "div", Classes: []string{"wf-a", "wf-b"}},
			rules: []*stylesheet.Rule{
				rule(".wf-b", 0, "margin", "1px"),
				rule(".wf-a", 1, "margin", "2px"),
			},
			want: map[string]string{"margin": "2px"},
		},
		{
			name:   "properties from all matches are merged",
			target: Target{Tag: "div", Classes: []string{"wf-card"}},
			rules: []*stylesheet.Rule{
				rule("div", 0, "display", "block", "color", "black"),
				rule(".wf-card", 1, "color", "white"),
			},
			want: map[string]string{"display": "block", "color": "white"},
		},
		{
			name:   "tag match is case insensitive",
			target: Target{Tag: "section"},
			rules:  []*stylesheet.Rule{rule("SECTION", 0, "padding", "0")},
			want:   map[string]string{"padding": "0"},
		},
		{
			name:   "compound and descendant selectors never apply",
			target: Target{Tag: "div", Classes: []string{"wf-a"}},
			rules: []*stylesheet.Rule{
				rule("div.wf-a", 0, "color", "red"),
				rule("body .wf-a", 1, "color", "green"),
				rule(".wf-a:hover", 2, "color", "pink"),
			},
			want: map[string]string{},
		},
		{
			name:   "any comma part can match",
			target: Target{Tag: "h2"},
			rules:  []*stylesheet.Rule{rule("h1, h2, .wf-title", 0, "font-weight", "bold")},
			want:   map[string]string{"font-weight": "bold"},
		},
		{
			name:   "no match yields empty style",
			target: Target{Tag: "span", Classes: []string{"wf-x"}},
			rules:  []*stylesheet.Rule{rule(".wf-y", 0, "color", "red")},
			want:   map[string]string{},
		},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.target, tt.rules)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Map())
		})
	}
}

func TestResolveInlineStyleWins(t *testing.T) {
	inline := stylesheet.NewProperties()
	inline.Set("color", "green")

	r := NewResolver(nil)
	got := r.Resolve(Target{
		Tag:     "p",
		Classes: []string{"wf-text"},
		Inline:  inline,
	}, []*stylesheet.Rule{
		rule(".wf-text", 0, "color", "blue", "margin", "0"),
	})

	assert.Equal(t, "color: green; margin: 0", got.String())
}

func TestResolvePropertyOrder(t *testing.T) {
	r := NewResolver(nil)
	got := r.Resolve(Target{Tag: "div", Classes: []string{"wf-a"}}, []*stylesheet.Rule{
		rule("div", 0, "display", "flex", "gap", "4px"),
		rule(".wf-a", 1, "color", "red", "display", "grid"),
	})

	assert.Equal(t, []string{"display", "gap", "color"}, got.Keys())
	display, _ := got.Get("display")
	assert.Equal(t, "grid", display)
}

func TestCandidates(t *testing.T) {
	rules := []*stylesheet.Rule{
		rule(".wf-a", 0, "color", "red"),
		rule("p", 1, "color", "blue"),
		rule("p, .wf-a", 2, "color", "green"),
		rule(".wf-b", 3, "color", "black"),
	}

	matches := Candidates(Target{Tag: "p", Classes: []string{"wf-a"}}, rules)
	require.Len(t, matches, 3)

	assert.Equal(t, 1, matches[0].Rule.SourceOrder)
	assert.Equal(t, 1, matches[0].Specificity)
	assert.Equal(t, 0, matches[1].Rule.SourceOrder)
	assert.Equal(t, 10, matches[1].Specificity)
	assert.Equal(t, 2, matches[2].Rule.SourceOrder)
	assert.Equal(t, ".wf-a", matches[2].Selector)
	assert.Equal(t, 10, matches[2].Specificity)
}

func TestMatches(t *testing.T) {
	target := Target{Tag: "li", Classes: []string{"wf-item"}}

	assert.True(t, Matches(".wf-item", target))
	assert.True(t, Matches(" LI ", target))
	assert.False(t, Matches(".item", target))
	assert.False(t, Matches("ul li", target))
	assert.False(t, Matches("li.wf-item", target))
}

func TestResolveGroups(t *testing.T) {
	inline := stylesheet.NewProperties()
	inline.Set("color", "green")
	target := Target{Tag: "div", Classes: []string{"wf-box"}, Inline: inline}

	groups := []*stylesheet.ConditionalGroup{
		{
			Kind:      stylesheet.GroupMedia,
			Condition: "(max-width: 600px)",
			Rules: []*stylesheet.Rule{
				rule(".wf-box", 5, "width", "100%"),
				rule("div", 6, "width", "50%"),
			},
		},
		{
			Kind:      stylesheet.GroupMedia,
			Condition: "print",
			Rules:     []*stylesheet.Rule{rule(".wf-other", 7, "display", "none")},
		},
		{
			Kind:      stylesheet.GroupSupports,
			Condition: "(display: grid)",
			Rules:     []*stylesheet.Rule{rule("div", 8, "display", "grid")},
		},
	}

	got := NewResolver(nil).ResolveGroups(target, groups)
	require.Len(t, got, 2)

	assert.Equal(t, stylesheet.GroupMedia, got[0].Kind)
	assert.Equal(t, "(max-width: 600px)", got[0].Condition)
	assert.Equal(t, map[string]string{"width": "100%"}, got[0].Properties.Map())

	assert.Equal(t, stylesheet.GroupSupports, got[1].Kind)
	assert.Equal(t, map[string]string{"display": "grid"}, got[1].Properties.Map())
}

func TestResolveIgnoresGroupRulesInBaseCascade(t *testing.T) {
	sheet := &stylesheet.Stylesheet{
		Rules: []*stylesheet.Rule{rule(".wf-a", 0, "color", "red")},
		Groups: []*stylesheet.ConditionalGroup{{
			Kind:      stylesheet.GroupMedia,
			Condition: "screen",
			Rules:     []*stylesheet.Rule{rule(".wf-a", 1, "color", "blue")},
		}},
	}

	got := NewResolver(nil).Resolve(Target{Tag: "p", Classes: []string{"wf-a"}}, sheet.Rules)
	color, ok := got.Get("color")
	require.True(t, ok)
	assert.Equal(t, "red", color)
}
