package html2wf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/html2wf/internal/stylesheet"
)

func TestCategorizeProperty(t *testing.T) {
	tests := []struct {
		name string
		want PropertyCategory
	}{
		{"width", CategoryLayout},
		{"padding-left", CategoryLayout},
		{"grid-template-columns", CategoryLayout},
		{"color", CategoryVisual},
		{"border-top-color", CategoryVisual},
		{"font-size", CategoryTypography},
		{"text-align", CategoryTypography},
		{"transition-duration", CategoryEffects},
		{"filter", CategoryEffects},
		{"--brand", CategoryTokens},
		{"-webkit-appearance", CategoryInternal},
		{"unknown-thing", CategoryLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeProperty(tt.name))
		})
	}
}

func TestCategorizeProperties(t *testing.T) {
	props := stylesheet.NewProperties()
	props.Set("margin", "0")
	props.Set("color", "var(--brand)")
	props.Set("display", "flex")

	got := categorizeProperties(props)

	require.Len(t, got[CategoryLayout], 2)
	assert.Equal(t, "display", got[CategoryLayout][0].Name, "sorted by name")
	assert.Equal(t, "margin", got[CategoryLayout][1].Name)

	require.Len(t, got[CategoryVisual], 1)
	assert.True(t, got[CategoryVisual][0].IsToken)
	assert.False(t, got[CategoryLayout][0].IsToken)
}
