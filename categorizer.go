package html2wf

import (
	"sort"
	"strings"
)

// categoryOrder is the order categories are printed in.
var categoryOrder = []PropertyCategory{
	CategoryLayout,
	CategoryTypography,
	CategoryVisual,
	CategoryEffects,
	CategoryTokens,
	CategoryInternal,
}

// propertyCategories maps CSS property names to categories
var propertyCategories = func() map[string]PropertyCategory {
	byCategory := map[PropertyCategory][]string{
		CategoryVisual: {
			"background", "background-color", "background-image", "background-size",
			"background-position", "background-repeat", "color", "border", "border-radius",
			"box-shadow", "opacity", "outline", "fill", "stroke", "visibility", "cursor",
		},
		CategoryLayout: {
			"display", "flex", "gap", "row-gap", "column-gap", "grid", "position", "inset",
			"top", "right", "bottom", "left", "width", "height", "min-width", "min-height",
			"max-width", "max-height", "inline-size", "block-size", "padding", "margin",
			"overflow", "overflow-x", "overflow-y", "z-index", "aspect-ratio", "box-sizing",
			"justify-content", "justify-items", "align-items", "align-self", "align-content",
			"object-fit", "object-position", "float", "clear", "order",
		},
		CategoryTypography: {
			"font", "font-family", "font-size", "font-weight", "font-style", "font-variant",
			"line-height", "letter-spacing", "word-spacing", "text-align", "text-decoration",
			"text-transform", "text-overflow", "text-shadow", "text-indent", "white-space",
			"word-break", "word-wrap", "overflow-wrap", "hyphens", "vertical-align",
		},
		CategoryEffects: {
			"transition", "transform", "transform-origin", "animation", "filter",
			"backdrop-filter", "mix-blend-mode", "clip-path", "mask", "will-change",
		},
	}

	m := make(map[string]PropertyCategory)
	for cat, names := range byCategory {
		for _, name := range names {
			m[name] = cat
		}
	}
	return m
}()

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	if strings.HasPrefix(name, "--") {
		return CategoryTokens
	}
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}

	// Vendor prefixes
	for _, p := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		if strings.HasPrefix(name, p) {
			return CategoryInternal
		}
	}

	// Longhands follow their shorthand
	switch {
	case strings.HasPrefix(name, "flex-"), strings.HasPrefix(name, "grid-"),
		strings.HasPrefix(name, "padding-"), strings.HasPrefix(name, "margin-"),
		strings.HasPrefix(name, "inset-"):
		return CategoryLayout
	case strings.HasPrefix(name, "border-"), strings.HasPrefix(name, "background-"),
		strings.HasPrefix(name, "outline-"):
		return CategoryVisual
	case strings.HasPrefix(name, "font-"), strings.HasPrefix(name, "text-"):
		return CategoryTypography
	case strings.HasPrefix(name, "transition-"), strings.HasPrefix(name, "animation-"):
		return CategoryEffects
	}

	return CategoryLayout
}

// isTokenValue checks if a value reads a custom property
func isTokenValue(value string) bool {
	return strings.Contains(value, "var(--")
}

// categorizeProperties groups properties by category, sorted by name
// within each category
func categorizeProperties(props *Properties) map[PropertyCategory][]CategorizedProperty {
	result := make(map[PropertyCategory][]CategorizedProperty)

	props.Each(func(name, value string) {
		cat := categorizeProperty(name)
		result[cat] = append(result[cat], CategorizedProperty{
			Name:     name,
			Value:    value,
			Category: cat,
			IsToken:  isTokenValue(value),
		})
	})

	for cat := range result {
		sort.Slice(result[cat], func(i, j int) bool {
			return result[cat][i].Name < result[cat][j].Name
		})
	}

	return result
}
