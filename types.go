package html2wf

import (
	"github.com/yacobolo/html2wf/internal/cascade"
	"github.com/yacobolo/html2wf/internal/markup"
	"github.com/yacobolo/html2wf/internal/naming"
	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// Re-exported model types so callers need not import internal packages.
type (
	Properties       = stylesheet.Properties
	Rule             = stylesheet.Rule
	Stylesheet       = stylesheet.Stylesheet
	ConditionalGroup = stylesheet.ConditionalGroup
	ParseError       = stylesheet.ParseError
	Mapping          = naming.Mapping
	ConditionalStyle = cascade.ConditionalStyle
	Element          = markup.Element
	Tree             = markup.Tree
)

// DefaultPrefix is the generated class prefix used when none is configured.
const DefaultPrefix = naming.DefaultPrefix

// Config holds conversion configuration
type Config struct {
	Prefix       string // Prepended to every generated class name; empty means DefaultPrefix
	InlineStyles bool   // Merge style="" attributes after stylesheet rules
	Workers      int    // Concurrent conversions in batch mode (<= 0 means 4)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Prefix:       DefaultPrefix,
		InlineStyles: true,
		Workers:      4,
	}
}

// ElementStyle is the resolved style of one element, ready for the
// platform mapping layer.
type ElementStyle struct {
	ID              string             `json:"id"`
	Tag             string             `json:"tag"`
	OriginalClasses []string           `json:"originalClasses,omitempty"`
	Classes         []string           `json:"classes,omitempty"` // Generated names
	Properties      *Properties        `json:"properties"`
	Conditional     []ConditionalStyle `json:"conditional,omitempty"`
}

// Document is the result of one conversion run.
type Document struct {
	RunID      string         // Identifies the run in logs
	Source     string         // Markup path, empty for in-memory input
	Tree       *Tree          // Parsed markup
	Stylesheet *Stylesheet    // Combined stylesheet with rewritten selectors
	Mappings   []Mapping      // original -> generated, registration order
	Elements   []ElementStyle // Document order

	byID    map[string]int
	markup  string
	sources []sourceText
}

// Style returns the resolved style of the element with the given id.
func (d *Document) Style(id string) (ElementStyle, bool) {
	i, ok := d.byID[id]
	if !ok {
		return ElementStyle{}, false
	}
	return d.Elements[i], true
}

// Generated returns the generated name of an original class.
func (d *Document) Generated(original string) (string, bool) {
	for _, m := range d.Mappings {
		if m.Original == original {
			return m.Generated, true
		}
	}
	return "", false
}

// sourceText is one stylesheet input and the rule orders it produced.
type sourceText struct {
	name  string
	text  string
	first   int // SourceOrder of its first rule
	count   int
	imports []string
}

// BatchOptions selects the inputs of a batch conversion.
type BatchOptions struct {
	Inputs      []string // Glob patterns for markup files
	Stylesheets []string // Glob patterns for stylesheets shared by every input
}

// BatchResult holds the documents of a batch conversion.
type BatchResult struct {
	RunID     string
	Documents []*Document // Input order; failed inputs are omitted
	Failed    int
	Stats     ScanStats
}

// OutputFormat selects how results are rendered
type OutputFormat string

// Output formats
const (
	OutputText OutputFormat = "text" // Class map and element styles
	OutputFull OutputFormat = "full" // Text plus categories, statistics and audit issues
	OutputJSON OutputFormat = "json"
	OutputTree OutputFormat = "tree" // Element outline
	OutputCSS  OutputFormat = "css"  // Rewritten stylesheet
)

// PropertyCategory groups related CSS properties
type PropertyCategory string

// Property categories for organizing CSS properties
const (
	CategoryVisual     PropertyCategory = "Visual"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryTokens     PropertyCategory = "Tokens"
	CategoryInternal   PropertyCategory = "Internal"
)

// CategorizedProperty represents a property with its category
type CategorizedProperty struct {
	Name     string
	Value    string
	Category PropertyCategory
	IsToken  bool // True if value is a var(--*) reference
}
