package html2wf

// Issue represents a single audit finding in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "ignored-selector"
	Text        string   `json:"Text"`        // "selector \"div.card\" matches 2 elements but is never applied"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of source with the finding
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "site/css/main.css"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 1-based, 0 when unknown
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Audit linters
const (
	LinterIgnoredSelector = "ignored-selector" // Matches elements but the cascade never applies it
	LinterInvalidSelector = "invalid-selector" // Cannot be evaluated against the markup
	LinterUnusedRule      = "unused-rule"      // Matches no element at all
	LinterUnstyledClass   = "unstyled-class"   // Markup class no rule mentions
)

// Issue messages
const (
	IssueIgnoredSelector = "selector %q matches %s but is never applied (only single class or tag selectors are)"
	IssueInvalidSelector = "selector %q cannot be evaluated: %v"
	IssueUnusedRule      = "rule %q matches no element"
	IssueUnstyledClass   = "class %q is not referenced by any stylesheet rule"
)

func newIssue(linter, severity, text string, loc FileLocation) Issue {
	issue := Issue{
		FromLinter: linter,
		Text:       text,
		Severity:   severity,
		Pos: IssuePos{
			Filename: loc.File,
			Line:     loc.Line,
			Column:   loc.Column,
		},
	}
	if loc.Text != "" {
		issue.SourceLines = []string{loc.Text}
	}
	return issue
}
