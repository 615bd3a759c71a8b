package html2wf

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Documents []JSONDocument `json:"documents,omitempty"`
	Audit     *JSONAudit     `json:"audit,omitempty"`
}

// JSONDocument is one converted document
type JSONDocument struct {
	RunID    string         `json:"run_id"`
	Source   string         `json:"source,omitempty"`
	Classes  []Mapping      `json:"classes"`
	Elements []ElementStyle `json:"elements"`
	Imports  []string       `json:"imports,omitempty"`
}

// JSONAudit contains audit statistics and issues
type JSONAudit struct {
	Summary JSONSummary `json:"summary"`
	Stats   JSONStats   `json:"stats"`
	Issues  []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Documents   int `json:"documents"`
	Truncated   int `json:"truncated,omitempty"`
}

// JSONStats contains cascade coverage statistics
type JSONStats struct {
	Elements           int     `json:"elements"`
	Rules              int     `json:"rules"`
	RulesApplied       int     `json:"rules_applied"`
	RulesIgnored       int     `json:"rules_ignored"`
	RulesUnused        int     `json:"rules_unused"`
	ClassesUnstyled    int     `json:"classes_unstyled"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// JSONIssue represents a single audit issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes documents and/or an audit result as JSON
func WriteJSON(w io.Writer, docs []*Document, audit *AuditResult) error {
	output := buildJSONOutput(docs, audit)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts results to JSONOutput
func buildJSONOutput(docs []*Document, audit *AuditResult) JSONOutput {
	output := JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	for _, doc := range docs {
		output.Documents = append(output.Documents, JSONDocument{
			RunID:    doc.RunID,
			Source:   doc.Source,
			Classes:  doc.Mappings,
			Elements: doc.Elements,
			Imports:  doc.Stylesheet.Imports,
		})
	}

	if audit != nil {
		output.Audit = buildJSONAudit(audit)
	}
	return output
}

func buildJSONAudit(result *AuditResult) *JSONAudit {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return &JSONAudit{
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      errors,
			Warnings:    warnings,
			Documents:   result.DocumentsAudited,
			Truncated:   result.TruncatedCount,
		},
		Stats: JSONStats{
			Elements:           result.ElementsChecked,
			Rules:              result.RulesChecked,
			RulesApplied:       result.RulesApplied,
			RulesIgnored:       result.RulesIgnored,
			RulesUnused:        result.RulesUnused,
			ClassesUnstyled:    result.ClassesUnstyled,
			CoveragePercentage: result.CoveragePercentage,
		},
		Issues: jsonIssues,
	}
}
