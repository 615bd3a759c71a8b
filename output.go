package html2wf

import (
	"fmt"
	"io"
	"strings"
)

// DetermineOutputFormat selects the output format from the requested name.
// Unknown names fall back to the default.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputText // Suppressed by the caller
	}

	switch strings.ToLower(formatFlag) {
	case "text":
		return OutputText
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "tree":
		return OutputTree
	case "css":
		return OutputCSS
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputText
}

// WriteOutput writes conversion results in the given format. audit may be
// nil; it is only rendered by the full and json formats.
func WriteOutput(w io.Writer, docs []*Document, audit *AuditResult, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, docs, audit)

	case OutputCSS:
		for i, doc := range docs {
			if len(docs) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "/* %s */\n", displayName(doc))
			}
			fmt.Fprint(w, doc.Stylesheet.Format())
		}

	case OutputTree:
		for _, doc := range docs {
			if len(docs) > 1 {
				fmt.Fprintln(w, displayName(doc))
			}
			fmt.Fprint(w, doc.Tree.Print())
		}

	case OutputFull:
		reporter := NewReporter(w, config)
		verbose := NewVerboseReporter(w, reporter.UseColors())
		for _, doc := range docs {
			reporter.PrintDocument(doc)
			verbose.PrintCategories(doc)
			fmt.Fprintln(w)
		}
		if audit != nil {
			reporter.PrintIssues(audit.Issues)
			reporter.PrintSummary(audit)
			verbose.PrintStatistics(audit)
			verbose.PrintCoverage(audit)
			verbose.PrintWarnings(audit)
		}

	default:
		reporter := NewReporter(w, config)
		for i, doc := range docs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			reporter.PrintDocument(doc)
		}
	}
	return nil
}

// WriteAuditOutput writes an audit result. The text format prints issues
// and the summary, full adds statistics.
func WriteAuditOutput(w io.Writer, result *AuditResult, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, nil, result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(result)
		verbose.PrintCoverage(result)
		verbose.PrintWarnings(result)

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
	}
	return nil
}
