package html2wf

import (
	"fmt"
	"io"
)

// VerboseReporter handles detailed statistics and property breakdowns
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintCategories outputs every styled element's properties grouped by category
func (r *VerboseReporter) PrintCategories(doc *Document) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Property Categories", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	for _, el := range doc.Elements {
		if el.Properties.Len() == 0 {
			continue
		}
		fmt.Fprintf(r.w, "%s %s%s\n", el.ID, el.Tag, classSuffix(el.Classes))
		groups := categorizeProperties(el.Properties)
		for _, cat := range categoryOrder {
			props, ok := groups[cat]
			if !ok {
				continue
			}
			fmt.Fprintf(r.w, "  %s:\n", cat)
			for _, p := range props {
				marker := ""
				if p.IsToken {
					marker = RenderStyle(StyleGray, " (token)", r.useColors)
				}
				fmt.Fprintf(r.w, "    %s: %s%s\n", p.Name, p.Value, marker)
			}
		}
	}
}

// PrintStatistics outputs detailed audit statistics
func (r *VerboseReporter) PrintStatistics(result *AuditResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Cascade Statistics", r.useColors))
	fmt.Fprintln(r.w, "--------------------")

	fmt.Fprintf(r.w, "Documents:        %d\n", result.DocumentsAudited)
	fmt.Fprintf(r.w, "Elements:         %d\n", result.ElementsChecked)
	fmt.Fprintf(r.w, "Rules:            %d\n", result.RulesChecked)
	fmt.Fprintf(r.w, "Applied:          %d (%.1f%%)\n", result.RulesApplied, result.CoveragePercentage)
	fmt.Fprintf(r.w, "Ignored:          %d\n", result.RulesIgnored)
	fmt.Fprintf(r.w, "Unused:           %d\n", result.RulesUnused)
	fmt.Fprintf(r.w, "Unstyled Classes: %d\n", result.ClassesUnstyled)
}

// PrintCoverage shows a progress bar of applied rules
func (r *VerboseReporter) PrintCoverage(result *AuditResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Rule Coverage", r.useColors))
	fmt.Fprintln(r.w, "---------------")
	printProgressBar(r.w, result.CoveragePercentage)
}

// PrintWarnings shows audit warnings
func (r *VerboseReporter) PrintWarnings(result *AuditResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
