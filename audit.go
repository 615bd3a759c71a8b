package html2wf

import (
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"

	"github.com/yacobolo/html2wf/internal/cascade"
	"github.com/yacobolo/html2wf/internal/naming"
	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// AuditConfig holds audit configuration
type AuditConfig struct {
	Strict bool // Exit with code 1 if warnings are found

	MaxIssuesPerLinter int // 0 = unlimited (default)
	MaxSameIssues      int // 0 = unlimited (default)
}

// AuditResult contains audit findings and statistics
type AuditResult struct {
	// Statistics
	DocumentsAudited   int
	ElementsChecked    int
	RulesChecked       int     // Distinct rules across all documents
	RulesApplied       int     // Applied to at least one element
	RulesIgnored       int     // Match elements structurally but are never applied
	RulesUnused        int     // Match nothing at all
	ClassesUnstyled    int     // Markup classes no rule mentions
	CoveragePercentage float64 // RulesApplied / RulesChecked

	// Issues in golangci-lint format
	Issues         []Issue
	TruncatedCount int // Issues removed due to limits

	Warnings []string
}

// HasWarnings reports whether any issue has warning or error severity.
func (r *AuditResult) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning || issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ruleKey identifies a rule across documents that share a stylesheet.
type ruleKey struct {
	source string
	order  int
}

// ruleFinding accumulates what every document says about one rule.
type ruleFinding struct {
	selector string
	loc      FileLocation
	applied  bool
	matched  bool
	invalid  map[string]error
	ignored  map[string]int // original part -> elements left unstyled
	parts    []string       // original parts in selector order
}

// Audit checks converted documents for rules and classes the simplified
// cascade cannot honor. Rules from a shared stylesheet are judged across
// all documents: a rule is unused only if no document uses it.
func Audit(docs []*Document, config AuditConfig) *AuditResult {
	result := &AuditResult{DocumentsAudited: len(docs)}

	findings := make(map[ruleKey]*ruleFinding)
	var keys []ruleKey
	var issues []Issue
	warned := make(map[[2]string]bool) // source, import

	for _, doc := range docs {
		result.ElementsChecked += len(doc.Elements)
		for _, imp := range doc.imports() {
			if warned[imp] {
				continue
			}
			warned[imp] = true
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("@import %q in %s is not followed", imp[1], imp[0]))
		}

		doc.Stylesheet.EachRule(func(r *Rule) {
			key, src := doc.ruleSource(r)
			f, ok := findings[key]
			if !ok {
				f = &ruleFinding{
					selector: r.OriginalSelector,
					loc:      locateSelector(src.name, src.text, r.OriginalSelector),
					invalid:  make(map[string]error),
					ignored:  make(map[string]int),
				}
				findings[key] = f
				keys = append(keys, key)
			}
			auditRule(doc, r, f)
		})

		unstyled := unstyledClassIssues(doc)
		result.ClassesUnstyled += len(unstyled)
		issues = append(issues, unstyled...)
	}

	for _, key := range keys {
		f := findings[key]
		result.RulesChecked++
		if f.applied {
			result.RulesApplied++
		}
		if len(f.ignored) > 0 {
			result.RulesIgnored++
		}

		for _, part := range f.parts {
			if err, bad := f.invalid[part]; bad {
				issues = append(issues, newIssue(LinterInvalidSelector, SeverityWarning,
					fmt.Sprintf(IssueInvalidSelector, part, err), f.loc))
			}
			if n := f.ignored[part]; n > 0 {
				issues = append(issues, newIssue(LinterIgnoredSelector, SeverityWarning,
					fmt.Sprintf(IssueIgnoredSelector, part, pluralizeCount(n, "element", "elements")), f.loc))
			}
		}
		if !f.applied && !f.matched && len(f.invalid) == 0 {
			result.RulesUnused++
			issues = append(issues, newIssue(LinterUnusedRule, SeverityInfo,
				fmt.Sprintf(IssueUnusedRule, f.selector), f.loc))
		}
	}

	if result.RulesChecked > 0 {
		result.CoveragePercentage = float64(result.RulesApplied) / float64(result.RulesChecked) * 100
	}

	sortIssues(issues)
	result.Issues, result.TruncatedCount = limitIssues(issues, config)
	return result
}

// auditRule compares structural matches (cascadia, original selector
// against original markup) with what the cascade applied (rewritten
// selector against generated classes).
func auditRule(doc *Document, r *Rule, f *ruleFinding) {
	originals := stylesheet.SplitSelectorList(r.OriginalSelector)
	rewritten := r.Selectors()

	for i, part := range originals {
		if !contains(f.parts, part) {
			f.parts = append(f.parts, part)
		}

		applied := map[string]bool{}
		if i < len(rewritten) {
			for _, el := range doc.Elements {
				if cascade.Matches(rewritten[i], cascade.Target{Tag: el.Tag, Classes: el.Classes}) {
					applied[el.ID] = true
					f.applied = true
				}
			}
		}

		sel, err := cascadia.ParseWithPseudoElement(part)
		if err != nil {
			f.invalid[part] = err
			continue
		}
		for _, el := range doc.Tree.Match(sel.Match) {
			f.matched = true
			if !applied[el.ID] {
				f.ignored[part]++
			}
		}
	}
}

// unstyledClassIssues reports markup classes that no selector mentions.
func unstyledClassIssues(doc *Document) []Issue {
	referenced := make(map[string]bool)
	doc.Stylesheet.EachRule(func(r *Rule) {
		for _, class := range naming.ClassTokens(r.OriginalSelector) {
			referenced[class] = true
		}
	})

	var issues []Issue
	seen := make(map[string]bool)
	for _, el := range doc.Elements {
		for _, class := range el.OriginalClasses {
			if referenced[class] || seen[class] {
				continue
			}
			seen[class] = true
			loc := locateClass(displayName(doc), doc.markup, class)
			issues = append(issues, newIssue(LinterUnstyledClass, SeverityInfo,
				fmt.Sprintf(IssueUnstyledClass, class), loc))
		}
	}
	return issues
}

// ruleSource finds the stylesheet input a rule was parsed from.
func (d *Document) ruleSource(r *Rule) (ruleKey, sourceText) {
	for _, src := range d.sources {
		if r.SourceOrder >= src.first && r.SourceOrder < src.first+src.count {
			return ruleKey{source: src.name, order: r.SourceOrder - src.first}, src
		}
	}
	return ruleKey{source: displayName(d), order: r.SourceOrder}, sourceText{name: displayName(d)}
}

// imports lists the @import targets of d paired with the stylesheet
// that declares them.
func (d *Document) imports() [][2]string {
	var out [][2]string
	if len(d.sources) == 0 {
		for _, imp := range d.Stylesheet.Imports {
			out = append(out, [2]string{displayName(d), imp})
		}
		return out
	}
	for _, src := range d.sources {
		for _, imp := range src.imports {
			out = append(out, [2]string{src.name, imp})
		}
	}
	return out
}

func displayName(d *Document) string {
	if d.Source == "" {
		return "<markup>"
	}
	return GetRelativePath(d.Source)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortIssues orders issues by file, then line, then column.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config AuditConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	// Deduplication by message text
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
