package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/html2wf"
)

// errStrictAudit is returned when --strict is set and the audit has warnings.
var errStrictAudit = errors.New("audit found issues")

var auditCmd = &cobra.Command{
	Use:   "audit [files...]",
	Short: "Report rules and classes the cascade does not use",
	Long: `Convert the inputs and check every rule against the original markup.
Reports selectors that match elements but are never applied, selectors
that cannot be evaluated, rules matching nothing and classes no rule styles.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.String("source", ".", "Base directory for include and stylesheet patterns")
	f.StringSlice("include", []string{"**/*.html"}, "Glob patterns for markup files")
	f.StringSlice("stylesheets", nil, "Glob patterns for external stylesheets")
	f.Bool("strict", false, "Exit 1 on any warning (CI mode)")
	f.String("output-format", "", "Output format: text|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (linter) suffix on issues")
}

func runAudit(cmd *cobra.Command, args []string) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
	defer func() { _ = log.Sync() }()

	result, convErr := convertBatch(cmd, args, log)
	if result == nil {
		return convErr
	}

	config := buildAuditConfig()
	audit := html2wf.Audit(result.Documents, config)

	outputFormat := getStringWithFallback("output-format", "audit.output-format", "")
	format := html2wf.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := html2wf.WriteAuditOutput(cmd.OutOrStdout(), audit, format, buildReportConfig()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if convErr != nil {
		return convErr
	}
	if config.Strict && audit.HasWarnings() {
		return errStrictAudit
	}
	return nil
}
