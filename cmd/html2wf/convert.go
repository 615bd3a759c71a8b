package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/html2wf"
)

var convertCmd = &cobra.Command{
	Use:     "convert [files...]",
	Aliases: []string{"conv"},
	Short:   "Convert markup and stylesheets into resolved element styles",
	Long: `Assign generated class names, rewrite the stylesheet selectors and
resolve the cascade for every element of each markup file.
Files given as arguments replace the configured include patterns.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("source", ".", "Base directory for include and stylesheet patterns")
	f.StringSlice("include", []string{"**/*.html"}, "Glob patterns for markup files")
	f.StringSlice("stylesheets", nil, "Glob patterns for external stylesheets")
	f.String("output-format", "", "Output format: text|full|json|tree|css")
	f.Bool("inline-styles", true, "Merge style=\"\" attributes after stylesheet rules")
	f.Int("workers", 4, "Files converted concurrently")
}

func runConvert(cmd *cobra.Command, args []string) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
	defer func() { _ = log.Sync() }()

	result, convErr := convertBatch(cmd, args, log)
	if result == nil {
		return convErr
	}

	outputFormat := getStringWithFallback("output-format", "convert.output-format", "")
	format := html2wf.DetermineOutputFormat(outputFormat, quiet)

	var audit *html2wf.AuditResult
	if format == html2wf.OutputFull || format == html2wf.OutputJSON {
		audit = html2wf.Audit(result.Documents, buildAuditConfig())
	}

	if !quiet {
		if err := html2wf.WriteOutput(cmd.OutOrStdout(), result.Documents, audit, format, buildReportConfig()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return convErr
}

// convertBatch runs the converter over the configured inputs. A non-nil
// result may come with an error listing the files that failed.
func convertBatch(cmd *cobra.Command, args []string, log *zap.Logger) (*html2wf.BatchResult, error) {
	conv := html2wf.NewConverter(buildConvertConfig(), log)
	opts := buildBatchOptions(args)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := conv.Convert(ctx, opts)
	if errors.Is(err, html2wf.ErrNoInput) {
		return nil, fmt.Errorf("no markup files match %v", opts.Inputs)
	}
	if err != nil && result == nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	if err != nil {
		return result, fmt.Errorf("%d of %d files failed: %w",
			result.Failed, result.Failed+len(result.Documents), err)
	}
	return result, nil
}
