package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/html2wf"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = configFileName
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set; unset flag defaults must not
	// shadow the config file keys read by the fallback helpers.
	fs := cmd.Flags()
	provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("HTML2WF_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// configSections are the nested blocks of .html2wf.yaml.
var configSections = map[string]bool{"convert": true, "audit": true}

// envKey maps an environment variable onto a config key. The first
// segment selects a section when it names one; the remaining underscores
// become hyphens.
//
//	HTML2WF_CONVERT_SOURCE              -> convert.source
//	HTML2WF_CONVERT_INLINE_STYLES       -> convert.inline-styles
//	HTML2WF_AUDIT_MAX_ISSUES_PER_LINTER -> audit.max-issues-per-linter
//	HTML2WF_PREFIX                      -> prefix
func envKey(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, "HTML2WF_")), "_")
	if len(parts) > 1 && configSections[parts[0]] {
		return parts[0] + "." + strings.Join(parts[1:], "-")
	}
	return strings.Join(parts, "-")
}

// buildConvertConfig constructs the library's Config struct from koanf state.
func buildConvertConfig() html2wf.Config {
	return html2wf.Config{
		Prefix:       getStringWithFallback("prefix", "prefix", html2wf.DefaultPrefix),
		InlineStyles: getBoolWithFallback("inline-styles", "convert.inline-styles", true),
		Workers:      getIntWithFallback("workers", "convert.workers", 4),
	}
}

// buildBatchOptions resolves input and stylesheet patterns. Positional
// arguments replace the configured include patterns and are used as given.
func buildBatchOptions(args []string) html2wf.BatchOptions {
	source := getStringWithFallback("source", "convert.source", ".")

	inputs := args
	if len(inputs) == 0 {
		inputs = underSource(source, getStringsWithFallback("include", "convert.include", []string{"**/*.html"}))
	}

	return html2wf.BatchOptions{
		Inputs:      inputs,
		Stylesheets: underSource(source, getStringsWithFallback("stylesheets", "convert.stylesheets", nil)),
	}
}

// underSource joins relative patterns onto the source directory.
func underSource(source string, patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if filepath.IsAbs(p) || source == "" || source == "." {
			out = append(out, p)
			continue
		}
		out = append(out, filepath.Join(source, p))
	}
	return out
}

// buildAuditConfig constructs the library's AuditConfig struct from koanf state.
func buildAuditConfig() html2wf.AuditConfig {
	return html2wf.AuditConfig{
		Strict:             getBoolWithFallback("strict", "audit.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "audit.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "audit.max-same-issues", 0),
	}
}

// buildReportConfig constructs rendering options. Audit settings apply to
// convert's full output as well.
func buildReportConfig() html2wf.ReportConfig {
	return html2wf.ReportConfig{
		UseColors:        getBoolWithFallback("color", "color", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "audit.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "audit.print-linter-name", true),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
