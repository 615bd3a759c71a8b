package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configFileName = ".html2wf.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .html2wf.yaml config file",
	Long:  `Create a .html2wf.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configFileName); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}

		if err := os.WriteFile(configFileName, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
		return nil
	},
}

const defaultConfig = `# html2wf configuration

# Shared settings
prefix: html2wf-
verbose: false
color: false

# Conversion settings
convert:
  source: .
  include:
    - "**/*.html"
  stylesheets: []          # e.g. "css/**/*.css"
  output-format: text      # text | full | json | tree | css
  inline-styles: true
  workers: 4

# Audit settings
audit:
  strict: false
  output-format: text      # text | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
