package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/outwriter"
	"github.com/huangsam/outlier/schema"
	"github.com/spf13/cobra"
)

// outputSetup loads only the configuration needed to print informational output.
// No repository is required.
func outputSetup(_ *cobra.Command, _ []string) error {
	if err := loadInput(); err != nil {
		return err
	}
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, table, json, csv, parquet, html", input.Output)
	}
	colors, err := contract.ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	color.NoColor = !colors
	cfg.OutputFile = input.OutputFile
	return nil
}

// languagesCmd lists the languages outlier can analyze.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported languages and their file endings.",
	Long: `Print every language accepted by --languages with the file endings it claims.

Examples:
  outlier languages
  outlier languages --output json`,
	Args:    cobra.NoArgs,
	PreRunE: outputSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return outwriter.NewOutWriter().WriteLanguages(cfg)
	},
}
