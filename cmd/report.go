package cmd

import (
	"github.com/huangsam/outlier/core"
	"github.com/huangsam/outlier/internal/history"
	"github.com/spf13/cobra"
)

// reportAll and friends select the executor behind each report command.
var (
	reportAll        core.ExecutorFunc = core.ExecuteReport
	reportChurn      core.ExecutorFunc = core.ExecuteChurn
	reportComplexity core.ExecutorFunc = core.ExecuteComplexity
	reportPlot       core.ExecutorFunc = core.ExecutePlot
)

// runReport runs one executor against the validated global config.
func runReport(exec core.ExecutorFunc) error {
	return exec(rootCtx, cfg, history.Manager)
}

// churnCmd lists the files that changed most often.
var churnCmd = &cobra.Command{
	Use:   "churn [repo-path]",
	Short: "Show the files that changed most often.",
	Long: `Count how many commits touched each file in the churn window and list the top files.

Only git history is read. No file is parsed, so this works for every language.

Examples:
  # Most changed files in the last 3 months
  outlier churn --since "3 months ago"

  # Most changed Go files under internal/
  outlier churn -l go --filter internal/`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runReport(reportChurn)
	},
}

// complexityCmd lists the most complex files among those that changed.
var complexityCmd = &cobra.Command{
	Use:   "complexity [repo-path]",
	Short: "Show the most complex files among those that changed.",
	Long: `Measure every file that changed in the churn window and list the most complex ones.

CCN sums the cyclomatic complexity of all functions in a file. NLOC counts the lines
holding code, excluding blanks and comments.

Examples:
  # Most complex files by cyclomatic complexity
  outlier complexity

  # Longest files by lines of code, as a table
  outlier complexity -m NLOC --output table`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runReport(reportComplexity)
	},
}

// plotCmd prints the churn vs complexity plot and its outliers.
var plotCmd = &cobra.Command{
	Use:   "plot [repo-path]",
	Short: "Plot churn against complexity and list the outliers.",
	Long: `Scale every changed file onto a churn vs complexity grid and list the files
in the upper right quadrant, the ones both changed often and hard to understand.

Examples:
  # A smaller plot for narrow terminals
  outlier plot --plot-width 40 --plot-height 15

  # Export the correlated files for further analysis
  outlier plot --output parquet --output-file files.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runReport(reportPlot)
	},
}
