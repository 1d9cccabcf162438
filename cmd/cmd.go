// Package cmd defines the command-line interface for outlier.
package cmd

import (
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(churnCmd)
	rootCmd.AddCommand(complexityCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.StringSliceP("languages", "l", nil, "Languages to analyze, repeatable or comma-separated (default all)")
	flags.StringP("metric", "m", string(schema.CCNMetric), "Complexity metric: CCN or NLOC")
	flags.String("since", contract.DefaultSince, "Start of the churn window (YYYY-MM-DD or 'N units ago')")
	flags.String("until", "", "End of the churn window (YYYY-MM-DD or 'N units ago')")
	flags.IntP("top", "t", contract.DefaultTopN, "Number of files to list in each ranking")
	flags.Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	flags.String("output", string(schema.TextOut), "Output format: text or table or json or csv or parquet or html")
	flags.String("output-file", "", "Optional path to write output to")
	flags.String("exclude", "", "Comma-separated list of glob patterns to ignore")
	flags.StringP("filter", "f", "", "Only consider files under this path prefix")
	flags.String("git-backend", string(schema.ExecGitBackend), "Git backend: exec or go-git")
	flags.Int("plot-width", schema.DefaultPlotWidth, "Width of the churn vs complexity plot")
	flags.Int("plot-height", schema.DefaultPlotHeight, "Height of the churn vs complexity plot")
	flags.Bool("skip-vendor", false, "Skip vendored and generated files")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.String("history-backend", string(schema.NoneBackend), "Run history backend: none or sqlite or mysql or postgresql")
	flags.String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
