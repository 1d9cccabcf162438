package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/history"
	"github.com/huangsam/outlier/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "outlier [repo-path]",
	Short: "Find the files that change often and are hard to understand.",
	Long: `Outlier correlates Git churn with code complexity to find refactoring candidates.

Files that are both frequently changed and complex are the outliers: the places where
cleanup pays off the most. Running outlier without a subcommand prints the full report.

Examples:
  # Analyze the current repository over the last 12 months
  outlier

  # Analyze Python files since the start of the year by lines of code
  outlier -l python -m NLOC --since 2024-01-01

  # Write an interactive scatter plot
  outlier --output html --output-file plot.html`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runReport(reportAll)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("OUTLIER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("metric", schema.CCNMetric)
	viper.SetDefault("since", contract.DefaultSince)
	viper.SetDefault("top", contract.DefaultTopN)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("git-backend", schema.ExecGitBackend)
	viper.SetDefault("plot-width", schema.DefaultPlotWidth)
	viper.SetDefault("plot-height", schema.DefaultPlotHeight)
	viper.SetDefault("skip-vendor", false)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".outlier") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// loadInput merges defaults, file, env and flags into the raw input.
func loadInput() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	installLogger(input.Verbose)
	return nil
}

// installLogger routes slog to stderr at the level selected by -v.
func installLogger(verbosity int) {
	slog.SetDefault(contract.NewLogger(os.Stderr, contract.VerbosityLevel(verbosity)))
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(ctx context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file and unmarshal all resolved values.
	if err := loadInput(); err != nil {
		return err
	}

	// 2. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RepoPathStr = args[0]
	} else {
		input.RepoPathStr = "."
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	client := contract.NewGitClient(schema.GitBackend(strings.ToLower(input.GitBackend)))
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors

	// 4. Initialize the run archive with validated config
	return history.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// gitClient returns the client for the validated git backend.
func gitClient() contract.GitClient {
	return contract.NewGitClient(cfg.GitBackend)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
