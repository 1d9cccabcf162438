package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/huangsam/outlier/schema"
)

// Default values for configuration.
const (
	DefaultTopN  = 10
	MaxTopN      = 1000
	DefaultSince = "12 months ago"
	MinPlotSize  = 2
	MaxPlotSize  = 500
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for the analysis.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath   string
	StartTime  time.Time
	EndTime    time.Time // Zero means no upper bound
	PathFilter string
	TopN       int
	Workers    int
	Metric     schema.Metric
	Languages  []schema.Language
	Endings    []string
	Excludes   []string
	SkipVendor bool
	Output     schema.OutputMode
	OutputFile string
	GitBackend schema.GitBackend
	PlotWidth  int
	PlotHeight int
	Verbosity  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	excludeGlobs []glob.Glob
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Languages        []string `mapstructure:"languages"`
	Metric           string   `mapstructure:"metric"`
	Since            string   `mapstructure:"since"`
	Until            string   `mapstructure:"until"`
	Top              int      `mapstructure:"top"`
	Workers          int      `mapstructure:"workers"`
	Output           string   `mapstructure:"output"`
	OutputFile       string   `mapstructure:"output-file"`
	Exclude          string   `mapstructure:"exclude"`
	Filter           string   `mapstructure:"filter"`
	GitBackend       string   `mapstructure:"git-backend"`
	PlotWidth        int      `mapstructure:"plot-width"`
	PlotHeight       int      `mapstructure:"plot-height"`
	SkipVendor       bool     `mapstructure:"skip-vendor"`
	Color            string   `mapstructure:"color"`
	Width            int      `mapstructure:"width"`
	Verbose          int      `mapstructure:"verbose"`
	HistoryBackend   string   `mapstructure:"history-backend"`
	HistoryDBConnect string   `mapstructure:"history-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Languages = slices.Clone(c.Languages)
	clone.Endings = slices.Clone(c.Endings)
	clone.Excludes = slices.Clone(c.Excludes)
	clone.excludeGlobs = slices.Clone(c.excludeGlobs)
	return &clone
}

// Since returns the lower bound of the churn window.
func (c *Config) Since() time.Time {
	return c.StartTime
}

// Until returns the upper bound of the churn window, zero when open ended.
func (c *Config) Until() time.Time {
	return c.EndTime
}

// SinceLabel returns the window start the way it is passed to git.
func (c *Config) SinceLabel() string {
	return c.StartTime.Format(GitDateFormat)
}

// UntilLabel returns the window end the way it is passed to git, or "".
func (c *Config) UntilLabel() string {
	if c.EndTime.IsZero() {
		return ""
	}
	return c.EndTime.Format(GitDateFormat)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processLanguages(cfg, input); err != nil {
		return err
	}
	if err := processExcludes(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveGitPathAndFilter(ctx, cfg, client, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run archive configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.PathFilter = strings.TrimPrefix(strings.TrimSpace(input.Filter), "./")
	cfg.SkipVendor = input.SkipVendor
	cfg.Width = input.Width
	cfg.Verbosity = max(input.Verbose, 0)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Top <= 0 || input.Top > MaxTopN {
		return fmt.Errorf("top must be greater than 0 and cannot exceed %d (received %d)", MaxTopN, input.Top)
	}
	cfg.TopN = input.Top

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Metric = schema.Metric(strings.ToUpper(strings.TrimSpace(input.Metric)))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("%w '%s'. must be CCN or NLOC", schema.ErrUnknownMetric, input.Metric)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, table, json, csv, parquet, html", input.Output)
	}

	cfg.GitBackend = schema.GitBackend(strings.ToLower(input.GitBackend))
	if cfg.GitBackend == "" {
		cfg.GitBackend = schema.ExecGitBackend
	}
	if _, ok := schema.ValidGitBackends[cfg.GitBackend]; !ok {
		return fmt.Errorf("invalid git backend '%s'. must be exec or go-git", input.GitBackend)
	}

	for name, size := range map[string]int{"plot-width": input.PlotWidth, "plot-height": input.PlotHeight} {
		if size < MinPlotSize || size > MaxPlotSize {
			return fmt.Errorf("%s must be between %d and %d (received %d)", name, MinPlotSize, MaxPlotSize, size)
		}
	}
	cfg.PlotWidth = input.PlotWidth
	cfg.PlotHeight = input.PlotHeight

	return nil
}

// processLanguages resolves the requested languages into file endings.
// No languages means every supported language.
func processLanguages(cfg *Config, input *ConfigRawInput) error {
	var langs []schema.Language
	var unsupported []string
	for _, raw := range input.Languages {
		for part := range strings.SplitSeq(raw, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			lang := schema.Language(name)
			if _, ok := schema.LanguageExtensions[lang]; !ok {
				unsupported = append(unsupported, name)
				continue
			}
			if !slices.Contains(langs, lang) {
				langs = append(langs, lang)
			}
		}
	}
	if len(unsupported) > 0 {
		return fmt.Errorf("unsupported languages: %s", strings.Join(unsupported, ", "))
	}
	if len(langs) == 0 {
		langs = schema.AllLanguages()
	}
	cfg.Languages = langs
	cfg.Endings = schema.EndingsFor(langs)
	return nil
}

// processExcludes compiles the comma-separated exclude globs.
func processExcludes(cfg *Config, input *ConfigRawInput) error {
	cfg.Excludes = nil
	cfg.excludeGlobs = nil
	for part := range strings.SplitSeq(input.Exclude, ",") {
		pattern := strings.TrimSpace(part)
		if pattern == "" {
			continue
		}
		if err := cfg.AddExclude(pattern); err != nil {
			return err
		}
	}
	return nil
}

// AddExclude compiles and appends one exclude pattern.
func (c *Config) AddExclude(pattern string) error {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
	}
	c.Excludes = append(c.Excludes, pattern)
	c.excludeGlobs = append(c.excludeGlobs, g)
	return nil
}

// processTimeRange parses --since and --until. An absent --since defaults to
// twelve calendar months before now; an absent --until leaves the window open.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	since := strings.TrimSpace(input.Since)
	if since == "" {
		since = DefaultSince
	}
	start, err := ParseGitDate(since, now)
	if err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	cfg.StartTime = start

	cfg.EndTime = time.Time{}
	if until := strings.TrimSpace(input.Until); until != "" {
		end, err := ParseGitDate(until, now)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		cfg.EndTime = end
	}

	if !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("since (%s) cannot be after until (%s)", cfg.SinceLabel(), cfg.UntilLabel())
	}
	return nil
}

// resolveGitPathAndFilter resolves the Git repository path and set the implicit path filter.
func resolveGitPathAndFilter(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	if strings.HasPrefix(searchPath, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			searchPath = filepath.Join(home, strings.TrimPrefix(searchPath, "~"))
		}
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	if statErr != nil {
		return fmt.Errorf("cannot access %q: %w", searchPath, statErr)
	}
	gitContextPath := absSearchPath
	if !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	if cfg.PathFilter != "" { // User-provided --filter flag takes precedence
		return nil
	}

	if absSearchPath != gitRoot {
		relativePath, err := filepath.Rel(gitRoot, absSearchPath)
		if err != nil {
			return err
		}
		if relativePath != "." && !strings.HasPrefix(relativePath, "..") {
			filter := relativePath
			if info.IsDir() {
				filter += "/"
			}
			cfg.PathFilter = filepath.ToSlash(filter)
		}
	}
	return nil
}
