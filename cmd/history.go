package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/history"
	"github.com/huangsam/outlier/internal/outwriter"
	"github.com/huangsam/outlier/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendSetup resolves and validates the archive backend without touching any repository.
func historyBackendSetup(cmd *cobra.Command, args []string) error {
	if err := outputSetup(cmd, args); err != nil {
		return err
	}
	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, input.HistoryDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return nil
}

// historySetup opens the archive store for status, export and clear.
func historySetup(cmd *cobra.Command, args []string) error {
	if err := historyBackendSetup(cmd, args); err != nil {
		return err
	}
	return history.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// requireRunStore returns the open archive store or explains how to enable one.
func requireRunStore() (contract.RunStore, error) {
	store := history.Manager.GetRunStore()
	if store == nil {
		return nil, fmt.Errorf("run history is disabled. Set --history-backend to sqlite, mysql or postgresql")
	}
	return store, nil
}

// historyCmd focused on run archive management.
//
// Note: History subcommands use minimal initialization instead of the full sharedSetup
// used by report commands. This avoids Git repo validation for archive operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the archive of past analysis runs",
	Long: `Manage the optional archive of past analysis runs.

When --history-backend is set, every report run stores its metadata and the churn,
complexity and grid position of each correlated file.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default)

Subcommands:
  status  - Show archive statistics and connection info
  export  - Write all archived data to Parquet files
  clear   - Remove all archived runs
  migrate - Upgrade or roll back the archive schema

Examples:
  # Archive runs to the default SQLite database
  outlier --history-backend sqlite

  # Check what has been archived
  outlier history status --history-backend sqlite`,
}

// historyStatusCmd shows archive status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show the backend, connection state, run count, first and last run times
and the row count of every archive table.

Examples:
  outlier history status --history-backend sqlite
  OUTLIER_HISTORY_BACKEND=mysql OUTLIER_HISTORY_DB_CONNECT="..." outlier history status`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := requireRunStore()
		if err != nil {
			return err
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		return outwriter.NewOutWriter().WriteHistoryStatus(status, cfg)
	},
}

// historyExportCmd exports archived data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived runs to Parquet for BI tools and analytics",
	Long: `Export all archived data to Parquet format.

Writes two files next to --output-file:
- <output-file>.runs.parquet  - metadata about each run
- <output-file>.files.parquet - churn, complexity and grid position per file

Requires: --output-file parameter

Examples:
  outlier history export --history-backend sqlite --output-file outlier
  duckdb -c "SELECT * FROM read_parquet('outlier.files.parquet') WHERE is_outlier"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return history.ExportParquet(history.Manager.GetRunStore(), cfg.OutputFile, os.Stdout)
	},
}

// historyClearCmd removes all archived data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived runs",
	Long: `Delete every archived run and file row from the configured backend.
The schema is kept, so archiving can continue right away.

Examples:
  # Export before clearing
  outlier history export --history-backend sqlite --output-file backup
  outlier history clear --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := requireRunStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("Run history cleared successfully.")
		return nil
	},
}

// historyMigrateCmd runs database migrations for the archive.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the run archive.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  outlier history migrate --history-backend sqlite

  # Migrate to specific version
  outlier history migrate --history-backend sqlite --target-version 2

  # Rollback to initial state
  outlier history migrate --history-backend sqlite --target-version 0`,
	Args: cobra.NoArgs,
	// Migrations must run on a fresh database, so the store is not opened here
	PreRunE: historyBackendSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.HistoryBackend == schema.NoneBackend {
			return fmt.Errorf("nothing to migrate. Set --history-backend to sqlite, mysql or postgresql")
		}
		return history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"), os.Stdout)
	},
}
