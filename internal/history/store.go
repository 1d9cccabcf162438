package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// RunStoreImpl implements the RunStore interface on top of database/sql.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore opens the archive for backend and creates its tables when missing.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (*RunStoreImpl, error) {
	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createTables applies the table definitions shipped with the migrations.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, name := range tableMigrations {
		stmt, err := readMigration(backend, name)
		if err != nil {
			return err
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func (rs *RunStoreImpl) runsTable() string {
	return quoteTableName(schema.RunsTable, rs.backend)
}

func (rs *RunStoreImpl) filesTable() string {
	return quoteTableName(schema.FilesTable, rs.backend)
}

// nullableString stores "" as NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(meta schema.RunMeta) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (start_time, repo_path, metric, since, until, plot_width, plot_height)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, rs.runsTable())
	args := []any{
		formatTime(meta.StartTime, rs.backend), meta.RepoPath, string(meta.Metric),
		meta.Since, nullableString(meta.Until), meta.PlotWidth, meta.PlotHeight,
	}

	var runID int64
	if rs.backend == schema.PostgreSQLBackend {
		err := rs.db.QueryRow(rebind(query+" RETURNING run_id", rs.backend), args...).Scan(&runID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		return runID, nil
	}

	result, err := rs.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run ID: %w", err)
	}
	return runID, nil
}

// RecordFiles stores the correlated files of a run in one transaction.
func (rs *RunStoreImpl) RecordFiles(runID int64, files []schema.PlottedFile) error {
	if len(files) == 0 {
		return nil
	}
	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := rebind(fmt.Sprintf(`INSERT INTO %s (run_id, file_path, churn, complexity, grid_x, grid_y, is_outlier)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, rs.filesTable()), rs.backend)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range files {
		if _, err := stmt.Exec(runID, f.Path, f.Churn, f.Complexity, f.X, f.Y, f.Outlier); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", f.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit files: %w", err)
	}
	return nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalFiles, totalOutliers int) error {
	var start timeScanner
	query := rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, rs.runsTable()), rs.backend)
	if err := rs.db.QueryRow(query, runID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(start.t).Milliseconds()

	update := rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files = ?, total_outliers = ?
		WHERE run_id = ?`, rs.runsTable()), rs.backend)
	if _, err := rs.db.Exec(update, formatTime(endTime, rs.backend), durationMs, totalFiles, totalOutliers, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetStatus returns status information about the archive.
func (rs *RunStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", rs.runsTable()))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		row = rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", rs.runsTable()))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.t

		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", rs.runsTable()))
		if err := row.Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.t

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_files), 0) FROM %s", rs.runsTable()))
		if err := row.Scan(&status.TotalFiles); err != nil {
			return status, fmt.Errorf("failed to get total files: %w", err)
		}
	}

	for _, table := range []string{schema.RunsTable, schema.FilesTable} {
		var count int64
		row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// ListRuns returns every archived run, oldest first.
func (rs *RunStoreImpl) ListRuns() ([]schema.RunRecord, error) {
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, repo_path, metric, since, until,
		plot_width, plot_height, total_files, total_outliers FROM %s ORDER BY run_id`, rs.runsTable())
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var start, end timeScanner
		if err := rows.Scan(&record.RunID, &start, &end, &record.RunDurationMs, &record.RepoPath,
			&record.Metric, &record.Since, &record.Until, &record.PlotWidth, &record.PlotHeight,
			&record.TotalFiles, &record.TotalOutliers); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = start.t
		record.EndTime = end.ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// ListFiles returns every archived file row ordered by run and path.
func (rs *RunStoreImpl) ListFiles() ([]schema.FileRecord, error) {
	query := fmt.Sprintf(`SELECT run_id, file_path, churn, complexity, grid_x, grid_y, is_outlier
		FROM %s ORDER BY run_id, file_path`, rs.filesTable())
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileRecord
	for rows.Next() {
		var record schema.FileRecord
		if err := rows.Scan(&record.RunID, &record.FilePath, &record.Churn, &record.Complexity,
			&record.GridX, &record.GridY, &record.IsOutlier); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}
	return results, nil
}

// Clear removes all archived data but keeps the tables.
func (rs *RunStoreImpl) Clear() error {
	for _, table := range []string{rs.filesTable(), rs.runsTable()} {
		if _, err := rs.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
