package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleFiles() []schema.PlottedFile {
	return []schema.PlottedFile{
		{
			MetricPoint:    schema.MetricPoint{Path: "core/a.go", Churn: 12, Complexity: 40},
			GridCoordinate: schema.GridCoordinate{X: 70, Y: 30},
			Outlier:        true,
		},
		{
			MetricPoint:    schema.MetricPoint{Path: "b.py", Churn: 1, Complexity: 3},
			GridCoordinate: schema.GridCoordinate{X: 5, Y: 3},
		},
	}
}

func TestRunStore_SQLiteRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun(schema.RunMeta{
		StartTime:  start,
		RepoPath:   "/repo",
		Metric:     schema.CCNMetric,
		Since:      "2024-03-01",
		PlotWidth:  70,
		PlotHeight: 30,
	})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordFiles(runID, sampleFiles()))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 2, 1))

	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, "/repo", run.RepoPath)
	assert.Equal(t, "CCN", run.Metric)
	assert.Equal(t, "2024-03-01", run.Since)
	assert.Nil(t, run.Until)
	assert.Equal(t, int32(70), run.PlotWidth)
	assert.Equal(t, int32(30), run.PlotHeight)
	assert.Equal(t, int32(2), run.TotalFiles)
	assert.Equal(t, int32(1), run.TotalOutliers)

	files, err := store.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []schema.FileRecord{
		{RunID: runID, FilePath: "b.py", Churn: 1, Complexity: 3, GridX: 5, GridY: 3},
		{RunID: runID, FilePath: "core/a.go", Churn: 12, Complexity: 40, GridX: 70, GridY: 30, IsOutlier: true},
	}, files)
}

func TestRunStore_UntilIsStored(t *testing.T) {
	store := newSQLiteStore(t)
	runID, err := store.BeginRun(schema.RunMeta{StartTime: time.Now(), Metric: schema.NLOCMetric, Since: "2024-01-01", Until: "2024-06-01"})
	require.NoError(t, err)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	require.NotNil(t, runs[0].Until)
	assert.Equal(t, "2024-06-01", *runs[0].Until)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
}

func TestRunStore_RecordFilesEmpty(t *testing.T) {
	store := newSQLiteStore(t)
	assert.NoError(t, store.RecordFiles(1, nil))
}

func TestRunStore_DuplicateFileFails(t *testing.T) {
	store := newSQLiteStore(t)
	runID, err := store.BeginRun(schema.RunMeta{StartTime: time.Now(), Metric: schema.CCNMetric})
	require.NoError(t, err)

	files := append(sampleFiles(), sampleFiles()[0])
	require.Error(t, store.RecordFiles(runID, files))

	stored, err := store.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, stored, "failed batch must be rolled back")
}

func TestRunStore_EndRunUnknown(t *testing.T) {
	store := newSQLiteStore(t)
	assert.Error(t, store.EndRun(42, time.Now(), 0, 0))
}

func TestRunStore_StatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, map[string]int64{schema.RunsTable: 0, schema.FilesTable: 0}, status.TableSizes)

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		start := first.Add(time.Duration(i) * time.Hour)
		runID, err := store.BeginRun(schema.RunMeta{StartTime: start, Metric: schema.CCNMetric})
		require.NoError(t, err)
		require.NoError(t, store.RecordFiles(runID, sampleFiles()))
		require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2, 1))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.True(t, first.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 6, status.TotalFiles)
	assert.Equal(t, int64(6), status.TableSizes[schema.FilesTable])

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TableSizes[schema.FilesTable])
}

func TestRunStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewRunStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = store.BeginRun(schema.RunMeta{StartTime: time.Now(), Metric: schema.CCNMetric})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewRunStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	runs, err := reopened.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.NoneBackend, "")
	assert.ErrorContains(t, err, "unsupported history backend")
}

func TestNewRunStore_InvalidMySQLDSN(t *testing.T) {
	_, err := NewRunStore(schema.MySQLBackend, "not a dsn")
	assert.ErrorContains(t, err, "invalid MySQL connection string")
}
