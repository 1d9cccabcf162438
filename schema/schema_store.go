package schema

import "time"

// RunMeta describes an analysis run at the moment it starts.
type RunMeta struct {
	StartTime  time.Time
	RepoPath   string
	Metric     Metric
	Since      string
	Until      string
	PlotWidth  int
	PlotHeight int
}

// RunRecord represents a row from the outlier_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RepoPath      string
	Metric        string
	Since         string
	Until         *string
	PlotWidth     int32
	PlotHeight    int32
	TotalFiles    int32
	TotalOutliers int32
}

// FileRecord represents a row from the outlier_file_metrics table.
type FileRecord struct {
	RunID      int64
	FilePath   string
	Churn      int32
	Complexity int32
	GridX      int32
	GridY      int32
	IsOutlier  bool
}

// HistoryStatus represents the status of the run archive.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalFiles    int              `json:"total_files"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// Archive table names.
const (
	RunsTable  = "outlier_runs"
	FilesTable = "outlier_file_metrics"
)
