// Package parquet provides data structures and functions for exporting outlier
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/outlier/schema"
	"github.com/parquet-go/parquet-go"
)

// OutlierRun represents a single archived analysis run.
// This struct maps to the outlier_runs database table.
type OutlierRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	RepoPath string  `parquet:"repo_path,snappy"`
	Metric   string  `parquet:"metric,snappy"`
	Since    string  `parquet:"since,snappy"`
	Until    *string `parquet:"until,optional,snappy"`

	// PlotWidth and PlotHeight are the grid bounds used for classification
	PlotWidth  int32 `parquet:"plot_width,snappy"`
	PlotHeight int32 `parquet:"plot_height,snappy"`

	// TotalFiles is the number of correlated files
	TotalFiles int32 `parquet:"total_files,snappy"`

	// TotalOutliers is the number of files in the upper-right quadrant
	TotalOutliers int32 `parquet:"total_outliers,snappy"`
}

// FileMetric represents one correlated file of a run.
// This struct maps to the outlier_file_metrics database table.
type FileMetric struct {
	RunID      int64  `parquet:"run_id,snappy"`
	FilePath   string `parquet:"file_path,snappy"`
	Churn      int32  `parquet:"churn,snappy"`
	Complexity int32  `parquet:"complexity,snappy"`
	GridX      int32  `parquet:"grid_x,snappy"`
	GridY      int32  `parquet:"grid_y,snappy"`
	IsOutlier  bool   `parquet:"is_outlier"`
}

// FromRunRecords converts archived runs to Parquet rows.
func FromRunRecords(records []schema.RunRecord) []OutlierRun {
	rows := make([]OutlierRun, 0, len(records))
	for _, r := range records {
		rows = append(rows, OutlierRun{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			RepoPath:      r.RepoPath,
			Metric:        r.Metric,
			Since:         r.Since,
			Until:         r.Until,
			PlotWidth:     r.PlotWidth,
			PlotHeight:    r.PlotHeight,
			TotalFiles:    r.TotalFiles,
			TotalOutliers: r.TotalOutliers,
		})
	}
	return rows
}

// FromFileRecords converts archived file rows to Parquet rows.
func FromFileRecords(records []schema.FileRecord) []FileMetric {
	rows := make([]FileMetric, 0, len(records))
	for _, r := range records {
		rows = append(rows, FileMetric{
			RunID:      r.RunID,
			FilePath:   r.FilePath,
			Churn:      r.Churn,
			Complexity: r.Complexity,
			GridX:      r.GridX,
			GridY:      r.GridY,
			IsOutlier:  r.IsOutlier,
		})
	}
	return rows
}

// FromPlottedFiles converts the files of a live analysis to Parquet rows.
// Rows of a live analysis carry run ID 0.
func FromPlottedFiles(files []schema.PlottedFile) []FileMetric {
	rows := make([]FileMetric, 0, len(files))
	for _, f := range files {
		rows = append(rows, FileMetric{
			FilePath:   f.Path,
			Churn:      int32(f.Churn),
			Complexity: int32(f.Complexity),
			GridX:      int32(f.X),
			GridY:      int32(f.Y),
			IsOutlier:  f.Outlier,
		})
	}
	return rows
}

// WriteRows writes rows to w with a schema inferred from the struct tags of T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes archived runs to a Parquet file.
func WriteRunsParquet(data []OutlierRun, outputPath string) error {
	return writeFile(outputPath, func(w io.Writer) error { return WriteRows(w, data) })
}

// WriteFileMetricsParquet writes file rows to a Parquet file.
func WriteFileMetricsParquet(data []FileMetric, outputPath string) error {
	return writeFile(outputPath, func(w io.Writer) error { return WriteRows(w, data) })
}

func writeFile(outputPath string, write func(io.Writer) error) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
