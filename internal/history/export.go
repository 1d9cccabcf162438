package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/parquet"
	"github.com/huangsam/outlier/schema"
)

// ErrNoHistory is returned when an export finds nothing to write.
var ErrNoHistory = errors.New("no archived runs found to export")

// ExportFiles returns the two Parquet files an export of outputFile writes.
func ExportFiles(outputFile string) (runsFile, filesFile string) {
	return outputFile + ".runs.parquet", outputFile + ".files.parquet"
}

// ExportParquet writes every archived run and file row of store to Parquet files.
func ExportParquet(store contract.RunStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run history is disabled. Set --history-backend to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total file records: %d\n", status.TableSizes[schema.FilesTable])

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	files, err := store.ListFiles()
	if err != nil {
		return fmt.Errorf("failed to retrieve files: %w", err)
	}

	runsFile, filesFile := ExportFiles(outputFile)
	runRows := parquet.FromRunRecords(runs)
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runRows), runsFile)

	fileRows := parquet.FromFileRecords(files)
	if err := parquet.WriteFileMetricsParquet(fileRows, filesFile); err != nil {
		return fmt.Errorf("failed to write file metrics: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file records to: %s\n", len(fileRows), filesFile)
	return nil
}
