// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/outlier/schema"
)

// GitClient defines the Git operations needed to measure churn.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetChangeLog returns numstat lines for every non-merge commit in the window.
	// A zero until means no upper bound. A repository without commits yields an empty log.
	GetChangeLog(ctx context.Context, repoPath string, since, until time.Time) ([]byte, error)
}

// ComplexityProvider measures the static complexity of a single file.
type ComplexityProvider interface {
	// Analyze returns the complexity of the file at absPath.
	Analyze(ctx context.Context, absPath string) (schema.FileComplexity, error)
}

// RunStore defines the interface for archiving completed analysis runs.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(meta schema.RunMeta) (int64, error)

	// RecordFiles stores the correlated files of a run
	RecordFiles(runID int64, files []schema.PlottedFile) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalFiles, totalOutliers int) error

	// GetStatus returns status information about the store
	GetStatus() (schema.HistoryStatus, error)

	// ListRuns returns every archived run, oldest first
	ListRuns() ([]schema.RunRecord, error)

	// ListFiles returns every archived file row
	ListFiles() ([]schema.FileRecord, error)

	// Clear removes all archived data
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// HistoryManager hands out the configured run archive.
// GetRunStore returns nil when archiving is disabled.
type HistoryManager interface {
	GetRunStore() RunStore
}
